package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/skyviewhq/skyview/internal/catalog"
	"github.com/skyviewhq/skyview/internal/cliconfig"
	"github.com/skyviewhq/skyview/internal/watch"
	zlog "github.com/skyviewhq/skyview/pkg/log"
	"github.com/skyviewhq/skyview/pkg/skyview"
)

const longHelp = `
Fetch sky survey cutouts for named objects or coordinates.

Targets can be object names ("NGC 788", resolved through CDS Sesame) or
coordinates in decimal degrees ("30.277 -6.8155") or sexagesimal form
("02:01:06.5 -06:48:56"). With --survey auto (the default) surveys are
tried in priority order until one returns a non-blank image.

Configure via flags, SKYVIEW_* environment variables, or a TOML config
file (default $HOME/.skyview/config.toml); flags win over environment,
environment wins over file.
`

var exampleUsage = strings.TrimSpace(`
  skyview fetch "NGC 788"
  skyview fetch "30.277 -6.8155" --survey sdss --fov 2.5
  skyview batch --file targets.csv --workers 8 --out-dir cutouts
  skyview resolve "M 31"
  skyview surveys
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	root := &cobra.Command{
		Use:           "skyview",
		Short:         "Fetch sky survey cutouts for named objects or coordinates",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Precedence: defaults < config file < environment < flags.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			return cfg.Validate()
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.skyview/config.toml)")
	root.PersistentFlags().StringVar(&cfg.Survey, "survey", cfg.Survey, "survey ID, or \"auto\" for the priority fallback chain")
	root.PersistentFlags().Float64Var(&cfg.FOV, "fov", cfg.FOV, "field of view in arcminutes")
	root.PersistentFlags().IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent downloads in batch mode")
	root.PersistentFlags().IntVar(&cfg.CacheCapacity, "cache-capacity", cfg.CacheCapacity, "name resolution cache size")
	root.PersistentFlags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout per request")
	root.PersistentFlags().Float64Var(&cfg.BlankThreshold, "blank-threshold", cfg.BlankThreshold, "pixel stddev below which a cutout counts as blank")
	root.PersistentFlags().StringVar(&cfg.ResolverURL, "resolver-url", cfg.ResolverURL, "Sesame endpoint override")
	if err := root.PersistentFlags().MarkHidden("resolver-url"); err != nil {
		log.Info().Err(err).Msg("failed to hide resolver-url flag")
	}

	root.AddCommand(
		newFetchCmd(&cfg, log),
		newBatchCmd(&cfg, log),
		newResolveCmd(&cfg, log),
		newSurveysCmd(),
	)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("skyview")
		os.Exit(1)
	}
}

// newClient builds the library client from the CLI configuration.
func newClient(cfg *cliconfig.Config, log zerolog.Logger) (*skyview.Client, error) {
	return skyview.New(skyview.Config{
		Survey:         cfg.Survey,
		FOV:            cfg.FOV,
		Workers:        cfg.Workers,
		CacheCapacity:  cfg.CacheCapacity,
		HTTPTimeout:    cfg.HTTPTimeout,
		BlankThreshold: cfg.BlankThreshold,
		ResolverURL:    cfg.ResolverURL,
	}, skyview.WithLogger(zlog.NewZerologAdapterWithLogger(log)))
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func newFetchCmd(cfg *cliconfig.Config, log zerolog.Logger) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "fetch <target>",
		Short: "Fetch a single cutout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cfg, log)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			res, err := client.FetchOne(ctx, args[0], nil)
			if err != nil {
				return err
			}
			if !res.OK() {
				return fmt.Errorf("fetch %q: %s: %v", args[0], res.Status, res.Err)
			}

			path := out
			if path == "" {
				path = outputName(args[0], res.Image.Encoded)
			}
			if err := os.WriteFile(path, res.Image.Encoded, 0o644); err != nil {
				return fmt.Errorf("write image: %w", err)
			}
			log.Info().
				Str("target", args[0]).
				Str("survey", res.SurveyUsed).
				Str("coord", res.Coord.String()).
				Str("path", path).
				Msg("cutout saved")
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output image path (default: derived from target)")
	return cmd
}

func newBatchCmd(cfg *cliconfig.Config, log zerolog.Logger) *cobra.Command {
	var (
		file    string
		raCol   string
		decCol  string
		nameCol string
		limit   int
		watchIt bool
	)

	cmd := &cobra.Command{
		Use:   "batch [targets...]",
		Short: "Fetch cutouts for many targets concurrently",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" && len(args) == 0 {
				return fmt.Errorf("no targets: pass targets as arguments or use --file")
			}
			if file == "" && watchIt {
				return fmt.Errorf("--watch requires --file")
			}

			client, err := newClient(cfg, log)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			ctx, cancel := signalContext()
			defer cancel()

			run := func() error {
				targets, labels, err := loadTargets(args, file, catalog.ReadOptions{
					RACol: raCol, DecCol: decCol, NameCol: nameCol, Limit: limit,
				})
				if err != nil {
					return err
				}
				return runBatch(ctx, client, cfg, log, targets, labels)
			}

			if err := run(); err != nil {
				return err
			}
			if !watchIt {
				return nil
			}

			log.Info().Str("file", file).Msg("watching catalog for changes")
			w := watch.New(file, watch.DefaultDebounce,
				zlog.NewZerologAdapterWithLogger(log), func() {
					if err := run(); err != nil {
						log.Error().Err(err).Msg("batch rerun failed")
					}
				})
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "catalog file (.csv, .tsv, or .txt)")
	cmd.Flags().StringVar(&raCol, "ra-col", "", "RA column name (default: ra)")
	cmd.Flags().StringVar(&decCol, "dec-col", "", "Dec column name (default: dec)")
	cmd.Flags().StringVar(&nameCol, "name-col", "", "name column for output file naming")
	cmd.Flags().IntVar(&limit, "limit", catalog.DefaultLimit, "maximum targets to read from the file")
	cmd.Flags().BoolVar(&watchIt, "watch", false, "rerun the batch when the catalog file changes")
	cmd.Flags().StringVar(&cfg.OutDir, "out-dir", cfg.OutDir, "directory for output images")
	return cmd
}

// loadTargets merges inline arguments with catalog file entries. The label
// slice is index-aligned with the targets and feeds output file naming.
func loadTargets(args []string, file string, opts catalog.ReadOptions) ([]string, []string, error) {
	targets := make([]string, 0, len(args))
	labels := make([]string, 0, len(args))
	for _, a := range args {
		targets = append(targets, a)
		labels = append(labels, "")
	}

	if file != "" {
		entries, err := catalog.ReadFile(file, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("read catalog: %w", err)
		}
		for _, e := range entries {
			targets = append(targets, e.Target)
			labels = append(labels, e.Name)
		}
	}
	return targets, labels, nil
}

func runBatch(ctx context.Context, client *skyview.Client, cfg *cliconfig.Config, log zerolog.Logger, targets, labels []string) error {
	start := time.Now()
	results, err := client.FetchMany(ctx, targets, nil)
	if err != nil {
		return err
	}

	var saved, failed int
	for i, res := range results {
		if !res.OK() {
			failed++
			log.Warn().
				Str("target", targets[i]).
				Str("status", res.Status.String()).
				Err(res.Err).
				Msg("target failed")
			continue
		}

		name := labels[i]
		if name == "" {
			name = targets[i]
		}
		path := filepath.Join(cfg.OutDir, outputName(name, res.Image.Encoded))
		if err := os.WriteFile(path, res.Image.Encoded, 0o644); err != nil {
			return fmt.Errorf("write image: %w", err)
		}
		saved++
		log.Info().
			Str("target", targets[i]).
			Str("survey", res.SurveyUsed).
			Str("path", path).
			Msg("cutout saved")
	}

	log.Info().
		Int("saved", saved).
		Int("failed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("batch done")
	return nil
}

func newResolveCmd(cfg *cliconfig.Config, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve an object name to coordinates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cfg, log)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			coord, err := client.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.6f\t%.6f\n", args[0], coord.RA, coord.Dec)
			return nil
		},
	}
}

func newSurveysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "surveys",
		Short: "List available surveys in priority order",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := skyview.New(skyview.DefaultConfig())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-12s %-8s %-6s %-10s %s\n", "ID", "PRIORITY", "BANDS", "PIXSCALE", "DEC RANGE")
			for _, s := range client.Surveys() {
				fmt.Fprintf(w, "%-12s %-8d %-6s %-10.3f [%+.0f, %+.0f]\n",
					s.ID, s.Priority, s.Bands, s.PixScale, s.MinDec, s.MaxDec)
			}
			return nil
		},
	}
}

// pngMagic prefixes every PNG stream.
var pngMagic = []byte{0x89, 'P', 'N', 'G'}

// outputName derives a filesystem-safe image name from a target token.
func outputName(target string, encoded []byte) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(target) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '.', r == '+':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := b.String()
	if name == "" {
		name = "cutout"
	}
	ext := ".jpg"
	if bytes.HasPrefix(encoded, pngMagic) {
		ext = ".png"
	}
	return name + ext
}
