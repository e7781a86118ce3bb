// Package catalog reads target lists from delimited catalog files.
//
// Supported formats are .csv, .tsv, and .txt (comma-delimited). Each row
// yields one raw target token for the fetch pipeline, plus an optional
// display name taken from a configurable column.
package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultLimit caps how many targets a single file load yields.
const DefaultLimit = 50

// Entry is one target read from a catalog file.
type Entry struct {
	// Target is the raw token handed to the fetch pipeline: either
	// "<ra> <dec>" built from the coordinate columns, or an object name.
	Target string

	// Name is the optional display label from the name column.
	Name string
}

// ReadOptions selects catalog columns. Zero values mean the defaults:
// ra/dec coordinate columns, no name column, DefaultLimit rows.
type ReadOptions struct {
	RACol   string
	DecCol  string
	NameCol string
	Limit   int
}

// ReadFile loads targets from a catalog file. Files with the configured
// coordinate columns yield coordinate tokens; a single-column file yields
// each row as an object name instead.
func ReadFile(path string, opts ReadOptions) ([]Entry, error) {
	if opts.RACol == "" {
		opts.RACol = "ra"
	}
	if opts.DecCol == "" {
		opts.DecCol = "dec"
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
	case ".tsv":
		r.Comma = '\t'
	default:
		return nil, fmt.Errorf("unsupported catalog format %q (use .csv, .tsv, or .txt)", ext)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}

	header := rows[0]
	body := rows[1:]

	raIdx := columnIndex(header, opts.RACol)
	decIdx := columnIndex(header, opts.DecCol)
	nameIdx := -1
	if opts.NameCol != "" {
		nameIdx = columnIndex(header, opts.NameCol)
	}

	if raIdx < 0 || decIdx < 0 {
		if len(header) == 1 {
			return nameEntries(rows, opts.Limit), nil
		}
		return nil, fmt.Errorf("catalog %s has no %q/%q columns", path, opts.RACol, opts.DecCol)
	}

	var out []Entry
	for _, row := range body {
		if len(out) >= opts.Limit {
			break
		}
		if raIdx >= len(row) || decIdx >= len(row) {
			continue
		}
		e := Entry{Target: strings.TrimSpace(row[raIdx]) + " " + strings.TrimSpace(row[decIdx])}
		if nameIdx >= 0 && nameIdx < len(row) {
			e.Name = strings.TrimSpace(row[nameIdx])
		}
		out = append(out, e)
	}
	return out, nil
}

// nameEntries treats every row of a single-column file as an object name.
// The first row is kept too unless it looks like a header.
func nameEntries(rows [][]string, limit int) []Entry {
	var out []Entry
	for i, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		v := strings.TrimSpace(row[0])
		if i == 0 && (strings.EqualFold(v, "name") || strings.EqualFold(v, "target") || strings.EqualFold(v, "object")) {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, Entry{Target: v, Name: v})
	}
	return out
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}
