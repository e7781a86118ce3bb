// Package skyview provides an embeddable client for fetching astronomical
// cutout images from ranked sky-survey services.
//
// A target is an object name ("NGC 788"), a decimal coordinate pair
// ("150.0 2.2"), or a sexagesimal pair ("10:00:00 +02:12:00"). Names are
// resolved through the CDS Sesame service with a bounded LRU cache.
// Surveys are tried in priority order; a survey whose cutout comes back
// blank triggers fallback to the next one. Batches run on a bounded
// worker pool and always return one result per input, in input order,
// regardless of per-target failures.
//
// Example usage:
//
//	client, err := skyview.New(skyview.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := client.FetchOne(ctx, "NGC 788", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.OK() {
//	    os.WriteFile("ngc788.jpg", res.Image.Encoded, 0o644)
//	}
package skyview
