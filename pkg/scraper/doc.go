// Package scraper walks the paginated search results and aggregates them.
//
// The Aggregator requests page 1, 2, 3, ... one at a time and stops at the
// first page that yields no records. That stop condition is trusted from
// the remote site, so a MaxPages cap bounds the walk when the site never
// returns an empty page.
//
// Usage:
//
//	client := eurlex.NewClient(&cfg.Search, log)
//	agg := scraper.New(client, cfg.Search.MaxPages, log)
//
//	outcome := agg.ScrapeAll(ctx, eurlex.SearchParams{
//	    Query:    "antidumping AND phosphate",
//	    DateFrom: "2025-01-01",
//	    DateTo:   "2025-12-31",
//	})
//	switch outcome.Status {
//	case scraper.StatusSuccess:
//	    fmt.Println(len(outcome.Results), "results")
//	case scraper.StatusNoResults:
//	    fmt.Println("nothing matched")
//	case scraper.StatusFailed:
//	    fmt.Println("scrape failed:", outcome.Err)
//	}
//
// Failure semantics:
//
// Any error while fetching a page aborts the whole scrape. Records already
// gathered from earlier pages are discarded, never returned partially.
// Cancelling ctx aborts the walk the same way.
//
// Ambiguous endings:
//
// A page without any result markup ends the walk exactly like a page whose
// result nodes were all invalid, but Outcome.EndReason tells the two apart
// and a warning is logged, since it may mean the site layout changed.
package scraper
