package scraper

import (
	"context"
	"fmt"
	"iter"
	"time"

	errs "eurlexscraper/pkg/errors"
	"eurlexscraper/pkg/eurlex"
	"eurlexscraper/pkg/logger"
)

// Status is the overall result of a scrape
type Status string

const (
	StatusSuccess   Status = "success"
	StatusNoResults Status = "no_results"
	StatusFailed    Status = "failed"
)

// EndReason records why the page walk stopped
type EndReason string

const (
	// EndEmptyPage means a page had result markup but no valid records
	EndEmptyPage EndReason = "empty_page"
	// EndNoResultMarkup means a page had no result markup at all
	EndNoResultMarkup EndReason = "no_result_markup"
	// EndPageLimit means MaxPages pages were fetched and the last one
	// still had records
	EndPageLimit EndReason = "page_limit"
	// EndError means a page fetch failed or the context was cancelled
	EndError EndReason = "error"
)

// Outcome is the result of one ScrapeAll call
type Outcome struct {
	Status Status
	// Results holds every record in page order; nil when Status is
	// StatusFailed
	Results   []eurlex.SearchResult
	Pages     int
	EndReason EndReason
	// Truncated is set when the walk stopped at the page cap
	Truncated bool
	Err       error
	Duration  time.Duration
}

// Total returns the number of aggregated records
func (o *Outcome) Total() int {
	return len(o.Results)
}

// Aggregator drives sequential page fetches and merges their records
type Aggregator struct {
	fetcher  PageFetcher
	maxPages int
	logger   logger.Logger
}

// New creates an Aggregator. maxPages caps the number of pages fetched
// per scrape; zero or less means no cap.
func New(fetcher PageFetcher, maxPages int, log logger.Logger) *Aggregator {
	if log == nil {
		log = logger.GetLogger()
	}
	if maxPages < 0 {
		maxPages = 0
	}
	return &Aggregator{
		fetcher:  fetcher,
		maxPages: maxPages,
		logger:   log,
	}
}

// Pages returns the lazy sequence of result pages starting at page 1.
// The first empty page is yielded and ends the sequence, so callers can
// inspect why the walk stopped. A fetch error is yielded once and ends
// the sequence. When the cap is reached the sequence ends after the last
// allowed page even if it had records.
func (a *Aggregator) Pages(ctx context.Context, params eurlex.SearchParams) iter.Seq2[*eurlex.Page, error] {
	return func(yield func(*eurlex.Page, error) bool) {
		for n := 1; a.maxPages == 0 || n <= a.maxPages; n++ {
			if err := ctx.Err(); err != nil {
				yield(nil, errs.New(errs.ErrorTypeCancelled, err, "scrape cancelled before page %d: %v", n, err))
				return
			}

			page, err := a.fetcher.FetchPage(ctx, n, params)
			if err != nil {
				yield(nil, fmt.Errorf("failed to fetch page %d: %w", n, err))
				return
			}
			if page == nil {
				page = &eurlex.Page{Results: make([]eurlex.SearchResult, 0)}
			}
			page.Number = n

			if !yield(page, nil) || page.Empty() {
				return
			}
		}
	}
}

// ScrapeAll walks every result page and aggregates the records. It never
// returns partial results: any fetch failure yields a StatusFailed outcome
// with no records.
func (a *Aggregator) ScrapeAll(ctx context.Context, params eurlex.SearchParams) *Outcome {
	start := time.Now()
	log := a.logger.WithFields(map[string]interface{}{
		"query":     params.Query,
		"date_from": params.DateFrom,
		"date_to":   params.DateTo,
	})
	log.InfoWithFields("Starting paginated scrape", map[string]interface{}{
		"max_pages": a.maxPages,
	})

	outcome := &Outcome{}
	results := make([]eurlex.SearchResult, 0)
	var last *eurlex.Page

	for page, err := range a.Pages(ctx, params) {
		if err != nil {
			outcome.Status = StatusFailed
			outcome.EndReason = EndError
			outcome.Err = err
			outcome.Duration = time.Since(start)
			log.WithError(err).ErrorWithFields("Scrape failed", map[string]interface{}{
				"pages_fetched":     outcome.Pages,
				"discarded_results": len(results),
			})
			return outcome
		}

		outcome.Pages++
		last = page
		if page.Empty() {
			break
		}

		results = append(results, page.Results...)
		logger.LogScrapeProgress(log, page.Number, len(page.Results), len(results))
	}

	switch {
	case last != nil && last.Empty() && !last.Recognized():
		outcome.EndReason = EndNoResultMarkup
		log.WarnWithFields("No result markup found on page. Stopping pagination.", map[string]interface{}{
			"page": last.Number,
		})
	case last != nil && last.Empty():
		outcome.EndReason = EndEmptyPage
		log.InfoWithFields("No results found on page. Stopping pagination.", map[string]interface{}{
			"page":  last.Number,
			"nodes": last.Nodes,
		})
	default:
		outcome.EndReason = EndPageLimit
		outcome.Truncated = true
		log.WarnWithFields("Page limit reached before an empty page. Results are truncated.", map[string]interface{}{
			"max_pages": a.maxPages,
		})
	}

	outcome.Results = results
	outcome.Duration = time.Since(start)
	if len(results) == 0 {
		outcome.Status = StatusNoResults
	} else {
		outcome.Status = StatusSuccess
	}

	log.InfoWithFields("Scrape finished", map[string]interface{}{
		"status":        string(outcome.Status),
		"total_results": outcome.Total(),
		"pages_fetched": outcome.Pages,
		"end_reason":    string(outcome.EndReason),
		"duration":      outcome.Duration,
	})

	return outcome
}
