package scraper

import (
	"context"

	"eurlexscraper/pkg/eurlex"
)

// PageFetcher retrieves one result page. *eurlex.Client implements it.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int, params eurlex.SearchParams) (*eurlex.Page, error)
}

// PageFetcherFunc adapts a function to PageFetcher
type PageFetcherFunc func(ctx context.Context, page int, params eurlex.SearchParams) (*eurlex.Page, error)

// FetchPage calls f
func (f PageFetcherFunc) FetchPage(ctx context.Context, page int, params eurlex.SearchParams) (*eurlex.Page, error) {
	return f(ctx, page, params)
}
