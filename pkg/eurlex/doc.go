// Package eurlex fetches and parses EUR-Lex advanced search result pages.
//
// GetSearchURL builds the URL of one page for a query and date range,
// ParsePage turns the page markup into SearchResult records, and Client
// combines the two over HTTP. The package knows nothing about pagination;
// see package scraper for the loop that walks pages until one is empty.
package eurlex
