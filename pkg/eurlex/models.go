package eurlex

// NoInternalID is reported when a result carries no internal reference
const NoInternalID = "No Internal ID Found"

// SearchResult is one record of a result page
type SearchResult struct {
	Title      string `json:"title"`
	Link       string `json:"link"`
	InternalID string `json:"internalId"`
}

// SearchParams are the caller-controlled parts of a search. Dates are
// YYYY-MM-DD and are passed to the site verbatim.
type SearchParams struct {
	Query    string `json:"query"`
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
}

// Page is the parsed content of one result page
type Page struct {
	// Number is the 1-based page index the page was requested with
	Number int
	// Results holds the valid records in document order; never nil
	Results []SearchResult
	// Nodes counts the result nodes matched in the markup, including
	// those dropped for lacking a title or link
	Nodes int
}

// Empty reports whether the page yielded no records
func (p *Page) Empty() bool {
	return len(p.Results) == 0
}

// Recognized reports whether the markup contained any result node at all.
// An empty page that is not recognized may mean the site layout changed
// rather than that the results ran out.
func (p *Page) Recognized() bool {
	return p.Nodes > 0
}
