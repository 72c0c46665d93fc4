package eurlex

import (
	"io"
	"strings"

	errs "eurlexscraper/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

const (
	resultSelector     = ".SearchResult"
	titleLinkSelector  = "h2 a"
	internalIDSelector = ".internalNum"
)

// ParsePage extracts the result records of one page. Relative links are
// made absolute by prefixing origin. A node is kept only when its heading
// link has both text and an href.
func ParsePage(r io.Reader, origin string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errs.New(errs.ErrorTypeParsing, err, "failed to parse result page: %v", err)
	}

	page := &Page{Results: make([]SearchResult, 0)}
	doc.Find(resultSelector).Each(func(_ int, s *goquery.Selection) {
		page.Nodes++
		if result, ok := extractResult(s, origin); ok {
			page.Results = append(page.Results, result)
		}
	})

	return page, nil
}

// extractResult extracts a single record from a result node
func extractResult(s *goquery.Selection, origin string) (SearchResult, bool) {
	titleLink := s.Find(titleLinkSelector)
	title := strings.TrimSpace(titleLink.Text())
	href, _ := titleLink.Attr("href")
	if title == "" || href == "" {
		return SearchResult{}, false
	}

	internalID := strings.TrimSpace(s.Find(internalIDSelector).Text())
	if internalID == "" {
		internalID = NoInternalID
	}

	return SearchResult{
		Title:      title,
		Link:       ResolveLink(origin, href),
		InternalID: internalID,
	}, true
}
