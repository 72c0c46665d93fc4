package eurlex

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// BaseURL is the advanced search endpoint
	BaseURL = "https://eur-lex.europa.eu/search.html"

	// Origin is prefixed to the relative links found on result pages
	Origin = "https://eur-lex.europa.eu"

	// fixedQuery selects all domains, title+text scope, English, and
	// documents available as PDF, HTML or Word. It is already encoded.
	fixedQuery = "SUBDOM_INIT=ALL_ALL&DTS_SUBDOM=ALL_ALL&textScope1=ti-te&DTS_DOM=ALL&lang=en&type=advanced" +
		"&wh0=andCOMPOSE%3DENG%2CorEMBEDDED_MANIFESTATION-TYPE%3Dpdf%3BEMBEDDED_MANIFESTATION-TYPE%3Dpdfa1a" +
		"%3BEMBEDDED_MANIFESTATION-TYPE%3Dpdfa1b%3BEMBEDDED_MANIFESTATION-TYPE%3Dpdfa2a" +
		"%3BEMBEDDED_MANIFESTATION-TYPE%3Dpdfx%3BEMBEDDED_MANIFESTATION-TYPE%3Dpdf1x" +
		"%3BEMBEDDED_MANIFESTATION-TYPE%3Dhtml%3BEMBEDDED_MANIFESTATION-TYPE%3Dxhtml" +
		"%3BEMBEDDED_MANIFESTATION-TYPE%3Ddoc%3BEMBEDDED_MANIFESTATION-TYPE%3Ddocx"
)

// componentReplacer undoes the escapes url.QueryEscape applies to
// characters that encodeURIComponent-style encoding leaves alone
var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s the way browsers encode a single URI
// component: spaces become %20 and !'()* are kept literal.
func EncodeComponent(s string) string {
	return componentReplacer.Replace(url.QueryEscape(s))
}

// GetSearchURL constructs the URL of one result page
func GetSearchURL(baseURL string, page int, params SearchParams) string {
	return fmt.Sprintf("%s?%s&andText1=%s&dtl_date_from=%s&dtl_date_to=%s&page=%d",
		baseURL, fixedQuery, EncodeComponent(params.Query), params.DateFrom, params.DateTo, page)
}

// ResolveLink builds the absolute link of a result from its relative href
func ResolveLink(origin, href string) string {
	return origin + href
}
