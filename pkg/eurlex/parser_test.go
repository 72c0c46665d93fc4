package eurlex

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	f, err := os.Open("testdata/results_page.html")
	require.NoError(t, err)
	defer f.Close()

	page, err := ParsePage(f, Origin)
	require.NoError(t, err)

	assert.Equal(t, 6, page.Nodes)
	require.Len(t, page.Results, 3)

	assert.Equal(t, SearchResult{
		Title:      "Commission Implementing Regulation (EU) 2025/12 imposing a definitive anti-dumping duty",
		Link:       "https://eur-lex.europa.eu/legal-content/EN/AUTO/?uri=CELEX:32025R0012",
		InternalID: "C/2025/101",
	}, page.Results[0])

	assert.Equal(t, "Notice of initiation concerning phosphates", page.Results[1].Title)
	assert.Equal(t, NoInternalID, page.Results[1].InternalID)

	assert.Equal(t, "Council Decision on monoammonium phosphate", page.Results[2].Title)
	assert.Equal(t, NoInternalID, page.Results[2].InternalID, "whitespace-only id falls back to the sentinel")
}

func TestParsePageRecordFiltering(t *testing.T) {
	tests := []struct {
		name string
		html string
		want int
	}{
		{
			name: "title and link",
			html: `<div class="SearchResult"><h2><a href="/x">Title</a></h2></div>`,
			want: 1,
		},
		{
			name: "title without link",
			html: `<div class="SearchResult"><h2><a>Title</a></h2></div>`,
			want: 0,
		},
		{
			name: "link without title text",
			html: `<div class="SearchResult"><h2><a href="/x"></a></h2></div>`,
			want: 0,
		},
		{
			name: "no heading anchor",
			html: `<div class="SearchResult"><a href="/x">Title</a></div>`,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := ParsePage(strings.NewReader(tt.html), Origin)
			require.NoError(t, err)
			assert.Len(t, page.Results, tt.want)
			assert.Equal(t, 1, page.Nodes)
		})
	}
}

func TestParsePageAbsoluteLink(t *testing.T) {
	html := `<div class="SearchResult"><h2><a href="/legal-content/EN/TXT/?uri=CELEX:123">Reg</a></h2></div>`

	page, err := ParsePage(strings.NewReader(html), "https://eur-lex.europa.eu")
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "https://eur-lex.europa.eu/legal-content/EN/TXT/?uri=CELEX:123", page.Results[0].Link)
}

func TestParsePageMissingInternalID(t *testing.T) {
	html := `<div class="SearchResult"><h2><a href="/a">Reg</a></h2></div>`

	page, err := ParsePage(strings.NewReader(html), Origin)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "No Internal ID Found", page.Results[0].InternalID)
}

func TestParsePageWithoutResultMarkup(t *testing.T) {
	f, err := os.Open("testdata/empty_page.html")
	require.NoError(t, err)
	defer f.Close()

	page, err := ParsePage(f, Origin)
	require.NoError(t, err)

	assert.NotNil(t, page.Results)
	assert.True(t, page.Empty())
	assert.False(t, page.Recognized())
}

func TestParsePageAllNodesInvalid(t *testing.T) {
	html := `<div class="SearchResult"><h2><a>no link</a></h2></div>`

	page, err := ParsePage(strings.NewReader(html), Origin)
	require.NoError(t, err)
	assert.True(t, page.Empty())
	assert.True(t, page.Recognized())
}
