package eurlex

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"eurlexscraper/pkg/config"
	errs "eurlexscraper/pkg/errors"
	"eurlexscraper/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.DefaultConfig().Search
	cfg.BaseURL = server.URL + "/search.html"
	cfg.Origin = "https://eur-lex.europa.eu"
	cfg.Timeout = 5 * time.Second

	return NewClient(&cfg, logger.NewNopLogger()), server
}

func TestFetchPage(t *testing.T) {
	var gotQuery, gotUA string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("andText1") + "|" + r.URL.Query().Get("page")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<div class="SearchResult"><h2><a href="/legal-content/EN/TXT/?uri=CELEX:1">First</a></h2><div class="internalNum">C/1</div></div>`)
	})

	page, err := client.FetchPage(context.Background(), 2, SearchParams{Query: "antidumping AND phosphate", DateFrom: "2025-01-01", DateTo: "2025-12-31"})
	require.NoError(t, err)

	assert.Equal(t, "antidumping AND phosphate|2", gotQuery)
	assert.Contains(t, gotUA, "Mozilla/5.0")
	assert.Equal(t, 2, page.Number)
	require.Len(t, page.Results, 1)
	assert.Equal(t, SearchResult{
		Title:      "First",
		Link:       "https://eur-lex.europa.eu/legal-content/EN/TXT/?uri=CELEX:1",
		InternalID: "C/1",
	}, page.Results[0])
}

func TestFetchPageHTTPStatusError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.FetchPage(context.Background(), 1, SearchParams{Query: "q", DateFrom: "2025-01-01", DateTo: "2025-12-31"})
	require.Error(t, err)

	var apiErr *errs.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, errs.ErrorTypeHTTPStatus, apiErr.Type)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Code)
}

func TestFetchPageDoesNotRetry(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchPage(context.Background(), 1, SearchParams{Query: "q"})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchPageNetworkError(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.FetchPage(context.Background(), 1, SearchParams{Query: "q"})
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeNetwork))
}

func TestFetchPageCancelled(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FetchPage(ctx, 1, SearchParams{Query: "q"})
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeCancelled))
}

func TestSetHeader(t *testing.T) {
	var got string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Test")
	})
	client.SetHeader("X-Test", "yes")

	_, err := client.FetchPage(context.Background(), 1, SearchParams{Query: "q"})
	require.NoError(t, err)
	assert.Equal(t, "yes", got)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestSetHTTPClient(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<div class="SearchResult"><h2><a href="/x">X</a></h2></div>`)
	})

	var seen int32
	transport := http.DefaultTransport
	client.SetHTTPClient(&http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		atomic.AddInt32(&seen, 1)
		return transport.RoundTrip(r)
	})})

	page, err := client.FetchPage(context.Background(), 1, SearchParams{Query: "q"})
	require.NoError(t, err)
	assert.Len(t, page.Results, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&seen), "requests must go through the replaced client")
}
