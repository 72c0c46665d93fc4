package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"eurlexscraper/pkg/eurlex"
	"eurlexscraper/pkg/scraper"
)

const (
	MessageSuccess   = "Scraping de toutes les pages réussi"
	MessageNoResults = "Aucun résultat trouvé avec les critères spécifiés sur toutes les pages."
	MessageFailure   = "Erreur lors de la récupération du site"
)

// ScrapeResponse is the body returned when a scrape completes.
// TotalResults is omitted when nothing was found.
type ScrapeResponse struct {
	Message      string                `json:"message"`
	TotalResults *int                  `json:"totalResults,omitempty"`
	Results      []eurlex.SearchResult `json:"results"`
}

// ErrorResponse is the body returned when a scrape fails
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// NewScrapeResponse maps an outcome to its HTTP status and body
func NewScrapeResponse(outcome *scraper.Outcome) (int, interface{}) {
	switch outcome.Status {
	case scraper.StatusFailed:
		msg := "unknown error"
		if outcome.Err != nil {
			msg = outcome.Err.Error()
		}
		return http.StatusInternalServerError, ErrorResponse{Message: MessageFailure, Error: msg}
	case scraper.StatusNoResults:
		return http.StatusOK, ScrapeResponse{Message: MessageNoResults, Results: []eurlex.SearchResult{}}
	default:
		total := outcome.Total()
		return http.StatusOK, ScrapeResponse{Message: MessageSuccess, TotalResults: &total, Results: outcome.Results}
	}
}

// EncodeJSON renders v the way the HTTP layer does, without HTML escaping
// so links keep their literal ampersands
func EncodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) handleScrapeAll(w http.ResponseWriter, r *http.Request) {
	log := s.logger.WithField("request_id", RequestIDFromContext(r.Context()))
	params := eurlex.ParamsFromConfig(&s.cfg.Search)

	outcome := s.scraper.ScrapeAll(r.Context(), params)
	status, body := NewScrapeResponse(outcome)

	fields := map[string]interface{}{
		"status":        string(outcome.Status),
		"total_results": outcome.Total(),
		"pages":         outcome.Pages,
		"end_reason":    string(outcome.EndReason),
		"truncated":     outcome.Truncated,
	}
	if outcome.Err != nil {
		log.WithError(outcome.Err).ErrorWithFields("Scrape request failed", fields)
	} else {
		log.InfoWithFields("Scrape request served", fields)
	}

	s.writeJSON(w, status, body)
}

// methodNotAllowed answers 405 advertising the allowed methods
func methodNotAllowed(allowed ...string) http.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// servePage serves a named file from the static root
func (s *Server) servePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, s.static, name)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := EncodeJSON(v)
	if err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}
