package server

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"quickreviewer/internal/logging"
	"quickreviewer/internal/media"
	"quickreviewer/internal/review"
	"quickreviewer/internal/store"
)

// reviewResponse is the JSON shape of a cached review. Verdict and bullets
// are null when absent.
type reviewResponse struct {
	ID             string   `json:"id"`
	MediaType      string   `json:"mediaType"`
	TimestampMs    int64    `json:"timestampMs"`
	Review         string   `json:"review"`
	Verdict        *string  `json:"verdict"`
	SummaryBullets []string `json:"summaryBullets"`
}

type listEntry struct {
	ID          string `json:"id"`
	MediaType   string `json:"mediaType"`
	TimestampMs int64  `json:"timestampMs"`
}

func toReviewResponse(cached *store.CachedReview) reviewResponse {
	resp := reviewResponse{
		ID:          cached.ID,
		MediaType:   string(cached.MediaType),
		TimestampMs: cached.TimestampMs,
		Review:      cached.Review,
	}
	if cached.Verdict != "" {
		verdict := cached.Verdict
		resp.Verdict = &verdict
	}
	resp.SummaryBullets = cached.SummaryBullets
	return resp
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id, mediaType, refresh, err := reviewParams(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, pending := s.reviews.GetReviewWithin(r.Context(), id, mediaType, refresh, s.waitTimeout)
	if pending {
		s.writeJSON(w, http.StatusAccepted, map[string]string{
			"status": "generating",
			"detail": "the review is still being generated, try again shortly",
		})
		return
	}
	s.writeJSON(w, http.StatusOK, toReviewResponse(result))
}

func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	entries, err := s.lister.ListRecent(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]listEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, listEntry{
			ID:          entry.ID,
			MediaType:   string(entry.MediaType),
			TimestampMs: entry.TimestampMs,
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"reviews": out})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id, mediaType, refresh, err := reviewParams(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bullets := s.reviews.GetSummary(r.Context(), id, mediaType, refresh)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"id":             id,
		"summaryBullets": bullets,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

var reviewPageTemplate = template.Must(template.New("review").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<article>
{{.Body}}
</article>
</body>
</html>
`))

func (s *Server) handleReviewPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/review/")
	if id == "" || strings.Contains(id, "/") {
		s.writeError(w, http.StatusNotFound, "review not found")
		return
	}
	mediaType, err := mediaTypeParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, pending := s.reviews.GetReviewWithin(r.Context(), id, mediaType, false, s.waitTimeout)
	if pending {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, "<html><body><p>The review is still being generated. Refresh in a moment.</p></body></html>")
		return
	}

	body, err := review.RenderHTML(result.Review)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderErr := reviewPageTemplate.Execute(w, struct {
		Title string
		Body  template.HTML
	}{
		Title: id,
		Body:  template.HTML(body),
	})
	if renderErr != nil {
		s.logger.Error("failed to render review page", logging.Error(renderErr))
	}
}

func reviewParams(r *http.Request) (string, media.Type, bool, error) {
	query := r.URL.Query()
	id := strings.TrimSpace(query.Get("id"))
	if id == "" {
		return "", "", false, fmt.Errorf("missing required parameter %q", "id")
	}
	mediaType, err := mediaTypeParam(r)
	if err != nil {
		return "", "", false, err
	}
	refreshRaw := query.Get("refresh")
	refresh := refreshRaw == "1" || strings.EqualFold(refreshRaw, "true")
	return id, mediaType, refresh, nil
}

func mediaTypeParam(r *http.Request) (media.Type, error) {
	value := strings.TrimSpace(r.URL.Query().Get("type"))
	if value == "" {
		return media.TypeMovie, nil
	}
	return media.ParseType(value)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
