// CLAUDE:SUMMARY HTTP surface for the audit service — chi routes for scan, clip and health.
package audit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/openthreads/threadmark/evidence"
	"github.com/openthreads/threadmark/rules"
	"github.com/openthreads/threadmark/threadmark"
)

// Routes returns the HTTP handler for the audit API.
func (s *Service) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Post("/api/scan", s.handleScan)
	r.Post("/api/clip", s.handleClip)
	r.Post("/api/export", s.handleExport)
	r.Get("/api/fields", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, rules.FieldGroups())
	})
	r.Get("/api/claims", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, rules.ClaimKeywords())
	})

	return r
}

func (s *Service) handleScan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HTML     string `json:"html"`
		URL      string `json:"url"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, err)
		return
	}
	if req.HTML == "" {
		writeError(w, 400, fmt.Errorf("html is required"))
		return
	}
	category, _ := rules.ParseCategory(req.Category)

	scan, err := s.ScanHTML(strings.NewReader(req.HTML), req.URL, category)
	if err != nil {
		writeError(w, 422, err)
		return
	}
	writeJSON(w, 200, scan)
}

func (s *Service) handleClip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text         string `json:"text"`
		PageText     string `json:"pageText"`
		URL          string `json:"url"`
		FieldKey     string `json:"fieldKey"`
		ClaimKeyword string `json:"claimKeyword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, err)
		return
	}

	clip := s.Clip(req.Text, req.PageText, req.URL, &evidence.ClipOptions{
		FieldKey:     req.FieldKey,
		ClaimKeyword: req.ClaimKeyword,
	})
	if clip == nil {
		writeError(w, 400, fmt.Errorf("nothing selected"))
		return
	}
	writeJSON(w, 201, clip)
}

func (s *Service) handleExport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Scan       *threadmark.ScanResult `json:"scan"`
		ExportedAt string                 `json:"exportedAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, err)
		return
	}
	if req.Scan == nil {
		writeError(w, 400, fmt.Errorf("scan is required"))
		return
	}

	bundle, data, err := s.Export(req.Scan, req.ExportedAt)
	if err != nil {
		writeError(w, 500, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", threadmark.Filename(bundle)))
	w.WriteHeader(200)
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
