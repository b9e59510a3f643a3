package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/pipeline"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/store"

	errs "github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/errors"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleViewer serves the interactive page, seeded with the settled layout
// so it opens at rest.
func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	opts := s.requestOptions(r)
	opts.Formats = []string{pipeline.FormatHTML}

	result, err := s.runner.Execute(r.Context(), s.graph, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(result.Artifacts[pipeline.FormatHTML])
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.graph)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	result, err := s.runner.Execute(r.Context(), s.graph, s.requestOptions(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result.Layout)
}

func (s *Server) handleExportDOT(w http.ResponseWriter, r *http.Request) {
	opts := s.requestOptions(r)
	opts.Formats = []string{pipeline.FormatDOT}

	result, err := s.runner.Execute(r.Context(), s.graph, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write(result.Artifacts[pipeline.FormatDOT])
}

func (s *Server) handleExportSVG(w http.ResponseWriter, r *http.Request) {
	opts := s.requestOptions(r)
	opts.Formats = []string{pipeline.FormatSVG}

	result, err := s.runner.Execute(r.Context(), s.graph, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
}

func (s *Server) handleExportPNG(w http.ResponseWriter, r *http.Request) {
	opts := s.requestOptions(r)
	opts.Formats = []string{pipeline.FormatPNG}

	result, err := s.runner.Execute(r.Context(), s.graph, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(result.Artifacts[pipeline.FormatPNG])
}

// ===== Snapshots =====

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	list, err := s.snaps.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if list == nil {
		list = []store.Snapshot{}
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snaps.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	result, err := s.runner.Execute(r.Context(), s.graph, s.requestOptions(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	snap, err := store.NewSnapshot(req.Name, s.graph, result.Layout)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.snaps.Save(r.Context(), snap); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.snaps.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== Helpers =====

// requestOptions derives per-request pipeline options from query parameters.
func (s *Server) requestOptions(r *http.Request) pipeline.Options {
	opts := s.opts
	opts.Formats = nil

	q := r.URL.Query()
	if v, err := strconv.ParseFloat(q.Get("width"), 64); err == nil && v > 0 {
		opts.Width = v
	}
	if v, err := strconv.ParseFloat(q.Get("height"), 64); err == nil && v > 0 {
		opts.Height = v
	}
	if v, err := strconv.ParseInt(q.Get("seed"), 10, 64); err == nil {
		opts.Seed = v
	}
	if q.Get("refresh") == "true" {
		opts.Refresh = true
	}
	return opts
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// writeError maps structured error codes to HTTP statuses and emits a JSON
// error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidGraph, errs.ErrCodeInvalidLayout,
		errs.ErrCodeInvalidDataset, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case errs.ErrCodeNotFound, errs.ErrCodeFileNotFound, errs.ErrCodeSnapshotNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, map[string]string{
		"error": errs.UserMessage(err),
		"code":  string(errs.GetCode(err)),
	})
}
