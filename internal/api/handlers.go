package api

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studylink/cnxparse/internal/cnxml"
)

// handleStructure returns the textbook's chapter/section/module hierarchy.
func (s *Server) handleStructure(w http.ResponseWriter, r *http.Request) {
	col, err := s.lib.Structure()
	if err != nil {
		jsonError(w, "failed to load structure: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"structure": col})
}

// handleModule returns the structured form of one parsed module, with its
// aggregate counts alongside.
func (s *Server) handleModule(w http.ResponseWriter, r *http.Request) {
	moduleID := chi.URLParam(r, "moduleID")
	m, err := s.lib.Module(moduleID)
	if err != nil {
		writeModuleError(w, moduleID, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"module": m,
		"counts": m.Counts(),
	})
}

// handleModuleText returns the flattened plain-text rendering.
func (s *Server) handleModuleText(w http.ResponseWriter, r *http.Request) {
	moduleID := chi.URLParam(r, "moduleID")
	flat, err := s.lib.FlatText(moduleID)
	if err != nil {
		writeModuleError(w, moduleID, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(flat))
}

// handleSearch runs a substring search over titles and flattened text.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		jsonError(w, "q query parameter is required", http.StatusBadRequest)
		return
	}
	results, err := s.lib.Search(query)
	if err != nil {
		jsonError(w, "search failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"query": query, "results": results})
}

// handleStats parses every module in the bundle and returns batch totals and
// per-module averages.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ids, err := s.lib.ModuleIDs()
	if err != nil {
		jsonError(w, "failed to list modules: "+err.Error(), http.StatusInternalServerError)
		return
	}
	summary, failed := s.batch.Summarize(r.Context(), ids)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"summary": summary,
		"failed":  failed,
	})
}

func writeModuleError(w http.ResponseWriter, moduleID string, err error) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		jsonError(w, "module not found: "+moduleID, http.StatusNotFound)
	case errors.Is(err, cnxml.ErrMissingMetadata), errors.Is(err, cnxml.ErrDepthExceeded):
		jsonError(w, "module unparseable: "+err.Error(), http.StatusUnprocessableEntity)
	default:
		jsonError(w, "failed to load module: "+err.Error(), http.StatusInternalServerError)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
