package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/baxromumarov/lead-sieve/internal/core"
	"github.com/baxromumarov/lead-sieve/internal/ingest"
	"github.com/baxromumarov/lead-sieve/internal/keywords"
	"github.com/baxromumarov/lead-sieve/internal/observability"
	"github.com/baxromumarov/lead-sieve/internal/store"
)

func (s *Server) handleCreateBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		observability.IncError(observability.ErrorParsing, "api")
		respondError(w, http.StatusBadRequest, "A CSV file is required in the 'file' form field")
		return
	}
	defer file.Close()

	table, err := ingest.Decode(file)
	if err != nil {
		observability.IncError(observability.ClassifyUploadError(err), "ingest")
		if errors.Is(err, ingest.ErrMissingColumn) {
			respondError(w, http.StatusBadRequest,
				"CSV must include '"+ingest.ColumnHeadline+"' and '"+ingest.ColumnPosition+"' columns")
			return
		}
		respondError(w, http.StatusBadRequest, "Failed to parse CSV: "+err.Error())
		return
	}

	result, err := s.filter.Run(r.Context(), table.Leads())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Filtering failed: "+err.Error())
		return
	}

	batch := store.Batch{
		ID:       uuid.NewString(),
		Filename: filepath.Base(header.Filename),
		Columns:  table.Columns,
		Total:    len(result.Leads),
		Passed:   result.Passed,
	}
	if err := s.store.SaveBatch(r.Context(), batch, result.Leads); err != nil {
		observability.IncError(observability.ErrorStore, "api")
		respondError(w, http.StatusInternalServerError, "Failed to save batch: "+err.Error())
		return
	}

	suggestions := result.Suggestions
	if suggestions == nil {
		suggestions = []core.Suggestion{}
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":          batch.ID,
		"filename":    batch.Filename,
		"total":       batch.Total,
		"passed":      batch.Passed,
		"rejected":    batch.Total - batch.Passed,
		"suggestions": suggestions,
	})
}

func (s *Server) handleListBatches(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 20)

	batches, total, err := s.store.ListBatches(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch batches: "+err.Error())
		return
	}
	if batches == nil {
		batches = []store.Batch{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":  batches,
		"limit":  limit,
		"offset": offset,
		"total":  total,
	})
}

func (s *Server) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := s.store.GetBatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Batch not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch batch: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, batch)
}

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 50)

	relevant, err := parseRelevant(r.URL.Query().Get("relevant"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	leads, total, err := s.store.GetLeads(r.Context(), chi.URLParam(r, "id"), relevant, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch leads: "+err.Error())
		return
	}
	if leads == nil {
		leads = []store.Lead{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":  leads,
		"limit":  limit,
		"offset": offset,
		"total":  total,
	})
}

func (s *Server) handleDownloadBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	batch, err := s.store.GetBatch(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Batch not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch batch: "+err.Error())
		return
	}

	subset := r.URL.Query().Get("subset")
	if subset == "" {
		subset = "passed"
	}
	var relevant *bool
	switch subset {
	case "passed":
		v := true
		relevant = &v
	case "failed":
		v := false
		relevant = &v
	case "all":
	default:
		respondError(w, http.StatusBadRequest, "subset must be 'passed', 'failed' or 'all'")
		return
	}

	leads, err := s.store.GetBatchLeads(r.Context(), id, relevant)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch leads: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", subset+"_"+batch.Filename))
	if err := ingest.WriteCSV(w, batch.Columns, leads); err != nil {
		observability.IncError(observability.ErrorUnknown, "api")
	}
}

func (s *Server) handleListKeywords(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")

	if kind == "" {
		inclusion, err := s.store.LoadKeywords(r.Context(), keywords.KindInclusion)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to load keywords: "+err.Error())
			return
		}
		exclusion, err := s.store.LoadKeywords(r.Context(), keywords.KindExclusion)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to load keywords: "+err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			keywords.KindInclusion: keywords.NewSet(inclusion...).Sorted(),
			keywords.KindExclusion: keywords.NewSet(exclusion...).Sorted(),
		})
		return
	}

	if !keywords.ValidKind(kind) {
		respondError(w, http.StatusBadRequest, "kind must be 'inclusion' or 'exclusion'")
		return
	}
	words, err := s.store.LoadKeywords(r.Context(), kind)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load keywords: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"kind":     kind,
		"keywords": keywords.NewSet(words...).Sorted(),
	})
}

type AddKeywordsRequest struct {
	Kind     string   `json:"kind"`
	Keywords []string `json:"keywords"`
}

func (s *Server) handleAddKeywords(w http.ResponseWriter, r *http.Request) {
	var req AddKeywordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !keywords.ValidKind(req.Kind) {
		respondError(w, http.StatusBadRequest, "kind must be 'inclusion' or 'exclusion'")
		return
	}
	if len(req.Keywords) == 0 {
		respondError(w, http.StatusBadRequest, "keywords is required")
		return
	}

	added, err := s.store.AddKeywords(r.Context(), req.Kind, req.Keywords)
	if err != nil {
		observability.IncError(observability.ErrorStore, "api")
		respondError(w, http.StatusInternalServerError, "Failed to save keywords: "+err.Error())
		return
	}
	observability.AddKeywordsAdded(req.Kind, uint64(added))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"kind":  req.Kind,
		"added": added,
	})
}

func parsePagination(r *http.Request, defaultLimit int) (int, int) {
	q := r.URL.Query()
	limit := defaultLimit
	offset := 0

	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	if v := q.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func parseRelevant(v string) (*bool, error) {
	switch v {
	case "":
		return nil, nil
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	default:
		return nil, errors.New("relevant must be 'true' or 'false'")
	}
}
