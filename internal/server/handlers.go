// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the intake pipeline over an HTTP JSON API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/patent-intake/internal/apperr"
	"github.com/pdiddy/patent-intake/internal/docparse"
	"github.com/pdiddy/patent-intake/internal/ops"
	"github.com/pdiddy/patent-intake/pkg/types"
)

const defaultMaxUploadBytes = 16 << 20 // 16 MB

var pdfMagic = []byte("%PDF")

// PatentFetcher looks up one patent record from the office API.
type PatentFetcher interface {
	Fetch(ctx context.Context, number string, docType ops.DocType) (types.PatentRecord, error)
}

// Translator runs text through the translation fallback chain.
type Translator interface {
	Translate(ctx context.Context, text, patentNumber string, preferOfficial bool) types.TranslationResult
}

// SubmissionStore persists and retrieves intake submissions.
type SubmissionStore interface {
	Save(ctx context.Context, rec types.PatentRecord, sourceFile string) (types.Submission, error)
	Get(ctx context.Context, id string) (types.Submission, error)
	List(ctx context.Context, limit int) ([]types.Submission, error)
	Search(ctx context.Context, query string, limit int) ([]types.Submission, error)
}

// Handler holds API route handlers.
type Handler struct {
	fetcher        PatentFetcher
	translator     Translator
	store          SubmissionStore
	maxUploadBytes int64
}

// NewHandler creates a Handler. fetcher, translator, and store may each
// be nil; the corresponding routes then answer 503.
func NewHandler(fetcher PatentFetcher, translator Translator, store SubmissionStore, cfg types.ServerConfig) *Handler {
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	return &Handler{
		fetcher:        fetcher,
		translator:     translator,
		store:          store,
		maxUploadBytes: maxUpload,
	}
}

// UploadDocument handles POST /api/documents (multipart/form-data, field
// "file"). The optional form field "save" persists the extracted record.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read upload"))
		return
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		writeJSON(w, http.StatusBadRequest, errorBody("upload is not a PDF document"))
		return
	}

	rec, err := docparse.Extract(data)
	if err != nil {
		if errors.Is(err, apperr.ErrUnreadable) {
			writeJSON(w, http.StatusUnprocessableEntity, errorBody("document text could not be extracted"))
			return
		}
		slog.Error("document extraction failed",
			slog.String("filename", header.Filename), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	resp := DocumentResponse{Record: rec}

	if r.FormValue("save") == "true" {
		if h.store == nil {
			writeJSON(w, http.StatusServiceUnavailable, errorBody("submission store not configured"))
			return
		}
		sub, err := h.store.Save(r.Context(), rec, filepath.Base(header.Filename))
		if err != nil {
			slog.Error("saving submission failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
			return
		}
		resp.SubmissionID = sub.ID
	}

	writeJSON(w, http.StatusCreated, resp)
}

// GetPatent handles GET /api/patents/{number}. The optional "doc_type"
// query parameter selects biblio, abstract, claims, or description.
func (h *Handler) GetPatent(w http.ResponseWriter, r *http.Request) {
	if h.fetcher == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("office API not configured"))
		return
	}

	number := chi.URLParam(r, "number")
	docType := ops.DocType(r.URL.Query().Get("doc_type"))
	if docType == "" {
		docType = ops.DocTypeBiblio
	}
	if !ops.ValidDocType(string(docType)) {
		writeJSON(w, http.StatusBadRequest, errorBody("unknown doc_type"))
		return
	}

	rec, err := h.fetcher.Fetch(r.Context(), number, docType)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidNumber):
			writeJSON(w, http.StatusBadRequest, errorBody("invalid patent number"))
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("patent not found"))
		case errors.Is(err, apperr.ErrAuth), errors.Is(err, apperr.ErrUpstream):
			slog.Error("office API fetch failed",
				slog.String("number", number), slog.String("error", err.Error()))
			writeJSON(w, http.StatusBadGateway, errorBody("office API unavailable"))
		default:
			slog.Error("patent fetch failed",
				slog.String("number", number), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Translate handles POST /api/translate.
func (h *Handler) Translate(w http.ResponseWriter, r *http.Request) {
	if h.translator == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("translation not configured"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	result := h.translator.Translate(r.Context(), req.Text, req.PatentNumber, req.PreferOfficial)
	writeJSON(w, http.StatusOK, result)
}

// ListSubmissions handles GET /api/submissions. The optional "q" query
// parameter switches to full-text search.
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("submission store not configured"))
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	query := r.URL.Query().Get("q")

	var (
		subs []types.Submission
		err  error
	)
	if query != "" {
		subs, err = h.store.Search(r.Context(), query, limit)
	} else {
		subs, err = h.store.List(r.Context(), limit)
	}
	if err != nil {
		slog.Error("listing submissions failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if subs == nil {
		subs = []types.Submission{}
	}
	writeJSON(w, http.StatusOK, SubmissionListResponse{Submissions: subs, Total: len(subs)})
}

// GetSubmission handles GET /api/submissions/{id}.
func (h *Handler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("submission store not configured"))
		return
	}

	id := chi.URLParam(r, "id")
	sub, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get submission failed",
				slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
