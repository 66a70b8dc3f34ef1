package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Surya0265/CareerNav/internal/db"
	"github.com/Surya0265/CareerNav/internal/extraction"
	"github.com/Surya0265/CareerNav/internal/ingestion"
	"github.com/Surya0265/CareerNav/internal/logger"
	"github.com/Surya0265/CareerNav/internal/skills"
	"github.com/Surya0265/CareerNav/internal/types"
)

// extractionOutcome is the result of runExtraction.
type extractionOutcome struct {
	Result extraction.Result
	ID     string
	Cached bool
}

// runExtraction reuses a result from the cache or the store when one exists
// for the same content and extractor settings, extracts otherwise, and
// persists new results. Cache and store failures are logged and otherwise
// ignored.
func (s *Server) runExtraction(ctx context.Context, source, contentHash, cleanText, rawText string) extractionOutcome {
	log := logger.WithFields(s.log, logger.DocumentFields(source, contentHash)...)
	settings := s.extractor.Fingerprint()

	var out extractionOutcome
	if s.cache != nil {
		cctx, cancel := context.WithTimeout(ctx, s.callTimeout)
		res, found, err := s.cache.Get(cctx, settings, contentHash)
		cancel()
		switch {
		case err != nil:
			log.Warn("cache lookup failed", zap.Error(err))
		case found:
			out.Result, out.Cached = res, true
		}
	}

	if s.store != nil {
		sctx, cancel := context.WithTimeout(ctx, s.callTimeout)
		rec, err := s.store.GetLatestExtractionByHash(sctx, contentHash, settings)
		cancel()
		switch {
		case err != nil:
			log.Warn("stored extraction lookup failed", zap.Error(err))
		case rec != nil:
			out.ID = rec.ID.String()
			if !out.Cached {
				out.Result, out.Cached = rec.Result, true
				s.cacheResult(ctx, log, settings, contentHash, out.Result)
			}
		}
	}

	if !out.Cached {
		out.Result = s.extractor.ExtractBasicInfo(cleanText, rawText)
		s.cacheResult(ctx, log, settings, contentHash, out.Result)
	}

	if s.store != nil && out.ID == "" {
		rec := db.NewExtractionRecord(source, contentHash, settings, out.Result)
		sctx, cancel := context.WithTimeout(ctx, s.callTimeout)
		if err := s.store.SaveExtraction(sctx, rec); err != nil {
			log.Warn("failed to persist extraction", zap.Error(err))
		} else {
			out.ID = rec.ID.String()
		}
		cancel()
	}

	log.Debug("extraction finished",
		zap.Bool("cached", out.Cached),
		zap.Int("skills", len(out.Result.Skills)),
		zap.String(logger.FieldExtraction, out.ID),
	)
	return out
}

func (s *Server) cacheResult(ctx context.Context, log *zap.Logger, settings, contentHash string, res extraction.Result) {
	if s.cache == nil {
		return
	}
	cctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	if err := s.cache.Set(cctx, settings, contentHash, res); err != nil {
		log.Warn("cache store failed", zap.Error(err))
	}
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	return nil
}

// handleExtract extracts from text supplied in a JSON body.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, invalidRequest(err))
		return
	}

	raw := req.RawText
	if strings.TrimSpace(raw) == "" {
		raw = req.Text
	}
	raw = ingestion.NormalizeLines(raw)
	clean := ingestion.Clean(req.Text)

	hash := ingestion.ContentHash(raw)
	if req.RawText != "" && req.RawText != req.Text {
		hash = ingestion.ContentHash(req.Text + "\x00" + req.RawText)
	}

	out := s.runExtraction(r.Context(), req.SourceName, hash, clean, raw)
	s.jsonResponse(w, http.StatusOK, types.ExtractionResponse{
		ID:          out.ID,
		SourceName:  req.SourceName,
		ContentHash: hash,
		Cached:      out.Cached,
		Result:      out.Result,
	})
}

// handleExtractSkills extracts from an uploaded resume and returns the skill view.
func (s *Server) handleExtractSkills(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := s.runExtraction(r.Context(), doc.Name, doc.Metadata.Hash, doc.CleanText, doc.RawText)
	s.jsonResponse(w, http.StatusOK, types.NewSkillsResponse(out.Result))
}

// handleExtractResume extracts from an uploaded resume and returns the full view.
func (s *Server) handleExtractResume(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := s.runExtraction(r.Context(), doc.Name, doc.Metadata.Hash, doc.CleanText, doc.RawText)
	s.jsonResponse(w, http.StatusOK, types.NewResumeResponse(doc.Name, doc.Metadata.FileType, doc.CleanText, out.Result))
}

// handleTaxonomy lists the skill catalog, optionally one category.
func (s *Server) handleTaxonomy(w http.ResponseWriter, r *http.Request) {
	tax := s.extractor.Taxonomy()

	if name := r.URL.Query().Get("category"); name != "" {
		c, ok := tax.Category(name)
		if !ok {
			s.writeError(w, &ErrNotFound{Resource: "category", ID: name})
			return
		}
		s.jsonResponse(w, http.StatusOK, types.NewCategoryResponse(c))
		return
	}

	s.jsonResponse(w, http.StatusOK, types.NewTaxonomyResponse(tax))
}

// handleNormalizeSkills maps free-form skill names to canonical ones.
func (s *Server) handleNormalizeSkills(w http.ResponseWriter, r *http.Request) {
	var req types.NormalizeSkillsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, invalidRequest(err))
		return
	}

	tax := s.extractor.Taxonomy()
	normalized := skills.Normalize(tax, req.Skills)

	known := make([]string, 0, len(normalized))
	for _, n := range normalized {
		if n.Known {
			known = append(known, n.Name)
		}
	}

	s.jsonResponse(w, http.StatusOK, types.NormalizeSkillsResponse{
		Skills:     normalized,
		Categories: skills.Summarize(tax, known),
	})
}

// handleGetExtraction returns a stored extraction record.
func (s *Server) handleGetExtraction(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, &ErrUnavailable{Feature: "extraction storage"})
		return
	}

	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "id", Message: "invalid extraction ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.callTimeout)
	defer cancel()

	rec, err := s.store.GetExtraction(ctx, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if rec == nil {
		s.writeError(w, &ErrNotFound{Resource: "extraction", ID: idStr})
		return
	}

	s.jsonResponse(w, http.StatusOK, recordResponse(rec))
}

// handleListExtractions returns the most recent stored extractions.
func (s *Server) handleListExtractions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, &ErrUnavailable{Feature: "extraction storage"})
		return
	}

	limit := db.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > db.MaxListLimit {
			s.writeError(w, &ErrValidation{
				Field:   "limit",
				Message: fmt.Sprintf("limit must be an integer between 1 and %d", db.MaxListLimit),
			})
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.callTimeout)
	defer cancel()

	recs, err := s.store.ListExtractions(ctx, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := types.ExtractionListResponse{
		Extractions: make([]types.ExtractionRecordResponse, 0, len(recs)),
		Count:       len(recs),
	}
	for i := range recs {
		resp.Extractions = append(resp.Extractions, recordResponse(&recs[i]))
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func recordResponse(rec *db.ExtractionRecord) types.ExtractionRecordResponse {
	return types.ExtractionRecordResponse{
		ID:          rec.ID.String(),
		SourceName:  rec.SourceName,
		ContentHash: rec.ContentHash,
		Settings:    rec.Settings,
		Result:      rec.Result,
		CreatedAt:   rec.CreatedAt,
	}
}
