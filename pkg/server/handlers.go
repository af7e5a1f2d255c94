package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/inspectreport/pkg/archive"
	"github.com/matzehuels/inspectreport/pkg/buildinfo"
	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/pipeline"
	"github.com/matzehuels/inspectreport/pkg/report/sink"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// Response headers describing a generated report.
const (
	HeaderReportID  = "X-Report-ID"
	HeaderPages     = "X-Report-Pages"
	HeaderDegraded  = "X-Report-Degraded"
	HeaderCache     = "X-Cache"
	HeaderArchiveID = "X-Archive-ID"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Get().Version,
	})
}

// readRecord decodes the request body. Photos must be inline data URLs;
// path references cannot be resolved and render as placeholders.
func (s *Server) readRecord(w http.ResponseWriter, r *http.Request) (*inspection.Record, bool) {
	body := http.MaxBytesReader(w, r.Body, int64(s.cfg.MaxBodyMB)<<20)
	rec, warnings, err := pipeline.ParseReader(r.Context(), body, nil)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "request body exceeds %d MB", s.cfg.MaxBodyMB))
			return nil, false
		}
		s.writeError(w, r, err)
		return nil, false
	}
	for _, warn := range warnings {
		s.logger.Warn("photo not loaded", "err", warn, "request_id", RequestIDFrom(r.Context()))
	}
	return rec, true
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := sink.PDF
	if v := q.Get("format"); v != "" {
		f, err := sink.ParseFormat(v)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		format = f
	}
	opts := pipeline.Options{
		Formats: []sink.Format{format},
		Theme:   s.theme,
		Refresh: q.Get("refresh") == "true",
		Logger:  s.logger.With("request_id", RequestIDFrom(r.Context())),
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "invalid scale %q", v))
			return
		}
		opts.Scale = scale
	}

	rec, ok := s.readRecord(w, r)
	if !ok {
		return
	}

	if err := s.sem.Acquire(r.Context(), 1); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeTimeout, err, "waiting for a generation slot"))
		return
	}
	res, err := s.runner.Execute(r.Context(), rec, opts)
	s.sem.Release(1)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data := res.Artifacts[format]

	if s.archive != nil && q.Get("archive") == "true" {
		e := archive.NewEntry(res.Meta, rec.Vehicle, format, s.now())
		if err := s.archive.Put(r.Context(), e, data); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set(HeaderArchiveID, e.ID)
	}

	h := w.Header()
	h.Set("Content-Type", format.ContentType())
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Meta.ArtifactName(format)))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	h.Set(HeaderReportID, res.Meta.ReportID)
	h.Set(HeaderPages, strconv.Itoa(res.Meta.Pages))
	h.Set(HeaderDegraded, strconv.Itoa(len(res.Meta.Degraded)))
	if res.CacheInfo.RenderHit {
		h.Set(HeaderCache, "hit")
	} else {
		h.Set(HeaderCache, "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type validateResponse struct {
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems"`
	Warnings []string `json:"warnings,omitempty"`
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, int64(s.cfg.MaxBodyMB)<<20)
	rec, warnings, err := pipeline.ParseReader(r.Context(), body, nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := validateResponse{Problems: rec.Problems()}
	if resp.Problems == nil {
		resp.Problems = []string{}
	}
	resp.Valid = len(resp.Problems) == 0
	for _, warn := range warnings {
		resp.Warnings = append(resp.Warnings, warn.Error())
	}
	for _, sec := range rec.Sections {
		for i, p := range sec.Photos {
			if p.Err() != nil {
				resp.Warnings = append(resp.Warnings, fmt.Sprintf("section %s photo %d: %v", sec.ID, i+1, p.Err()))
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) score(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.readRecord(w, r)
	if !ok {
		return
	}
	if err := rec.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	sum, hit, err := s.runner.Score(r.Context(), rec, nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if hit {
		w.Header().Set(HeaderCache, "hit")
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) listArchive(w http.ResponseWriter, r *http.Request) {
	if !s.archiveEnabled(w, r) {
		return
	}
	q := r.URL.Query()
	query := archive.Query{VIN: strings.TrimSpace(q.Get("vin")), ReportID: q.Get("report_id")}
	if query.ReportID != "" {
		if err := errs.ValidateReportID(query.ReportID); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "limit must be 1-500"))
			return
		}
		query.Limit = n
	}
	entries, err := s.archive.List(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []archive.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) getArchive(w http.ResponseWriter, r *http.Request) {
	if !s.archiveEnabled(w, r) {
		return
	}
	e, data, err := s.archive.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	h := w.Header()
	h.Set("Content-Type", sink.Format(e.Format).ContentType())
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", e.FileName))
	h.Set(HeaderReportID, e.ReportID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) deleteArchive(w http.ResponseWriter, r *http.Request) {
	if !s.archiveEnabled(w, r) {
		return
	}
	if err := s.archive.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) archiveEnabled(w http.ResponseWriter, r *http.Request) bool {
	if s.archive == nil {
		s.writeError(w, r, errs.New(errs.ErrCodeUnsupported, "archive is disabled"))
		return false
	}
	return true
}
