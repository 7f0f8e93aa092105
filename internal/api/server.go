package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"meshmind/internal/artifacts"
	"meshmind/internal/curriculum"
	"meshmind/internal/logger"
	"meshmind/internal/metrics"
	"meshmind/internal/models"
	"meshmind/internal/providers"
	"meshmind/internal/worksheet"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	serviceName    = "MeshMind API"
	serviceVersion = "1.0.0"
	maxBodyBytes   = 1 << 20
)

// Generator is satisfied by worksheet.Service (inline) and workflows.Dispatcher
// (Temporal).
type Generator interface {
	Generate(ctx context.Context, req models.GenerationRequest) (models.Worksheet, error)
}

type Deps struct {
	Generator  Generator
	Artifacts  *artifacts.Store
	Curriculum *curriculum.Store
	Providers  *providers.Manager
	Metrics    *metrics.Metrics
	Log        *logger.Logger
	Execution  string
	Now        func() time.Time
}

type Server struct {
	generator  Generator
	artifacts  *artifacts.Store
	curriculum *curriculum.Store
	providers  *providers.Manager
	metrics    *metrics.Metrics
	log        *logger.Logger
	execution  string
	now        func() time.Time
}

func NewServer(d Deps) *Server {
	s := &Server{
		generator:  d.Generator,
		artifacts:  d.Artifacts,
		curriculum: d.Curriculum,
		providers:  d.Providers,
		metrics:    d.Metrics,
		log:        d.Log,
		execution:  d.Execution,
		now:        d.Now,
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLog)
	r.Use(withCORS)

	r.Get("/", s.handleRoot)
	r.Get("/api/health", s.handleHealth)
	r.Post("/api/generate-pdf", s.handleGeneratePDF)

	r.Get("/api/pdfs", s.handleListPDFs)
	r.Get("/api/pdfs/{id}", s.handleGetPDF)
	r.Get("/api/pdfs/{id}/base64", s.handleGetPDFBase64)
	r.Delete("/api/pdfs/{id}", s.handleDeletePDF)

	r.Get("/api/curriculum/{subject}/{grade}", s.handleCurriculum)

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusNotFound, fmt.Errorf("route %s not found", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("%s not allowed", r.Method))
	})
	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": serviceName,
		"status":  "healthy",
		"version": serviceVersion,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	refs := []string{}
	configured := false
	if s.providers != nil {
		for _, ref := range s.providers.LLMProviderRefs() {
			refs = append(refs, ref.Name)
		}
		configured = s.providers.HasRealProvider()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":                  "healthy",
		"llm_provider_configured": configured,
		"llm_providers":           refs,
		"execution":               s.execution,
		"pdf_storage_dir":         s.artifacts.Dir(),
		"timestamp":               s.now().Format(time.RFC3339),
	})
}

type generateResponse struct {
	Success   bool   `json:"success"`
	PDFID     string `json:"pdf_id"`
	Filename  string `json:"filename"`
	Title     string `json:"title"`
	Subject   string `json:"subject"`
	Grade     string `json:"grade"`
	Language  string `json:"language"`
	Pages     int    `json:"pages"`
	CreatedAt string `json:"created_at"`
	PDFBase64 string `json:"pdf_base64,omitempty"`
	Message   string `json:"message"`
}

func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	req := models.GenerationRequest{IncludeAnswers: true}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	ws, err := s.generator.Generate(r.Context(), req)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{
		Success:   true,
		PDFID:     ws.Artifact.ID,
		Filename:  ws.Artifact.Filename,
		Title:     ws.Artifact.Title,
		Subject:   ws.Artifact.Subject,
		Grade:     ws.Artifact.Grade,
		Language:  languageOr(req.Language),
		Pages:     ws.Artifact.Pages,
		CreatedAt: ws.Artifact.CreatedAt.Format(time.RFC3339),
		PDFBase64: base64.StdEncoding.EncodeToString(ws.PDF),
		Message:   "PDF generated successfully",
	})
}

func (s *Server) handleListPDFs(w http.ResponseWriter, r *http.Request) {
	list, err := s.artifacts.List()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pdfs": list, "count": len(list)})
}

func (s *Server) handleGetPDF(w http.ResponseWriter, r *http.Request) {
	rec, data, err := s.artifacts.Read(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleGetPDFBase64(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, data, err := s.artifacts.Read(id)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pdf_id":          id,
		"filename":        rec.Filename,
		"pdf_base64":      base64.StdEncoding.EncodeToString(data),
		"file_size_bytes": len(data),
		"pages":           rec.Pages,
	})
}

func (s *Server) handleDeletePDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	name, err := s.artifacts.Delete(id)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	s.log.Info("pdf deleted", "pdf_id", id, "filename", name)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": fmt.Sprintf("PDF %s deleted", id)})
}

func (s *Server) handleCurriculum(w http.ResponseWriter, r *http.Request) {
	subject := chi.URLParam(r, "subject")
	grade := chi.URLParam(r, "grade")
	snap, err := s.curriculum.Snapshot()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	text := snap.Assemble("", strings.ToLower(subject), grade)
	if text == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("curriculum not found for %s grade %s", subject, grade))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"subject":          subject,
		"grade":            grade,
		"normalized_grade": curriculum.NormalizeGrade(grade),
		"available_grades": snap.Grades(subject),
		"context":          text,
	})
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := s.now()
		next.ServeHTTP(ww, r)
		s.log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", s.now().Sub(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, worksheet.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, artifacts.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, worksheet.ErrGenerationFailed):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func languageOr(lang string) string {
	if strings.TrimSpace(lang) == "" {
		return "English"
	}
	return lang
}
