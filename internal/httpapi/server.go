// Package httpapi exposes scoring, task processing and stats over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/muhammadolammi/atsworker/internal/ats"
	"github.com/muhammadolammi/atsworker/internal/database"
	"github.com/muhammadolammi/atsworker/internal/extract"
	"github.com/muhammadolammi/atsworker/internal/workflow"
)

const maxUploadBytes = 10 << 20

// TaskProcessor runs the decision workflow for one task.
type TaskProcessor interface {
	Process(ctx context.Context, req workflow.Request) (workflow.Result, workflow.Decision, error)
}

// StatsSource reports recent scoring activity.
type StatsSource interface {
	ScoringStats(ctx context.Context, threshold int) (database.ScoringStats, error)
}

// Server serves the HTTP API. Tasks and stats are optional; their routes
// answer 503 when nil.
type Server struct {
	engine   *ats.Engine
	tasks    TaskProcessor
	stats    StatsSource
	logger   *zap.Logger
	validate *validator.Validate
	mux      *http.ServeMux
}

func New(engine *ats.Engine, tasks TaskProcessor, stats StatsSource, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		engine:   engine,
		tasks:    tasks,
		stats:    stats,
		logger:   logger,
		validate: validator.New(),
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /score", s.handleScore)
	s.mux.HandleFunc("POST /score/file", s.handleScoreFile)
	s.mux.HandleFunc("POST /process-task", s.handleProcessTask)
	s.mux.HandleFunc("GET /stats", s.handleStats)
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "ats-scoring"})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var in ats.ScoreInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(in); err != nil {
		writeError(w, http.StatusBadRequest, "resume_text is required")
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Score(in))
}

func (s *Server) handleScoreFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	mime, err := extract.MimeFromFilename(header.Filename)
	if err != nil || mime == extract.MimePlain {
		writeError(w, http.StatusBadRequest, "Unsupported file format. Please upload PDF or DOCX.")
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read file")
		return
	}
	text, err := extract.Text(mime, data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not extract text from file. Please ensure it's not scanned/image-based.")
		return
	}

	writeJSON(w, http.StatusOK, s.engine.Score(ats.ScoreInput{
		ResumeText:      text,
		JobDescription:  r.FormValue("job_description"),
		JobRequirements: ParseRequirements(r.FormValue("job_requirements")),
	}))
}

func (s *Server) handleProcessTask(w http.ResponseWriter, r *http.Request) {
	if s.tasks == nil {
		writeError(w, http.StatusServiceUnavailable, "task processing is not configured")
		return
	}
	var req workflow.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, _, err := s.tasks.Process(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, workflow.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, workflow.ErrCandidateNotFound):
		writeError(w, http.StatusNotFound, "Candidate not found")
		return
	case errors.Is(err, workflow.ErrJobNotFound):
		writeError(w, http.StatusNotFound, "Job not found")
		return
	case errors.Is(err, workflow.ErrNoResume), errors.Is(err, extract.ErrEmptyText), errors.Is(err, extract.ErrUnsupportedType):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	default:
		s.logger.Error("task processing failed", zap.String("task_id", req.TaskID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		writeError(w, http.StatusServiceUnavailable, "stats are not configured")
		return
	}
	stats, err := s.stats.ScoringStats(r.Context(), s.engine.Threshold())
	if err != nil {
		s.logger.Error("loading stats failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ParseRequirements accepts a JSON array of strings or, failing that, a
// comma-separated list.
func ParseRequirements(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return list
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
