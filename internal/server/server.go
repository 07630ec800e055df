// Package server exposes the grading harness over HTTP. Grading runs are
// asynchronous jobs: a POST starts one, and its status and result are
// polled by ID.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/copyleftdev/GAUNTLET/internal/config"
	"github.com/copyleftdev/GAUNTLET/internal/harness"
	"github.com/copyleftdev/GAUNTLET/internal/problems"
)

// Job tracks one asynchronous grading run. Access goes through the
// server's mutex.
type Job struct {
	ID       string              `json:"id"`
	Problem  string              `json:"problem"`
	Status   string              `json:"status"` // "pending", "running", "completed", "failed"
	Started  time.Time           `json:"started"`
	Finished *time.Time          `json:"finished,omitempty"`
	Result   *harness.Comparison `json:"result,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// Server implements the HTTP grading API.
type Server struct {
	cfg       *config.Config
	log       *zap.Logger
	grader    *harness.Grader
	candidate harness.Optimizer

	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewServer creates a server grading candidate with grader.
func NewServer(cfg *config.Config, log *zap.Logger, grader *harness.Grader, candidate harness.Optimizer) *Server {
	return &Server{
		cfg:       cfg,
		log:       log,
		grader:    grader,
		candidate: candidate,
		jobs:      make(map[string]*Job),
	}
}

// RegisterRoutes mounts the grading API on r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/problems", s.handleProblems)
		r.Post("/grade", s.handleGrade)
		r.Get("/grade/{id}", s.handleJob)
	})
}

// handleProblems lists the registered problems with their budgets.
func (s *Server) handleProblems(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Name   string `json:"name"`
		Dim    int    `json:"dim"`
		Budget int    `json:"budget"`
	}
	var out []entry
	for _, name := range problems.Names() {
		p, _ := problems.Lookup(name)
		out = append(out, entry{Name: p.Name, Dim: p.Dim, Budget: p.Budget})
	}
	s.respondJSON(w, http.StatusOK, out)
}

type gradeRequest struct {
	Problem string `json:"problem"`
	Trials  int    `json:"trials,omitempty"`
	Seed    int64  `json:"seed,omitempty"`
}

// handleGrade starts an asynchronous grading job.
func (s *Server) handleGrade(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, ok := problems.Lookup(req.Problem)
	if !ok {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("unknown problem %q", req.Problem))
		return
	}

	trials := req.Trials
	if trials <= 0 {
		trials = s.cfg.Grading.Trials
	}
	seed := req.Seed
	if seed == 0 {
		seed = s.cfg.Grading.BaseSeed
	}

	job := &Job{
		ID:      fmt.Sprintf("grade_%d", time.Now().UnixNano()),
		Problem: p.Name,
		Status:  "pending",
		Started: time.Now(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	go s.runJob(job, p, trials, seed)

	// runJob owns job.Status from here on; report the literal initial
	// state rather than re-reading the field it is about to write.
	s.respondJSON(w, http.StatusAccepted, map[string]string{
		"id":     job.ID,
		"status": "pending",
	})
}

func (s *Server) runJob(job *Job, p *harness.Problem, trials int, seed int64) {
	s.mu.Lock()
	job.Status = "running"
	s.mu.Unlock()

	s.log.Info("grading job started",
		zap.String("id", job.ID),
		zap.String("problem", p.Name),
		zap.Int("trials", trials),
		zap.Int64("seed", seed),
	)

	cmp, err := s.grader.Compare(p, s.candidate, trials, seed)
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	job.Finished = &now
	if err != nil {
		job.Status = "failed"
		job.Error = err.Error()
		s.log.Error("grading job failed",
			zap.String("id", job.ID),
			zap.String("problem", p.Name),
			zap.Error(err),
		)
		return
	}
	job.Status = "completed"
	job.Result = cmp
	s.log.Info("grading job completed",
		zap.String("id", job.ID),
		zap.String("problem", p.Name),
		zap.Float64("win_fraction", cmp.WinFraction),
		zap.Bool("pass", cmp.Pass),
	)
}

// handleJob reports the status and, when finished, the result of a job.
func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("unknown job %q", id))
		return
	}
	s.respondJSON(w, http.StatusOK, job)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}
