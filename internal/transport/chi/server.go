package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/drifthq/drift/internal/domain"
	healthuc "github.com/drifthq/drift/internal/usecase/health"
	postsuc "github.com/drifthq/drift/internal/usecase/posts"
	usersuc "github.com/drifthq/drift/internal/usecase/users"

	"github.com/drifthq/drift/internal/domain/page"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Options carries the request-parsing settings the server needs: query
// parameter names and pagination bounds.
type Options struct {
	SearchParam     string
	OrderingParam   string
	DefaultPageSize int
	MaxPageSize     int
}

// Server is the HTTP API server.
type Server struct {
	users         *usersuc.Service
	posts         *postsuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	opts          Options
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	users *usersuc.Service,
	posts *postsuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
	opts Options,
) *Server {
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.OrderingParam == "" {
		opts.OrderingParam = "sort"
	}

	s := &Server{
		users:  users,
		posts:  posts,
		health: health,
		logger: logger,
		opts:   opts,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "not_found"),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, "already_exists"),
	}
	return s
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/users", s.listUsers)
		r.Post("/users", s.createUser)
		r.Get("/users/{id}", s.getUser)
		r.Get("/posts", s.listPosts)
		r.Get("/posts/{id}", s.getPost)
	})
	r.Get("/health", s.healthCheck)
	r.Get("/metrics", s.metricsHandler)
}

type userResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Alias    string    `json:"alias"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

type postResponse struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Publisher            string     `json:"publisher"`
	Published            *time.Time `json:"published"`
	PublisherEstablished *time.Time `json:"publisher_established"`
	Created              time.Time  `json:"created"`
	Modified             time.Time  `json:"modified"`
}

type createUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Alias    string `json:"alias"`
}

// listUsers handles GET /api/v1/users.
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	phrase := r.URL.Query().Get(s.opts.SearchParam)
	tokens := parseSortTokens(r, s.opts.OrderingParam)
	pg := parsePage(r, s.opts.DefaultPageSize, s.opts.MaxPageSize)

	items, total, err := s.users.List(r.Context(), phrase, tokens, pg)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results := make([]userResponse, len(items))
	for i, u := range items {
		results[i] = userToResponse(u)
	}

	writeJSON(w, http.StatusOK, page.NewEnvelope(r.URL, pg, total, results))
}

// createUser handles POST /api/v1/users.
func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	u, err := s.users.Create(r.Context(), req.Name, req.Username, req.Alias)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, userToResponse(u))
}

// getUser handles GET /api/v1/users/{id}.
func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(u))
}

// listPosts handles GET /api/v1/posts.
func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	phrase := r.URL.Query().Get(s.opts.SearchParam)
	tokens := parseSortTokens(r, s.opts.OrderingParam)
	pg := parsePage(r, s.opts.DefaultPageSize, s.opts.MaxPageSize)

	items, total, err := s.posts.List(r.Context(), phrase, tokens, pg)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results := make([]postResponse, len(items))
	for i, p := range items {
		results[i] = postToResponse(p)
	}

	writeJSON(w, http.StatusOK, page.NewEnvelope(r.URL, pg, total, results))
}

// getPost handles GET /api/v1/posts/{id}.
func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	p, err := s.posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, postToResponse(p))
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// metricsHandler handles GET /metrics.
func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func userToResponse(u domain.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Alias:    u.Alias,
		Created:  u.Created,
		Modified: u.Modified,
	}
}

func postToResponse(p domain.Post) postResponse {
	return postResponse{
		ID:                   p.ID,
		Title:                p.Title,
		Publisher:            p.Publisher,
		Published:            p.Published,
		PublisherEstablished: p.PublisherEstablished,
		Created:              p.Created,
		Modified:             p.Modified,
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler handles ValidationError with the field and per-field code.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:    verr.Code,
		Message: verr.Message,
		Field:   verr.Field,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
