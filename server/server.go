package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/mailscope/pkg/poller"
	"github.com/umputun/mailscope/pkg/state"
)

//go:generate moq -out mocks/poller.go -pkg mocks -skip-ensure -fmt goimports . Poller
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . FeedGenerator

// Poller interface for the manual trigger endpoint
type Poller interface {
	PollOnce(ctx context.Context) (poller.Result, error)
}

// Store interface for state reads
type Store interface {
	Load() (state.State, error)
}

// FeedGenerator renders the state into a syndication document
type FeedGenerator interface {
	Generate(st state.State) (string, error)
}

// Config holds server configuration
type Config struct {
	Listen  string
	Timeout time.Duration
	Version string
	Debug   bool
}

// Server represents HTTP server instance
type Server struct {
	config    Config
	store     Store
	generator FeedGenerator
	poller    Poller

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// New initializes a new server instance
func New(cfg Config, store Store, generator FeedGenerator, p Poller) *Server {
	s := &Server{
		config:    cfg,
		store:     store,
		generator: generator,
		poller:    p,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	log.Printf("[INFO] starting server on %s", s.config.Listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         s.config.Listen,
		Handler:      s.router,
		ReadTimeout:  s.config.Timeout,
		WriteTimeout: s.config.Timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("mailscope", "umputun", s.config.Version))
	s.router.Use(rest.Ping)

	if s.config.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /rss", s.rssHandler)

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /poll", s.triggerHandler)
	})
}

// rssHandler serves the rendered feed document
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.Load()
	if err != nil {
		log.Printf("[ERROR] failed to load state for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	rss, err := s.generator.Generate(st)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// statusHandler returns item count and the current watermark
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.Load()
	if err != nil {
		log.Printf("[ERROR] failed to load state for status: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"version":     s.config.Version,
		"items_count": len(st.Items),
		"last_uid":    st.LastUID,
		"time":        time.Now().UTC(),
	})
}

// triggerHandler invokes a poll cycle synchronously and reports its outcome.
// A failed cycle is a structured error response, never a crash.
func (s *Server) triggerHandler(w http.ResponseWriter, r *http.Request) {
	res, err := s.poller.PollOnce(r.Context())
	if err != nil {
		log.Printf("[WARN] manual poll failed: %v", err)
		renderJSON(w, r, http.StatusInternalServerError, map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}

	st, err := s.store.Load()
	if err != nil {
		log.Printf("[ERROR] failed to load state after poll: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":      "success",
		"result":      res,
		"new_email":   res.Status == poller.StatusAccepted,
		"items_count": len(st.Items),
		"last_uid":    st.LastUID,
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
