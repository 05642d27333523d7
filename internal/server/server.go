// Package server implements the lumina HTTP API: an auth gate
// (signup/login issuing JWT access tokens) in front of per-account
// task CRUD.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"lumina/internal/server/store"
)

// Server holds the handler dependencies.
type Server struct {
	cfg   Config
	store *store.Store
}

// New creates a Server backed by the given store.
func New(cfg Config, st *store.Store) *Server {
	return &Server{cfg: cfg, store: st}
}

// Router builds the full HTTP handler, including CORS and request
// logging.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
	})

	r.Route("/todos", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/", s.handleCreateTodo)
		r.Get("/", s.handleListTodos)
		r.Get("/{id}", s.handleGetTodo)
		r.Put("/{id}", s.handleUpdateTodo)
		r.Delete("/{id}", s.handleDeleteTodo)
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})
	return c.Handler(r)
}
