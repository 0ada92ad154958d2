package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Options configures a [Server].
type Options struct {
	Secret string
	// TokenTTL defaults to seven days.
	TokenTTL time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	Logger     *log.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Server is the stub API.
type Server struct {
	store  *Store
	secret []byte
	ttl    time.Duration
	logger *log.Logger
	now    func() time.Time
	router chi.Router
}

// New creates a server seeded with the default catalog.
func New(opts Options) (*Server, error) {
	if opts.Secret == "" {
		return nil, errors.New("server secret is required")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 7 * 24 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		store:  NewStore(DefaultCatalog(), opts.BcryptCost),
		secret: []byte(opts.Secret),
		ttl:    opts.TokenTTL,
		logger: opts.Logger,
		now:    opts.Now,
	}
	s.router = s.routes()
	return s, nil
}

// Store exposes the server's data for seeding.
func (s *Server) Store() *Store { return s.store }

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Post("/users", s.register)
	r.Post("/login", s.login)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/movies", s.listMovies)
		r.Get("/movies/{title}", s.getMovie)
		r.Get("/directors/{name}", s.getDirector)
		r.Get("/genres/{name}", s.getGenre)

		r.Route("/users/{username}", func(r chi.Router) {
			r.Use(s.requireSelf)
			r.Get("/", s.getUser)
			r.Put("/", s.editUser)
			r.Delete("/", s.deleteUser)
			r.Get("/movies", s.listFavorites)
			r.Put("/movies/{movieID}", s.addFavorite)
			r.Delete("/movies/{movieID}", s.removeFavorite)
		})
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("stub API listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down stub API")
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger logs each request at debug level with its status and duration.
func requestLogger(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
