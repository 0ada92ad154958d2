package tasks

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/services"
	"github.com/desertthunder/myflix/internal/session"
	"github.com/desertthunder/myflix/internal/shared"
)

// MovieCacher stores catalog snapshots. Failures are logged and never interrupt the caller.
type MovieCacher interface {
	ReplaceAll(ctx context.Context, movies []models.Movie) error
}

// Controller coordinates the façade and the session.
type Controller struct {
	api      services.MovieAPI
	sessions *session.Manager
	logger   *log.Logger
	cache    MovieCacher
}

// Option configures a [Controller].
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithMovieCache stores every fetched catalog in cache.
func WithMovieCache(cache MovieCacher) Option {
	return func(c *Controller) { c.cache = cache }
}

// NewController creates a controller over api and sessions.
func NewController(api services.MovieAPI, sessions *session.Manager, opts ...Option) *Controller {
	c := &Controller{
		api:      api,
		sessions: sessions,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the current session.
func (c *Controller) Session(ctx context.Context) (session.Session, error) {
	return c.sessions.Load(ctx)
}

// Login authenticates and persists the session. On failure the store is left unchanged.
func (c *Controller) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	result, err := c.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	username := result.User.Username
	if err := c.sessions.Save(ctx, session.Session{Username: username, Token: result.Token}); err != nil {
		return nil, err
	}

	c.logger.Info("logged in", "user", username)
	return result, nil
}

// Register creates an account without logging in.
func (c *Controller) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	user, err := c.api.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	c.logger.Info("registered", "user", user.Username)
	return user, nil
}

// RegisterAndLogin creates an account and then logs in with the same credentials.
func (c *Controller) RegisterAndLogin(ctx context.Context, reg models.Registration) (*models.LoginResult, error) {
	if _, err := c.Register(ctx, reg); err != nil {
		return nil, err
	}
	return c.Login(ctx, reg.Credentials())
}

// Logout clears every session key.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.sessions.Clear(ctx); err != nil {
		return err
	}
	c.logger.Info("logged out")
	return nil
}

// DeleteAccount deletes the current user and then clears the session. A failed delete keeps the session.
func (c *Controller) DeleteAccount(ctx context.Context) error {
	s, err := c.sessions.Require(ctx)
	if err != nil {
		return err
	}

	if err := c.api.DeleteUser(ctx, s.Username); err != nil {
		return err
	}

	if err := c.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("account deleted but %w", err)
	}
	c.logger.Info("account deleted", "user", s.Username)
	return nil
}

// Movie fetches one movie by title.
func (c *Controller) Movie(ctx context.Context, title string) (*models.Movie, error) {
	return c.api.Movie(ctx, title)
}

// Director fetches a director by name.
func (c *Controller) Director(ctx context.Context, name string) (*models.Director, error) {
	return c.api.Director(ctx, name)
}

// Genre fetches a genre by name.
func (c *Controller) Genre(ctx context.Context, name string) (*models.Genre, error) {
	return c.api.Genre(ctx, name)
}

// Movies fetches the catalog and refreshes the cache when one is configured.
func (c *Controller) Movies(ctx context.Context) ([]models.Movie, error) {
	movies, err := c.api.Movies(ctx)
	if err != nil {
		return nil, err
	}
	c.cacheMovies(ctx, movies)
	return movies, nil
}

func (c *Controller) cacheMovies(ctx context.Context, movies []models.Movie) {
	if c.cache == nil {
		return
	}
	if err := c.cache.ReplaceAll(ctx, movies); err != nil {
		c.logger.Warn("failed to cache catalog", "error", err)
	}
}

// requireMovieID rejects empty ids before any request is made.
func requireMovieID(movieID string) error {
	if strings.TrimSpace(movieID) == "" {
		return fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}
	return nil
}
