package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/myflix/internal/models"
	"golang.org/x/sync/errgroup"
)

// CatalogView is the catalog screen's state: the movies and the user's favorites.
type CatalogView struct {
	Username string

	mu        sync.RWMutex
	movies    []models.Movie
	favorites models.FavoriteSet
	issued    uint64
	applied   uint64
}

// NewCatalogView builds a view from a fetched catalog and user.
func NewCatalogView(movies []models.Movie, user models.User) *CatalogView {
	return &CatalogView{
		Username:  user.Username,
		movies:    movies,
		favorites: user.Favorites(),
	}
}

// Movies returns a copy of the catalog.
func (v *CatalogView) Movies() []models.Movie {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]models.Movie(nil), v.movies...)
}

// Favorites returns a copy of the favorite set.
func (v *CatalogView) Favorites() models.FavoriteSet {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return models.NewFavoriteSet(v.favorites.IDs()...)
}

func (v *CatalogView) IsFavorite(movieID string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.favorites.Has(movieID)
}

// FavoriteMovies returns the favorites resolved against the catalog.
func (v *CatalogView) FavoriteMovies() []models.Movie {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.favorites.Resolve(v.movies)
}

// Find returns the movie with the given id or title.
func (v *CatalogView) Find(key string) (models.Movie, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return models.FindMovie(v.movies, key)
}

// begin reserves a generation for a resync about to be issued.
func (v *CatalogView) begin() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.issued++
	return v.issued
}

// apply replaces the favorites if gen is newer than the last applied resync.
func (v *CatalogView) apply(gen uint64, ids []string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen <= v.applied {
		return false
	}
	v.applied = gen
	v.favorites = models.NewFavoriteSet(ids...)
	return true
}

// Catalog fetches the movies and the current user concurrently.
//
// Without a stored username the movies request is still sent and its error returned, so a
// logged-out catalog load is answered by the server.
func (c *Controller) Catalog(ctx context.Context) (*CatalogView, error) {
	s, err := c.sessions.Require(ctx)
	if err != nil {
		if _, apiErr := c.api.Movies(ctx); apiErr != nil {
			return nil, apiErr
		}
		return nil, err
	}

	var (
		movies []models.Movie
		user   *models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movies, err = c.api.Movies(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		user, err = c.api.User(gctx, s.Username)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.cacheMovies(ctx, movies)
	return NewCatalogView(movies, *user), nil
}

// ToggleResult describes a completed favorite toggle.
type ToggleResult struct {
	MovieID   string
	Title     string
	Added     bool
	Favorites int
}

// Message returns the success notification for the toggle.
func (r ToggleResult) Message() string {
	if r.Added {
		return AddedNotice(r.Title)
	}
	return RemovedNotice(r.Title)
}

// ToggleFavorite adds movieID when it is not in the view's favorites and removes it otherwise,
// then re-fetches the user and replaces the view's favorites with the server's list.
//
// Nothing is changed locally before the server answers. When the mutation fails the view is untouched.
func (c *Controller) ToggleFavorite(ctx context.Context, view *CatalogView, movieID string) (ToggleResult, error) {
	if err := requireMovieID(movieID); err != nil {
		return ToggleResult{}, err
	}

	s, err := c.sessions.Require(ctx)
	if err != nil {
		return ToggleResult{}, err
	}

	result := ToggleResult{MovieID: movieID, Title: movieID, Added: !view.IsFavorite(movieID)}
	if m, ok := view.Find(movieID); ok {
		result.Title = m.Title
	}

	if result.Added {
		_, err = c.api.AddFavorite(ctx, s.Username, movieID)
	} else {
		_, err = c.api.RemoveFavorite(ctx, s.Username, movieID)
	}
	if err != nil {
		return ToggleResult{}, err
	}

	gen := view.begin()
	user, err := c.api.User(ctx, s.Username)
	if err != nil {
		return result, fmt.Errorf("favorite updated but resync failed: %w", err)
	}

	if !view.apply(gen, user.FavoriteMovies) {
		c.logger.Debug("dropped stale favorites resync", "generation", gen)
	}
	result.Favorites = view.Favorites().Len()
	return result, nil
}

// AddFavorite adds movieID to the current user's favorites and returns the updated user.
func (c *Controller) AddFavorite(ctx context.Context, movieID string) (*models.User, error) {
	return c.changeFavorite(ctx, movieID, true)
}

// RemoveFavorite removes movieID from the current user's favorites and returns the updated user.
func (c *Controller) RemoveFavorite(ctx context.Context, movieID string) (*models.User, error) {
	return c.changeFavorite(ctx, movieID, false)
}

func (c *Controller) changeFavorite(ctx context.Context, movieID string, add bool) (*models.User, error) {
	if err := requireMovieID(movieID); err != nil {
		return nil, err
	}

	s, err := c.sessions.Require(ctx)
	if err != nil {
		return nil, err
	}

	var user *models.User
	if add {
		user, err = c.api.AddFavorite(ctx, s.Username, movieID)
	} else {
		user, err = c.api.RemoveFavorite(ctx, s.Username, movieID)
	}
	if err != nil {
		return nil, err
	}

	// An empty mutation response carries no user; fetch it instead.
	if user == nil || user.ID == "" {
		return c.api.User(ctx, s.Username)
	}
	return user, nil
}

// Favorites returns the current user's favorite movies resolved against the catalog.
func (c *Controller) Favorites(ctx context.Context) ([]models.Movie, error) {
	view, err := c.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return view.FavoriteMovies(), nil
}
