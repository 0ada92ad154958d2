package tasks

import (
	"context"

	"github.com/desertthunder/myflix/internal/models"
	"golang.org/x/sync/errgroup"
)

// ProfileView is the profile screen's state.
type ProfileView struct {
	User      models.User
	Favorites []models.Movie
}

// Profile fetches the current user and resolves their favorites against the catalog.
func (c *Controller) Profile(ctx context.Context) (*ProfileView, error) {
	s, err := c.sessions.Require(ctx)
	if err != nil {
		return nil, err
	}
	return c.profile(ctx, s.Username)
}

func (c *Controller) profile(ctx context.Context, username string) (*ProfileView, error) {
	var (
		user   *models.User
		movies []models.Movie
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = c.api.User(gctx, username)
		return err
	})
	g.Go(func() error {
		var err error
		movies, err = c.api.Movies(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ProfileView{User: *user, Favorites: user.Favorites().Resolve(movies)}, nil
}

// EditProfile submits the fields set in update, stores a changed username, and returns the refreshed profile.
//
// Passwords are sent to the server only.
func (c *Controller) EditProfile(ctx context.Context, update models.ProfileUpdate) (*ProfileView, error) {
	s, err := c.sessions.Require(ctx)
	if err != nil {
		return nil, err
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	if _, err := c.api.EditUser(ctx, s.Username, update); err != nil {
		return nil, err
	}

	username := s.Username
	if update.Username != nil && *update.Username != s.Username {
		username = *update.Username
		if err := c.sessions.SetUsername(ctx, username); err != nil {
			return nil, err
		}
	}

	c.logger.Info("profile updated", "user", username, "fields", update.Fields())
	return c.profile(ctx, username)
}
