package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// CacheMovies fetches the catalog and stores it in the local movies cache.
//
// The controller writes the cache as part of every catalog fetch; this command forces one.
func (r *Runner) CacheMovies(ctx context.Context, cmd *cli.Command) error {
	ctrl, err := r.controller()
	if err != nil {
		return err
	}

	movies, err := ctrl.Movies(ctx)
	if err != nil {
		return err
	}

	count, err := r.cache.Count(ctx)
	if err != nil {
		return err
	}
	if count != len(movies) {
		return fmt.Errorf("cache holds %d movies, expected %d", count, len(movies))
	}

	r.logger.Info("cached catalog", "movies", count, "database", r.config.Database.Path)
	return r.writePlain("✓ Cached %d movies\n", count)
}
