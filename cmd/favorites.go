package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/myflix/internal/formatter"
	"github.com/desertthunder/myflix/internal/shared"
	"github.com/desertthunder/myflix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints the current user's favorite movies.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	ctrl, err := r.controller()
	if err != nil {
		return err
	}

	movies, err := ctrl.Favorites(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	if len(movies) == 0 {
		return r.writePlain("No favorite movies yet.\n")
	}
	r.writePlainHeader(fmt.Sprintf("Favorite Movies (%d)", len(movies)))
	for _, m := range movies {
		r.writeMovieLine(m, true)
	}
	return nil
}

// FavoritesAdd adds one movie id to the favorites.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	return r.changeFavorite(ctx, cmd, true)
}

// FavoritesRemove removes one movie id from the favorites.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	return r.changeFavorite(ctx, cmd, false)
}

func (r *Runner) changeFavorite(ctx context.Context, cmd *cli.Command, add bool) error {
	movieID := strings.TrimSpace(cmd.StringArg("id"))
	if movieID == "" {
		return fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}

	ctrl, err := r.controller()
	if err != nil {
		return err
	}

	if add {
		if _, err := ctrl.AddFavorite(ctx, movieID); err != nil {
			return err
		}
		return r.writePlain("✓ %s\n", tasks.AddedNotice(r.titleFor(ctx, movieID)))
	}

	if _, err := ctrl.RemoveFavorite(ctx, movieID); err != nil {
		return err
	}
	return r.writePlain("✓ %s\n", tasks.RemovedNotice(r.titleFor(ctx, movieID)))
}

// titleFor looks movieID up in the local cache and falls back to the id itself.
func (r *Runner) titleFor(ctx context.Context, movieID string) string {
	if r.cache == nil {
		return movieID
	}
	cached, err := r.cache.Get(ctx, movieID)
	if err != nil {
		return movieID
	}
	return cached.Title
}

// FavoritesToggle loads the catalog view and flips membership of one movie.
func (r *Runner) FavoritesToggle(ctx context.Context, cmd *cli.Command) error {
	movieID := strings.TrimSpace(cmd.StringArg("id"))
	if movieID == "" {
		return fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}

	ctrl, err := r.controller()
	if err != nil {
		return err
	}

	view, err := ctrl.Catalog(ctx)
	if err != nil {
		return err
	}

	result, err := ctrl.ToggleFavorite(ctx, view, movieID)
	if err != nil {
		return err
	}

	r.writePlain("✓ %s\n", result.Message())
	return r.writePlain("Favorites: %d\n", result.Favorites)
}

// FavoritesImport adds every movie id listed in a file.
func (r *Runner) FavoritesImport(ctx context.Context, cmd *cli.Command) error {
	data, err := shared.VerifyAndReadFile(cmd.String("file"))
	if err != nil {
		return err
	}

	ids, err := tasks.ParseImportIDs(data)
	if err != nil {
		return err
	}

	ctrl, err := r.controller()
	if err != nil {
		return err
	}

	opts := tasks.ImportOptions{
		NumWorkers: r.config.Client.ImportWorkers,
		RateLimit:  r.config.Client.ImportRate,
	}
	if cmd.IsSet("workers") {
		opts.NumWorkers = cmd.Int("workers")
	}
	if cmd.IsSet("rate") {
		opts.RateLimit = cmd.Float("rate")
	}

	r.logger.Info("importing favorites", "ids", len(ids), "workers", opts.NumWorkers, "rate", opts.RateLimit)

	progressCh := make(chan tasks.ImportProgress, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch {
			case update.Err != nil:
				r.writePlain("   ✗ %s: %s\n", update.Message, r.describe(update.Err))
			case update.Phase == tasks.AddFavorites:
				r.writePlain("   ✓ %s\n", update.Message)
			default:
				r.writePlain("%s\n", update.Message)
			}
		}
	}()

	result, err := ctrl.ImportFavorites(ctx, ids, opts, progressCh)
	close(progressCh)
	<-done

	if result != nil {
		r.writePlain("\n")
		r.writePlainHeader("Import Complete")
		r.writePlain("Requested: %d\n", len(result.Requested))
		r.writePlain("Already favorites: %d\n", len(result.Skipped))
		r.writePlain("Added: %d\n", result.Added)
		r.writePlain("Failed: %d\n", result.Failed)
		if result.Favorites != nil {
			r.writePlain("Favorites now: %d\n", len(result.Favorites))
		}
	}
	return err
}

// FavoritesExport writes the favorite movies in the chosen format.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	ctrl, err := r.controller()
	if err != nil {
		return err
	}

	s, err := ctrl.Session(ctx)
	if err != nil {
		return err
	}

	movies, err := ctrl.Favorites(ctx)
	if err != nil {
		return err
	}

	result, err := formatter.WriteExport(ctx, movies, format, cmd.String("output"), formatter.ExportOptions{
		Title:   fmt.Sprintf("%s's Favorite Movies", s.Username),
		Posters: cmd.Bool("posters"),
		Client:  r.httpClient,
		Warn:    func(msg string, kv ...any) { r.logger.Warn(msg, kv...) },
	})
	if err != nil {
		return err
	}

	r.writePlain("✓ Exported %d movies as %s\n", len(movies), result.Format)
	for _, f := range result.Files {
		r.writePlain("  %s\n", f)
	}
	return nil
}
