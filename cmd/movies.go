package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// MoviesList prints the catalog from the API, or from the local cache with --cached.
func (r *Runner) MoviesList(ctx context.Context, cmd *cli.Command) error {
	ctrl, err := r.controller()
	if err != nil {
		return err
	}

	var movies []models.Movie
	if cmd.Bool("cached") {
		movies, err = r.cache.Movies(ctx)
		if err != nil {
			return err
		}
		if len(movies) == 0 {
			return r.writePlain("No cached movies. Run \"myflix cache movies\" first.\n")
		}
	} else {
		movies, err = ctrl.Movies(ctx)
		if err != nil {
			return err
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Movies (%d)", len(movies)))
	for _, m := range movies {
		r.writeMovieLine(m, m.Featured)
	}
	return nil
}

// MoviesShow prints one movie by title.
func (r *Runner) MoviesShow(ctx context.Context, cmd *cli.Command) error {
	title := strings.TrimSpace(cmd.StringArg("title"))
	if title == "" {
		return fmt.Errorf("%w: title", shared.ErrMissingArgument)
	}

	ctrl, err := r.controller()
	if err != nil {
		return err
	}

	movie, err := ctrl.Movie(ctx, title)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if err := r.writeJSON(movie, cmd.Bool("pretty")); err != nil {
			return err
		}
	} else {
		r.writeMovie(movie)
	}

	if cmd.Bool("open") {
		if err := r.openURL(movie.ImagePath); err != nil {
			return err
		}
		r.logger.Info("opened poster", "url", movie.ImagePath)
	}
	return nil
}

// DirectorsShow prints one director by name.
func (r *Runner) DirectorsShow(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.StringArg("name"))
	if name == "" {
		return fmt.Errorf("%w: name", shared.ErrMissingArgument)
	}

	ctrl, err := r.controller()
	if err != nil {
		return err
	}

	director, err := ctrl.Director(ctx, name)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(director, cmd.Bool("pretty"))
	}

	r.writePlainHeader(director.Name)
	if span := director.Lifespan(); span != "" {
		r.writePlain("Lived: %s\n", span)
	}
	if director.Bio != "" {
		r.writePlainln("%s", director.Bio)
	}
	return nil
}

// GenresShow prints one genre by name.
func (r *Runner) GenresShow(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.StringArg("name"))
	if name == "" {
		return fmt.Errorf("%w: name", shared.ErrMissingArgument)
	}

	ctrl, err := r.controller()
	if err != nil {
		return err
	}

	genre, err := ctrl.Genre(ctx, name)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(genre, cmd.Bool("pretty"))
	}

	r.writePlainHeader(genre.Name)
	if genre.Description != "" {
		r.writePlainln("%s", genre.Description)
	}
	return nil
}

// writeMovieLine prints a one-line summary. marked adds a leading star.
func (r *Runner) writeMovieLine(m models.Movie, marked bool) {
	marker := " "
	if marked {
		marker = "★"
	}
	r.writePlain("%s %-26s %-30s %s · %s\n", marker, m.ID, shared.Truncate(m.Title, 30), m.Genre.Name, m.Director.Name)
}

func (r *Runner) writeMovie(m *models.Movie) {
	r.writePlainHeader(m.Title)
	r.writePlain("ID: %s\n", m.ID)
	r.writePlain("Genre: %s\n", m.Genre.Name)
	r.writePlain("Director: %s\n", m.Director.Name)
	if m.Featured {
		r.writePlain("Featured: yes\n")
	}
	if m.ImagePath != "" {
		r.writePlain("Poster: %s\n", m.ImagePath)
	}
	if m.Description != "" {
		r.writePlainln("%s", m.Description)
	}
}
