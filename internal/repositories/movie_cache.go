package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/shared"
)

// CachedMovie is a movie snapshot with the time it was stored.
type CachedMovie struct {
	models.Movie
	CachedAt time.Time
}

// MovieCache stores the last fetched catalog.
type MovieCache struct {
	db  *sql.DB
	now func() time.Time
}

func NewMovieCache(db *sql.DB) *MovieCache {
	return &MovieCache{db: db, now: time.Now}
}

// ReplaceAll swaps the cached catalog for movies in one transaction.
func (c *MovieCache) ReplaceAll(ctx context.Context, movies []models.Movie) error {
	cachedAt := c.now().UTC()

	return withTx(ctx, c.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM movies_cache`); err != nil {
			return fmt.Errorf("failed to clear movie cache: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO movies_cache (id, movie_id, title, payload, cached_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(movie_id) DO UPDATE SET title = excluded.title, payload = excluded.payload, cached_at = excluded.cached_at
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, m := range movies {
			payload, err := json.Marshal(m)
			if err != nil {
				return fmt.Errorf("failed to encode movie %s: %w", m.ID, err)
			}
			if _, err := stmt.ExecContext(ctx, shared.GenerateID(), m.ID, m.Title, string(payload), cachedAt); err != nil {
				return fmt.Errorf("failed to cache movie %s: %w", m.ID, err)
			}
		}
		return nil
	})
}

// List returns the cached movies ordered by title.
func (c *MovieCache) List(ctx context.Context) ([]CachedMovie, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT payload, cached_at FROM movies_cache ORDER BY title COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached movies: %w", err)
	}
	defer rows.Close()

	var movies []CachedMovie
	for rows.Next() {
		m, err := scanCachedMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cached movies: %w", err)
	}
	return movies, nil
}

// Movies returns the cached catalog without timestamps.
func (c *MovieCache) Movies(ctx context.Context) ([]models.Movie, error) {
	cached, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	movies := make([]models.Movie, len(cached))
	for i, m := range cached {
		movies[i] = m.Movie
	}
	return movies, nil
}

// Get returns the cached movie with the given remote id or [shared.ErrMovieNotFound].
func (c *MovieCache) Get(ctx context.Context, movieID string) (*CachedMovie, error) {
	row := c.db.QueryRowContext(ctx, `SELECT payload, cached_at FROM movies_cache WHERE movie_id = ?`, movieID)
	m, err := scanCachedMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrMovieNotFound, movieID)
	}
	return m, err
}

func (c *MovieCache) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies_cache`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cached movies: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCachedMovie(s scanner) (*CachedMovie, error) {
	var payload string
	var cachedAt time.Time
	if err := s.Scan(&payload, &cachedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan cached movie: %w", err)
	}

	var m models.Movie
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return nil, fmt.Errorf("failed to decode cached movie: %w", err)
	}
	return &CachedMovie{Movie: m, CachedAt: cachedAt}, nil
}
