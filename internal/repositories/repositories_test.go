package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/desertthunder/myflix/internal/session"
	"github.com/desertthunder/myflix/internal/shared"
	tu "github.com/desertthunder/myflix/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		store := NewSessionStore(setupTestDB(t))
		_, ok, err := store.Get(ctx, "user")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set is an upsert", func(t *testing.T) {
		store := NewSessionStore(setupTestDB(t))
		require.NoError(t, store.Set(ctx, "token", "first"))
		require.NoError(t, store.Set(ctx, "token", "second"))

		v, ok, err := store.Get(ctx, "token")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "second", v)
	})

	t.Run("delete and clear", func(t *testing.T) {
		store := NewSessionStore(setupTestDB(t))
		for _, k := range session.Keys {
			require.NoError(t, store.Set(ctx, k, "v"))
		}

		require.NoError(t, store.Delete(ctx, "Password"))
		keys, err := store.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Username", "token", "user"}, keys)

		require.NoError(t, store.Clear(ctx))
		keys, err = store.Keys(ctx)
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("backs a session manager", func(t *testing.T) {
		db := setupTestDB(t)
		m := session.NewManager(NewSessionStore(db))
		require.NoError(t, m.Save(ctx, session.Session{Username: "alice1", Token: "tok"}))

		reopened := session.NewManager(NewSessionStore(db))
		s, err := reopened.Load(ctx)
		require.NoError(t, err)
		assert.True(t, s.IsLoggedIn())
		assert.Equal(t, "alice1", s.Username)
	})

	t.Run("closed database", func(t *testing.T) {
		db := setupTestDB(t)
		store := NewSessionStore(db)
		db.Close()

		_, _, err := store.Get(ctx, "user")
		assert.Error(t, err)
		assert.Error(t, store.Set(ctx, "user", "x"))
	})
}

func TestMovieCache(t *testing.T) {
	ctx := context.Background()

	t.Run("replace and list", func(t *testing.T) {
		cache := NewMovieCache(setupTestDB(t))
		fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		cache.now = func() time.Time { return fixed }

		require.NoError(t, cache.ReplaceAll(ctx, tu.FixtureMovies()))

		n, err := cache.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		movies, err := cache.List(ctx)
		require.NoError(t, err)
		require.Len(t, movies, 3)
		assert.Equal(t, "Alien", movies[0].Title)
		assert.Equal(t, "Vertigo", movies[2].Title)
		assert.True(t, movies[0].CachedAt.Equal(fixed))
		assert.Equal(t, 1899, int(movies[2].Director.Birth))
	})

	t.Run("replace drops stale movies", func(t *testing.T) {
		cache := NewMovieCache(setupTestDB(t))
		require.NoError(t, cache.ReplaceAll(ctx, tu.FixtureMovies()))
		require.NoError(t, cache.ReplaceAll(ctx, tu.FixtureMovies()[:1]))

		movies, err := cache.Movies(ctx)
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "m-jaws", movies[0].ID)
	})

	t.Run("get", func(t *testing.T) {
		cache := NewMovieCache(setupTestDB(t))
		require.NoError(t, cache.ReplaceAll(ctx, tu.FixtureMovies()))

		m, err := cache.Get(ctx, "m-alien")
		require.NoError(t, err)
		assert.Equal(t, "Ridley Scott", m.Director.Name)

		_, err = cache.Get(ctx, "missing")
		assert.ErrorIs(t, err, shared.ErrMovieNotFound)
	})

	t.Run("empty cache", func(t *testing.T) {
		cache := NewMovieCache(setupTestDB(t))
		movies, err := cache.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, movies)
	})
}
