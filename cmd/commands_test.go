package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/server"
	"github.com/desertthunder/myflix/internal/services"
	"github.com/desertthunder/myflix/internal/shared"
	"github.com/desertthunder/myflix/internal/tasks"
	tu "github.com/desertthunder/myflix/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	vertigoID   = "5f8b1a2c9d3e4f0011aa0001"
	godfatherID = "5f8b1a2c9d3e4f0011aa0003"
	jawsID      = "5f8b1a2c9d3e4f0011aa0008"
)

// cliHarness runs the app against an in-process stub API with a temp-file database.
type cliHarness struct {
	t      *testing.T
	dir    string
	srv    *server.Server
	ts     *httptest.Server
	config *shared.Config
	opened []string
}

func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()

	srv, err := server.New(server.Options{Secret: "cli-secret", BcryptCost: bcrypt.MinCost, Logger: shared.NewLogger(io.Discard)})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	_, err = srv.Store().CreateUser(models.Registration{
		Username: "alice1",
		Password: "hunter22",
		Email:    "alice1@example.com",
		Birthday: "1990-04-01",
	})
	require.NoError(t, err)

	dir := t.TempDir()
	config := shared.DefaultConfig()
	config.API.BaseURL = ts.URL
	config.API.Timeout = 5 * time.Second
	config.Database.Path = filepath.Join(dir, "myflix.db")
	config.Client.DetailedErrors = false

	return &cliHarness{t: t, dir: dir, srv: srv, ts: ts, config: config}
}

// run executes one command line with a fresh Runner, the way main does.
func (h *cliHarness) run(input string, args ...string) (string, error) {
	h.t.Helper()

	out := &bytes.Buffer{}
	r := NewRunner(RunnerOpts{
		Config:     h.config,
		ConfigPath: filepath.Join(h.dir, "config.toml"),
		Logger:     shared.NewLogger(io.Discard),
		Output:     out,
		Input:      strings.NewReader(input),
		OpenURL: func(u string) error {
			h.opened = append(h.opened, u)
			return nil
		},
	})

	err := r.app().Run(context.Background(), append([]string{"myflix"}, args...))
	if err != nil {
		return out.String() + r.describe(err), err
	}
	return out.String(), nil
}

func (h *cliHarness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run("", args...)
	require.NoError(h.t, err, out)
	return out
}

func (h *cliHarness) login() {
	h.t.Helper()
	h.mustRun("auth", "login", "-u", "alice1", "-p", "hunter22")
}

func TestAuthCommands(t *testing.T) {
	t.Run("status without a session", func(t *testing.T) {
		h := newCLIHarness(t)

		out := h.mustRun("auth", "status")
		assert.Contains(t, out, "State: logged out")
		assert.Contains(t, out, "✗ Not logged in")
	})

	t.Run("login reads the password from input", func(t *testing.T) {
		h := newCLIHarness(t)

		out, err := h.run("hunter22\n", "auth", "login", "-u", "alice1")
		require.NoError(t, err)
		assert.Contains(t, out, "Password: ")
		assert.Contains(t, out, "✓ "+tasks.LoginNotice("alice1"))

		status := h.mustRun("auth", "status", "--verify")
		assert.Contains(t, status, "User: alice1")
		assert.Contains(t, status, "Expires: ")
		assert.Contains(t, status, "Server: ✓ token accepted")
	})

	t.Run("wrong password shows the generic message", func(t *testing.T) {
		h := newCLIHarness(t)

		out, err := h.run("", "auth", "login", "-u", "alice1", "-p", "nope-nope")
		require.Error(t, err)
		assert.Equal(t, services.KindValidation, services.KindOf(err))
		assert.Contains(t, out, services.GenericMessage)

		status := h.mustRun("auth", "status")
		assert.Contains(t, status, "✗ Not logged in")
	})

	t.Run("detailed errors surface the kind", func(t *testing.T) {
		h := newCLIHarness(t)
		h.config.Client.DetailedErrors = true

		out, err := h.run("", "auth", "login", "-u", "alice1", "-p", "nope-nope")
		require.Error(t, err)
		assert.Contains(t, out, "Please check your input")
	})

	t.Run("register with login", func(t *testing.T) {
		h := newCLIHarness(t)

		out := h.mustRun("auth", "register", "-u", "bobby2", "-p", "hunter22", "-e", "bobby2@example.com", "-b", "1985-02-03", "--login")
		assert.Contains(t, out, "✓ "+tasks.RegisteredNotice)
		assert.Contains(t, out, "✓ "+tasks.LoginNotice("bobby2"))

		_, err := h.srv.Store().UserByName("bobby2")
		assert.NoError(t, err)
	})

	t.Run("register rejects invalid input before any request", func(t *testing.T) {
		h := newCLIHarness(t)

		_, err := h.run("", "auth", "register", "-u", "ab", "-p", "hunter22", "-e", "not-an-email")
		require.Error(t, err)
		assert.Equal(t, services.KindValidation, services.KindOf(err))

		_, lookupErr := h.srv.Store().UserByName("ab")
		assert.Error(t, lookupErr)
	})

	t.Run("register requires the username flag", func(t *testing.T) {
		h := newCLIHarness(t)

		_, err := h.run("", "auth", "register", "-p", "hunter22", "-e", "x@example.com")
		assert.Error(t, err)
	})

	t.Run("logout clears the session", func(t *testing.T) {
		h := newCLIHarness(t)
		h.login()

		out := h.mustRun("auth", "logout")
		assert.Contains(t, out, "✓ "+tasks.LoggedOutNotice)

		out, err := h.run("", "favorites", "list")
		require.Error(t, err)
		assert.Equal(t, services.KindUnauthorized, services.KindOf(err))
		assert.True(t, errors.Is(err, shared.ErrNotAuthenticated))
		assert.Contains(t, out, services.GenericMessage)

		_, err = h.run("", "favorites", "add", jawsID)
		assert.ErrorIs(t, err, shared.ErrNotAuthenticated)
	})

	t.Run("import a token from a curl file", func(t *testing.T) {
		h := newCLIHarness(t)
		token := h.issueToken()

		curlFile := filepath.Join(h.dir, "request.sh")
		curl := fmt.Sprintf("curl '%s/users/alice1' \\\n  -H 'Accept: application/json' \\\n  -H 'Authorization: Bearer %s'\n", h.ts.URL, token)
		require.NoError(t, os.WriteFile(curlFile, []byte(curl), 0o644))

		out := h.mustRun("auth", "import", "--curl-file", curlFile, "-u", "alice1")
		assert.Contains(t, out, "✓ Session imported for alice1")

		status := h.mustRun("auth", "status", "--verify")
		assert.Contains(t, status, "Server: ✓ token accepted")
	})

	t.Run("import rejects a token the server refuses", func(t *testing.T) {
		h := newCLIHarness(t)

		curl := "curl 'https://api.example.com/movies' -H 'Authorization: Bearer not-a-real-token'"
		_, err := h.run("", "auth", "import", "--curl", curl, "-u", "alice1")
		require.Error(t, err)
		assert.Equal(t, services.KindUnauthorized, services.KindOf(err))

		status := h.mustRun("auth", "status")
		assert.Contains(t, status, "✗ Not logged in")
	})

	t.Run("import needs exactly one source", func(t *testing.T) {
		h := newCLIHarness(t)

		_, err := h.run("", "auth", "import", "-u", "alice1")
		assert.ErrorIs(t, err, shared.ErrMissingArgument)

		_, err = h.run("", "auth", "import", "-u", "alice1", "--curl", "curl x", "--curl-file", "y")
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
	})
}

// issueToken logs in with a bare client, the way a browser session would get its token.
func (h *cliHarness) issueToken() string {
	h.t.Helper()

	client := services.NewClient(services.ClientOptions{BaseURL: h.ts.URL, Timeout: 5 * time.Second}, nil)
	result, err := client.Login(context.Background(), models.Credentials{Username: "alice1", Password: "hunter22"})
	require.NoError(h.t, err)
	return result.Token
}

func TestCatalogCommands(t *testing.T) {
	t.Run("movies require a session", func(t *testing.T) {
		h := newCLIHarness(t)

		out, err := h.run("", "movies", "list")
		require.Error(t, err)
		assert.Equal(t, services.KindUnauthorized, services.KindOf(err))
		assert.Contains(t, out, services.GenericMessage)
	})

	t.Run("list marks featured movies", func(t *testing.T) {
		h := newCLIHarness(t)
		h.login()

		out := h.mustRun("movies", "list")
		assert.Contains(t, out, "Movies (8)")
		assert.Contains(t, out, "★ "+vertigoID)
		assert.Contains(t, out, "  "+jawsID)
		assert.Contains(t, out, "Thriller · Steven Spielberg")
	})

	t.Run("list as json", func(t *testing.T) {
		h := newCLIHarness(t)
		h.login()

		out := h.mustRun("movies", "list", "--json", "--pretty=false")
		assert.True(t, strings.HasPrefix(out, "[{"))
		assert.Contains(t, out, `"Title":"Jaws"`)
	})

	t.Run("show opens the poster", func(t *testing.T) {
		h := newCLIHarness(t)
		h.login()

		out := h.mustRun("movies", "show", "--open", "the godfather")
		assert.Contains(t, out, "The Godfather")
		assert.Contains(t, out, "ID: "+godfatherID)
		assert.Contains(t, out, "Director: Francis Ford Coppola")
		require.Len(t, h.opened, 1)
		assert.Contains(t, h.opened[0], "https://images.example.com/posters/")
	})

	t.Run("show needs a title", func(t *testing.T) {
		h := newCLIHarness(t)

		_, err := h.run("", "movies", "show")
		assert.ErrorIs(t, err, shared.ErrMissingArgument)
	})

	t.Run("unknown movie", func(t *testing.T) {
		h := newCLIHarness(t)
		h.login()

		out, err := h.run("", "movies", "show", "Nothing Like It")
		require.Error(t, err)
		assert.Equal(t, services.KindNotFound, services.KindOf(err))
		assert.Contains(t, out, services.GenericMessage)
	})

	t.Run("director and genre", func(t *testing.T) {
		h := newCLIHarness(t)
		h.login()

		out := h.mustRun("directors", "show", "Alfred Hitchcock")
		assert.Contains(t, out, "Alfred Hitchcock")
		assert.Contains(t, out, "Lived: 1899")

		out = h.mustRun("genres", "show", "Thriller")
		assert.Contains(t, out, "Thriller")
	})

	t.Run("cache then list offline", func(t *testing.T) {
		h := newCLIHarness(t)

		out := h.mustRun("movies", "list", "--cached")
		assert.Contains(t, out, "No cached movies")

		h.login()
		out = h.mustRun("cache", "movies")
		assert.Contains(t, out, "✓ Cached 8 movies")

		h.ts.Close()
		out = h.mustRun("movies", "list", "--cached")
		assert.Contains(t, out, "Movies (8)")
		assert.Contains(t, out, "Spirited Away")
	})
}

func TestFavoritesCommands(t *testing.T) {
	t.Run("add list remove", func(t *testing.T) {
		h := newCLIHarness(t)
		h.login()
		h.mustRun("cache", "movies")

		out := h.mustRun("favorites", "add", jawsID)
		assert.Contains(t, out, "✓ "+tasks.AddedNotice("Jaws"))

		out = h.mustRun("fav", "list")
		assert.Contains(t, out, "Favorite Movies (1)")
		assert.Contains(t, out, "★ "+jawsID)

		out = h.mustRun("favorites", "rm", jawsID)
		assert.Contains(t, out, "✓ "+tasks.RemovedNotice("Jaws"))

		out = h.mustRun("favorites", "list")
		assert.Contains(t, out, "No favorite movies yet.")
	})

	t.Run("toggle flips membership", func(t *testing.T) {
		h := newCLIHarness(t)
		h.login()

		out := h.mustRun("favorites", "toggle", vertigoID)
		assert.Contains(t, out, tasks.AddedNotice("Vertigo"))
		assert.Contains(t, out, "Favorites: 1")

		out = h.mustRun("favorites", "toggle", vertigoID)
		assert.Contains(t, out, tasks.RemovedNotice("Vertigo"))
		assert.Contains(t, out, "Favorites: 0")
	})

	t.Run("adding an unknown movie fails", func(t *testing.T) {
		h := newCLIHarness(t)
		h.login()

		out, err := h.run("", "favorites", "add", "000000000000000000000000")
		require.Error(t, err)
		assert.Equal(t, services.KindNotFound, services.KindOf(err))
		assert.Contains(t, out, services.GenericMessage)
	})

	t.Run("import skips existing favorites", func(t *testing.T) {
		h := newCLIHarness(t)
		h.login()
		h.mustRun("favorites", "add", jawsID)

		file := filepath.Join(h.dir, "ids.txt")
		require.NoError(t, os.WriteFile(file, []byte(jawsID+"\n"+vertigoID+"\n"+godfatherID+"\n"+vertigoID+"\n"), 0o644))

		out := h.mustRun("favorites", "import", "--file", file, "--workers", "2", "--rate", "100")
		assert.Contains(t, out, "Import Complete")
		assert.Contains(t, out, "Requested: 3")
		assert.Contains(t, out, "Already favorites: 1")
		assert.Contains(t, out, "Added: 2")
		assert.Contains(t, out, "Failed: 0")
		assert.Contains(t, out, "Favorites now: 3")
	})

	t.Run("import of a missing file", func(t *testing.T) {
		h := newCLIHarness(t)

		_, err := h.run("", "favorites", "import", "--file", filepath.Join(h.dir, "missing.txt"))
		assert.Error(t, err)
	})

	t.Run("export csv", func(t *testing.T) {
		h := newCLIHarness(t)
		h.login()
		h.mustRun("favorites", "add", godfatherID)

		dest := filepath.Join(h.dir, "favorites.csv")
		out := h.mustRun("favorites", "export", "-F", "csv", "-o", dest)
		assert.Contains(t, out, "✓ Exported 1 movies as csv")

		tu.AssertFileExists(t, dest)
		content := tu.MustReadFile(t, dest)
		assert.Contains(t, content, "ID,Title,Genre,Director")
		assert.Contains(t, content, "The Godfather")
	})

	t.Run("export rejects an unknown format", func(t *testing.T) {
		h := newCLIHarness(t)

		_, err := h.run("", "favorites", "export", "-F", "xml", "-o", filepath.Join(h.dir, "out.xml"))
		assert.Error(t, err)
	})
}

func TestProfileCommands(t *testing.T) {
	t.Run("show", func(t *testing.T) {
		h := newCLIHarness(t)
		h.login()
		h.mustRun("favorites", "add", jawsID)

		out := h.mustRun("profile", "show")
		assert.Contains(t, out, "alice1")
		assert.Contains(t, out, "Email: alice1@example.com")
		assert.Contains(t, out, "Favorite movies:")
		assert.Contains(t, out, "Jaws")

		out = h.mustRun("profile", "show", "--json", "--pretty=false")
		assert.Contains(t, out, `"user":`)
		assert.Contains(t, out, `"favorites":`)
	})

	t.Run("edit renames the session user", func(t *testing.T) {
		h := newCLIHarness(t)
		h.login()

		out := h.mustRun("profile", "edit", "--username", "alice22", "--email", "new@example.com")
		assert.Contains(t, out, "✓ "+tasks.ProfileUpdatedNotice)
		assert.Contains(t, out, "Email: new@example.com")

		status := h.mustRun("auth", "status", "--verify")
		assert.Contains(t, status, "User: alice22")
		assert.Contains(t, status, "Server: ✓ token accepted")
	})

	t.Run("edit password then log in with it", func(t *testing.T) {
		h := newCLIHarness(t)
		h.login()

		h.mustRun("profile", "edit", "--password", "correcthorse")
		h.mustRun("auth", "logout")

		_, err := h.run("", "auth", "login", "-u", "alice1", "-p", "hunter22")
		assert.Error(t, err)
		h.mustRun("auth", "login", "-u", "alice1", "-p", "correcthorse")
	})

	t.Run("delete asks for confirmation", func(t *testing.T) {
		h := newCLIHarness(t)
		h.login()

		out, err := h.run("n\n", "profile", "delete")
		require.NoError(t, err)
		assert.Contains(t, out, "[y/N]")
		assert.Contains(t, out, "Aborted.")

		_, err = h.srv.Store().UserByName("alice1")
		assert.NoError(t, err)
	})

	t.Run("delete with yes", func(t *testing.T) {
		h := newCLIHarness(t)
		h.login()

		out := h.mustRun("profile", "delete", "--yes")
		assert.Contains(t, out, "✓ "+tasks.AccountDeletedNotice)

		_, err := h.srv.Store().UserByName("alice1")
		assert.Error(t, err)

		status := h.mustRun("auth", "status")
		assert.Contains(t, status, "✗ Not logged in")
	})
}

func TestSetup(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out := &bytes.Buffer{}
	r := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: out})
	require.NoError(t, r.app().Run(context.Background(), []string{"myflix", "setup"}))

	assert.Contains(t, out.String(), "✓ Config file created: config.toml")
	assert.Contains(t, out.String(), "✓ Database ready:")
	tu.AssertFileExists(t, filepath.Join(dir, "config.toml"))

	out.Reset()
	r = NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: out})
	require.NoError(t, r.app().Run(context.Background(), []string{"myflix", "setup"}))
	assert.NotContains(t, out.String(), "Config file created")
}
