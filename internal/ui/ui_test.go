package ui

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/server"
	"github.com/desertthunder/myflix/internal/services"
	"github.com/desertthunder/myflix/internal/session"
	"github.com/desertthunder/myflix/internal/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	model    *Model
	ctrl     *tasks.Controller
	sessions *session.Manager
	srv      *server.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	srv, err := server.New(server.Options{Secret: "ui-secret", BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	_, err = srv.Store().CreateUser(models.Registration{Username: "alice1", Password: "hunter22", Email: "alice@example.com"})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	sessions := session.NewManager(session.NewMemoryStore())
	client := services.NewClient(services.ClientOptions{BaseURL: ts.URL}, sessions)
	ctrl := tasks.NewController(client, sessions)

	m := NewModel(context.Background(), ctrl, Options{ToastTTL: time.Millisecond})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return &fixture{model: m, ctrl: ctrl, sessions: sessions, srv: srv}
}

// drive runs cmd and feeds every resulting Msg back into the model. Toast expiry is dropped so
// assertions can see the status line.
func (f *fixture) drive(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}

	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			f.drive(t, c)
		}
	case Msg:
		if msg.kind == MsgToastExpired {
			return
		}
		_, next := f.model.Update(msg)
		f.drive(t, next)
	}
}

func (f *fixture) press(t *testing.T, k tea.KeyMsg) {
	t.Helper()
	_, cmd := f.model.Update(k)
	f.drive(t, cmd)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var enterKey = tea.KeyMsg{Type: tea.KeyEnter}
var escKey = tea.KeyMsg{Type: tea.KeyEsc}

func (f *fixture) logIn(t *testing.T, password string) {
	t.Helper()
	f.drive(t, f.model.Init())
	require.Equal(t, LoginView, f.model.State())

	f.model.inputs[0].SetValue("alice1")
	f.model.inputs[1].SetValue(password)
	f.press(t, enterKey)
}

func (f *fixture) selectTitle(t *testing.T, title string) {
	t.Helper()
	for i, item := range f.model.movieList.Items() {
		if item.(movieItem).movie.Title == title {
			f.model.movieList.Select(i)
			return
		}
	}
	t.Fatalf("movie %q not in list", title)
}

func TestLoginFlow(t *testing.T) {
	t.Run("no session shows login", func(t *testing.T) {
		f := newFixture(t)
		f.drive(t, f.model.Init())
		assert.Equal(t, LoginView, f.model.State())
		assert.Contains(t, f.model.View(), "Log in to myFlix")
	})

	t.Run("empty fields are rejected locally", func(t *testing.T) {
		f := newFixture(t)
		f.drive(t, f.model.Init())
		f.press(t, enterKey)
		assert.Equal(t, LoginView, f.model.State())
		assert.Equal(t, "Username and password are required.", f.model.Toast())
	})

	t.Run("success opens the catalog", func(t *testing.T) {
		f := newFixture(t)
		f.logIn(t, "hunter22")

		assert.Equal(t, CatalogListView, f.model.State())
		assert.Equal(t, tasks.LoginNotice("alice1"), f.model.Toast())
		assert.Len(t, f.model.movieList.Items(), len(server.DefaultCatalog()))

		s, err := f.sessions.Load(context.Background())
		require.NoError(t, err)
		assert.True(t, s.IsLoggedIn())
	})

	t.Run("failure shows the generic message", func(t *testing.T) {
		f := newFixture(t)
		f.logIn(t, "wrong")

		assert.Equal(t, LoginView, f.model.State())
		assert.Equal(t, services.GenericMessage, f.model.Toast())
		assert.Empty(t, f.model.inputs[1].Value())
	})

	t.Run("stored session skips login", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ctrl.Login(context.Background(), models.Credentials{Username: "alice1", Password: "hunter22"})
		require.NoError(t, err)

		f.drive(t, f.model.Init())
		assert.Equal(t, CatalogListView, f.model.State())
	})

	t.Run("tab moves focus", func(t *testing.T) {
		f := newFixture(t)
		f.press(t, tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, 1, f.model.focus)
		f.press(t, tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, 0, f.model.focus)
	})
}

func TestCatalogKeys(t *testing.T) {
	t.Run("synopsis dialog", func(t *testing.T) {
		f := newFixture(t)
		f.logIn(t, "hunter22")
		f.selectTitle(t, "Alien")

		f.press(t, enterKey)
		assert.Equal(t, DialogView, f.model.State())
		assert.Equal(t, "Alien", f.model.dialog.title)
		assert.Contains(t, f.model.dialog.body, "commercial spacecraft")

		f.press(t, escKey)
		assert.Equal(t, CatalogListView, f.model.State())
	})

	t.Run("genre dialog", func(t *testing.T) {
		f := newFixture(t)
		f.logIn(t, "hunter22")
		f.selectTitle(t, "Alien")

		f.press(t, runeKey('g'))
		assert.Equal(t, DialogView, f.model.State())
		assert.Equal(t, "Science Fiction", f.model.dialog.title)
	})

	t.Run("director dialog", func(t *testing.T) {
		f := newFixture(t)
		f.logIn(t, "hunter22")
		f.selectTitle(t, "Vertigo")

		f.press(t, runeKey('d'))
		assert.Equal(t, DialogView, f.model.State())
		assert.Equal(t, "Alfred Hitchcock", f.model.dialog.title)
		assert.Contains(t, f.model.dialog.body, "1899–1980")
	})

	t.Run("favorite toggle marks the item", func(t *testing.T) {
		f := newFixture(t)
		f.logIn(t, "hunter22")
		f.selectTitle(t, "Jaws")

		f.press(t, runeKey('f'))
		assert.Equal(t, tasks.AddedNotice("Jaws"), f.model.Toast())
		item := f.model.movieList.SelectedItem().(movieItem)
		assert.True(t, item.favorite)
		assert.True(t, strings.HasPrefix(item.Title(), favoriteMarker))

		f.press(t, runeKey('f'))
		assert.Equal(t, tasks.RemovedNotice("Jaws"), f.model.Toast())
		assert.False(t, f.model.movieList.SelectedItem().(movieItem).favorite)
	})

	t.Run("profile view", func(t *testing.T) {
		f := newFixture(t)
		f.logIn(t, "hunter22")
		f.selectTitle(t, "Psycho")
		f.press(t, runeKey('f'))

		f.press(t, runeKey('p'))
		require.Equal(t, ProfileView, f.model.State())
		view := f.model.View()
		assert.Contains(t, view, "alice1")
		assert.Contains(t, view, favoriteMarker+"Psycho")

		f.press(t, escKey)
		assert.Equal(t, CatalogListView, f.model.State())
	})

	t.Run("logout returns to login", func(t *testing.T) {
		f := newFixture(t)
		f.logIn(t, "hunter22")

		f.press(t, runeKey('x'))
		assert.Equal(t, LoginView, f.model.State())
		assert.Equal(t, tasks.LoggedOutNotice, f.model.Toast())

		s, err := f.sessions.Load(context.Background())
		require.NoError(t, err)
		assert.False(t, s.IsLoggedIn())
	})

	t.Run("rejected session returns to login", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.sessions.Save(context.Background(), session.Session{Username: "alice1", Token: "garbage"}))

		f.drive(t, f.model.Init())
		assert.Equal(t, LoginView, f.model.State())
		assert.Equal(t, services.GenericMessage, f.model.Toast())
	})

	t.Run("q quits", func(t *testing.T) {
		f := newFixture(t)
		f.logIn(t, "hunter22")

		_, cmd := f.model.Update(runeKey('q'))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})
}

func TestToastExpiry(t *testing.T) {
	f := newFixture(t)
	cmd := f.model.warn("first")
	f.model.warn("second")

	f.model.Update(cmd())
	assert.Equal(t, "second", f.model.Toast(), "stale expiry must not clear a newer toast")

	f.model.Update(toastExpiredMsg(f.model.toastSeq))
	assert.Empty(t, f.model.Toast())
}

func TestMovieItem(t *testing.T) {
	movies := server.DefaultCatalog()[:2]
	items := movieItems(movies, models.NewFavoriteSet(movies[1].ID))

	assert.Equal(t, movies[0].Title, items[0].(movieItem).Title())
	assert.Equal(t, favoriteMarker+movies[1].Title, items[1].(movieItem).Title())
	assert.Equal(t, "Thriller • Alfred Hitchcock", items[0].(movieItem).Description())
}
