package tasks

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/services"
	"github.com/desertthunder/myflix/internal/session"
	tu "github.com/desertthunder/myflix/internal/testing"
)

// fakeAPI is an in-memory services.MovieAPI.
type fakeAPI struct {
	mu        sync.Mutex
	movies    []models.Movie
	users     map[string]*models.User
	passwords map[string]string
	fail      map[string]error
	calls     []string
	edits     []models.ProfileUpdate
}

var _ services.MovieAPI = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	alice := tu.FixtureUser("alice1")
	return &fakeAPI{
		movies:    tu.FixtureMovies(),
		users:     map[string]*models.User{"alice1": &alice},
		passwords: map[string]string{"alice1": "pw"},
		fail:      map[string]error{},
	}
}

func apiError(op string, status int, kind services.ErrorKind) *services.APIError {
	return &services.APIError{Op: op, Method: http.MethodGet, Path: "/", Status: status, Kind: kind, Err: fmt.Errorf("%s", http.StatusText(status))}
}

func (f *fakeAPI) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	return f.fail[op]
}

func (f *fakeAPI) setFail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = err
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *fakeAPI) user(username string) (*models.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, apiError("get user", http.StatusNotFound, services.KindNotFound)
	}
	cp := *u
	cp.FavoriteMovies = append([]string{}, u.FavoriteMovies...)
	return &cp, nil
}

func (f *fakeAPI) Register(_ context.Context, reg models.Registration) (*models.User, error) {
	if err := f.record("register"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[reg.Username]; exists {
		return nil, apiError("register", http.StatusBadRequest, services.KindValidation)
	}
	u := tu.FixtureUser(reg.Username)
	u.Email = reg.Email
	f.users[reg.Username] = &u
	f.passwords[reg.Username] = reg.Password
	return f.user(reg.Username)
}

func (f *fakeAPI) Login(_ context.Context, creds models.Credentials) (*models.LoginResult, error) {
	if err := f.record("login"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if pw, ok := f.passwords[creds.Username]; !ok || pw != creds.Password {
		return nil, apiError("login", http.StatusBadRequest, services.KindValidation)
	}
	u, _ := f.user(creds.Username)
	return &models.LoginResult{User: *u, Token: "token-" + creds.Username}, nil
}

func (f *fakeAPI) Movies(context.Context) ([]models.Movie, error) {
	if err := f.record("movies"); err != nil {
		return nil, err
	}
	return append([]models.Movie{}, f.movies...), nil
}

func (f *fakeAPI) Movie(_ context.Context, title string) (*models.Movie, error) {
	if err := f.record("movie"); err != nil {
		return nil, err
	}
	if m, ok := models.FindMovie(f.movies, title); ok {
		return &m, nil
	}
	return nil, apiError("get movie", http.StatusNotFound, services.KindNotFound)
}

func (f *fakeAPI) Director(_ context.Context, name string) (*models.Director, error) {
	if err := f.record("director"); err != nil {
		return nil, err
	}
	for _, m := range f.movies {
		if m.Director.Name == name {
			d := m.Director
			return &d, nil
		}
	}
	return nil, apiError("get director", http.StatusNotFound, services.KindNotFound)
}

func (f *fakeAPI) Genre(_ context.Context, name string) (*models.Genre, error) {
	if err := f.record("genre"); err != nil {
		return nil, err
	}
	for _, m := range f.movies {
		if m.Genre.Name == name {
			g := m.Genre
			return &g, nil
		}
	}
	return nil, apiError("get genre", http.StatusNotFound, services.KindNotFound)
}

func (f *fakeAPI) User(_ context.Context, username string) (*models.User, error) {
	if err := f.record("user"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user(username)
}

func (f *fakeAPI) FavoriteIDs(_ context.Context, username string) ([]string, error) {
	if err := f.record("favorites"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, err := f.user(username)
	if err != nil {
		return nil, err
	}
	return u.FavoriteMovies, nil
}

func (f *fakeAPI) AddFavorite(_ context.Context, username, movieID string) (*models.User, error) {
	if err := f.record("add"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.user(username); err != nil {
		return nil, err
	}
	set := f.users[username].Favorites()
	set.Add(movieID)
	f.users[username].FavoriteMovies = set.IDs()
	return f.user(username)
}

func (f *fakeAPI) RemoveFavorite(_ context.Context, username, movieID string) (*models.User, error) {
	if err := f.record("remove"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.user(username); err != nil {
		return nil, err
	}
	set := f.users[username].Favorites()
	set.Remove(movieID)
	f.users[username].FavoriteMovies = set.IDs()
	return f.user(username)
}

func (f *fakeAPI) EditUser(_ context.Context, username string, update models.ProfileUpdate) (*models.User, error) {
	if err := f.record("edit"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok {
		return nil, apiError("edit user", http.StatusNotFound, services.KindNotFound)
	}
	f.edits = append(f.edits, update)

	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Birthday != nil {
		d, _ := models.ParseDate(*update.Birthday)
		u.Birthday = d
	}
	if update.Password != nil {
		f.passwords[username] = *update.Password
	}
	if update.Username != nil && *update.Username != username {
		delete(f.users, username)
		u.Username = *update.Username
		f.users[u.Username] = u
		f.passwords[u.Username] = f.passwords[username]
	}
	return f.user(u.Username)
}

func (f *fakeAPI) DeleteUser(_ context.Context, username string) error {
	if err := f.record("delete"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, username)
	return nil
}

func (f *fakeAPI) favoritesOf(username string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := append([]string{}, f.users[username].FavoriteMovies...)
	sort.Strings(ids)
	return ids
}

// newLoggedIn returns a controller whose store already holds alice1's session.
func newLoggedIn(api *fakeAPI) (*Controller, *session.MemoryStore) {
	store := session.NewMemoryStore()
	m := session.NewManager(store)
	_ = m.Save(context.Background(), session.Session{Username: "alice1", Token: "token-alice1"})
	return NewController(api, m), store
}
