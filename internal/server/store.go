package server

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

var (
	errUserExists   = errors.New("user already exists")
	errUserNotFound = errors.New("user not found")
	errBadPassword  = errors.New("incorrect username or password")
)

type account struct {
	user         models.User
	passwordHash []byte
}

// Store holds the stub API's movies and accounts.
type Store struct {
	mu       sync.RWMutex
	movies   []models.Movie
	accounts map[string]*account // keyed by account id
	cost     int
}

func NewStore(movies []models.Movie, bcryptCost int) *Store {
	return &Store{movies: movies, accounts: make(map[string]*account), cost: bcryptCost}
}

func copyUser(u models.User) models.User {
	u.FavoriteMovies = append([]string{}, u.FavoriteMovies...)
	return u
}

// byUsername must be called with the lock held.
func (s *Store) byUsername(username string) *account {
	for _, a := range s.accounts {
		if a.user.Username == username {
			return a
		}
	}
	return nil
}

// CreateUser registers an account.
func (s *Store) CreateUser(reg models.Registration) (models.User, error) {
	birthday, err := models.ParseDate(reg.Birthday)
	if err != nil {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byUsername(reg.Username) != nil {
		return models.User{}, fmt.Errorf("%w: %s", errUserExists, reg.Username)
	}

	a := &account{
		user: models.User{
			ID:             shared.GenerateID(),
			Username:       reg.Username,
			Email:          reg.Email,
			Birthday:       birthday,
			FavoriteMovies: []string{},
		},
		passwordHash: hash,
	}
	s.accounts[a.user.ID] = a
	return copyUser(a.user), nil
}

// Authenticate checks a username and password.
func (s *Store) Authenticate(username, password string) (models.User, error) {
	s.mu.RLock()
	a := s.byUsername(username)
	var u models.User
	var hash []byte
	if a != nil {
		u, hash = copyUser(a.user), a.passwordHash
	}
	s.mu.RUnlock()

	if a == nil {
		return models.User{}, errBadPassword
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return models.User{}, errBadPassword
	}
	return u, nil
}

// UserByID returns the account with the given id.
func (s *Store) UserByID(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return models.User{}, errUserNotFound
	}
	return copyUser(a.user), nil
}

// UserByName returns the account with the given username.
func (s *Store) UserByName(username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a := s.byUsername(username)
	if a == nil {
		return models.User{}, errUserNotFound
	}
	return copyUser(a.user), nil
}

// UpdateUser applies the non-nil fields of update.
func (s *Store) UpdateUser(id string, update models.ProfileUpdate) (models.User, error) {
	var hash []byte
	if update.Password != nil {
		h, err := bcrypt.GenerateFromPassword([]byte(*update.Password), s.cost)
		if err != nil {
			return models.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hash = h
	}

	var birthday models.Date
	if update.Birthday != nil {
		d, err := models.ParseDate(*update.Birthday)
		if err != nil {
			return models.User{}, err
		}
		birthday = d
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return models.User{}, errUserNotFound
	}

	if update.Username != nil && *update.Username != a.user.Username {
		if s.byUsername(*update.Username) != nil {
			return models.User{}, fmt.Errorf("%w: %s", errUserExists, *update.Username)
		}
		a.user.Username = *update.Username
	}
	if update.Email != nil {
		a.user.Email = *update.Email
	}
	if update.Birthday != nil {
		a.user.Birthday = birthday
	}
	if hash != nil {
		a.passwordHash = hash
	}
	return copyUser(a.user), nil
}

// DeleteUser removes an account.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return errUserNotFound
	}
	delete(s.accounts, id)
	return nil
}

// SetFavorite adds or removes movieID from the account's favorites.
func (s *Store) SetFavorite(id, movieID string, add bool) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return models.User{}, errUserNotFound
	}

	set := a.user.Favorites()
	if add {
		if _, found := s.movieByID(movieID); !found {
			return models.User{}, fmt.Errorf("%w: %s", shared.ErrMovieNotFound, movieID)
		}
		if !set.Has(movieID) {
			a.user.FavoriteMovies = append(a.user.FavoriteMovies, movieID)
		}
	} else {
		out := a.user.FavoriteMovies[:0]
		for _, fav := range a.user.FavoriteMovies {
			if fav != movieID {
				out = append(out, fav)
			}
		}
		a.user.FavoriteMovies = out
	}
	return copyUser(a.user), nil
}

// Movies returns the catalog.
func (s *Store) Movies() []models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Movie{}, s.movies...)
}

// MovieByTitle matches titles case-insensitively.
func (s *Store) MovieByTitle(title string) (models.Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.movies {
		if strings.EqualFold(m.Title, title) {
			return m, true
		}
	}
	return models.Movie{}, false
}

func (s *Store) movieByID(id string) (models.Movie, bool) {
	for _, m := range s.movies {
		if m.ID == id {
			return m, true
		}
	}
	return models.Movie{}, false
}

// Director returns the first director with the given name.
func (s *Store) Director(name string) (models.Director, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.movies {
		if strings.EqualFold(m.Director.Name, name) {
			return m.Director, true
		}
	}
	return models.Director{}, false
}

// Genre returns the first genre with the given name.
func (s *Store) Genre(name string) (models.Genre, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.movies {
		if strings.EqualFold(m.Genre.Name, name) {
			return m.Genre, true
		}
	}
	return models.Genre{}, false
}
