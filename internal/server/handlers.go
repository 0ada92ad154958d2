package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/shared"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeValidation(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error(), "fields": verr.Fields})
		return
	}
	writeError(w, http.StatusUnprocessableEntity, err.Error())
}

// param returns an unescaped route parameter.
func param(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func readJSON(r *http.Request, v any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("malformed JSON body: %w", err)
	}
	return nil
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := readJSON(r, &reg); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := models.Validate(reg); err != nil {
		writeValidation(w, err)
		return
	}

	u, err := s.store.CreateUser(reg)
	switch {
	case errors.Is(err, errUserExists):
		writeError(w, http.StatusBadRequest, reg.Username+" already exists")
		return
	case err != nil:
		s.logger.Error("register failed", "error", err)
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	s.logger.Info("registered user", "username", u.Username)
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := readJSON(r, &creds); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := models.Validate(creds); err != nil {
		writeValidation(w, err)
		return
	}

	u, err := s.store.Authenticate(creds.Username, creds.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, errBadPassword.Error())
		return
	}

	token, err := s.issueToken(u)
	if err != nil {
		s.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	writeJSON(w, http.StatusOK, models.LoginResult{User: u, Token: token})
}

func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Movies())
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
	m, ok := s.store.MovieByTitle(param(r, "title"))
	if !ok {
		writeError(w, http.StatusNotFound, "movie not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) getDirector(w http.ResponseWriter, r *http.Request) {
	d, ok := s.store.Director(param(r, "name"))
	if !ok {
		writeError(w, http.StatusNotFound, "director not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) getGenre(w http.ResponseWriter, r *http.Request) {
	g, ok := s.store.Genre(param(r, "name"))
	if !ok {
		writeError(w, http.StatusNotFound, "genre not found")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromContext(r.Context())
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromContext(r.Context())
	writeJSON(w, http.StatusOK, u.FavoriteMovies)
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	s.setFavorite(w, r, true)
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	s.setFavorite(w, r, false)
}

func (s *Server) setFavorite(w http.ResponseWriter, r *http.Request, add bool) {
	current, _ := userFromContext(r.Context())
	u, err := s.store.SetFavorite(current.ID, param(r, "movieID"), add)
	switch {
	case errors.Is(err, shared.ErrMovieNotFound):
		writeError(w, http.StatusNotFound, "movie not found")
		return
	case err != nil:
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) editUser(w http.ResponseWriter, r *http.Request) {
	var update models.ProfileUpdate
	if err := readJSON(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := update.Validate(); err != nil {
		writeValidation(w, err)
		return
	}

	current, _ := userFromContext(r.Context())
	u, err := s.store.UpdateUser(current.ID, update)
	switch {
	case errors.Is(err, errUserExists):
		writeError(w, http.StatusConflict, *update.Username+" already exists")
		return
	case errors.Is(err, errUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info("updated user", "username", u.Username, "fields", update.Fields())
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	current, _ := userFromContext(r.Context())
	if err := s.store.DeleteUser(current.ID); err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	s.logger.Info("deleted user", "username", current.Username)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "%s was deleted.", current.Username)
}
