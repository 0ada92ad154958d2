package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/myflix/internal/models"
)

// Register creates an account via POST /users.
func (c *Client) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	cl := call{op: "register", method: http.MethodPost, path: "/users", body: reg}
	if err := models.Validate(reg); err != nil {
		return nil, c.invalid(cl, err)
	}

	body, err := c.doRequest(ctx, cl)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := c.decode(cl, body, &user, false, func() error { return models.Validate(user) }); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a token via POST /login.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	cl := call{op: "login", method: http.MethodPost, path: "/login", body: creds}
	if err := models.Validate(creds); err != nil {
		return nil, c.invalid(cl, err)
	}

	body, err := c.doRequest(ctx, cl)
	if err != nil {
		return nil, err
	}

	var result models.LoginResult
	if err := c.decode(cl, body, &result, false, func() error { return models.Validate(result) }); err != nil {
		return nil, err
	}
	return &result, nil
}

// Movies lists the catalog via GET /movies.
func (c *Client) Movies(ctx context.Context) ([]models.Movie, error) {
	cl := call{op: "list movies", method: http.MethodGet, path: "/movies", auth: true}

	body, err := c.doRequest(ctx, cl)
	if err != nil {
		return nil, err
	}

	var movies []models.Movie
	if err := c.decode(cl, body, &movies, false, func() error { return validateMovies(movies) }); err != nil {
		return nil, err
	}
	return movies, nil
}

// Movie fetches one movie via GET /movies/{title}.
func (c *Client) Movie(ctx context.Context, title string) (*models.Movie, error) {
	cl := call{op: "get movie", method: http.MethodGet, path: "/movies/" + segment(title), auth: true}
	if err := requireArg("title", title); err != nil {
		return nil, c.invalid(cl, err)
	}

	body, err := c.doRequest(ctx, cl)
	if err != nil {
		return nil, err
	}

	var movie models.Movie
	if err := c.decode(cl, body, &movie, false, func() error { return models.Validate(movie) }); err != nil {
		return nil, err
	}
	return &movie, nil
}

// Director fetches a director via GET /directors/{name}.
func (c *Client) Director(ctx context.Context, name string) (*models.Director, error) {
	cl := call{op: "get director", method: http.MethodGet, path: "/directors/" + segment(name), auth: true}
	if err := requireArg("name", name); err != nil {
		return nil, c.invalid(cl, err)
	}

	body, err := c.doRequest(ctx, cl)
	if err != nil {
		return nil, err
	}

	var director models.Director
	if err := c.decode(cl, body, &director, false, func() error { return requireArg("Name", director.Name) }); err != nil {
		return nil, err
	}
	return &director, nil
}

// Genre fetches a genre via GET /genres/{name}.
func (c *Client) Genre(ctx context.Context, name string) (*models.Genre, error) {
	cl := call{op: "get genre", method: http.MethodGet, path: "/genres/" + segment(name), auth: true}
	if err := requireArg("name", name); err != nil {
		return nil, c.invalid(cl, err)
	}

	body, err := c.doRequest(ctx, cl)
	if err != nil {
		return nil, err
	}

	var genre models.Genre
	if err := c.decode(cl, body, &genre, false, func() error { return requireArg("Name", genre.Name) }); err != nil {
		return nil, err
	}
	return &genre, nil
}

// User fetches a profile via GET /users/{username}.
func (c *Client) User(ctx context.Context, username string) (*models.User, error) {
	cl := call{op: "get user", method: http.MethodGet, path: "/users/" + segment(username), auth: true}
	if err := requireArg("username", username); err != nil {
		return nil, c.invalid(cl, err)
	}

	body, err := c.doRequest(ctx, cl)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := c.decode(cl, body, &user, false, func() error { return models.Validate(user) }); err != nil {
		return nil, err
	}
	return &user, nil
}

// FavoriteIDs fetches GET /users/{username}/movies.
//
// The body may be an array of ids or an array of movie records; both are normalized to ids.
func (c *Client) FavoriteIDs(ctx context.Context, username string) ([]string, error) {
	cl := call{op: "get favorites", method: http.MethodGet, path: "/users/" + segment(username) + "/movies", auth: true}
	if err := requireArg("username", username); err != nil {
		return nil, c.invalid(cl, err)
	}

	body, err := c.doRequest(ctx, cl)
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := c.decode(cl, body, &raw, false, nil); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(raw))
	for i, item := range raw {
		id, err := favoriteID(item)
		if err != nil {
			return nil, c.fail(cl, 0, KindDecode, fmt.Errorf("favorite %d: %w", i, err))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func favoriteID(item json.RawMessage) (string, error) {
	var id string
	if err := json.Unmarshal(item, &id); err == nil {
		if id == "" {
			return "", fmt.Errorf("empty id")
		}
		return id, nil
	}

	var movie models.Movie
	if err := json.Unmarshal(item, &movie); err != nil {
		return "", fmt.Errorf("expected id or movie record: %w", err)
	}
	if movie.ID == "" {
		return "", fmt.Errorf("movie record without _id")
	}
	return movie.ID, nil
}

// AddFavorite adds movieID to the user's favorites via PUT /users/{username}/movies/{id}.
func (c *Client) AddFavorite(ctx context.Context, username, movieID string) (*models.User, error) {
	return c.mutateFavorite(ctx, "add favorite", http.MethodPut, username, movieID)
}

// RemoveFavorite removes movieID via DELETE /users/{username}/movies/{id}.
func (c *Client) RemoveFavorite(ctx context.Context, username, movieID string) (*models.User, error) {
	return c.mutateFavorite(ctx, "delete favorite", http.MethodDelete, username, movieID)
}

func (c *Client) mutateFavorite(ctx context.Context, op, method, username, movieID string) (*models.User, error) {
	cl := call{op: op, method: method, path: "/users/" + segment(username) + "/movies/" + segment(movieID), auth: true}
	if err := requireArg("username", username); err != nil {
		return nil, c.invalid(cl, err)
	}
	if err := requireArg("movie id", movieID); err != nil {
		return nil, c.invalid(cl, err)
	}

	body, err := c.doRequest(ctx, cl)
	if err != nil {
		return nil, err
	}
	return c.optionalUser(cl, body)
}

// EditUser submits a partial profile update via PUT /users/{username}.
func (c *Client) EditUser(ctx context.Context, username string, update models.ProfileUpdate) (*models.User, error) {
	cl := call{op: "edit user", method: http.MethodPut, path: "/users/" + segment(username), auth: true, body: update}
	if err := requireArg("username", username); err != nil {
		return nil, c.invalid(cl, err)
	}
	if err := update.Validate(); err != nil {
		return nil, c.invalid(cl, err)
	}

	body, err := c.doRequest(ctx, cl)
	if err != nil {
		return nil, err
	}
	return c.optionalUser(cl, body)
}

// DeleteUser removes the account via DELETE /users/{username}. Any response body is ignored.
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	cl := call{op: "delete user", method: http.MethodDelete, path: "/users/" + segment(username), auth: true}
	if err := requireArg("username", username); err != nil {
		return c.invalid(cl, err)
	}

	_, err := c.doRequest(ctx, cl)
	return err
}

// optionalUser decodes the updated user returned by mutations. An empty body yields a zero User.
func (c *Client) optionalUser(cl call, body []byte) (*models.User, error) {
	var user models.User
	err := c.decode(cl, body, &user, true, func() error { return models.Validate(user) })
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func validateMovies(movies []models.Movie) error {
	for i, m := range movies {
		if err := models.Validate(m); err != nil {
			return fmt.Errorf("movie %d: %w", i, err)
		}
	}
	return nil
}
