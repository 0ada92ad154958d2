package services

import (
	"context"

	"github.com/desertthunder/myflix/internal/models"
)

// DefaultBaseURL is the hosted movie API.
const DefaultBaseURL = "https://movie-api-by-tammy.herokuapp.com"

// MovieAPI lists every remote operation the client performs.
type MovieAPI interface {
	// Register creates an account. No token is sent.
	Register(ctx context.Context, reg models.Registration) (*models.User, error)

	// Login exchanges credentials for a user record and bearer token. No token is sent.
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error)

	Movies(ctx context.Context) ([]models.Movie, error)
	Movie(ctx context.Context, title string) (*models.Movie, error)
	Director(ctx context.Context, name string) (*models.Director, error)
	Genre(ctx context.Context, name string) (*models.Genre, error)
	User(ctx context.Context, username string) (*models.User, error)

	// FavoriteIDs returns the ids in the user's favorite relation.
	FavoriteIDs(ctx context.Context, username string) ([]string, error)

	AddFavorite(ctx context.Context, username, movieID string) (*models.User, error)
	EditUser(ctx context.Context, username string, update models.ProfileUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, username string) error
	RemoveFavorite(ctx context.Context, username, movieID string) (*models.User, error)
}

var _ MovieAPI = (*Client)(nil)
