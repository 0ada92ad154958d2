package testing

import "github.com/desertthunder/myflix/internal/models"

// FixtureMovies returns a small catalog with distinct genres and directors.
func FixtureMovies() []models.Movie {
	return []models.Movie{
		{
			ID:          "m-jaws",
			Title:       "Jaws",
			Description: "A police chief hunts a great white shark terrorizing a beach town.",
			Genre:       models.Genre{Name: "Thriller", Description: "Suspense and tension."},
			Director:    models.Director{Name: "Steven Spielberg", Bio: "American filmmaker.", Birth: 1946},
			ImagePath:   "https://example.com/jaws.jpg",
			Featured:    true,
		},
		{
			ID:          "m-alien",
			Title:       "Alien",
			Description: "A commercial crew answers a distress call and meets a deadly creature.",
			Genre:       models.Genre{Name: "Science Fiction", Description: "Speculative futures."},
			Director:    models.Director{Name: "Ridley Scott", Bio: "English filmmaker.", Birth: 1937},
			ImagePath:   "https://example.com/alien.jpg",
		},
		{
			ID:          "m-vertigo",
			Title:       "Vertigo",
			Description: "A retired detective becomes obsessed with a mysterious woman.",
			Genre:       models.Genre{Name: "Thriller", Description: "Suspense and tension."},
			Director:    models.Director{Name: "Alfred Hitchcock", Bio: "English director.", Birth: 1899, Death: 1980},
			ImagePath:   "https://example.com/vertigo.jpg",
		},
	}
}

// FixtureUser returns a user with the given favorites.
func FixtureUser(username string, favorites ...string) models.User {
	if favorites == nil {
		favorites = []string{}
	}
	return models.User{
		ID:             "u-" + username,
		Username:       username,
		Email:          username + "@example.com",
		FavoriteMovies: favorites,
	}
}
