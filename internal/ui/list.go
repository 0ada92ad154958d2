package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/myflix/internal/models"
)

var _ list.Item = movieItem{}

const favoriteMarker = "★ "

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie    models.Movie
	favorite bool
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string {
	if i.favorite {
		return favoriteMarker + i.movie.Title
	}
	return i.movie.Title
}
func (i movieItem) Description() string {
	desc := i.movie.Genre.Name
	if i.movie.Director.Name != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.movie.Director.Name)
	}
	return desc
}

// movieItems marks each movie in movies with its membership in favorites.
func movieItems(movies []models.Movie, favorites models.FavoriteSet) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		items[i] = movieItem{movie: m, favorite: favorites.Has(m.ID)}
	}
	return items
}
