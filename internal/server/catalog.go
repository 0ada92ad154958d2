package server

import "github.com/desertthunder/myflix/internal/models"

var (
	drama      = models.Genre{Name: "Drama", Description: "Character-driven stories about people in conflict."}
	thriller   = models.Genre{Name: "Thriller", Description: "Suspense, tension, and excitement."}
	scifi      = models.Genre{Name: "Science Fiction", Description: "Speculative stories about science and the future."}
	crime      = models.Genre{Name: "Crime", Description: "Stories centered on criminals and the law."}
	animation  = models.Genre{Name: "Animation", Description: "Films made from drawn or modeled frames."}
	hitchcock  = models.Director{Name: "Alfred Hitchcock", Bio: "English filmmaker known as the Master of Suspense.", Birth: 1899, Death: 1980}
	coppola    = models.Director{Name: "Francis Ford Coppola", Bio: "American filmmaker of the New Hollywood era.", Birth: 1939}
	scott      = models.Director{Name: "Ridley Scott", Bio: "English director of science fiction and historical epics.", Birth: 1937}
	miyazaki   = models.Director{Name: "Hayao Miyazaki", Bio: "Japanese animator and co-founder of Studio Ghibli.", Birth: 1941}
	spielberg  = models.Director{Name: "Steven Spielberg", Bio: "American director and producer.", Birth: 1946}
	posterRoot = "https://images.example.com/posters/"
)

// DefaultCatalog is the movie list the stub API starts with.
func DefaultCatalog() []models.Movie {
	return []models.Movie{
		{
			ID:          "5f8b1a2c9d3e4f0011aa0001",
			Title:       "Vertigo",
			Description: "A retired San Francisco detective suffering from acrophobia investigates the strange activities of an old friend's wife.",
			Genre:       thriller,
			Director:    hitchcock,
			ImagePath:   posterRoot + "vertigo.jpg",
			Featured:    true,
		},
		{
			ID:          "5f8b1a2c9d3e4f0011aa0002",
			Title:       "Psycho",
			Description: "A secretary on the run checks into a remote motel run by a young man under the domination of his mother.",
			Genre:       thriller,
			Director:    hitchcock,
			ImagePath:   posterRoot + "psycho.jpg",
		},
		{
			ID:          "5f8b1a2c9d3e4f0011aa0003",
			Title:       "The Godfather",
			Description: "The aging patriarch of an organized crime dynasty transfers control of his empire to his reluctant son.",
			Genre:       crime,
			Director:    coppola,
			ImagePath:   posterRoot + "the-godfather.jpg",
			Featured:    true,
		},
		{
			ID:          "5f8b1a2c9d3e4f0011aa0004",
			Title:       "The Conversation",
			Description: "A paranoid surveillance expert faces a moral dilemma when he suspects a couple he is spying on will be murdered.",
			Genre:       drama,
			Director:    coppola,
			ImagePath:   posterRoot + "the-conversation.jpg",
		},
		{
			ID:          "5f8b1a2c9d3e4f0011aa0005",
			Title:       "Alien",
			Description: "The crew of a commercial spacecraft encounters a deadly lifeform after investigating an unknown transmission.",
			Genre:       scifi,
			Director:    scott,
			ImagePath:   posterRoot + "alien.jpg",
		},
		{
			ID:          "5f8b1a2c9d3e4f0011aa0006",
			Title:       "Blade Runner",
			Description: "A blade runner must pursue and terminate four replicants who have returned to Earth seeking their creator.",
			Genre:       scifi,
			Director:    scott,
			ImagePath:   posterRoot + "blade-runner.jpg",
			Featured:    true,
		},
		{
			ID:          "5f8b1a2c9d3e4f0011aa0007",
			Title:       "Spirited Away",
			Description: "A sullen ten-year-old girl wanders into a world ruled by gods, witches, and spirits.",
			Genre:       animation,
			Director:    miyazaki,
			ImagePath:   posterRoot + "spirited-away.jpg",
		},
		{
			ID:          "5f8b1a2c9d3e4f0011aa0008",
			Title:       "Jaws",
			Description: "When a killer shark unleashes chaos on a beach community, it's up to a local sheriff to stop it.",
			Genre:       thriller,
			Director:    spielberg,
			ImagePath:   posterRoot + "jaws.jpg",
		},
	}
}
