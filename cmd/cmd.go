// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}
}

func prettyFlag() cli.Flag {
	return &cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output", Value: true}
}

// setupCommand writes the config file and prepares the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml and initialize the local database",
		Action: r.Setup,
	}
}

// authCommand handles account and session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Register, log in, and manage the stored session",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Username (letters and digits, at least 5)", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password (read from stdin when omitted)"},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email address", Required: true},
					&cli.StringFlag{Name: "birthday", Aliases: []string{"b"}, Usage: "Birthday (YYYY-MM-DD)"},
					&cli.BoolFlag{Name: "login", Usage: "Log in after registering"},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "login",
				Usage: "Log in and store the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Username", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password (read from stdin when omitted)"},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored session",
				Action: r.AuthLogout,
			},
			{
				Name:  "status",
				Usage: "Show the stored session and token expiry",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "verify", Usage: "Ask the server whether the token is still accepted"},
				},
				Action: r.AuthStatus,
			},
			{
				Name:  "import",
				Usage: "Reuse a session token from a cURL command copied from browser DevTools",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "curl", Usage: "cURL command from browser DevTools (Copy as cURL)"},
					&cli.StringFlag{Name: "curl-file", Usage: "Path to a file containing the cURL command"},
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Username the token belongs to", Required: true},
				},
				Action: r.AuthImport,
			},
		},
	}
}

// moviesCommand handles catalog browsing
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "movies",
		Usage: "Browse the movie catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List every movie",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "cached", Usage: "Read the local catalog cache instead of the API"},
					jsonFlag(),
					prettyFlag(),
				},
				Action: r.MoviesList,
			},
			{
				Name:      "show",
				Usage:     "Show one movie by title",
				Arguments: []cli.Argument{&cli.StringArg{Name: "title"}},
				Flags: []cli.Flag{
					jsonFlag(),
					prettyFlag(),
					&cli.BoolFlag{Name: "open", Usage: "Open the poster image in the browser"},
				},
				Action: r.MoviesShow,
			},
		},
	}
}

// directorsCommand looks up directors
func directorsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "directors",
		Usage: "Look up directors",
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show a director by name",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Flags:     []cli.Flag{jsonFlag(), prettyFlag()},
				Action:    r.DirectorsShow,
			},
		},
	}
}

// genresCommand looks up genres
func genresCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "genres",
		Usage: "Look up genres",
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show a genre by name",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Flags:     []cli.Flag{jsonFlag(), prettyFlag()},
				Action:    r.GenresShow,
			},
		},
	}
}

// favoritesCommand manages the logged-in user's favorites
func favoritesCommand(r *Runner) *cli.Command {
	idArg := func() []cli.Argument { return []cli.Argument{&cli.StringArg{Name: "id"}} }

	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage favorite movies",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List favorite movies",
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.FavoritesList,
			},
			{
				Name:      "add",
				Usage:     "Add a movie to favorites",
				Arguments: idArg(),
				Action:    r.FavoritesAdd,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a movie from favorites",
				Arguments: idArg(),
				Action:    r.FavoritesRemove,
			},
			{
				Name:      "toggle",
				Usage:     "Add the movie if it is not a favorite, remove it otherwise",
				Arguments: idArg(),
				Action:    r.FavoritesToggle,
			},
			{
				Name:  "import",
				Usage: "Add many favorites from a file of movie ids",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "JSON array or newline-separated ids", Required: true},
					&cli.IntFlag{Name: "workers", Usage: "Concurrent requests (default from config)"},
					&cli.FloatFlag{Name: "rate", Usage: "Requests per second (default from config)"},
				},
				Action: r.FavoritesImport,
			},
			{
				Name:  "export",
				Usage: "Export favorite movies to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"F"}, Usage: "csv, markdown, txt, or json", Value: "csv"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file (directory for markdown)", Required: true},
					&cli.BoolFlag{Name: "posters", Usage: "Download poster images next to a markdown export"},
				},
				Action: r.FavoritesExport,
			},
		},
	}
}

// profileCommand manages the logged-in user's account
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "View and edit your account",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show account details and favorites",
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.ProfileShow,
			},
			{
				Name:  "edit",
				Usage: "Update only the fields given",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Usage: "New username"},
					&cli.StringFlag{Name: "password", Usage: "New password"},
					&cli.StringFlag{Name: "email", Usage: "New email"},
					&cli.StringFlag{Name: "birthday", Usage: "New birthday (YYYY-MM-DD)"},
				},
				Action: r.ProfileEdit,
			},
			{
				Name:  "delete",
				Usage: "Delete the account and clear the session",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
				},
				Action: r.ProfileDelete,
			},
		},
	}
}

// cacheCommand handles the local catalog cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the local catalog cache",
		Commands: []*cli.Command{
			{
				Name:   "movies",
				Usage:  "Fetch the catalog and store it locally",
				Action: r.CacheMovies,
			},
		},
	}
}

// devCommand runs local development helpers
func devCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "dev",
		Usage: "Local development helpers",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run an in-memory movie API for local testing",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "Listen address (default from [dev] config)"},
					&cli.StringFlag{Name: "seed-user", Usage: "Create this user at startup"},
					&cli.StringFlag{Name: "seed-password", Usage: "Password for --seed-user", Value: "password"},
				},
				Action: r.DevServe,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive movie browser",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-file", Usage: "Write logs here while the TUI runs", Value: "./tmp/myflix-tui.log"},
		},
		Action: r.TUI,
	}
}
