package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/myflix/internal/repositories"
	"github.com/desertthunder/myflix/internal/services"
	"github.com/desertthunder/myflix/internal/session"
	"github.com/desertthunder/myflix/internal/shared"
	"github.com/desertthunder/myflix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The database, session store, and API client are opened on first use so commands such as
// setup and dev serve never touch them.
type Runner struct {
	configPath string
	config     *shared.Config
	logger     *log.Logger
	output     io.Writer
	input      *bufio.Reader
	httpClient *http.Client
	transport  http.RoundTripper
	openURL    func(string) error

	db       *sql.DB
	sessions *session.Manager
	api      services.MovieAPI
	cache    *repositories.MovieCache
	ctrl     *tasks.Controller
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
	HTTPClient *http.Client
	// Transport is used by the API client; nil means [http.DefaultTransport].
	Transport http.RoundTripper
	OpenURL   func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = "config.toml"
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}

	return &Runner{
		configPath: opts.ConfigPath,
		config:     opts.Config,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      bufio.NewReader(opts.Input),
		httpClient: opts.HTTPClient,
		transport:  opts.Transport,
		openURL:    opts.OpenURL,
	}
}

func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "myflix",
		Usage:   "Browse a movie catalog and manage your favorites",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   r.configPath,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.prepare,
		After:    r.close,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, moviesCommand, directorsCommand, genresCommand,
		favoritesCommand, profileCommand, cacheCommand, devCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// prepare loads configuration and applies the log level before any command runs.
func (r *Runner) prepare(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if r.config == nil {
		config, err := shared.ResolveConfig(r.configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
	}

	level := r.config.Log.Level
	if cmd.Bool("verbose") {
		level = "debug"
	}
	shared.SetLogLevel(r.logger, level)
	return ctx, nil
}

func (r *Runner) close(ctx context.Context, cmd *cli.Command) error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db, r.ctrl, r.api, r.sessions, r.cache = nil, nil, nil, nil, nil
	return err
}

// SetLogger replaces the logger used by the runner and anything it builds afterwards.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// controller opens the local store and wires the API client and controller on first use.
func (r *Runner) controller() (*tasks.Controller, error) {
	if r.ctrl != nil {
		return r.ctrl, nil
	}
	if r.config == nil {
		r.config = shared.DefaultConfig()
	}

	db, err := shared.OpenStore(r.config.Database)
	if err != nil {
		return nil, err
	}
	r.db = db
	r.cache = repositories.NewMovieCache(db)
	r.sessions = session.NewManager(repositories.NewSessionStore(db))

	r.api = services.NewClient(services.ClientOptions{
		BaseURL:   r.config.API.BaseURL,
		Timeout:   r.config.API.Timeout,
		Transport: r.transport,
		Logger:    shared.WithLogger(r.logger, "component", "api"),
	}, r.sessions)

	r.ctrl = tasks.NewController(r.api, r.sessions,
		tasks.WithLogger(r.logger),
		tasks.WithMovieCache(r.cache),
	)
	return r.ctrl, nil
}

func (r *Runner) detailed() bool {
	return r.config != nil && r.config.Client.DetailedErrors
}

// describe turns a command error into the line shown to the user.
//
// API failures and missing sessions go through [tasks.Notice]; local errors such as bad flags
// are printed as is.
func (r *Runner) describe(err error) string {
	var apiErr *services.APIError
	if errors.As(err, &apiErr) || errors.Is(err, shared.ErrNotAuthenticated) {
		return tasks.Notice(err, r.detailed())
	}
	return err.Error()
}

// readSecret returns value, or prompts for a line on the runner's input when value is empty.
func (r *Runner) readSecret(prompt, value string) (string, error) {
	if value != "" {
		return value, nil
	}

	r.writePlain("%s: ", prompt)
	line, err := r.input.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(prompt), err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, strings.ToLower(prompt))
	}
	return line, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
