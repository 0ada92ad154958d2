package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/services"
	"github.com/desertthunder/myflix/internal/session"
	"github.com/desertthunder/myflix/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	CatalogListView
	DialogView
	ProfileView
)

func (v ViewState) String() string {
	switch v {
	case LoginView:
		return "login"
	case CatalogListView:
		return "catalog"
	case DialogView:
		return "dialog"
	case ProfileView:
		return "profile"
	default:
		return ""
	}
}

const defaultToastTTL = 4 * time.Second

// Options configures a [Model].
type Options struct {
	// Detailed shows kind-specific error text instead of the generic message.
	Detailed bool
	// ToastTTL is how long the status line stays up (default: 4s).
	ToastTTL time.Duration
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	ctrl     *tasks.Controller
	detailed bool
	toastTTL time.Duration

	view   ViewState
	width  int
	height int

	inputs []textinput.Model
	focus  int

	catalog   *tasks.CatalogView
	movieList list.Model
	dialog    dialog
	profile   *tasks.ProfileView

	loading  bool
	toast    string
	toastErr bool
	toastSeq int

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model backed by ctrl.
func NewModel(ctx context.Context, ctrl *tasks.Controller, opts Options) *Model {
	if opts.ToastTTL <= 0 {
		opts.ToastTTL = defaultToastTTL
	}

	movieList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	movieList.Title = "Movies"
	movieList.SetShowHelp(false)
	movieList.SetFilteringEnabled(false)
	movieList.SetShowStatusBar(false)

	m := &Model{
		ctx:       ctx,
		ctrl:      ctrl,
		detailed:  opts.Detailed,
		toastTTL:  opts.ToastTTL,
		view:      LoginView,
		movieList: movieList,
		help:      help.New(),
		keys:      newKeyMap(),
	}
	m.resetInputs()
	return m
}

// State returns the current view.
func (m *Model) State() ViewState { return m.view }

// Toast returns the status line text, if any.
func (m *Model) Toast() string { return m.toast }

func (m *Model) resetInputs() {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 64
	username.Prompt = "Username: "

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.Prompt = "Password: "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	m.inputs = []textinput.Model{username, password}
	m.focus = 0
	m.inputs[0].Focus()
}

// Init loads the stored session.
func (m *Model) Init() tea.Cmd {
	return m.loadSession()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.movieList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQ) {
			return m, tea.Quit
		}
		switch m.view {
		case LoginView:
			return m.handleLoginKeys(msg)
		case CatalogListView:
			return m.handleCatalogKeys(msg)
		case DialogView:
			return m.handleDialogKeys(msg)
		case ProfileView:
			return m.handleProfileKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSessionLoaded:
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		if s := msg.data.(session.Session); s.IsLoggedIn() {
			m.loading = true
			return m, m.loadCatalog()
		}
		m.view = LoginView
		return m, nil

	case MsgLoggedIn:
		m.loading = false
		if msg.err != nil {
			m.inputs[1].SetValue("")
			return m, m.fail(msg.err)
		}
		result := msg.data.(*models.LoginResult)
		m.resetInputs()
		m.loading = true
		return m, tea.Batch(m.notify(tasks.LoginNotice(result.User.Username)), m.loadCatalog())

	case MsgCatalogLoaded:
		m.loading = false
		if msg.err != nil {
			if services.KindOf(msg.err) == services.KindUnauthorized {
				m.view = LoginView
			}
			return m, m.fail(msg.err)
		}
		m.catalog = msg.data.(*tasks.CatalogView)
		m.refreshItems()
		m.view = CatalogListView
		return m, nil

	case MsgDialogLoaded:
		m.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.dialog = msg.data.(dialog)
		m.view = DialogView
		return m, nil

	case MsgFavoriteToggled:
		m.loading = false
		m.refreshItems()
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		return m, m.notify(msg.data.(tasks.ToggleResult).Message())

	case MsgProfileLoaded:
		m.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.profile = msg.data.(*tasks.ProfileView)
		m.view = ProfileView
		return m, nil

	case MsgLoggedOut:
		m.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.catalog = nil
		m.profile = nil
		m.movieList.SetItems(nil)
		m.resetInputs()
		m.view = LoginView
		return m, m.notify(tasks.LoggedOutNotice)

	case MsgToastExpired:
		if msg.data.(int) == m.toastSeq {
			m.toast = ""
			m.toastErr = false
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.submit):
		if m.loading {
			return m, nil
		}
		username := strings.TrimSpace(m.inputs[0].Value())
		password := m.inputs[1].Value()
		if username == "" || password == "" {
			return m, m.warn("Username and password are required.")
		}
		m.loading = true
		return m, m.login(models.Credentials{Username: username, Password: password})

	case key.Matches(msg, m.keys.next, m.keys.up, m.keys.down) && msg.Type != tea.KeyRunes:
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.inputs)
		m.inputs[m.focus].Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) handleCatalogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.profile):
		m.loading = true
		return m, m.loadProfile()
	case key.Matches(msg, m.keys.logout):
		m.loading = true
		return m, m.logout()
	}

	if movie, ok := m.selected(); ok {
		switch {
		case key.Matches(msg, m.keys.synopsis):
			m.dialog = synopsisDialog(movie)
			m.view = DialogView
			return m, nil
		case key.Matches(msg, m.keys.genre):
			m.loading = true
			return m, m.loadGenre(movie.Genre.Name)
		case key.Matches(msg, m.keys.director):
			m.loading = true
			return m, m.loadDirector(movie.Director.Name)
		case key.Matches(msg, m.keys.favorite):
			m.loading = true
			return m, m.toggleFavorite(movie.ID)
		}
	}

	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

func (m *Model) handleDialogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back, m.keys.synopsis):
		m.view = CatalogListView
	}
	return m, nil
}

func (m *Model) handleProfileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = CatalogListView
	case key.Matches(msg, m.keys.logout):
		m.loading = true
		return m, m.logout()
	}
	return m, nil
}

func (m *Model) selected() (models.Movie, bool) {
	if item, ok := m.movieList.SelectedItem().(movieItem); ok {
		return item.movie, true
	}
	return models.Movie{}, false
}

// refreshItems rebuilds the list from the catalog view so favorite markers follow the server.
func (m *Model) refreshItems() {
	if m.catalog == nil {
		return
	}
	m.movieList.Title = fmt.Sprintf("Movies for %s", m.catalog.Username)
	m.movieList.SetItems(movieItems(m.catalog.Movies(), m.catalog.Favorites()))
}

func (m *Model) notify(text string) tea.Cmd {
	return m.setToast(text, false)
}

func (m *Model) warn(text string) tea.Cmd {
	return m.setToast(text, true)
}

func (m *Model) fail(err error) tea.Cmd {
	return m.setToast(tasks.Notice(err, m.detailed), true)
}

func (m *Model) setToast(text string, isErr bool) tea.Cmd {
	m.toastSeq++
	seq := m.toastSeq
	m.toast = text
	m.toastErr = isErr
	return tea.Tick(m.toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg(seq) })
}

func synopsisDialog(movie models.Movie) dialog {
	return dialog{title: movie.Title, body: movie.Description}
}

func genreDialog(g *models.Genre) dialog {
	return dialog{title: g.Name, body: g.Description}
}

func directorDialog(d *models.Director) dialog {
	body := d.Bio
	if span := d.Lifespan(); span != "" {
		body = fmt.Sprintf("%s\n\n%s", span, body)
	}
	return dialog{title: d.Name, body: body}
}

func (m *Model) loadSession() tea.Cmd {
	return func() tea.Msg {
		s, err := m.ctrl.Session(m.ctx)
		return sessionLoadedMsg(s, err)
	}
}

func (m *Model) login(creds models.Credentials) tea.Cmd {
	return func() tea.Msg {
		return loggedInMsg(m.ctrl.Login(m.ctx, creds))
	}
}

func (m *Model) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg(m.ctrl.Catalog(m.ctx))
	}
}

func (m *Model) loadGenre(name string) tea.Cmd {
	return func() tea.Msg {
		g, err := m.ctrl.Genre(m.ctx, name)
		if err != nil {
			return dialogLoadedMsg(dialog{}, err)
		}
		return dialogLoadedMsg(genreDialog(g), nil)
	}
}

func (m *Model) loadDirector(name string) tea.Cmd {
	return func() tea.Msg {
		d, err := m.ctrl.Director(m.ctx, name)
		if err != nil {
			return dialogLoadedMsg(dialog{}, err)
		}
		return dialogLoadedMsg(directorDialog(d), nil)
	}
}

func (m *Model) toggleFavorite(movieID string) tea.Cmd {
	view := m.catalog
	return func() tea.Msg {
		return favoriteToggledMsg(m.ctrl.ToggleFavorite(m.ctx, view, movieID))
	}
}

func (m *Model) loadProfile() tea.Cmd {
	return func() tea.Msg {
		return profileLoadedMsg(m.ctrl.Profile(m.ctx))
	}
}

func (m *Model) logout() tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg(m.ctrl.Logout(m.ctx))
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case LoginView:
		body = m.renderLogin()
	case CatalogListView:
		body = m.renderCatalog()
	case DialogView:
		body = m.renderDialog()
	case ProfileView:
		body = m.renderProfile()
	}
	return fmt.Sprintf("%s\n\n%s", body, m.renderStatus())
}

func (m *Model) renderStatus() string {
	switch {
	case m.toast != "" && m.toastErr:
		return styles.err.Render(m.toast)
	case m.toast != "":
		return styles.ok.Render(m.toast)
	case m.loading:
		return styles.help.Render("Loading…")
	default:
		return ""
	}
}

func (m *Model) renderLogin() string {
	title := styles.title.Render("Log in to myFlix")
	fields := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		fields[i] = in.View()
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.submit, m.keys.next, m.keys.forceQ})
	return fmt.Sprintf("%s\n%s\n\n%s", title, strings.Join(fields, "\n"), helpView)
}

func (m *Model) renderCatalog() string {
	helpKeys := []key.Binding{
		m.keys.synopsis, m.keys.genre, m.keys.director, m.keys.favorite,
		m.keys.profile, m.keys.logout, m.keys.quit,
	}
	return fmt.Sprintf("%s\n\n%s", m.movieList.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderDialog() string {
	box := styles.dialog.Render(fmt.Sprintf("%s\n%s", styles.title.Render(m.dialog.title), m.dialog.body))
	return fmt.Sprintf("%s\n\n%s", box, m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit}))
}

func (m *Model) renderProfile() string {
	if m.profile == nil {
		return styles.warn.Render("No profile loaded.")
	}

	u := m.profile.User
	var b strings.Builder
	b.WriteString(styles.title.Render("Profile"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", styles.label.Render("Username:"), u.Username)
	fmt.Fprintf(&b, "%s %s\n", styles.label.Render("Email:"), u.Email)
	if !u.Birthday.IsZero() {
		fmt.Fprintf(&b, "%s %s\n", styles.label.Render("Birthday:"), u.Birthday)
	}

	b.WriteString("\n")
	b.WriteString(styles.label.Render("Favorite movies:"))
	b.WriteString("\n")
	if len(m.profile.Favorites) == 0 {
		b.WriteString(styles.help.Render("  No favorite movies yet."))
		b.WriteString("\n")
	}
	for _, movie := range m.profile.Favorites {
		fmt.Fprintf(&b, "  %s%s\n", favoriteMarker, movie.Title)
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.logout, m.keys.quit}))
	return b.String()
}
