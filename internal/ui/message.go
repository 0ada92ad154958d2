package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/session"
	"github.com/desertthunder/myflix/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
	err  error
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSessionLoaded MsgKind = iota
	MsgLoggedIn
	MsgCatalogLoaded
	MsgDialogLoaded
	MsgFavoriteToggled
	MsgProfileLoaded
	MsgLoggedOut
	MsgToastExpired
)

// dialog is the content of [DialogView].
type dialog struct {
	title string
	body  string
}

// sessionLoadedMsg is the constructor for [MsgSessionLoaded]
func sessionLoadedMsg(s session.Session, err error) Msg {
	return Msg{kind: MsgSessionLoaded, data: s, err: err}
}

// loggedInMsg is the constructor for [MsgLoggedIn]
func loggedInMsg(result *models.LoginResult, err error) Msg {
	return Msg{kind: MsgLoggedIn, data: result, err: err}
}

// catalogLoadedMsg is the constructor for [MsgCatalogLoaded]
func catalogLoadedMsg(view *tasks.CatalogView, err error) Msg {
	return Msg{kind: MsgCatalogLoaded, data: view, err: err}
}

// dialogLoadedMsg is the constructor for [MsgDialogLoaded]
func dialogLoadedMsg(d dialog, err error) Msg {
	return Msg{kind: MsgDialogLoaded, data: d, err: err}
}

// favoriteToggledMsg is the constructor for [MsgFavoriteToggled]
func favoriteToggledMsg(result tasks.ToggleResult, err error) Msg {
	return Msg{kind: MsgFavoriteToggled, data: result, err: err}
}

// profileLoadedMsg is the constructor for [MsgProfileLoaded]
func profileLoadedMsg(profile *tasks.ProfileView, err error) Msg {
	return Msg{kind: MsgProfileLoaded, data: profile, err: err}
}

// loggedOutMsg is the constructor for [MsgLoggedOut]
func loggedOutMsg(err error) Msg {
	return Msg{kind: MsgLoggedOut, err: err}
}

// toastExpiredMsg is the constructor for [MsgToastExpired]
func toastExpiredMsg(seq int) Msg {
	return Msg{kind: MsgToastExpired, data: seq}
}
