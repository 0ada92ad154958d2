// Package ui implements an interactive terminal client using bubbletea's Elm architecture.
//
// The TUI moves between four views:
//  1. [LoginView] : Username and password form, skipped when a session is stored
//  2. [CatalogListView] : Every movie, with a ★ on the user's favorites
//  3. [DialogView] : Synopsis, genre, or director details for the selected movie
//  4. [ProfileView] : Account details and favorite titles
//
// Every network call goes through [tasks.Controller] inside a tea.Cmd, so the call runs off the
// update loop and delivers exactly one [Msg]. Failures and successes show as a status line that
// clears itself after a few seconds.
//
// Keys: enter synopsis, g genre, d director, f toggle favorite, p profile, x logout, esc back, q quit.
package ui
