package main

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ProfileShow prints the account and its favorites.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	ctrl, err := r.controller()
	if err != nil {
		return err
	}

	profile, err := ctrl.Profile(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"user": profile.User, "favorites": profile.Favorites}, cmd.Bool("pretty"))
	}
	r.writeProfile(profile)
	return nil
}

// ProfileEdit submits only the flags that were given.
func (r *Runner) ProfileEdit(ctx context.Context, cmd *cli.Command) error {
	ctrl, err := r.controller()
	if err != nil {
		return err
	}

	update, fields := profileUpdate(cmd)
	r.logger.Debug("editing profile", "fields", fields)

	profile, err := ctrl.EditProfile(ctx, update)
	if err != nil {
		return err
	}

	r.writePlain("✓ %s\n", tasks.ProfileUpdatedNotice)
	r.writeProfile(profile)
	return nil
}

// profileUpdate builds an update from the edit flags that were set, in flag order.
func profileUpdate(cmd *cli.Command) (models.ProfileUpdate, []string) {
	var update models.ProfileUpdate
	var fields []string
	for _, f := range []struct {
		name  string
		field **string
	}{
		{"username", &update.Username},
		{"password", &update.Password},
		{"email", &update.Email},
		{"birthday", &update.Birthday},
	} {
		if cmd.IsSet(f.name) {
			value := cmd.String(f.name)
			*f.field = &value
			fields = append(fields, f.name)
		}
	}
	return update, fields
}

// ProfileDelete deletes the account after confirmation and clears the session.
func (r *Runner) ProfileDelete(ctx context.Context, cmd *cli.Command) error {
	ctrl, err := r.controller()
	if err != nil {
		return err
	}

	s, err := ctrl.Session(ctx)
	if err != nil {
		return err
	}

	if !cmd.Bool("yes") && s.IsLoggedIn() {
		r.writePlain("Delete account %s? This cannot be undone. [y/N]: ", s.Username)
		answer, err := r.input.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			return r.writePlain("Aborted.\n")
		}
	}

	if err := ctrl.DeleteAccount(ctx); err != nil {
		return err
	}
	return r.writePlain("✓ %s\n", tasks.AccountDeletedNotice)
}

func (r *Runner) writeProfile(profile *tasks.ProfileView) {
	u := profile.User
	r.writePlainHeader(u.Username)
	if u.Email != "" {
		r.writePlain("Email: %s\n", u.Email)
	}
	if !u.Birthday.IsZero() {
		r.writePlain("Birthday: %s\n", u.Birthday)
	}

	if len(profile.Favorites) == 0 {
		r.writePlainln("No favorite movies yet.")
		return
	}
	r.writePlainln("Favorite movies:")
	for _, m := range profile.Favorites {
		r.writeMovieLine(m, true)
	}
}
