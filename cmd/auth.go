package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/session"
	"github.com/desertthunder/myflix/internal/shared"
	"github.com/desertthunder/myflix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// AuthRegister creates an account and optionally logs in with it.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	ctrl, err := r.controller()
	if err != nil {
		return err
	}

	password, err := r.readSecret("Password", cmd.String("password"))
	if err != nil {
		return err
	}

	reg := models.Registration{
		Username: cmd.String("username"),
		Password: password,
		Email:    cmd.String("email"),
		Birthday: cmd.String("birthday"),
	}

	if !cmd.Bool("login") {
		if _, err := ctrl.Register(ctx, reg); err != nil {
			return err
		}
		return r.writePlain("✓ %s\n", tasks.RegisteredNotice)
	}

	result, err := ctrl.RegisterAndLogin(ctx, reg)
	if err != nil {
		return err
	}
	r.writePlain("✓ %s\n", tasks.RegisteredNotice)
	return r.writePlain("✓ %s\n", tasks.LoginNotice(result.User.Username))
}

// AuthLogin exchanges credentials for a token and stores the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	ctrl, err := r.controller()
	if err != nil {
		return err
	}

	password, err := r.readSecret("Password", cmd.String("password"))
	if err != nil {
		return err
	}

	result, err := ctrl.Login(ctx, models.Credentials{Username: cmd.String("username"), Password: password})
	if err != nil {
		return err
	}
	return r.writePlain("✓ %s\n", tasks.LoginNotice(result.User.Username))
}

// AuthLogout clears every stored session key.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	ctrl, err := r.controller()
	if err != nil {
		return err
	}

	if err := ctrl.Logout(ctx); err != nil {
		return err
	}
	return r.writePlain("✓ %s\n", tasks.LoggedOutNotice)
}

// AuthStatus prints the stored session. With --verify it also asks the server whether the token is accepted.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	ctrl, err := r.controller()
	if err != nil {
		return err
	}

	s, err := ctrl.Session(ctx)
	if err != nil {
		return err
	}

	r.writePlain("State: %s\n", s.State())
	if !s.IsLoggedIn() {
		return r.writePlain("✗ Not logged in\n")
	}
	r.writePlain("User: %s\n", s.Username)

	claims, err := session.ParseClaims(s.Token)
	if err != nil {
		r.logger.Debug("token is not a readable JWT", "error", err)
		r.writePlain("Token: present (opaque)\n")
	} else {
		if !claims.IssuedAt.IsZero() {
			r.writePlain("Issued: %s\n", claims.IssuedAt.Local().Format(time.RFC1123))
		}
		if !claims.ExpiresAt.IsZero() {
			r.writePlain("Expires: %s\n", claims.ExpiresAt.Local().Format(time.RFC1123))
		}
		if claims.Expired(time.Now()) {
			r.writePlain("✗ Token expired; run \"myflix auth login\" again\n")
		}
	}

	if !cmd.Bool("verify") {
		return nil
	}

	if _, err := r.api.User(ctx, s.Username); err != nil {
		r.writePlain("Server: ✗ token rejected\n")
		return err
	}
	return r.writePlain("Server: ✓ token accepted\n")
}

// AuthImport stores a bearer token taken from a cURL command copied from the browser.
//
// The token is kept only if the server accepts it for the given username.
func (r *Runner) AuthImport(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")
	username := strings.TrimSpace(cmd.String("username"))

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}
	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	var req *shared.CurlRequest
	var err error
	if curlFile != "" {
		req, err = shared.ParseCurlFile(curlFile)
	} else {
		req, err = shared.ParseCurlCommand([]byte(curlCmd))
	}
	if err != nil {
		return fmt.Errorf("failed to parse cURL command: %w", err)
	}

	token, err := req.BearerToken()
	if err != nil {
		return err
	}
	if claims, err := session.ParseClaims(token); err == nil && claims.Expired(time.Now()) {
		return fmt.Errorf("%w: token expired at %s", shared.ErrTokenExpired, claims.ExpiresAt.Format(time.RFC3339))
	}

	ctrl, err := r.controller()
	if err != nil {
		return err
	}
	if req.URL != "" && !strings.HasPrefix(req.URL, r.config.API.BaseURL) {
		r.logger.Warn("cURL command targets a different API", "url", req.URL, "base_url", r.config.API.BaseURL)
	}

	if err := r.sessions.Save(ctx, session.Session{Username: username, Token: token}); err != nil {
		return err
	}
	if _, err := r.api.User(ctx, username); err != nil {
		if clearErr := ctrl.Logout(ctx); clearErr != nil {
			r.logger.Error("failed to clear rejected session", "error", clearErr)
		}
		return err
	}

	return r.writePlain("✓ Session imported for %s\n", username)
}
