package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/server"
	"github.com/desertthunder/myflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// DevServe runs the in-memory stub API until interrupted.
func (r *Runner) DevServe(ctx context.Context, cmd *cli.Command) error {
	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Dev.Addr()
	}

	srv, err := server.New(server.Options{
		Secret: r.config.Dev.Secret,
		Logger: shared.WithLogger(r.logger, "component", "server"),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}

	if username := cmd.String("seed-user"); username != "" {
		user, err := srv.Store().CreateUser(models.Registration{
			Username: username,
			Password: cmd.String("seed-password"),
			Email:    username + "@example.com",
		})
		if err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		r.logger.Info("seeded user", "username", user.Username)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.writePlain("Stub API listening on http://%s\n", addr)
	r.writePlain("Point the client at it with MYFLIX_API_URL=http://%s\n", addr)
	return srv.ListenAndServe(ctx, addr)
}
