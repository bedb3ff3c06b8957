package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apperrors "github.com/reglet-dev/translevel/internal/application/errors"
	"github.com/reglet-dev/translevel/internal/infrastructure/config"
	"github.com/reglet-dev/translevel/internal/infrastructure/container"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with settings loading and container
// initialization.
func withContainer(handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()

		settings, err := config.LoadSettings(viper.GetViper())
		if err != nil {
			return apperrors.NewConfigurationError("settings", "invalid settings", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		return handler(&CommandContext{
			Container: container.New(container.Options{Logger: logger, Settings: settings}),
			Logger:    logger,
			Context:   ctx,
		}, cmd, args)
	}
}
