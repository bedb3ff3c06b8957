// Package container provides dependency injection for the application.
package container

import (
	"log/slog"

	"github.com/reglet-dev/translevel/internal/application/ports"
	"github.com/reglet-dev/translevel/internal/application/services"
	"github.com/reglet-dev/translevel/internal/infrastructure/config"
	"github.com/reglet-dev/translevel/internal/infrastructure/output"
)

// Container holds all application dependencies.
type Container struct {
	datasetLoader ports.DatasetLoader
	formatters    ports.OutputFormatterFactory
	settings      config.Settings
	logger        *slog.Logger
}

// Options configure the container.
type Options struct {
	Logger   *slog.Logger
	Settings config.Settings
}

// New creates a new dependency injection container.
func New(opts Options) *Container {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Container{
		datasetLoader: config.NewDatasetLoader(),
		formatters:    output.NewFormatterFactory(),
		settings:      opts.Settings,
		logger:        opts.Logger,
	}
}

// DatasetLoader returns the dataset loader.
func (c *Container) DatasetLoader() ports.DatasetLoader {
	return c.datasetLoader
}

// FormatterFactory returns the output formatter factory.
func (c *Container) FormatterFactory() ports.OutputFormatterFactory {
	return c.formatters
}

// Settings returns the user settings.
func (c *Container) Settings() config.Settings {
	return c.settings
}

// Logger returns the logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// DiagramService returns a diagram service limited to concurrency parallel
// defects. Zero falls back to the configured setting.
func (c *Container) DiagramService(concurrency int) *services.DiagramService {
	if concurrency == 0 {
		concurrency = c.settings.Concurrency
	}
	return services.NewDiagramService(
		services.WithLogger(c.logger),
		services.WithConcurrency(concurrency),
	)
}
