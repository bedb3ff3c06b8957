// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"io"

	"github.com/reglet-dev/translevel/internal/domain/diagram"
	"github.com/reglet-dev/translevel/internal/domain/entities"
)

// DatasetLoader loads datasets from storage.
type DatasetLoader interface {
	Load(path string) (*entities.Dataset, error)
	LoadFromReader(r io.Reader) (*entities.Dataset, error)
}

// OutputFormatter formats diagram results.
type OutputFormatter interface {
	Format(result *diagram.Result) error
}

// FormatterOptions tunes formatter behaviour.
type FormatterOptions struct {
	// Indent pretty-prints structured output.
	Indent bool
	// NoColor disables ANSI colours in the table format.
	NoColor bool
}

// OutputFormatterFactory creates formatters by name.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
	SupportedFormats() []string
}
