package container

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reglet-dev/translevel/internal/infrastructure/config"
)

func TestNew(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	c := New(Options{Logger: logger, Settings: config.Settings{Format: "json", Concurrency: 3}})

	assert.NotNil(t, c.DatasetLoader())
	assert.Contains(t, c.FormatterFactory().SupportedFormats(), "xmgrace")
	assert.Equal(t, "json", c.Settings().Format)
	assert.Same(t, logger, c.Logger())
	assert.NotNil(t, c.DiagramService(0))
	assert.NotNil(t, c.DiagramService(2))
}

func TestNew_DefaultLogger(t *testing.T) {
	c := New(Options{})
	assert.Same(t, slog.Default(), c.Logger())
}
