// Package config provides infrastructure for loading datasets and user
// settings. It handles YAML parsing, schema validation and file I/O.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	apperrors "github.com/reglet-dev/translevel/internal/application/errors"
	"github.com/reglet-dev/translevel/internal/domain/entities"
)

//go:embed dataset.schema.json
var datasetSchemaJSON []byte

// MaxDatasetSize caps the bytes read from a dataset document.
const MaxDatasetSize = 16 << 20

var (
	datasetSchemaOnce sync.Once
	datasetSchema     *jsonschema.Schema
	datasetSchemaErr  error
)

func compiledDatasetSchema() (*jsonschema.Schema, error) {
	datasetSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("dataset.schema.json", bytes.NewReader(datasetSchemaJSON)); err != nil {
			datasetSchemaErr = fmt.Errorf("failed to add dataset schema resource: %w", err)
			return
		}
		datasetSchema, datasetSchemaErr = compiler.Compile("dataset.schema.json")
	})
	return datasetSchema, datasetSchemaErr
}

// DatasetLoader handles loading datasets from YAML files.
// It implements ports.DatasetLoader.
type DatasetLoader struct{}

// NewDatasetLoader creates a new dataset loader.
func NewDatasetLoader() *DatasetLoader {
	return &DatasetLoader{}
}

// Load loads, validates and decodes a dataset from a YAML file.
func (l *DatasetLoader) Load(path string) (*entities.Dataset, error) {
	// Security: Use os.OpenRoot to prevent path traversal attacks
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset directory: %w", err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	file, err := root.Open(base)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	return l.LoadFromReader(file)
}

// LoadFromReader loads a dataset from an io.Reader.
// The document is checked against the embedded JSON Schema before it is
// decoded, then the structural invariants are validated.
func (l *DatasetLoader) LoadFromReader(r io.Reader) (*entities.Dataset, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDatasetSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	if len(data) > MaxDatasetSize {
		return nil, apperrors.NewValidationError("dataset", fmt.Sprintf("document exceeds %d bytes", MaxDatasetSize))
	}

	if err := validateAgainstSchema(data); err != nil {
		return nil, err
	}

	var dataset entities.Dataset
	if err := yaml.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to decode dataset YAML: %w", err)
	}

	if err := recordElementOrder(data, &dataset); err != nil {
		return nil, err
	}

	if err := dataset.Validate(); err != nil {
		return nil, apperrors.NewValidationError("dataset", err.Error())
	}

	return &dataset, nil
}

func validateAgainstSchema(data []byte) error {
	schema, err := compiledDatasetSchema()
	if err != nil {
		return err
	}

	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("failed to parse dataset YAML: %w", err)
	}

	var doc any
	decoder := json.NewDecoder(bytes.NewReader(jsonData))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("failed to parse dataset YAML: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			details := collectSchemaMessages(validationErr)
			return apperrors.NewValidationError("dataset",
				"document does not match schema:\n    - "+strings.Join(details, "\n    - "),
				details...)
		}
		return fmt.Errorf("dataset schema validation failed: %w", err)
	}
	return nil
}

// collectSchemaMessages flattens a JSON Schema validation error into
// "location: message" lines.
func collectSchemaMessages(err *jsonschema.ValidationError) []string {
	var messages []string

	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if e.Message != "" && len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	if len(messages) == 0 {
		messages = append(messages, err.Error())
	}
	return messages
}

// recordElementOrder copies the written key order of every defect's
// stoichiometry into DefectSpec.ElementOrder.
func recordElementOrder(data []byte, dataset *entities.Dataset) error {
	var ordered struct {
		Defects []struct {
			Stoichiometry yaml.MapSlice `yaml:"stoichiometry"`
		} `yaml:"defects"`
	}
	if err := yaml.Unmarshal(data, &ordered); err != nil {
		return fmt.Errorf("failed to decode dataset YAML: %w", err)
	}

	for i, def := range ordered.Defects {
		if i >= len(dataset.Defects) {
			break
		}
		order := make([]string, 0, len(def.Stoichiometry))
		for _, item := range def.Stoichiometry {
			order = append(order, fmt.Sprint(item.Key))
		}
		dataset.Defects[i].ElementOrder = order
	}
	return nil
}
