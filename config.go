package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/etnz/debedit/deb"
	"github.com/etnz/debedit/deb822"
	"go.yaml.in/yaml/v3"
)

// defaultConfigPath is read when --config is not given. A missing file
// there is not an error.
const defaultConfigPath = ".debedit.yaml"

// Config is a business object holding the application's configuration.
type Config struct {
	// Format configures `debedit fmt`.
	Format deb.ControlFormat
	// SortParagraphs orders the paragraphs of documents other than
	// debian/control by their first field.
	SortParagraphs bool
	// LogLevel is the minimum level logged to stderr.
	LogLevel log.Level
	// Color is "auto", "always" or "never".
	Color string
}

// defaultConfig is the configuration used when no file is found.
func defaultConfig() *Config {
	return &Config{
		Format: deb.ControlFormat{
			Indentation:           1,
			MaxLineLengthOneLiner: 79,
		},
		LogLevel: log.InfoLevel,
		Color:    "auto",
	}
}

// loadConfig reads the configuration at path. If path is empty the default
// path is tried, and defaults are returned when it does not exist.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return defaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	cfg, err := decodeConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(data []byte) (*Config, error) {
	// Internal DTOs for YAML deserialization
	type yamlFormat struct {
		Indentation           string `yaml:"indentation"`
		ImmediateEmptyLine    *bool  `yaml:"immediate_empty_line"`
		MaxLineLengthOneLiner *int   `yaml:"max_line_length_one_liner"`
		SortFields            *bool  `yaml:"sort_fields"`
		SortParagraphs        *bool  `yaml:"sort_paragraphs"`
	}
	type yamlLog struct {
		Level string `yaml:"level"`
	}
	type yamlConfig struct {
		Format yamlFormat `yaml:"format"`
		Log    yamlLog    `yaml:"log"`
		Color  string     `yaml:"color"`
	}

	var dto yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil && err != io.EOF {
		return nil, err
	}

	// Map DTO to business object, over the defaults.
	config := defaultConfig()
	if dto.Format.Indentation != "" {
		ind, err := parseIndentation(dto.Format.Indentation)
		if err != nil {
			return nil, err
		}
		config.Format.Indentation = ind
	}
	if v := dto.Format.ImmediateEmptyLine; v != nil {
		config.Format.ImmediateEmptyLine = *v
	}
	if v := dto.Format.MaxLineLengthOneLiner; v != nil {
		if *v < 0 {
			return nil, fmt.Errorf("max_line_length_one_liner: must not be negative, got %d", *v)
		}
		config.Format.MaxLineLengthOneLiner = *v
	}
	if v := dto.Format.SortFields; v != nil {
		config.Format.SortFields = *v
	}
	if v := dto.Format.SortParagraphs; v != nil {
		config.SortParagraphs = *v
	}
	if dto.Log.Level != "" {
		level, err := log.ParseLevel(dto.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("log.level: %w", err)
		}
		config.LogLevel = level
	}
	if dto.Color != "" {
		if err := validateColor(dto.Color); err != nil {
			return nil, err
		}
		config.Color = dto.Color
	}
	return config, nil
}

// parseIndentation accepts "field-name-length" or a width of at least one
// column.
func parseIndentation(s string) (deb822.Indentation, error) {
	if s == "field-name-length" {
		return deb822.FieldNameLength, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("indentation: want field-name-length or a width >= 1, got %q", s)
	}
	return deb822.Indentation(n), nil
}

func validateColor(s string) error {
	switch s {
	case "auto", "always", "never":
		return nil
	}
	return fmt.Errorf("color: want auto, always or never, got %q", s)
}
