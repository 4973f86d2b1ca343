package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/komkom/toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/amcextract/internal/amc"
	"github.com/hyperifyio/amcextract/internal/render"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Inputs   []string `yaml:"inputs" json:"inputs"`
	Output   string   `yaml:"output" json:"output"`
	Format   string   `yaml:"format" json:"format"`
	Fields   []string `yaml:"fields" json:"fields"`
	Encoding string   `yaml:"encoding" json:"encoding"`
	Ressorts []string `yaml:"ressorts" json:"ressorts"`

	Workers         int    `yaml:"workers" json:"workers"`
	ContinueOnError bool   `yaml:"continueOnError" json:"continueOnError"`
	Topics          bool   `yaml:"topics" json:"topics"`
	Summary         string `yaml:"summary" json:"summary"`
	Verbose         bool   `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML, JSON or TOML into FileConfig. The format follows
// the file extension; unknown extensions are tried as YAML, then JSON.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	case ".toml":
		// toml.New streams the document as JSON, so the json tags apply.
		if err := json.NewDecoder(toml.New(bytes.NewReader(b))).Decode(&fc); err != nil {
			return fc, fmt.Errorf("parse toml: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from fc into cfg for fields that are still
// zero, so explicit flags and env win even when they equal a default. It must
// run before ApplyDefaults.
func ApplyFileConfig(cfg *Config, fc FileConfig) error {
	if cfg == nil {
		return nil
	}
	if len(cfg.Inputs) == 0 && len(fc.Inputs) > 0 {
		cfg.Inputs = append([]string{}, fc.Inputs...)
	}
	if cfg.OutputPath == "" && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if cfg.Format == "" && fc.Format != "" {
		cfg.Format = fc.Format
	}
	if cfg.Fields.Empty() && len(fc.Fields) > 0 {
		fields, err := amc.ParseFields(fc.Fields)
		if err != nil {
			return fmt.Errorf("config file fields: %w", err)
		}
		cfg.Fields = fields
	}
	if cfg.Ressorts.Len() == 0 && len(fc.Ressorts) > 0 {
		cfg.Ressorts = amc.NewTopicSet(fc.Ressorts...)
	}
	if cfg.Encoding == "" && fc.Encoding != "" {
		cfg.Encoding = fc.Encoding
	}
	if cfg.Workers == 0 && fc.Workers > 0 {
		cfg.Workers = fc.Workers
	}
	if !cfg.ContinueOnError && fc.ContinueOnError {
		cfg.ContinueOnError = true
	}
	if !cfg.TopicsOnly && fc.Topics {
		cfg.TopicsOnly = true
	}
	if cfg.SummaryPath == "" && fc.Summary != "" {
		cfg.SummaryPath = fc.Summary
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
	return nil
}

// Configuration errors.
var (
	ErrNoInputs       = errors.New("config: at least one input file is required")
	ErrInvalidWorkers = errors.New("config: workers must be at least 1")
	ErrNoFields       = errors.New("config: no output fields selected")
	// ErrFilterFields means a ressort filter was set without the ressorts field.
	ErrFilterFields = errors.New("config: ressort filter requires the ressorts field")
)

// ValidateConfig performs minimal validation of a fully merged config.
func ValidateConfig(cfg Config) error {
	if len(cfg.Inputs) == 0 {
		return ErrNoInputs
	}
	for i, in := range cfg.Inputs {
		if strings.TrimSpace(in) == "" {
			return fmt.Errorf("config: input %d is empty", i)
		}
	}
	if cfg.Fields.Empty() {
		return ErrNoFields
	}
	if cfg.Workers < 1 {
		return ErrInvalidWorkers
	}
	if cfg.Ressorts.Len() > 0 && !cfg.Fields.Has(amc.FieldRessorts) {
		return ErrFilterFields
	}
	if !cfg.TopicsOnly {
		if _, err := render.Lookup(cfg.Format); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}
