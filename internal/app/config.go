package app

import (
	"github.com/hyperifyio/amcextract/internal/amc"
	"github.com/hyperifyio/amcextract/internal/render"
)

// Defaults shared by flag parsing and the config file overlay.
const (
	DefaultOutput  = "-"
	DefaultFormat  = render.FormatCSV
	DefaultWorkers = 1
)

// Config holds runtime configuration for the application.
type Config struct {
	// Inputs are corpus files processed in order.
	Inputs []string
	// OutputPath is the table destination; "-" or empty writes to stdout.
	OutputPath string
	Format     string

	// Fields selects the output columns. Zero means amc.DefaultFields().
	Fields amc.FieldSet
	// Encoding decodes inputs that lack an XML encoding declaration.
	Encoding string

	// Ressorts keeps only records sharing a tag with this set. Empty
	// disables the filter; a non-empty set requires the ressorts field.
	Ressorts amc.TopicSet

	// Behavior
	Workers         int
	ContinueOnError bool
	TopicsOnly      bool
	SummaryPath     string
	Verbose         bool
}

// ApplyDefaults fills zero values with their defaults.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutput
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.Fields.Empty() {
		cfg.Fields = amc.DefaultFields()
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
}
