package app

import (
	"os"
	"strconv"
	"strings"

	"github.com/hyperifyio/amcextract/internal/amc"
)

// Environment variables read by ApplyEnvToConfig.
const (
	EnvInputs          = "AMC_INPUTS"
	EnvOutput          = "AMC_OUTPUT"
	EnvFormat          = "AMC_FORMAT"
	EnvFields          = "AMC_FIELDS"
	EnvEncoding        = "AMC_ENCODING"
	EnvRessorts        = "AMC_RESSORTS"
	EnvWorkers         = "AMC_WORKERS"
	EnvContinueOnError = "AMC_CONTINUE_ON_ERROR"
	EnvSummary         = "AMC_SUMMARY"
	EnvVerbose         = "VERBOSE"
)

// splitList splits a comma-separated env value, dropping blanks.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env. Unparsable values are ignored.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if len(cfg.Inputs) == 0 {
		cfg.Inputs = splitList(os.Getenv(EnvInputs))
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = os.Getenv(EnvOutput)
	}
	if cfg.Format == "" {
		cfg.Format = os.Getenv(EnvFormat)
	}
	if cfg.Fields.Empty() {
		if list := splitList(os.Getenv(EnvFields)); len(list) > 0 {
			if fields, err := amc.ParseFields(list); err == nil {
				cfg.Fields = fields
			}
		}
	}
	if cfg.Ressorts.Len() == 0 {
		if list := splitList(os.Getenv(EnvRessorts)); len(list) > 0 {
			cfg.Ressorts = amc.NewTopicSet(list...)
		}
	}
	if cfg.Encoding == "" {
		cfg.Encoding = os.Getenv(EnvEncoding)
	}
	if cfg.Workers == 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(EnvWorkers))); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if cfg.SummaryPath == "" {
		cfg.SummaryPath = os.Getenv(EnvSummary)
	}

	// Booleans
	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			if s == "1" || s == "true" || s == "yes" || s == "on" {
				*dst = true
			}
		}
	}
	setBool(&cfg.ContinueOnError, EnvContinueOnError)
	setBool(&cfg.Verbose, EnvVerbose)
}
