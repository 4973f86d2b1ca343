package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperifyio/amcextract/internal/amc"
)

// LoadEnvFiles reads KEY=VALUE pairs and populates the environment.
func TestLoadEnvFiles_LoadsKeyValues(t *testing.T) {
	t.Setenv("FOO", "")
	t.Setenv("BAR", "")
	t.Setenv("BAZ", "")

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env.test")
	content := "\n# sample dotenv file\nFOO=alpha\nexport BAR = \"beta gamma\"\nBAZ='x=y'\nnot a pair\n=orphan\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := LoadEnvFiles(envPath); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}

	if got := os.Getenv("FOO"); got != "alpha" {
		t.Fatalf("FOO=%q, want alpha", got)
	}
	if got := os.Getenv("BAR"); got != "beta gamma" {
		t.Fatalf("BAR=%q, want %q", got, "beta gamma")
	}
	if got := os.Getenv("BAZ"); got != "x=y" {
		t.Fatalf("BAZ=%q, want x=y", got)
	}
}

// Later files override earlier ones; missing files are skipped.
func TestLoadEnvFiles_OverrideOrder(t *testing.T) {
	t.Setenv("K", "")
	dir := t.TempDir()
	a := filepath.Join(dir, ".env.a")
	b := filepath.Join(dir, ".env.b")
	if err := os.WriteFile(a, []byte("K=first\n"), 0o600); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := os.WriteFile(b, []byte("K=second\n"), 0o600); err != nil {
		t.Fatalf("write b: %v", err)
	}

	if err := LoadEnvFiles(a, filepath.Join(dir, "missing"), b); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}
	if got := os.Getenv("K"); got != "second" {
		t.Fatalf("override order failed: got %q, want second", got)
	}
}

func TestApplyEnvToConfig_FromEnv(t *testing.T) {
	t.Setenv(EnvInputs, "a.xml, b.xml.gz,")
	t.Setenv(EnvFormat, "jsonl")
	t.Setenv(EnvFields, "date,title")
	t.Setenv(EnvEncoding, "latin1")
	t.Setenv(EnvWorkers, "3")
	t.Setenv(EnvContinueOnError, "yes")
	t.Setenv(EnvRessorts, "pol, wirt")

	var cfg Config
	ApplyEnvToConfig(&cfg)
	if len(cfg.Inputs) != 2 || cfg.Inputs[0] != "a.xml" || cfg.Inputs[1] != "b.xml.gz" {
		t.Fatalf("Inputs=%q", cfg.Inputs)
	}
	if cfg.Format != "jsonl" || cfg.Encoding != "latin1" || cfg.Workers != 3 {
		t.Fatalf("unexpected cfg %+v", cfg)
	}
	if cfg.Fields != amc.NewFieldSet(amc.FieldDate, amc.FieldTitle) {
		t.Fatalf("Fields=%v", cfg.Fields)
	}
	if !cfg.ContinueOnError {
		t.Fatalf("ContinueOnError should be set from env")
	}
	if got := cfg.Ressorts.String(); got != "pol wirt" {
		t.Fatalf("Ressorts=%q", got)
	}
}

func TestApplyEnvToConfig_ExplicitWins(t *testing.T) {
	t.Setenv(EnvFormat, "jsonl")
	t.Setenv(EnvFields, "not-a-field")
	cfg := Config{Format: "markdown"}
	ApplyEnvToConfig(&cfg)
	if cfg.Format != "markdown" {
		t.Fatalf("Format=%q, want explicit markdown", cfg.Format)
	}
	if !cfg.Fields.Empty() {
		t.Fatalf("invalid env fields should be ignored, got %v", cfg.Fields)
	}
}

func TestApplyEnvToConfig_Booleans(t *testing.T) {
	t.Setenv(EnvContinueOnError, "off")
	t.Setenv(EnvVerbose, "TRUE")
	var cfg Config
	ApplyEnvToConfig(&cfg)
	if cfg.ContinueOnError {
		t.Fatalf("ContinueOnError should stay false for %q", "off")
	}
	if !cfg.Verbose {
		t.Fatalf("Verbose should be set by env")
	}
}
