package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hyperifyio/amcextract/internal/amc"
	apppkg "github.com/hyperifyio/amcextract/internal/app"
	"github.com/hyperifyio/amcextract/internal/render"
)

const sampleXML = `<amc>
  <doc id="A1" datum="2015-03-12" docsrc_name="Die Presse" bibl="Die Presse, s. 12" ressort2="pol">
    <field name="titel"><p>Eins</p></field>
    <field name="inhalt"><p>Hello</p></field>
  </doc>
</amc>`

func TestParseArgs_InputsAndFields(t *testing.T) {
	cfg, opts, err := parseArgs([]string{
		"-input", "a.xml,b.xml", "-input", "c.xml",
		"-fields", "title, content",
		"-workers", "3", "-config", "amc.yaml", "-env", ".env",
		"-ressort", "pol,wirt", "-ressort", "sport",
		"d.xml",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs error: %v", err)
	}
	if want := []string{"a.xml", "b.xml", "c.xml", "d.xml"}; !reflect.DeepEqual(cfg.Inputs, want) {
		t.Fatalf("inputs = %v, want %v", cfg.Inputs, want)
	}
	if cfg.Fields != amc.NewFieldSet(amc.FieldTitle, amc.FieldContent) {
		t.Fatalf("fields = %v", cfg.Fields)
	}
	if got := cfg.Ressorts.String(); got != "pol sport wirt" {
		t.Fatalf("ressorts = %q", got)
	}
	if cfg.Workers != 3 || opts.configPath != "amc.yaml" || len(opts.envFiles) != 1 {
		t.Fatalf("unexpected cfg=%+v opts=%+v", cfg, opts)
	}
}

func TestParseArgs_HelpListsConfigFormats(t *testing.T) {
	var out bytes.Buffer
	if _, _, err := parseArgs([]string{"-h"}, &out); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	for _, want := range []string{"-config", ".yaml", ".json", ".toml", "-ressort"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("usage lacks %q:\n%s", want, out.String())
		}
	}
}

func TestParseArgs_UnknownField(t *testing.T) {
	_, _, err := parseArgs([]string{"-fields", "title,bogus"}, io.Discard)
	if !errors.Is(err, amc.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestResolveConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "amc.yaml")
	yaml := "inputs: [file.xml]\nformat: markdown\nworkers: 5\nsummary: file-summary.json\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(apppkg.EnvFormat, "jsonl")
	t.Setenv(apppkg.EnvInputs, "")

	cfg, opts, err := parseArgs([]string{"-config", cfgPath, "-workers", "2"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs error: %v", err)
	}
	cfg, err = resolveConfig(cfg, opts)
	if err != nil {
		t.Fatalf("resolveConfig error: %v", err)
	}
	if cfg.Format != "jsonl" {
		t.Fatalf("env should beat file, format = %q", cfg.Format)
	}
	if cfg.Workers != 2 {
		t.Fatalf("flag should beat file, workers = %d", cfg.Workers)
	}
	if len(cfg.Inputs) != 1 || cfg.Inputs[0] != "file.xml" || cfg.SummaryPath != "file-summary.json" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
}

func TestResolveConfig_ExplicitDefaultFlagsBeatFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(cfgPath, []byte("inputs: [a.xml]\nformat: pdf\nworkers: 4\noutput: file.csv\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	for _, k := range []string{apppkg.EnvFormat, apppkg.EnvWorkers, apppkg.EnvOutput} {
		t.Setenv(k, "")
	}
	cfg, opts, err := parseArgs([]string{"-format", "csv", "-workers", "1", "-output", "-", "-config", cfgPath}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs error: %v", err)
	}
	cfg, err = resolveConfig(cfg, opts)
	if err != nil {
		t.Fatalf("resolveConfig error: %v", err)
	}
	if cfg.Format != "csv" || cfg.Workers != 1 || cfg.OutputPath != "-" {
		t.Fatalf("flags lost to config file: format=%q workers=%d output=%q", cfg.Format, cfg.Workers, cfg.OutputPath)
	}
}

func TestRun_WritesCSV(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.xml")
	out := filepath.Join(dir, "out.csv")
	if err := os.WriteFile(in, []byte(sampleXML), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if err := run(context.Background(), apppkg.Config{Inputs: []string{in}, OutputPath: out}); err != nil {
		t.Fatalf("run error: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(b), "2015-03-12,Die Presse,12,12,pol,Eins,Hello") {
		t.Fatalf("unexpected csv:\n%s", b)
	}
}

func TestRun_NoRecordsExitCode(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.xml")
	if err := os.WriteFile(in, []byte(`<amc><doc id="x"/></amc>`), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	err := run(context.Background(), apppkg.Config{Inputs: []string{in}, OutputPath: filepath.Join(dir, "out.csv")})
	if !errors.Is(err, apppkg.ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
	if got := exitCode(err); got != 2 {
		t.Fatalf("exit code = %d, want 2", got)
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{fmt.Errorf("init app: %w", apppkg.ErrNoInputs), 2},
		{fmt.Errorf("config: %w", render.ErrUnknownFormat), 2},
		{apppkg.ErrNoRecords, 2},
		{fmt.Errorf("init app: %w", apppkg.ErrFilterFields), 2},
		{fmt.Errorf("%w: boom", apppkg.ErrLoad), 1},
		{context.Canceled, 1},
	}
	for _, c := range cases {
		if got := exitCode(c.err); got != c.want {
			t.Errorf("exitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
