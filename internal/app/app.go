// Package app wires configuration, batch extraction over corpus files and
// output writing.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hyperifyio/amcextract/internal/corpus"
	"github.com/hyperifyio/amcextract/internal/render"
	"github.com/hyperifyio/amcextract/internal/table"
)

// ErrNoRecords is returned when a run finishes without a single record.
// Per the exit code policy this results in a non-zero process exit.
var ErrNoRecords = errors.New("no records extracted")

// ErrLoad wraps a corpus file that could not be loaded or parsed.
var ErrLoad = errors.New("load corpus file")

type App struct {
	cfg Config
	// Stdout receives the output when OutputPath is "-".
	Stdout io.Writer
	now    func() time.Time
}

// Result is the outcome of extracting all configured inputs.
type Result struct {
	Table   *table.Table
	Summary Summary
}

func New(cfg Config) (*App, error) {
	ApplyDefaults(&cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return &App{cfg: cfg, Stdout: os.Stdout, now: time.Now}, nil
}

// Config returns the effective configuration.
func (a *App) Config() Config { return a.cfg }

// Run extracts all inputs and writes the configured output.
func (a *App) Run(ctx context.Context) error {
	res, err := a.Extract(ctx)
	if err != nil {
		return err
	}
	if err := a.writeOutput(res.Table); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if a.cfg.SummaryPath != "" {
		if err := writeSummary(a.cfg.SummaryPath, res.Summary); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		log.Info().Str("out", a.cfg.SummaryPath).Msg("wrote run summary")
	}
	if res.Table.Len() == 0 {
		return ErrNoRecords
	}
	return nil
}

type fileOutcome struct {
	res *table.FileResult
	err error
}

// Extract processes every input in order and concatenates the per-file
// tables. With Workers > 1 files are parsed concurrently but results are
// collected by input index, so row order never depends on scheduling.
func (a *App) Extract(ctx context.Context) (*Result, error) {
	opts := corpus.Options{Encoding: a.cfg.Encoding}
	outcomes := make([]fileOutcome, len(a.cfg.Inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, path := range a.cfg.Inputs {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := table.FromFile(path, a.cfg.Fields, opts)
			if err != nil {
				err = fmt.Errorf("%w: %w", ErrLoad, err)
				if !a.cfg.ContinueOnError {
					return err
				}
				log.Error().Err(err).Str("path", path).Msg("skipping file")
			}
			outcomes[i] = fileOutcome{res: res, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := newSummary(a.cfg, a.now())
	tables := make([]*table.Table, 0, len(outcomes))
	for i, o := range outcomes {
		if o.err != nil {
			summary.addFailure(a.cfg.Inputs[i], o.err)
			continue
		}
		logFileResult(o.res)
		summary.addFile(o.res)
		tables = append(tables, o.res.Table)
	}
	all := table.Concat(tables...)
	if all.Len() == 0 {
		all = table.New(a.cfg.Fields)
	}
	if a.cfg.Ressorts.Len() > 0 {
		kept := all.FilterTopics(a.cfg.Ressorts)
		summary.Filtered = all.Len() - kept.Len()
		all = kept
		log.Debug().Str("ressorts", a.cfg.Ressorts.String()).Int("filtered", summary.Filtered).Msg("ressort filter applied")
	}
	log.Info().
		Int("files", len(a.cfg.Inputs)).
		Int("failed", summary.FailedFiles).
		Int("records", summary.Records).
		Int("skipped", summary.Skipped).
		Int("rows", all.Len()).
		Msg("extraction finished")
	return &Result{Table: all, Summary: summary}, nil
}

func logFileResult(res *table.FileResult) {
	for _, s := range res.Skips {
		log.Debug().
			Str("path", res.Path).
			Int("index", s.Index).
			Str("doc_id", s.DocID).
			Str("field", s.Field.String()).
			Err(s.Err).
			Msg("document skipped")
	}
	ev := log.Info()
	if len(res.Skips) > 0 {
		ev = log.Warn()
	}
	ev.Str("path", res.Path).
		Int("docs", res.Documents).
		Int("records", res.Table.Len()).
		Int("skipped", len(res.Skips)).
		Msg("file extracted")
}

func (a *App) writeOutput(t *table.Table) (err error) {
	var w io.Writer = a.Stdout
	out := strings.TrimSpace(a.cfg.OutputPath)
	if out != "" && out != "-" {
		f, ferr := os.Create(out)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if a.cfg.TopicsOnly {
		for _, tag := range t.Topics() {
			if _, err := fmt.Fprintln(w, tag); err != nil {
				return err
			}
		}
		return nil
	}
	if err := render.Write(w, a.cfg.Format, t); err != nil {
		return err
	}
	if out != "" && out != "-" {
		log.Info().Str("out", out).Str("format", a.cfg.Format).Int("rows", t.Len()).Msg("wrote table")
	}
	return nil
}
