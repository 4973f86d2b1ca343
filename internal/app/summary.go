package app

import (
	"encoding/json"
	"os"
	"time"

	"github.com/hyperifyio/amcextract/internal/table"
)

// Summary is a compact, reproducible record of one extraction run. Records
// counts what extraction kept; Filtered counts the part of it dropped by the
// ressort filter.
type Summary struct {
	Version     string        `json:"version"`
	Commit      string        `json:"commit"`
	GeneratedAt time.Time     `json:"generated_at"`
	Fields      []string      `json:"fields"`
	Files       []FileSummary `json:"files"`
	Documents   int           `json:"documents"`
	Records     int           `json:"records"`
	Skipped     int           `json:"skipped"`
	Filtered    int           `json:"filtered"`
	FailedFiles int           `json:"failed_files"`
}

// FileSummary describes one input file. Error is set when the file could
// not be loaded; the counts are zero in that case.
type FileSummary struct {
	Path      string      `json:"path"`
	SHA256    string      `json:"sha256,omitempty"`
	Documents int         `json:"documents"`
	Records   int         `json:"records"`
	Skips     []SkipEntry `json:"skips,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// SkipEntry is one dropped document.
type SkipEntry struct {
	Index  int    `json:"index"`
	DocID  string `json:"doc_id,omitempty"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func newSummary(cfg Config, now time.Time) Summary {
	version, commit := Version()
	return Summary{
		Version:     version,
		Commit:      commit,
		GeneratedAt: now.UTC(),
		Fields:      cfg.Fields.Names(),
		Files:       make([]FileSummary, 0, len(cfg.Inputs)),
	}
}

func (s *Summary) addFile(res *table.FileResult) {
	fs := FileSummary{
		Path:      res.Path,
		SHA256:    res.SHA256,
		Documents: res.Documents,
		Records:   res.Table.Len(),
	}
	for _, sk := range res.Skips {
		fs.Skips = append(fs.Skips, SkipEntry{
			Index:  sk.Index,
			DocID:  sk.DocID,
			Field:  sk.Field.String(),
			Reason: sk.Err.Error(),
		})
	}
	s.Files = append(s.Files, fs)
	s.Documents += fs.Documents
	s.Records += fs.Records
	s.Skipped += len(fs.Skips)
}

func (s *Summary) addFailure(path string, err error) {
	s.Files = append(s.Files, FileSummary{Path: path, Error: err.Error()})
	s.FailedFiles++
}

func writeSummary(path string, s Summary) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
