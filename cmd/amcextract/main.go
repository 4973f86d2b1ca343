package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/amcextract/internal/amc"
	"github.com/hyperifyio/amcextract/internal/app"
	"github.com/hyperifyio/amcextract/internal/render"
)

// listFlag collects a flag that may be repeated or given as a comma list.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	for _, p := range strings.Split(v, ",") {
		if s := strings.TrimSpace(p); s != "" {
			*l = append(*l, s)
		}
	}
	return nil
}

// options are CLI settings that never reach app.Config.
type options struct {
	configPath  string
	envFiles    []string
	showVersion bool
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Error().Err(err).Msg("invalid arguments")
		os.Exit(2)
	}
	if opts.showVersion {
		version, commit := app.Version()
		fmt.Printf("amcextract %s (%s)\n", version, commit)
		return
	}

	cfg, err = resolveConfig(cfg, opts)
	if err != nil {
		log.Error().Err(err).Msg("load configuration")
		os.Exit(2)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(exitCode(err))
	}
}

func parseArgs(args []string, stderr io.Writer) (app.Config, options, error) {
	var (
		cfg      app.Config
		opts     options
		inputs   listFlag
		envs     listFlag
		ressorts listFlag
		fields   string
	)
	fs := flag.NewFlagSet("amcextract", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Var(&inputs, "input", "AMC XML corpus file (repeatable or comma-separated; .gz accepted)")
	fs.StringVar(&cfg.OutputPath, "output", "", "Output path, '-' for stdout")
	fs.StringVar(&cfg.Format, "format", "", "Output format: csv, jsonl, markdown or pdf")
	fs.StringVar(&fields, "fields", "", "Comma-separated fields to extract, e.g. date,source,title,content")
	fs.StringVar(&cfg.Encoding, "encoding", "", "Charset for inputs without an XML encoding declaration (e.g. latin1)")
	fs.IntVar(&cfg.Workers, "workers", 0, "Number of files parsed concurrently")
	fs.BoolVar(&cfg.ContinueOnError, "continue-on-error", false, "Log and skip files that fail to load")
	fs.Var(&ressorts, "ressort", "Keep only articles tagged with one of these ressorts (repeatable or comma-separated)")
	fs.BoolVar(&cfg.TopicsOnly, "topics", false, "Print the sorted union of ressort tags instead of the table")
	fs.StringVar(&cfg.SummaryPath, "summary", "", "Write a JSON run summary to this path")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	fs.StringVar(&opts.configPath, "config", "", "Config file (.yaml, .yml, .json or .toml)")
	fs.Var(&envs, "env", "Dotenv file to load before reading AMC_* variables (repeatable)")
	fs.BoolVar(&opts.showVersion, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return cfg, opts, err
	}

	cfg.Inputs = append([]string(inputs), fs.Args()...)
	opts.envFiles = envs
	if len(ressorts) > 0 {
		cfg.Ressorts = amc.NewTopicSet(ressorts...)
	}
	if strings.TrimSpace(fields) != "" {
		set, err := amc.ParseFields(strings.Split(fields, ","))
		if err != nil {
			return cfg, opts, err
		}
		cfg.Fields = set
	}
	return cfg, opts, nil
}

// resolveConfig layers env and the optional config file beneath the flag
// values: flags > env > file > defaults.
func resolveConfig(cfg app.Config, opts options) (app.Config, error) {
	if err := app.LoadEnvFiles(opts.envFiles...); err != nil {
		return cfg, err
	}
	app.ApplyEnvToConfig(&cfg)
	if opts.configPath != "" {
		fc, err := app.LoadConfigFile(opts.configPath)
		if err != nil {
			return cfg, fmt.Errorf("config file: %w", err)
		}
		if err := app.ApplyFileConfig(&cfg, fc); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// exitCode maps run errors onto the process exit status: 2 for an empty
// result or unusable configuration, 1 for everything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, app.ErrNoRecords),
		errors.Is(err, app.ErrNoInputs),
		errors.Is(err, app.ErrNoFields),
		errors.Is(err, app.ErrInvalidWorkers),
		errors.Is(err, app.ErrFilterFields),
		errors.Is(err, amc.ErrUnknownField),
		errors.Is(err, render.ErrUnknownFormat):
		return 2
	default:
		return 1
	}
}

func run(ctx context.Context, cfg app.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(ctx)
}
