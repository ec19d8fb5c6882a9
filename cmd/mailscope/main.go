package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/mailscope/pkg/config"
	"github.com/umputun/mailscope/pkg/extract"
	"github.com/umputun/mailscope/pkg/feed"
	"github.com/umputun/mailscope/pkg/mailbox"
	"github.com/umputun/mailscope/pkg/poller"
	"github.com/umputun/mailscope/pkg/state"
	"github.com/umputun/mailscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	setupLog(opts.Debug, opts.NoColor, cfg.Mail.Password, cfg.LLM.APIKey)

	log.Printf("[INFO] starting mailscope version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, cfg, opts.Debug); err != nil {
		log.Printf("[ERROR] mailscope failed: %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires the pipeline and drives the server and the background poller
// until the context is cancelled
func run(ctx context.Context, cfg *config.Config, debug bool) error {
	scanner, err := mailbox.New(cfg.Mail, cfg.Filter)
	if err != nil {
		return fmt.Errorf("create scanner: %w", err)
	}

	summarizer := extract.NewSummarizer(cfg.LLM)
	store := state.NewStore(cfg.State.File, cfg.Feed.Link, cfg.Feed.MaxItems)
	generator := feed.NewGenerator(cfg.Feed, cfg.Server.BaseURL)

	p := poller.New(scanner, summarizer, store, poller.Config{
		Interval:     cfg.Schedule.PollInterval,
		InitialDelay: cfg.Schedule.InitialDelay,
	})

	srv := server.New(server.Config{
		Listen:  cfg.Server.Listen,
		Timeout: cfg.Server.Timeout,
		Version: revision,
		Debug:   debug,
	}, store, generator, p)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p.Run(ctx)
		return nil
	})
	g.Go(func() error {
		return srv.Run(ctx)
	})

	return g.Wait()
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = append(logOpts, lgr.Debug, lgr.CallerFile, lgr.CallerFunc)
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	// mask credentials, empty values would redact everything
	secrets := make([]string, 0, len(secs))
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
