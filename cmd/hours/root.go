package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/hours/internal/config"
	"github.com/ALT-F4-LLC/hours/internal/logging"
	"github.com/ALT-F4-LLC/hours/internal/metrics"
	"github.com/ALT-F4-LLC/hours/internal/output"
	"github.com/ALT-F4-LLC/hours/internal/report"
	"github.com/ALT-F4-LLC/hours/internal/snapshot"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

type contextKey string

const (
	cfgKey contextKey = "cfg"
	appKey contextKey = "app"
)

// Command annotations read by the root pre-run hook.
const (
	annotationSkipArchive = "skipArchive"
	annotationLogLevel    = "logLevel"
)

// CmdError wraps an error with a machine-readable error code for structured output.
type CmdError struct {
	Err  error
	Code output.ErrorCode
}

func (e *CmdError) Error() string { return e.Err.Error() }

func (e *CmdError) Unwrap() error { return e.Err }

func cmdErr(err error, code output.ErrorCode) *CmdError {
	return &CmdError{Err: err, Code: code}
}

// domainErr wraps err with the code its domain error classifies as.
func domainErr(err error) *CmdError {
	return cmdErr(err, output.CodeForError(err))
}

// app holds the wiring shared by every command.
type app struct {
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	pub      *snapshot.Publisher
	svc      *report.Service
}

func newApp(cfg *config.Config, defaultLevel string) *app {
	level := cfg.LogLevel
	if level == "" {
		level = defaultLevel
	}
	logger := logging.Setup(os.Stderr, logging.Level(level), cfg.LogFormat == "json")

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	pub := snapshot.NewPublisher(snapshot.WithLogger(logger), snapshot.WithRecorder(m))
	return &app{
		registry: reg,
		metrics:  m,
		pub:      pub,
		svc:      report.NewService(pub, m, logger),
	}
}

var rootCmd = &cobra.Command{
	Use:     "hours",
	Short:   "Time reports from GitLab export archives",
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(cmd.Flags())
		if err != nil {
			return cmdErr(err, output.ErrValidation)
		}

		defaultLevel := string(logging.LevelWarn)
		if lvl, ok := cmd.Annotations[annotationLogLevel]; ok {
			defaultLevel = lvl
		}
		a := newApp(cfg, defaultLevel)

		ctx := context.WithValue(cmd.Context(), cfgKey, cfg)
		ctx = context.WithValue(ctx, appKey, a)
		cmd.SetContext(ctx)

		if _, ok := cmd.Annotations[annotationSkipArchive]; ok {
			return nil
		}
		return loadArchive(cmd.Context(), cfg, a)
	},
}

// loadArchive imports the configured archive into the app's publisher.
func loadArchive(ctx context.Context, cfg *config.Config, a *app) error {
	if cfg.Archive == "" {
		return cmdErr(
			errors.New("no archive configured, pass --archive or set HOURS_ARCHIVE"),
			output.ErrValidation,
		)
	}
	exists, err := cfg.ArchiveExists()
	if err != nil {
		return cmdErr(fmt.Errorf("checking archive: %w", err), output.ErrGeneral)
	}
	if !exists {
		return cmdErr(fmt.Errorf("archive %s not found", cfg.Archive), output.ErrNotFound)
	}
	if _, err := a.pub.ImportFile(ctx, cfg.Archive); err != nil {
		return domainErr(err)
	}
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Bool("json", false, "Output in JSON format")
	pf.BoolP("quiet", "q", false, "Suppress non-essential output")
	pf.StringP("archive", "a", "", "GitLab export archive (zip of CSV tables)")
	pf.String("config", ".hours.yaml", "Config file")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text or json")
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func getWriter(cmd *cobra.Command) *output.Writer {
	jsonMode, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return output.New(jsonMode, quietMode)
}

func getCfg(cmd *cobra.Command) *config.Config {
	cfg, _ := cmd.Context().Value(cfgKey).(*config.Config)
	return cfg
}

func getApp(cmd *cobra.Command) *app {
	a, _ := cmd.Context().Value(appKey).(*app)
	return a
}

// Execute runs the root command and returns an exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		jsonMode, _ := rootCmd.PersistentFlags().GetBool("json")
		quietMode, _ := rootCmd.PersistentFlags().GetBool("quiet")
		w := output.New(jsonMode, quietMode)

		var ce *CmdError
		if errors.As(err, &ce) {
			return w.Error(ce.Err, ce.Code)
		}
		return w.Error(err, output.ErrGeneral)
	}
	return 0
}
