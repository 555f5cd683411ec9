package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/hours/internal/output"
	"github.com/ALT-F4-LLC/hours/internal/server"
	"github.com/ALT-F4-LLC/hours/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the reports over HTTP",
	Long: `Start the HTTP server. The archive is optional: without one the server
starts empty and waits for an upload to /rest/timelogs/upload.

With --watch the configured archive is re-imported whenever it changes on
disk. A failed re-import keeps the previous data.`,
	Annotations: map[string]string{
		annotationSkipArchive: "true",
		annotationLogLevel:    "info",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getCfg(cmd)
		a := getApp(cmd)

		if cfg.Archive != "" {
			if err := loadArchive(cmd.Context(), cfg, a); err != nil {
				return err
			}
		} else {
			slog.Warn("no archive configured, waiting for an upload")
		}

		gin.SetMode(gin.ReleaseMode)
		srv := server.New(a.svc,
			server.WithLogger(slog.Default()),
			server.WithMetrics(a.metrics, a.registry),
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if shouldWatch, _ := cmd.Flags().GetBool("watch"); shouldWatch {
			if cfg.Archive == "" {
				return cmdErr(errors.New("--watch requires an archive"), output.ErrValidation)
			}
			w := watch.New(cfg.Archive, func(ctx context.Context) error {
				_, err := a.pub.ImportFile(ctx, cfg.Archive)
				return err
			}, watch.WithLogger(slog.Default()))
			go func() {
				if err := w.Run(ctx); err != nil {
					slog.Error("archive watch stopped", "error", err)
				}
			}()
		}

		if err := srv.Run(ctx, cfg.Addr); err != nil && !errors.Is(err, context.Canceled) {
			return cmdErr(err, output.ErrGeneral)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().Bool("watch", false, "Re-import the archive when it changes")
	rootCmd.AddCommand(serveCmd)
}
