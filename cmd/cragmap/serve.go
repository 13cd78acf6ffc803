package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/cragmap/internal/api"
	"github.com/dgallion1/cragmap/internal/metrics"
)

// serveCmd serves generated artifacts for local preview
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve generated artifacts for local preview",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	artifacts := map[string]string{
		"crags.ts":           cfg.CragsOutput,
		"mapping.json":       filepath.Join(cfg.ArtifactsDir, "mapping.json"),
		"filled_routes.json": filepath.Join(cfg.ArtifactsDir, "filled_routes.json"),
		"routes_fix.json":    filepath.Join(cfg.ArtifactsDir, "routes_fix.json"),
	}
	srv := api.NewServer(artifacts, cfg.PreviewAPIKey, metrics.New(), logger)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("starting preview server", "port", cfg.Port, "auth", cfg.PreviewAPIKey != "")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
