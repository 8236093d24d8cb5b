package main

import (
	"context"
	"fmt"
	"os"

	"docstitch/internal/config"
	"docstitch/internal/cost"
	"docstitch/internal/display"
	"docstitch/internal/llm/client"
	"docstitch/internal/services"
)

// App wires the services for one scan run.
type App struct {
	cfg *config.Config
}

// NewApp creates a new App with the given configuration. The API key is
// expected to already be resolved into cfg.
func NewApp(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

// Scan runs the codebase scan end to end. The returned error is non-nil when
// the scan could not start or when any file-level failure occurred, so the
// caller can map it to a non-zero exit code.
func (a *App) Scan(ctx context.Context) error {
	cfg := a.cfg

	estimator := cost.NewEstimator(cfg.Model, cfg.TokenRate, cfg.CostMultiplier)
	reporter := display.NewReporter(os.Stdout)

	// Dry runs never construct a provider client: no network, no key needed.
	var generator services.Generator
	if !cfg.DryRun {
		c, err := client.New(ctx, client.Options{
			Provider:  cfg.Provider,
			Model:     cfg.Model,
			APIKey:    cfg.APIKey,
			Timeout:   cfg.Timeout,
			TokenRate: cfg.TokenRate,
		})
		if err != nil {
			return err
		}
		generator = c
	}

	fileService := services.NewFileService(generator, estimator, reporter, cfg.Workers, cfg.DryRun)
	scanService := services.NewScanService(fileService, cfg.Only)

	result, err := scanService.Scan(ctx, cfg.TargetDir)
	if err != nil {
		return err
	}
	if result.FilesFailed > 0 {
		return fmt.Errorf("%d of %d files failed", result.FilesFailed, result.FilesProcessed)
	}
	return nil
}
