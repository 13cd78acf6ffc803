package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dgallion1/cragmap/internal/extract"
	"github.com/dgallion1/cragmap/internal/figma"
	"github.com/dgallion1/cragmap/internal/metrics"
	"github.com/dgallion1/cragmap/internal/pipeline"
)

var (
	cragsOutput  string
	cragsGroup   string
	cragsWorkers int
)

// cragsCmd runs the crag extraction pipeline
var cragsCmd = &cobra.Command{
	Use:   "crags",
	Short: "Extract crag shapes from the design file into crags.ts",
	Long: `Fetch the design document, locate the crag container, collect every vector
shape with its sector, export them as SVG and write their path data to a
TypeScript module.

Requires FIGMA_TOKEN (environment or .env).`,
	RunE: runCrags,
}

func init() {
	cragsCmd.Flags().StringVarP(&cragsOutput, "output", "o", "", "Output file (default CRAGS_OUTPUT or ./src/map-data/crags.ts)")
	cragsCmd.Flags().StringVar(&cragsGroup, "group", "", "Container name to extract (default GROUP_NAME or Crags)")
	cragsCmd.Flags().IntVar(&cragsWorkers, "workers", 0, "Concurrent SVG downloads (default FETCH_WORKERS or 1)")
}

func runCrags(cmd *cobra.Command, args []string) error {
	if cragsOutput != "" {
		cfg.CragsOutput = cragsOutput
	}
	if cragsGroup != "" {
		cfg.GroupName = cragsGroup
	}
	if cragsWorkers > 0 {
		cfg.FetchWorkers = cragsWorkers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	source := figma.NewClient(cfg.FigmaAPIURL, cfg.FigmaToken, cfg.FigmaFileID, cfg.APITimeout)
	svg := extract.NewSVGClient(cfg.FetchTimeout)
	defer svg.Close()

	policy := pipeline.DownloadPolicy(cfg.FetchMaxAttempts, cfg.FetchBackoffStep)
	fetcher := pipeline.NewFetcher(svg, policy, cfg.FetchWorkers, m, logger)
	orch := pipeline.NewOrchestrator(pipeline.Options{
		GroupName: cfg.GroupName,
		Output:    cfg.CragsOutput,
	}, source, fetcher, m, logger)

	logger.Info("starting crag extraction",
		"file_id", cfg.FigmaFileID,
		"group", cfg.GroupName,
		"workers", cfg.FetchWorkers,
	)
	_, err := orch.Run(ctx)

	logger.Info("svg download latency", "stats", svg.Stats.Snapshot())
	if werr := m.WriteTextfile(cfg.MetricsTextfile); werr != nil {
		logger.Warn("write metrics textfile", "path", cfg.MetricsTextfile, "error", werr)
	}
	return err
}
