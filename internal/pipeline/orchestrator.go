package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgallion1/cragmap/internal/collector"
	"github.com/dgallion1/cragmap/internal/doctree"
	"github.com/dgallion1/cragmap/internal/figma"
	"github.com/dgallion1/cragmap/internal/metrics"
	"github.com/dgallion1/cragmap/internal/render"
)

// ErrGroupNotFound means the named container does not exist in the document.
var ErrGroupNotFound = errors.New("group not found")

// DocumentSource is the design tool API the pipeline reads from.
type DocumentSource interface {
	GetFile(ctx context.Context) (*doctree.Node, error)
	GetImages(ctx context.Context, ids []string) (figma.ExportMap, error)
}

// Options configures a crag extraction run.
type Options struct {
	GroupName string
	Output    string
}

// Orchestrator runs the crag extraction pipeline: locate, collect, export,
// download, render.
type Orchestrator struct {
	source  DocumentSource
	fetcher *Fetcher
	metrics *metrics.Metrics
	log     *slog.Logger
	opts    Options
}

func NewOrchestrator(opts Options, source DocumentSource, fetcher *Fetcher, m *metrics.Metrics, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		source:  source,
		fetcher: fetcher,
		metrics: m,
		log:     log,
		opts:    opts,
	}
}

// Run executes every stage and writes the output file. The returned report
// is never nil.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	report := newReport()
	log := o.log.With("run_id", report.ID, "group", o.opts.GroupName)

	shapes, err := o.run(ctx, report, log)
	if err != nil {
		report.Fail(err)
		log.Error("run failed", "phase", report.Phase, "error", err)
		return report, err
	}

	report.Complete()
	log.Info("crags written",
		"output", o.opts.Output,
		"shapes", len(shapes),
		"succeeded", report.Succeeded,
		"empty_path", report.EmptyPath,
		"exhausted", report.Exhausted,
		"fatal", report.Fatal,
		"skipped", report.Skipped,
		"attempts", report.Attempts,
		"duration_ms", report.Duration().Milliseconds(),
	)
	return report, nil
}

func (o *Orchestrator) run(ctx context.Context, report *Report, log *slog.Logger) ([]doctree.Shape, error) {
	// Phase 1: Document
	report.SetPhase("document")
	doc, err := o.source.GetFile(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}

	// Phase 2: Locate
	report.SetPhase("locate")
	group, ok := doctree.FindGroup(doc, o.opts.GroupName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrGroupNotFound, o.opts.GroupName)
	}

	// Phase 3: Collect
	report.SetPhase("collect")
	shapes := collector.Collect(group, o.opts.GroupName, nil)
	report.Collected = len(shapes)
	o.metrics.SetCollected(len(shapes))
	log.Info("collected shapes", "shapes", len(shapes))

	// Phase 4: Export
	report.SetPhase("export")
	exports, err := o.source.GetImages(ctx, collector.NodeIDs(shapes))
	if err != nil {
		return nil, fmt.Errorf("resolve exports: %w", err)
	}
	report.Exported = countResolved(shapes, exports)
	o.metrics.SetResolved(report.Exported)
	log.Info("resolved exports", "exports", report.Exported)

	// Phase 5: Download
	report.SetPhase("download")
	outcomes, err := o.fetcher.FetchAll(ctx, shapes, exports)
	if err != nil {
		return nil, fmt.Errorf("download svgs: %w", err)
	}
	paths := make([]string, len(shapes))
	for i, s := range shapes {
		paths[i] = s.Path
	}
	report.AddOutcomes(outcomes, paths)

	// Phase 6: Render
	report.SetPhase("render")
	if err := render.WriteFile(o.opts.Output, shapes); err != nil {
		return nil, err
	}
	return shapes, nil
}

func countResolved(shapes []doctree.Shape, exports figma.ExportMap) int {
	n := 0
	for _, s := range shapes {
		if _, ok := exports[s.NodeID]; ok {
			n++
		}
	}
	return n
}
