package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/cragmap/internal/doctree"
	"github.com/dgallion1/cragmap/internal/extract"
	"github.com/dgallion1/cragmap/internal/figma"
	"github.com/dgallion1/cragmap/internal/metrics"
)

// FetchState is the download state of one shape.
type FetchState string

const (
	StateAttempting      FetchState = "attempting"
	StateSucceeded       FetchState = "succeeded"
	StateFailedTransient FetchState = "failed_transient"
	StateFailedFatal     FetchState = "failed_fatal"
	StateExhausted       FetchState = "exhausted"
	StateSkipped         FetchState = "skipped"
)

// Downloader fetches the text behind an export URL.
type Downloader interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Outcome is the terminal result of downloading one shape.
type Outcome struct {
	NodeID   string
	State    FetchState
	Attempts int
	Err      error
}

// Fetcher downloads exported SVGs and fills in each shape's path.
type Fetcher struct {
	downloader Downloader
	policy     Policy
	workers    int
	metrics    *metrics.Metrics
	log        *slog.Logger
}

func NewFetcher(d Downloader, policy Policy, workers int, m *metrics.Metrics, log *slog.Logger) *Fetcher {
	if workers <= 0 {
		workers = 1
	}
	return &Fetcher{
		downloader: d,
		policy:     policy,
		workers:    workers,
		metrics:    m,
		log:        log,
	}
}

// FetchAll downloads every shape that has an export URL and sets its Path.
// Outcomes line up index for index with shapes. Each shape is written by
// exactly one goroutine. The only error returned is context cancellation.
func (f *Fetcher) FetchAll(ctx context.Context, shapes []doctree.Shape, exports figma.ExportMap) ([]Outcome, error) {
	outcomes := make([]Outcome, len(shapes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	for i := range shapes {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			out, err := f.fetchOne(gctx, &shapes[i], exports)
			outcomes[i] = out
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, ctx.Err()
}

func (f *Fetcher) fetchOne(ctx context.Context, shape *doctree.Shape, exports figma.ExportMap) (Outcome, error) {
	out := Outcome{NodeID: shape.NodeID, State: StateAttempting}
	url, ok := exports[shape.NodeID]
	f.log.Info("export", "shape", shape.Name, "url", url)
	if !ok {
		out.State = StateSkipped
		f.metrics.ObserveShape(string(out.State))
		return out, nil
	}

	log := f.log.With("shape", shape.Name, "node_id", shape.NodeID)
	var body string
	attempts, err := f.policy.Do(ctx, func(ctx context.Context) error {
		start := time.Now()
		text, err := f.downloader.Fetch(ctx, url)
		f.metrics.ObserveAttempt(attemptOutcome(err), time.Since(start))
		if err != nil {
			return err
		}
		body = text
		return nil
	}, func(failures int, wait time.Duration, err error) {
		log.Warn("svg download failed, retrying",
			"attempt", failures,
			"max_attempts", f.policy.MaxAttempts,
			"wait", wait.String(),
			"state", StateFailedTransient,
			"error", err,
		)
	})
	out.Attempts = attempts
	out.Err = err

	switch {
	case err == nil:
		out.State = StateSucceeded
		shape.Path = extract.PathData(body)
		if shape.Path == "" {
			log.Warn("no path data in svg")
		}
	case ctx.Err() != nil:
		return out, ctx.Err()
	case errors.Is(err, ErrExhausted):
		out.State = StateExhausted
		shape.Path = ""
		log.Error("svg download failed after all attempts", "attempts", attempts, "error", err)
	default:
		out.State = StateFailedFatal
		shape.Path = ""
		log.Error("svg download failed", "error", err)
	}
	f.metrics.ObserveShape(string(out.State))
	return out, nil
}

func attemptOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case extract.IsTransient(err):
		return "transient"
	default:
		return "fatal"
	}
}
