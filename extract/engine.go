package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/storelens"
	"golang.org/x/sync/errgroup"
)

// Engine defaults.
const (
	DefaultConcurrency = 4
	DefaultTimeout     = 60 * time.Second
)

// ErrTimedOut is the failure recorded for categories that did not finish
// before the engine's deadline.
var ErrTimedOut = errors.New("timed out")

// Ensure Engine implements storelens.InsightsExtractor at compile time.
var _ storelens.InsightsExtractor = (*Engine)(nil)

// Engine orchestrates one extraction: it checks that the storefront is
// reachable, runs every category extractor with bounded concurrency inside
// its own failure boundary and aggregates the outcomes.
type Engine struct {
	Fetcher    storelens.Fetcher
	Extractors []storelens.SectionExtractor

	// Concurrency bounds the number of categories running at once.
	// Defaults to DefaultConcurrency.
	Concurrency int

	// Timeout bounds the whole extraction. Defaults to DefaultTimeout.
	Timeout time.Duration

	// Now returns the extraction timestamp. Defaults to time.Now.
	Now func() time.Time

	// Progress, if set, receives an event as each category settles.
	Progress ProgressFunc
}

// NewEngine creates an Engine running the default extractors.
func NewEngine(fetcher storelens.Fetcher, parser storelens.PageParser, catalog storelens.CatalogParser, content storelens.ContentExtractor) *Engine {
	return &Engine{
		Fetcher:     fetcher,
		Extractors:  Extractors(parser, catalog, content),
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
		Now:         time.Now,
	}
}

// ProgressEvent reports progress during an extraction.
type ProgressEvent struct {
	Type      ProgressType
	Category  storelens.Category
	Completed int
	Total     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting extraction progress.
type ProgressFunc func(event ProgressEvent)

// slot carries one category outcome back to the collector.
type slot struct {
	index   int
	outcome storelens.Outcome
}

// ExtractInsights runs the extraction for the storefront at baseURL.
func (e *Engine) ExtractInsights(ctx context.Context, baseURL string) (*storelens.BrandInsights, error) {
	domain, err := storelens.DomainOf(baseURL)
	if err != nil {
		return nil, err
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	site := NewStorefront(e.Fetcher, baseURL)

	// Accessibility check. The response stays memoised in site for the
	// homepage-driven extractors.
	resp, err := site.Get(ctx, "")
	if err != nil {
		return nil, storelens.Errorf(storelens.EUNAVAILABLE, "website %s is not accessible: %v", baseURL, err)
	}
	if !resp.OK() {
		return nil, storelens.Errorf(storelens.EUNAVAILABLE, "website %s is not accessible: HTTP %d", baseURL, resp.StatusCode)
	}

	outcomes := e.run(ctx, site)
	return Aggregate(domain, outcomes, e.now()), nil
}

// run executes every extractor and returns one outcome per extractor, in
// extractor order. Extractors still running when ctx ends are recorded as
// ErrTimedOut and abandoned.
func (e *Engine) run(ctx context.Context, site storelens.Site) []storelens.Outcome {
	total := len(e.Extractors)
	outcomes := make([]storelens.Outcome, total)
	settled := make([]bool, total)
	for i, x := range e.Extractors {
		outcomes[i] = storelens.Outcome{Category: x.Category(), Err: ErrTimedOut}
	}

	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	e.notify(ProgressEvent{Type: ProgressStarted, Total: total})

	// Buffered so abandoned extractors never block on send.
	results := make(chan slot, total)

	g := new(errgroup.Group)
	g.SetLimit(concurrency)
	go func() {
		for i, x := range e.Extractors {
			g.Go(func() error {
				if ctx.Err() != nil {
					results <- slot{index: i, outcome: storelens.Outcome{Category: x.Category(), Err: ErrTimedOut}}
					return nil
				}
				results <- slot{index: i, outcome: runIsolated(ctx, x, site)}
				return nil
			})
		}
		_ = g.Wait()
	}()

	completed := 0
collect:
	for completed < total {
		select {
		case r := <-results:
			completed++
			out := r.outcome
			if out.Err != nil && ctx.Err() != nil && isContextError(out.Err) {
				out.Err = ErrTimedOut
			}
			outcomes[r.index] = out
			settled[r.index] = true

			ev := ProgressEvent{Type: ProgressCompleted, Category: out.Category, Completed: completed, Total: total}
			if out.Err != nil {
				ev.Type = ProgressFailed
				ev.Error = out.Err
			}
			e.notify(ev)
		case <-ctx.Done():
			break collect
		}
	}

	for i := range outcomes {
		if !settled[i] {
			e.notify(ProgressEvent{Type: ProgressFailed, Category: outcomes[i].Category, Completed: completed, Total: total, Error: ErrTimedOut})
		}
	}
	e.notify(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})

	return outcomes
}

// runIsolated runs x and converts both returned errors and panics into a
// failed outcome.
func runIsolated(ctx context.Context, x storelens.SectionExtractor, site storelens.Site) (out storelens.Outcome) {
	out.Category = x.Category()
	defer func() {
		if r := recover(); r != nil {
			out.Section = nil
			out.Err = fmt.Errorf("panic: %v", r)
		}
	}()

	section, err := x.Extract(ctx, site)
	if err != nil {
		out.Err = err
		return out
	}
	out.Section = section
	return out
}

func (e *Engine) notify(ev ProgressEvent) {
	if e.Progress != nil {
		e.Progress(ev)
	}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
