// Package pipeline runs batch parses over many modules. Each module's parse
// is independent, so the batch fans out across a bounded worker pool with no
// shared state beyond the read-only library.
package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/studylink/cnxparse/internal/cnxml"
	"github.com/studylink/cnxparse/internal/library"
	"github.com/studylink/cnxparse/internal/stats"
)

// Result is the outcome of parsing one module in a batch.
type Result struct {
	ModuleID string
	Module   *cnxml.Module
	Flat     string
	Err      error
}

// Batch parses sets of modules concurrently.
type Batch struct {
	lib     *library.Library
	log     *slog.Logger
	workers int
}

func NewBatch(lib *library.Library, log *slog.Logger, workers int) *Batch {
	if workers <= 0 {
		workers = 4
	}
	return &Batch{lib: lib, log: log, workers: workers}
}

// ParseAll parses the given modules with bounded concurrency. Results come
// back in the order of ids regardless of completion order; a failed module
// records its error without affecting the rest of the batch.
func (b *Batch) ParseAll(ctx context.Context, ids []string) []Result {
	results := make([]Result, len(ids))
	sem := make(chan struct{}, b.workers)
	var wg sync.WaitGroup

	for i, id := range ids {
		if ctx.Err() != nil {
			results[i] = Result{ModuleID: id, Err: ctx.Err()}
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, id string) {
			defer wg.Done()
			defer func() { <-sem }()

			m, err := b.lib.Module(id)
			if err != nil {
				b.log.Warn("module parse failed", "module_id", id, "error", err)
				results[i] = Result{ModuleID: id, Err: err}
				return
			}
			flat, err := b.lib.FlatText(id)
			if err != nil {
				results[i] = Result{ModuleID: id, Err: err}
				return
			}
			if len(m.Diagnostics) > 0 {
				b.log.Warn("module parsed with diagnostics",
					"module_id", id, "diagnostics", len(m.Diagnostics))
			}
			results[i] = Result{ModuleID: id, Module: m, Flat: flat}
		}(i, id)
	}
	wg.Wait()
	return results
}

// Summarize parses the given modules and reduces the successful ones to a
// batch statistics summary, alongside the ids that failed.
func (b *Batch) Summarize(ctx context.Context, ids []string) (stats.Summary, []string) {
	results := b.ParseAll(ctx, ids)
	counts := make([]cnxml.Counts, 0, len(results))
	var failed []string
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r.ModuleID)
			continue
		}
		counts = append(counts, r.Module.Counts())
	}
	return stats.Summarize(counts), failed
}
