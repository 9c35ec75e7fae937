// Package engine resolves the source pipeline for a batch, schedules its
// build jobs under the concurrency cap, and folds the streamed results into
// an exit code.
package engine

import (
	"context"
	"fmt"
	"os"

	"auh/internal/build"
	"auh/internal/config"
	"auh/internal/output"
)

func setupOutputManager(cfg *config.Config) (*output.Manager, error) {
	outMgr := output.NewManager()

	// Console Sink
	if !cfg.Output.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(nil, cfg.Output.ConsoleFormat)); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// File Sink
	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

type Engine struct {
	// Probe reports whether the primary AUR endpoint is answering. Consulted
	// once per batch.
	Probe func(ctx context.Context) bool

	// Job executes one package through its resolved pipeline.
	Job *build.Job

	// NewPreflight builds the mirror branch checker when the batch resolves
	// to the mirror pipeline. Optional; a nil checker skips the preflight
	// and lets the clone itself classify missing packages.
	NewPreflight func(ctx context.Context) build.BranchChecker

	// schedulerExecute is a test seam for streaming execution.
	// If nil, Engine uses the real scheduler.
	schedulerExecute func(ctx context.Context, cfg *config.Config, requests []Request) (<-chan build.Result, <-chan error)
}

func NewEngine(job *build.Job, probe func(ctx context.Context) bool) *Engine {
	return &Engine{
		Probe: probe,
		Job:   job,
	}
}

func (e *Engine) executeStream(ctx context.Context, cfg *config.Config, requests []Request) (<-chan build.Result, <-chan error) {
	if e.schedulerExecute != nil {
		return e.schedulerExecute(ctx, cfg, requests)
	}

	scheduler, err := NewScheduler(e.Job.Run, cfg.Runtime.Concurrency)
	if err != nil {
		resCh := make(chan build.Result)
		errCh := make(chan error, 1)
		close(resCh)
		errCh <- err
		close(errCh)
		return resCh, errCh
	}
	return scheduler.Execute(ctx, requests)
}

// Install runs the whole batch and returns the process exit code: 0 when
// every package succeeded (or was already installed), 1 otherwise.
func (e *Engine) Install(ctx context.Context, cfg *config.Config, packages []string) int {
	pipeline := e.resolvePipeline(ctx, cfg)
	if pipeline == build.PipelineMirror && e.NewPreflight != nil {
		e.Job.Preflight = e.NewPreflight(ctx)
	}

	requests := make([]Request, 0, len(packages))
	for _, name := range packages {
		requests = append(requests, Request{Name: name, Pipeline: pipeline})
	}

	outMgr, err := setupOutputManager(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output sinks: %v\n", err)
		return 1
	}
	defer outMgr.Close()

	_ = outMgr.Write(output.Event{Type: "run.started", Packages: len(requests), Pipeline: string(pipeline)})

	resCh, errCh := e.executeStream(ctx, cfg, requests)

	summary := build.NewRunSummary(len(requests))
	for res := range resCh {
		summary.Record(res)
		_ = outMgr.Write(res)
	}

	var schedErr error
	// Drain scheduler errors; one non-nil error is enough to fail the run.
	for err := range errCh {
		if err != nil {
			schedErr = err
		}
	}

	code := 0
	if schedErr != nil || summary.HasFailures() || summary.Recorded() < summary.Submitted {
		code = 1
	}
	_ = outMgr.Write(output.Event{Type: "run.finished", Failed: summary.Failed, ExitCode: code})

	if schedErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", schedErr)
	}
	if summary.HasFailures() {
		fmt.Fprintf(os.Stderr, "%d package(s) failed to install.\n", summary.Failed)
	}
	return code
}

// resolvePipeline chooses the batch pipeline. An explicit --github wins
// without probing; otherwise one probe of the primary endpoint decides.
func (e *Engine) resolvePipeline(ctx context.Context, cfg *config.Config) build.Pipeline {
	if cfg.Source.ForceMirror {
		return build.PipelineMirror
	}
	up := e.Probe(ctx)
	if !up && !cfg.Output.NoConsole {
		fmt.Fprintln(os.Stderr, "Primary AUR endpoint is not responding, using the GitHub mirror.")
	}
	return Resolve(up, false)
}
