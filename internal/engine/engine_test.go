package engine

import (
	"context"
	"errors"
	"testing"

	"auh/internal/build"
	"auh/internal/config"
)

func quietConfig() *config.Config {
	cfg := config.New()
	cfg.Output.NoConsole = true
	return cfg
}

// seam builds a schedulerExecute stub that records the requests it was given
// and replies with one canned result per request.
func seam(captured *[]Request, kind build.Kind) func(ctx context.Context, cfg *config.Config, requests []Request) (<-chan build.Result, <-chan error) {
	return func(ctx context.Context, cfg *config.Config, requests []Request) (<-chan build.Result, <-chan error) {
		*captured = append(*captured, requests...)
		resCh := make(chan build.Result, len(requests))
		for _, req := range requests {
			resCh <- build.Result{Package: req.Name, Pipeline: req.Pipeline, Kind: kind}
		}
		close(resCh)
		errCh := make(chan error)
		close(errCh)
		return resCh, errCh
	}
}

func TestInstallProbeDownRoutesBatchToMirror(t *testing.T) {
	var captured []Request
	e := NewEngine(&build.Job{}, func(ctx context.Context) bool { return false })
	e.schedulerExecute = seam(&captured, build.KindSuccess)

	code := e.Install(context.Background(), quietConfig(), []string{"yay", "paru"})
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if len(captured) != 2 {
		t.Fatalf("scheduler saw %d requests, want 2", len(captured))
	}
	for _, req := range captured {
		if req.Pipeline != build.PipelineMirror {
			t.Errorf("%s routed to %v, want mirror", req.Name, req.Pipeline)
		}
	}
}

func TestInstallProbeUpRoutesBatchToPrimary(t *testing.T) {
	var captured []Request
	e := NewEngine(&build.Job{}, func(ctx context.Context) bool { return true })
	e.schedulerExecute = seam(&captured, build.KindSuccess)

	if code := e.Install(context.Background(), quietConfig(), []string{"yay"}); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if len(captured) != 1 || captured[0].Pipeline != build.PipelineAUR {
		t.Fatalf("captured = %+v, want one aur request", captured)
	}
}

func TestInstallForceMirrorNeverProbes(t *testing.T) {
	var captured []Request
	probed := false
	e := NewEngine(&build.Job{}, func(ctx context.Context) bool {
		probed = true
		return true
	})
	e.schedulerExecute = seam(&captured, build.KindSuccess)

	cfg := quietConfig()
	cfg.Source.ForceMirror = true
	if code := e.Install(context.Background(), cfg, []string{"yay"}); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if probed {
		t.Error("explicit mirror must not probe the primary endpoint")
	}
	if captured[0].Pipeline != build.PipelineMirror {
		t.Errorf("pipeline = %v, want mirror", captured[0].Pipeline)
	}
}

func TestInstallPreflightBuiltOnlyForMirror(t *testing.T) {
	var captured []Request

	for _, tt := range []struct {
		name    string
		probeUp bool
		want    bool
	}{
		{"mirror batch", false, true},
		{"primary batch", true, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			built := false
			e := NewEngine(&build.Job{}, func(ctx context.Context) bool { return tt.probeUp })
			e.NewPreflight = func(ctx context.Context) build.BranchChecker {
				built = true
				return nil
			}
			e.schedulerExecute = seam(&captured, build.KindSuccess)

			e.Install(context.Background(), quietConfig(), []string{"yay"})
			if built != tt.want {
				t.Errorf("preflight built = %v, want %v", built, tt.want)
			}
		})
	}
}

func TestInstallExitCodeReflectsFailures(t *testing.T) {
	var captured []Request
	e := NewEngine(&build.Job{}, func(ctx context.Context) bool { return true })
	e.schedulerExecute = seam(&captured, build.KindBuildFailure)

	if code := e.Install(context.Background(), quietConfig(), []string{"yay"}); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestInstallAlreadyInstalledIsSuccess(t *testing.T) {
	var captured []Request
	e := NewEngine(&build.Job{}, func(ctx context.Context) bool { return true })
	e.schedulerExecute = seam(&captured, build.KindAlreadyInstalled)

	if code := e.Install(context.Background(), quietConfig(), []string{"yay"}); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
}

func TestInstallSchedulerErrorFailsRun(t *testing.T) {
	e := NewEngine(&build.Job{}, func(ctx context.Context) bool { return true })
	e.schedulerExecute = func(ctx context.Context, cfg *config.Config, requests []Request) (<-chan build.Result, <-chan error) {
		resCh := make(chan build.Result)
		close(resCh)
		errCh := make(chan error, 1)
		errCh <- errors.New("context canceled")
		close(errCh)
		return resCh, errCh
	}

	if code := e.Install(context.Background(), quietConfig(), []string{"yay"}); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestInstallIncompleteBatchFailsRun(t *testing.T) {
	// A canceled run can legitimately deliver fewer results than requests;
	// that must not be reported as success.
	e := NewEngine(&build.Job{}, func(ctx context.Context) bool { return true })
	e.schedulerExecute = func(ctx context.Context, cfg *config.Config, requests []Request) (<-chan build.Result, <-chan error) {
		resCh := make(chan build.Result, 1)
		resCh <- build.Result{Package: requests[0].Name, Kind: build.KindSuccess}
		close(resCh)
		errCh := make(chan error)
		close(errCh)
		return resCh, errCh
	}

	if code := e.Install(context.Background(), quietConfig(), []string{"yay", "paru"}); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}
