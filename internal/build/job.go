package build

import (
	"context"
	"fmt"
)

// InstallState answers "is this package installed locally".
type InstallState interface {
	Installed(ctx context.Context, name string) bool
}

// Catalog is the primary source's package index.
type Catalog interface {
	Exists(ctx context.Context, name string) (bool, error)
	PackageURL(name string) string
}

// Cloner acquires build recipes.
type Cloner interface {
	Clone(ctx context.Context, url, dir string) error
	CloneBranch(ctx context.Context, url, branch, dir string) error
}

// Builder runs the build-and-install step inside a recipe checkout.
type Builder interface {
	BuildInstall(ctx context.Context, dir string, skipPGP bool) error
}

// BranchChecker is the optional mirror preflight; see package mirror.
type BranchChecker interface {
	BranchExists(ctx context.Context, name string) (bool, error)
}

// Job holds the collaborators shared by every build in a batch. A Job is
// read-only while workers run; per-package state lives in arguments and the
// returned Result.
type Job struct {
	State   InstallState
	Catalog Catalog
	Git     Cloner
	Build   Builder

	// MirrorRemote is the git URL of the branch-per-package mirror.
	MirrorRemote string
	// Preflight, when non-nil, lets the mirror pipeline distinguish a
	// missing package from a failed clone. Set once before the batch runs.
	Preflight BranchChecker

	// Status, when non-nil, receives per-package progress lines.
	Status func(name, msg string)
}

func (j *Job) status(name, msg string) {
	if j.Status != nil {
		j.Status(name, msg)
	}
}

// Run executes the acquire, build, install sequence for one package inside
// scratch, a uniquely named directory owned by this job alone. Failures are
// local: the returned Result is the job's only externally visible effect.
func (j *Job) Run(ctx context.Context, name string, pipeline Pipeline, scratch string) Result {
	if j.State.Installed(ctx, name) {
		return Result{
			Package:  name,
			Pipeline: pipeline,
			Kind:     KindAlreadyInstalled,
			Message:  "already installed; skipping",
		}
	}

	if pipeline == PipelineMirror {
		return j.runMirror(ctx, name, scratch)
	}
	return j.runPrimary(ctx, name, scratch)
}

func (j *Job) runPrimary(ctx context.Context, name, scratch string) Result {
	exists, err := j.Catalog.Exists(ctx, name)
	if err == nil && !exists {
		return Result{
			Package:  name,
			Pipeline: PipelineAUR,
			Kind:     KindNotFoundUpstream,
			Message:  "not found in the AUR",
		}
	}
	// On a catalog query error the clone proceeds; the clone is the
	// authoritative existence check.

	j.status(name, "cloning build recipe")
	if err := j.Git.Clone(ctx, j.Catalog.PackageURL(name), scratch); err != nil {
		return Result{
			Package:  name,
			Pipeline: PipelineAUR,
			Kind:     KindCloneFailure,
			Message:  err.Error(),
		}
	}

	j.status(name, "building")
	if err := j.Build.BuildInstall(ctx, scratch, false); err != nil {
		return Result{
			Package:  name,
			Pipeline: PipelineAUR,
			Kind:     KindBuildFailure,
			Message:  err.Error(),
		}
	}

	return Result{
		Package:  name,
		Pipeline: PipelineAUR,
		Kind:     KindSuccess,
		Message:  "built and installed from the AUR",
	}
}

func (j *Job) runMirror(ctx context.Context, name, scratch string) Result {
	if j.Preflight != nil {
		if ok, err := j.Preflight.BranchExists(ctx, name); err == nil && !ok {
			return Result{
				Package:  name,
				Pipeline: PipelineMirror,
				Kind:     KindNotFoundUpstream,
				Message:  "no mirror branch for this package",
			}
		}
		// An API failure is not a verdict; attempt the clone anyway.
	}

	j.status(name, fmt.Sprintf("cloning mirror branch %q", name))
	if err := j.Git.CloneBranch(ctx, j.MirrorRemote, name, scratch); err != nil {
		return Result{
			Package:  name,
			Pipeline: PipelineMirror,
			Kind:     KindCloneFailure,
			Message:  err.Error(),
		}
	}

	j.status(name, "building")
	if err := j.Build.BuildInstall(ctx, scratch, true); err != nil {
		return Result{
			Package:  name,
			Pipeline: PipelineMirror,
			Kind:     KindBuildFailure,
			Message:  err.Error(),
		}
	}

	return Result{
		Package:  name,
		Pipeline: PipelineMirror,
		Kind:     KindSuccess,
		Message:  "built and installed from the mirror",
	}
}
