// Package gitclone wraps the two clone shapes the install pipelines need.
package gitclone

import (
	"context"
	"fmt"

	"auh/internal/execx"
)

type Git struct {
	r execx.Runner
}

func New(r execx.Runner) *Git {
	return &Git{r: r}
}

// Clone performs a full clone of url into dir (the primary pipeline's
// build-recipe checkout). dir must exist and be empty.
func (g *Git) Clone(ctx context.Context, url, dir string) error {
	if err := g.r.RunQuiet(ctx, "", "git", "clone", "--", url, dir); err != nil {
		return fmt.Errorf("git clone %s: %w", url, err)
	}
	return nil
}

// CloneBranch performs a shallow, single-branch, depth-1 clone of one branch
// of url into dir (the mirror pipeline, where the branch name is the package
// name).
func (g *Git) CloneBranch(ctx context.Context, url, branch, dir string) error {
	if err := g.r.RunQuiet(ctx, "", "git", "clone", "--single-branch", "--branch", branch, "--depth=1", "--", url, dir); err != nil {
		return fmt.Errorf("git clone --branch %s %s: %w", branch, url, err)
	}
	return nil
}
