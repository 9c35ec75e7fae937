// Package pacman drives the native package manager and build tool through
// structured subprocess invocations. Every command receives its arguments as
// a discrete vector; package names are never interpolated into a shell line.
package pacman

import (
	"context"
	"fmt"
	"strings"

	"auh/internal/execx"
)

type Pacman struct {
	r execx.Runner
}

func New(r execx.Runner) *Pacman {
	return &Pacman{r: r}
}

// Installed reports whether the package is present in the local database.
func (p *Pacman) Installed(ctx context.Context, name string) bool {
	return p.r.RunQuiet(ctx, "", "pacman", "-Q", "--", name) == nil
}

// InRepos reports whether the package exists in the configured sync
// databases. This is a local database read, so a false answer means "not a
// repo package" rather than "repo unreachable".
func (p *Pacman) InRepos(ctx context.Context, name string) bool {
	return p.r.RunQuiet(ctx, "", "pacman", "-Si", "--", name) == nil
}

// InstallRepo installs or updates a package from the sync repositories.
func (p *Pacman) InstallRepo(ctx context.Context, name string) error {
	if err := p.r.Run(ctx, "", "sudo", "pacman", "-S", "--noconfirm", "--", name); err != nil {
		return fmt.Errorf("pacman -S %s: %w", name, err)
	}
	return nil
}

// Remove uninstalls a package. With autoremove, dependencies that no other
// package needs are removed as well.
func (p *Pacman) Remove(ctx context.Context, name string, autoremove bool) error {
	op := "-Rn"
	if autoremove {
		op = "-Rsn"
	}
	if err := p.r.Run(ctx, "", "sudo", "pacman", op, "--noconfirm", "--", name); err != nil {
		return fmt.Errorf("pacman %s %s: %w", op, name, err)
	}
	return nil
}

// Upgrade performs a full system upgrade.
func (p *Pacman) Upgrade(ctx context.Context) error {
	if err := p.r.Run(ctx, "", "sudo", "pacman", "-Syu", "--noconfirm"); err != nil {
		return fmt.Errorf("pacman -Syu: %w", err)
	}
	return nil
}

// CleanCache clears the package cache.
func (p *Pacman) CleanCache(ctx context.Context) error {
	if err := p.r.Run(ctx, "", "sudo", "pacman", "-Scc", "--noconfirm"); err != nil {
		return fmt.Errorf("pacman -Scc: %w", err)
	}
	return nil
}

// ExplicitlyInstalled lists packages the user installed explicitly.
func (p *Pacman) ExplicitlyInstalled(ctx context.Context) ([]string, error) {
	out, err := p.r.Output(ctx, "pacman", "-Qeq")
	if err != nil {
		return nil, fmt.Errorf("pacman -Qeq: %w", err)
	}
	var names []string
	for _, line := range strings.Split(string(out), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
