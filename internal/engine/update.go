package engine

import (
	"context"
	"fmt"
	"os"

	"auh/internal/build"
	"auh/internal/pkgname"
)

// SystemManager covers the package-manager operations the updater needs.
type SystemManager interface {
	InRepos(ctx context.Context, name string) bool
	InstallRepo(ctx context.Context, name string) error
	Upgrade(ctx context.Context) error
}

// Updater brings named packages up to date: repository packages go through
// the system package manager, everything else is rebuilt from the catalog.
type Updater struct {
	System  SystemManager
	Catalog build.Catalog
	Git     build.Cloner
	Build   build.Builder

	// ScratchBase overrides the scratch-directory parent (tests); empty
	// means the system temp directory.
	ScratchBase string

	// Status, when non-nil, receives per-package progress lines.
	Status func(name, msg string)
}

func (u *Updater) status(name, msg string) {
	if u.Status != nil {
		u.Status(name, msg)
	}
}

// UpdateOne updates a single package. A package the repositories know about
// is updated with the package manager; a package they do not carry is
// rebuilt from its catalog recipe. Errors are returned, never masked as a
// rebuild.
func (u *Updater) UpdateOne(ctx context.Context, name string) error {
	if !pkgname.Valid(name) {
		return fmt.Errorf("invalid package name %q", name)
	}

	if u.System.InRepos(ctx, name) {
		u.status(name, "updating from the repositories")
		if err := u.System.InstallRepo(ctx, name); err != nil {
			return fmt.Errorf("update %s: %w", name, err)
		}
		return nil
	}

	scratch, err := os.MkdirTemp(u.ScratchBase, "auh-"+name+"-")
	if err != nil {
		return fmt.Errorf("create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	u.status(name, "cloning build recipe")
	if err := u.Git.Clone(ctx, u.Catalog.PackageURL(name), scratch); err != nil {
		return fmt.Errorf("clone %s: %w", name, err)
	}

	u.status(name, "rebuilding")
	if err := u.Build.BuildInstall(ctx, scratch, false); err != nil {
		return fmt.Errorf("rebuild %s: %w", name, err)
	}
	return nil
}
