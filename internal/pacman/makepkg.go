package pacman

import (
	"context"
	"fmt"

	"auh/internal/execx"
)

// Makepkg builds and installs a package from a cloned recipe directory.
type Makepkg struct {
	r execx.Runner
}

func NewMakepkg(r execx.Runner) *Makepkg {
	return &Makepkg{r: r}
}

// BuildInstall runs makepkg non-interactively inside dir. skipPGP relaxes
// upstream signature verification, which the mirror pipeline needs because
// mirror checkouts lack the maintainers' keyrings.
func (m *Makepkg) BuildInstall(ctx context.Context, dir string, skipPGP bool) error {
	args := []string{"-si", "--noconfirm"}
	if skipPGP {
		args = append(args, "--skippgpcheck")
	}
	if err := m.r.Run(ctx, dir, "makepkg", args...); err != nil {
		return fmt.Errorf("makepkg in %s: %w", dir, err)
	}
	return nil
}
