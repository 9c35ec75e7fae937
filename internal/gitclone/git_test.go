package gitclone

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeRunner struct {
	calls []string
	err   error
}

func (f *fakeRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	return f.err
}

func (f *fakeRunner) RunQuiet(ctx context.Context, dir, name string, args ...string) error {
	return f.Run(ctx, dir, name, args...)
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return nil, errors.New("not used")
}

func TestClone(t *testing.T) {
	f := &fakeRunner{}
	if err := New(f).Clone(context.Background(), "https://aur.archlinux.org/yay.git", "/tmp/x"); err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if got, want := f.calls[0], "git clone -- https://aur.archlinux.org/yay.git /tmp/x"; got != want {
		t.Errorf("argv = %q, want %q", got, want)
	}
}

func TestCloneBranch(t *testing.T) {
	f := &fakeRunner{}
	err := New(f).CloneBranch(context.Background(), "https://github.com/archlinux/aur.git", "yay", "/tmp/x")
	if err != nil {
		t.Fatalf("CloneBranch: %v", err)
	}
	want := "git clone --single-branch --branch yay --depth=1 -- https://github.com/archlinux/aur.git /tmp/x"
	if f.calls[0] != want {
		t.Errorf("argv = %q, want %q", f.calls[0], want)
	}
}

func TestCloneFailurePropagates(t *testing.T) {
	f := &fakeRunner{err: errors.New("exit status 128")}
	if err := New(f).Clone(context.Background(), "u", "d"); err == nil {
		t.Error("expected clone failure to propagate")
	}
	if err := New(f).CloneBranch(context.Background(), "u", "b", "d"); err == nil {
		t.Error("expected branch clone failure to propagate")
	}
}
