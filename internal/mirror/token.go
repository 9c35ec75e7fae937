package mirror

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Token returns a GitHub access token for preflight calls, or "" when none is
// available. Sources, in order: GITHUB_TOKEN, then GitHub CLI auth
// (`gh auth token`). Preflights are advisory, so a missing token is never an
// error; resolution failures all collapse to "".
func Token(ctx context.Context) string {
	if tok := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); tok != "" {
		return tok
	}
	if _, err := exec.LookPath("gh"); err != nil {
		return ""
	}

	// Keep this bounded so a broken gh config or credential helper
	// doesn't hang installs.
	cmdCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}

	out, err := exec.CommandContext(cmdCtx, "gh", "auth", "token", "-h", "github.com").Output()
	if err != nil {
		return ""
	}
	tok := strings.TrimSpace(string(out))
	if tok == "" || strings.ContainsAny(tok, " \t\n\r") {
		return ""
	}
	return tok
}
