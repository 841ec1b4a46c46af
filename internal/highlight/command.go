package highlight

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/alnah/go-mdpreview/internal/process"
)

// LangPlaceholder is replaced by the language token in Command arguments.
const LangPlaceholder = "{lang}"

// waitDelay bounds how long Wait blocks on output pipes after a kill.
const waitDelay = 500 * time.Millisecond

// Command highlights code with an external program. The code is written to
// its stdin and its stdout is taken as the HTML fragment. On timeout the
// whole process group is killed.
type Command struct {
	argv    []string
	timeout time.Duration
}

// NewCommand creates a Command from argv, e.g.
// ["pygmentize", "-l", "{lang}", "-f", "html"]. A timeout <= 0 disables it.
func NewCommand(argv []string, timeout time.Duration) (*Command, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrEmptyCommand
	}
	return &Command{argv: append([]string(nil), argv...), timeout: timeout}, nil
}

// Highlight runs the command once for the block.
func (c *Command) Highlight(ctx context.Context, lang, code string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := make([]string, len(c.argv)-1)
	for i, a := range c.argv[1:] {
		args[i] = strings.ReplaceAll(a, LangPlaceholder, lang)
	}

	cmd := exec.CommandContext(ctx, c.argv[0], args...) // #nosec G204 -- argv comes from the user's config
	process.SetProcessGroup(cmd)
	cmd.Cancel = func() error {
		process.KillProcessGroup(cmd.Process.Pid)
		return nil
	}
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(code)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrCommandFailed, c.argv[0], ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("%w: %s: %w", ErrCommandFailed, c.argv[0], err)
		}
		return "", fmt.Errorf("%w: %s: %w: %s", ErrCommandFailed, c.argv[0], err, msg)
	}

	return stdout.String(), nil
}

// Check reports whether the program can be found in PATH.
func (c *Command) Check() error {
	_, err := exec.LookPath(c.argv[0])
	return err
}

// Name returns the program the command runs.
func (c *Command) Name() string {
	return c.argv[0]
}

// Compile-time interface check.
var _ Highlighter = (*Command)(nil)
