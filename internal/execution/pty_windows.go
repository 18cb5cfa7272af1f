//go:build windows

package execution

import (
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// startPTY is not available on Windows; callers fall back to pipes
func startPTY(_ *exec.Cmd, _ io.Writer) (*os.File, error) {
	return nil, pty.ErrUnsupported
}
