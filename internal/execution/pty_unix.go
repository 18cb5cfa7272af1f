//go:build !windows

package execution

import (
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"golang.org/x/term"
)

const (
	defaultCols = 120
	defaultRows = 40
)

// startPTY starts c on a new pty sized like the terminal behind stdout
func startPTY(c *exec.Cmd, stdout io.Writer) (*os.File, error) {
	cols, rows := defaultCols, defaultRows
	if f, ok := stdout.(*os.File); ok {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && h > 0 {
			cols, rows = w, h
		}
	}
	return pty.StartWithSize(c, &pty.Winsize{
		Cols: uint16(cols),
		Rows: uint16(rows),
	})
}
