// Package sysopen launches the platform default handler for a file.
package sysopen

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open hands the path to the OS file handler and returns once the handler
// has started. The viewer runs detached; callers check the path exists
// before asking for it to be opened.
func Open(path string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		// Empty window title keeps start from eating quoted paths.
		c = exec.Command("cmd", "/c", "start", "", path)
	case "darwin":
		c = exec.Command("open", path)
	default:
		c = exec.Command("xdg-open", path)
	}

	if err := c.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	return c.Process.Release()
}
