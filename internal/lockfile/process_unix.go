//go:build unix || linux || darwin

package lockfile

import (
	"syscall"
)

// isProcessRunning reports whether pid names a live process, by probing
// it with the null signal (no actual signal delivered).
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		// 0 or negative would target a process group, not one process.
		return false
	}
	err := syscall.Kill(pid, 0)
	return err == nil
}
