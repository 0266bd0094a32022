//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup terminates pid and its child tree with taskkill.
// /F forces, /T includes children.
func KillProcessGroup(pid int) error {
	if pid <= 0 {
		return ErrInvalidPID
	}
	// taskkill exits non-zero when the tree is already gone.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is numeric
	return nil
}
