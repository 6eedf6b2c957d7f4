// Package process runs external tools so that canceling their context
// terminates the whole process tree.
package process

import (
	"os/exec"
	"time"
)

// WaitDelay bounds how long Wait blocks on output pipes after a kill.
const WaitDelay = 5 * time.Second

// Prepare configures a command created with exec.CommandContext: it runs in
// its own process group and cancellation kills the group, not only the
// direct child.
func Prepare(cmd *exec.Cmd) {
	setGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		KillProcessGroup(cmd.Process.Pid)
		return cmd.Process.Kill()
	}
	cmd.WaitDelay = WaitDelay
}
