// Package wsl spawns terminal windows running commands inside a WSL
// distribution, via Windows Terminal on the host.
package wsl

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/1broseidon/wslgrid/internal/platform"
)

// Launcher spawns Windows Terminal windows attached to one WSL distribution.
type Launcher struct {
	distribution string
}

// NewLauncher returns a launcher for the given distribution name.
func NewLauncher(distribution string) *Launcher {
	return &Launcher{distribution: distribution}
}

// BuildGuestCommand builds the shell command run inside the guest: an
// optional cd to the working directory (with "~" expanded to $HOME at shell
// evaluation time) chained to the requested command.
func BuildGuestCommand(command, workingDir string) string {
	if command == "" {
		command = "bash"
	}
	if workingDir == "" {
		return command
	}

	dir := workingDir
	if strings.HasPrefix(dir, "~") {
		dir = "$HOME" + dir[1:]
	}
	return fmt.Sprintf("cd %s && %s", dir, command)
}

// Spawn opens a new Windows Terminal window running command inside the
// distribution. No handle comes back; the identification protocol correlates
// the new window by enumeration diffing.
func (l *Launcher) Spawn(command, workingDir string) error {
	guestCmd := BuildGuestCommand(command, workingDir)
	slog.Debug("spawning terminal", "distribution", l.distribution, "cmd", guestCmd)

	// "start" detaches so wt.exe does not block; "-w new" forces a fresh
	// window rather than a tab in an existing one.
	cmd := exec.Command("cmd.exe",
		"/c", "start", "",
		"wt.exe", "-w", "new",
		"wsl.exe", "-d", l.distribution,
		"--", "bash", "-c", guestCmd,
	)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to start Windows Terminal: %w", err)
	}
	return nil
}

var _ platform.Spawner = (*Launcher)(nil)
