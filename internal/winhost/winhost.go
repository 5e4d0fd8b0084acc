// Package winhost reaches the Windows host windowing layer from inside WSL
// by invoking PowerShell shim scripts. All loose JSON handling lives here;
// the rest of the program only sees the platform capability interfaces.
package winhost

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Host implements platform.DisplayProvider, platform.WindowEnumerator and
// platform.WindowMover against the Windows host.
type Host struct {
	scriptsDir string
}

// New locates the PowerShell scripts directory and returns a ready Host.
func New() (*Host, error) {
	dir, err := findScriptsDir()
	if err != nil {
		return nil, err
	}
	return &Host{scriptsDir: dir}, nil
}

// findScriptsDir looks for the scripts directory relative to the executable,
// falling back to the working directory.
func findScriptsDir() (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	exeDir := filepath.Dir(exePath)

	candidates := []string{
		filepath.Join(exeDir, "scripts"),
		filepath.Join(exeDir, "..", "scripts"),
		filepath.Join(exeDir, "..", "..", "scripts"),
		"scripts",
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return c, nil
		}
	}
	// Last resort; script invocation will fail with a clear error if the
	// directory genuinely does not exist.
	return "scripts", nil
}

// windowsPath converts a WSL path to its Windows form via wslpath.
func windowsPath(p string) (string, error) {
	out, err := exec.Command("wslpath", "-w", p).Output()
	if err != nil {
		return "", fmt.Errorf("wslpath -w %s: %w", p, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// runScript executes a PowerShell shim script and returns its stdout.
func (h *Host) runScript(name string, args ...string) ([]byte, error) {
	winPath, err := windowsPath(filepath.Join(h.scriptsDir, name))
	if err != nil {
		return nil, err
	}

	psArgs := append([]string{
		"-NoProfile",
		"-ExecutionPolicy", "Bypass",
		"-File", winPath,
	}, args...)

	cmd := exec.Command("powershell.exe", psArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%s failed: %s", name, msg)
	}
	return stdout.Bytes(), nil
}
