package winhost

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/1broseidon/wslgrid/internal/platform"
)

// parseHandles decodes window-handle script output. PowerShell collapses its
// pipeline, so the output may be null/empty (no windows), a bare number
// (one window) or an array.
func parseHandles(data []byte) ([]platform.WindowHandle, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var raw []int64
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse window handle JSON: %w", err)
		}
		handles := make([]platform.WindowHandle, len(raw))
		for i, h := range raw {
			handles[i] = platform.WindowHandle(h)
		}
		return handles, nil
	}

	h, err := strconv.ParseInt(string(trimmed), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse window handle %q: %w", trimmed, err)
	}
	return []platform.WindowHandle{platform.WindowHandle(h)}, nil
}

// ListTerminalWindows returns the handles of all live Windows Terminal
// windows on the host.
func (h *Host) ListTerminalWindows() ([]platform.WindowHandle, error) {
	out, err := h.runScript("get-terminal-windows.ps1")
	if err != nil {
		return nil, err
	}
	return parseHandles(out)
}

// ActiveWindow returns the handle of the current foreground window.
func (h *Host) ActiveWindow() (platform.WindowHandle, error) {
	out, err := h.runScript("get-foreground-window.ps1")
	if err != nil {
		return 0, err
	}
	handles, err := parseHandles(out)
	if err != nil {
		return 0, err
	}
	if len(handles) == 0 {
		return 0, fmt.Errorf("no foreground window reported")
	}
	return handles[0], nil
}

// MoveResize moves a window, identified by handle, to the given bounds.
func (h *Host) MoveResize(handle platform.WindowHandle, bounds platform.Rect) error {
	_, err := h.runScript("move-window.ps1",
		"-Handle", strconv.FormatInt(int64(handle), 10),
		"-X", strconv.Itoa(bounds.X),
		"-Y", strconv.Itoa(bounds.Y),
		"-Width", strconv.Itoa(bounds.Width),
		"-Height", strconv.Itoa(bounds.Height),
	)
	return err
}

var (
	_ platform.WindowEnumerator = (*Host)(nil)
	_ platform.WindowMover      = (*Host)(nil)
)
