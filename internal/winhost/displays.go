package winhost

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/1broseidon/wslgrid/internal/platform"
)

// The display script serializes System.Windows.Forms.Screen objects, so the
// JSON keys are PascalCase .NET property names.
type boundsJSON struct {
	X      int `json:"X"`
	Y      int `json:"Y"`
	Width  int `json:"Width"`
	Height int `json:"Height"`
}

type displayJSON struct {
	DeviceName  string     `json:"DeviceName"`
	Primary     bool       `json:"Primary"`
	Bounds      boundsJSON `json:"Bounds"`
	WorkingArea boundsJSON `json:"WorkingArea"`
}

func (b boundsJSON) rect() platform.Rect {
	return platform.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// parseDisplays decodes the display script output. PowerShell emits a bare
// object for a single display and an array for several.
func parseDisplays(data []byte) ([]platform.Display, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("display script produced no output")
	}

	var raw []displayJSON
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse display JSON: %w", err)
		}
	} else {
		var single displayJSON
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("failed to parse display JSON: %w", err)
		}
		raw = []displayJSON{single}
	}

	displays := make([]platform.Display, 0, len(raw))
	for _, d := range raw {
		displays = append(displays, platform.Display{
			Name:     d.DeviceName,
			Primary:  d.Primary,
			Bounds:   d.Bounds.rect(),
			WorkArea: d.WorkingArea.rect(),
		})
	}
	return displays, nil
}

// Displays enumerates the host's displays with bounds and working areas.
func (h *Host) Displays() ([]platform.Display, error) {
	out, err := h.runScript("get-displays.ps1")
	if err != nil {
		return nil, err
	}
	return parseDisplays(out)
}

var _ platform.DisplayProvider = (*Host)(nil)
