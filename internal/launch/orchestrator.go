package launch

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/1broseidon/wslgrid/internal/config"
	"github.com/1broseidon/wslgrid/internal/platform"
	"github.com/1broseidon/wslgrid/internal/tiling"
)

// moveRetryPause is the wait between move attempts for a window whose host
// side may not be ready yet.
const moveRetryPause = 500 * time.Millisecond

// Result is the per-request outcome of a launch or arrange run.
type Result struct {
	Name       string
	Handle     platform.WindowHandle
	Identified bool
	Placed     bool
	Reason     string
	Candidates []platform.WindowHandle
}

// OK reports whether the request was both identified and placed.
func (r Result) OK() bool {
	return r.Identified && r.Placed
}

// AllOK reports whether every request succeeded; the process exit code
// follows it.
func AllOK(results []Result) bool {
	for _, r := range results {
		if !r.OK() {
			return false
		}
	}
	return true
}

// Orchestrator sequences configuration, geometry, identification and
// placement for one launch or arrange run.
type Orchestrator struct {
	cfg      *config.Config
	displays platform.DisplayProvider
	enum     platform.WindowEnumerator
	mover    platform.WindowMover
	spawner  platform.Spawner
	sleep    SleepFunc
}

// New wires an orchestrator. A nil sleep uses time.Sleep.
func New(cfg *config.Config, displays platform.DisplayProvider, enum platform.WindowEnumerator, mover platform.WindowMover, spawner platform.Spawner, sleep SleepFunc) *Orchestrator {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Orchestrator{
		cfg:      cfg,
		displays: displays,
		enum:     enum,
		mover:    mover,
		spawner:  spawner,
		sleep:    sleep,
	}
}

// targetArea fetches the live display list and resolves the configured
// display's working area. Failure here is fatal: without the display
// rectangle no geometry can be computed, so nothing may launch.
func (o *Orchestrator) targetArea() (platform.Rect, error) {
	displays, err := o.displays.Displays()
	if err != nil {
		return platform.Rect{}, fmt.Errorf("failed to enumerate displays: %w", err)
	}
	if o.cfg.TargetDisplay >= len(displays) {
		return platform.Rect{}, fmt.Errorf("target_display %d not found (%d display(s) present)", o.cfg.TargetDisplay, len(displays))
	}
	d := displays[o.cfg.TargetDisplay]
	slog.Info("using display", "index", o.cfg.TargetDisplay, "name", d.Name, "work_area", fmt.Sprintf("%dx%d@%d,%d", d.WorkArea.Width, d.WorkArea.Height, d.WorkArea.X, d.WorkArea.Y))
	return d.WorkArea, nil
}

// Launch runs the full pipeline: validate-time config is already checked, so
// this computes all placements up front, drives one launch+identify cycle
// per window request in declaration order, then places every identified
// window. Per-request failures are recorded and the run continues; only a
// missing display list aborts.
func (o *Orchestrator) Launch() ([]Result, error) {
	area, err := o.targetArea()
	if err != nil {
		return nil, err
	}
	positions := tiling.CalculatePositions(area, o.cfg.Grid, len(o.cfg.Windows))

	protocol := NewProtocol(o.enum, o.spawner, o.cfg.SettleDelay, o.sleep)
	baseline, err := protocol.Baseline()
	if err != nil {
		return nil, err
	}
	slog.Debug("baseline snapshot", "windows", len(baseline))

	results := make([]Result, len(o.cfg.Windows))
	for i, req := range o.cfg.Windows {
		slog.Info("launching window", "name", req.Name, "command", req.Command)
		attr, next := protocol.LaunchAndIdentify(req, baseline)
		baseline = next

		results[i] = Result{
			Name:       req.Name,
			Handle:     attr.Handle,
			Identified: attr.Identified,
			Reason:     attr.Reason,
			Candidates: attr.Candidates,
		}
		if !attr.Identified {
			slog.Warn("identification failed", "name", req.Name, "reason", attr.Reason)
		}
	}

	o.arrange(results, positions)
	return results, nil
}

// Arrange re-places already-running windows without relaunching. There is no
// identification signal for pre-existing windows, so live handles are paired
// to requests positionally: first found to first request. Extra live windows
// are left alone; unmatched requests are recorded as failures.
func (o *Orchestrator) Arrange() ([]Result, error) {
	area, err := o.targetArea()
	if err != nil {
		return nil, err
	}
	positions := tiling.CalculatePositions(area, o.cfg.Grid, len(o.cfg.Windows))

	handles, err := o.enum.ListTerminalWindows()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate terminal windows: %w", err)
	}
	slog.Info("arranging windows", "live", len(handles), "requested", len(o.cfg.Windows))

	results := make([]Result, len(o.cfg.Windows))
	for i, req := range o.cfg.Windows {
		results[i] = Result{Name: req.Name}
		if i < len(handles) {
			results[i].Handle = handles[i]
			results[i].Identified = true
		} else {
			results[i].Reason = "no live window to pair"
		}
	}

	o.arrange(results, positions)
	return results, nil
}

// arrange applies one move/resize per identified handle, by request index.
// A failure for one window never blocks the rest.
func (o *Orchestrator) arrange(results []Result, positions []platform.Rect) {
	for i := range results {
		if !results[i].Identified {
			continue
		}
		rect := positions[i]
		if err := o.moveWithRetry(results[i].Handle, rect); err != nil {
			results[i].Reason = fmt.Sprintf("move failed: %v", err)
			slog.Warn("placement failed", "name", results[i].Name, "handle", results[i].Handle, "error", err)
			continue
		}
		results[i].Placed = true
		slog.Debug("window placed", "name", results[i].Name, "handle", results[i].Handle, "rect", fmt.Sprintf("%dx%d@%d,%d", rect.Width, rect.Height, rect.X, rect.Y))
	}
}

// moveWithRetry retries a move for windows whose host side may still be
// settling. Only the last error surfaces.
func (o *Orchestrator) moveWithRetry(handle platform.WindowHandle, rect platform.Rect) error {
	var err error
	for attempt := 0; attempt < o.cfg.MoveRetries; attempt++ {
		if attempt > 0 {
			o.sleep(moveRetryPause)
		}
		if err = o.mover.MoveResize(handle, rect); err == nil {
			return nil
		}
		slog.Debug("move attempt failed", "handle", handle, "attempt", attempt+1, "error", err)
	}
	return err
}
