package launch

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/1broseidon/wslgrid/internal/config"
	"github.com/1broseidon/wslgrid/internal/platform"
)

// Snapshot is the set of live window handles at one observation. Snapshots
// are values: every protocol step takes one in and hands one back, so the
// protocol can be driven by canned enumerations in tests.
type Snapshot map[platform.WindowHandle]struct{}

// NewSnapshot builds a snapshot from an enumeration result.
func NewSnapshot(handles []platform.WindowHandle) Snapshot {
	s := make(Snapshot, len(handles))
	for _, h := range handles {
		s[h] = struct{}{}
	}
	return s
}

// Diff returns the handles present in s but not in before, sorted ascending
// for deterministic output.
func (s Snapshot) Diff(before Snapshot) []platform.WindowHandle {
	var fresh []platform.WindowHandle
	for h := range s {
		if _, ok := before[h]; !ok {
			fresh = append(fresh, h)
		}
	}
	sort.Slice(fresh, func(i, j int) bool { return fresh[i] < fresh[j] })
	return fresh
}

// SleepFunc suspends the caller; tests substitute a no-op.
type SleepFunc func(time.Duration)

// Attribution is the outcome of one launch+identify cycle.
type Attribution struct {
	// Handle is the window attributed to the request. Only valid when
	// Identified is true.
	Handle     platform.WindowHandle
	Identified bool

	// Candidates holds all new handles when more than one appeared and
	// attribution was ambiguous. None of them is attributed.
	Candidates []platform.WindowHandle

	// Reason describes an identification failure in human terms.
	Reason string
}

// Protocol correlates spawned terminals with their on-screen windows.
//
// The host gives no launch-to-window mapping, window titles cannot be
// trusted across the host/guest boundary, and one host process owns many
// windows, so PID tracking is ambiguous too. Instead the protocol snapshots
// the live handle set before a launch, waits for the window manager to
// settle, snapshots again and attributes the single new handle. Launches are
// strictly sequential: concurrent launches would make the diff ambiguous by
// construction.
type Protocol struct {
	enumerator  platform.WindowEnumerator
	spawner     platform.Spawner
	settleDelay time.Duration
	sleep       SleepFunc
}

// NewProtocol wires the protocol to its capabilities. A nil sleep uses
// time.Sleep.
func NewProtocol(enumerator platform.WindowEnumerator, spawner platform.Spawner, settleDelay time.Duration, sleep SleepFunc) *Protocol {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Protocol{
		enumerator:  enumerator,
		spawner:     spawner,
		settleDelay: settleDelay,
		sleep:       sleep,
	}
}

// Baseline takes the initial before-snapshot.
func (p *Protocol) Baseline() (Snapshot, error) {
	handles, err := p.enumerator.ListTerminalWindows()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate terminal windows: %w", err)
	}
	return NewSnapshot(handles), nil
}

// LaunchAndIdentify runs one cycle for req against the before snapshot:
// spawn, settle, re-enumerate, diff. The returned snapshot is the next
// cycle's baseline; it naturally already excludes nothing — all previously
// attributed handles are inside it, so they can never show up as new again.
//
// Failures (spawn error, enumeration error, no new window, ambiguous new
// windows) are reported in the Attribution, never as an error: a single
// request failing must not abort the run.
func (p *Protocol) LaunchAndIdentify(req config.WindowRequest, before Snapshot) (Attribution, Snapshot) {
	if err := p.spawner.Spawn(req.Command, req.WorkingDir); err != nil {
		slog.Warn("spawn failed", "window", req.Name, "error", err)
		return Attribution{Reason: fmt.Sprintf("spawn failed: %v", err)}, before
	}

	// Settle: the host API has no window-creation event, so a fixed
	// blocking wait is the only way to let registration finish.
	p.sleep(p.settleDelay)

	handles, err := p.enumerator.ListTerminalWindows()
	if err != nil {
		slog.Warn("enumeration failed after launch", "window", req.Name, "error", err)
		return Attribution{Reason: fmt.Sprintf("window enumeration failed: %v", err)}, before
	}
	after := NewSnapshot(handles)

	fresh := after.Diff(before)
	switch len(fresh) {
	case 1:
		slog.Debug("window identified", "window", req.Name, "handle", fresh[0])
		return Attribution{Handle: fresh[0], Identified: true}, after
	case 0:
		return Attribution{Reason: "no new window appeared"}, after
	default:
		// Several new handles with no ordering signal to break the tie.
		// Guessing would silently misplace windows, so nothing is
		// attributed.
		return Attribution{
			Candidates: fresh,
			Reason:     fmt.Sprintf("%d new windows appeared, attribution ambiguous", len(fresh)),
		}, after
	}
}
