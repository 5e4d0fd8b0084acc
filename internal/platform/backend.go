package platform

// WindowHandle is an opaque host-assigned identifier for a top-level window.
// Handles are only meaningful while freshly observed; a handle may become
// invalid at any time once the window is closed.
type WindowHandle int64

// Rect describes a rectangular region in host screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display: its full bounds and the usable
// working area (excluding taskbars and other reserved OS chrome).
type Display struct {
	Name     string
	Primary  bool
	Bounds   Rect
	WorkArea Rect
}

// DisplayProvider enumerates the host's displays.
type DisplayProvider interface {
	Displays() ([]Display, error)
}

// WindowEnumerator observes the set of live terminal windows on the host.
type WindowEnumerator interface {
	ListTerminalWindows() ([]WindowHandle, error)
	ActiveWindow() (WindowHandle, error)
}

// WindowMover repositions a host window.
type WindowMover interface {
	MoveResize(handle WindowHandle, bounds Rect) error
}

// Spawner starts a new terminal window running a command inside the guest.
// The host gives no handle back; callers correlate the new window by
// diffing enumeration snapshots.
type Spawner interface {
	Spawn(command, workingDir string) error
}
