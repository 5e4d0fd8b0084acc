package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/1broseidon/wslgrid/internal/tiling"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultCommand runs when a window entry gives no command.
	DefaultCommand = "bash"

	// DefaultSettleDelay is how long to wait after spawning a terminal for
	// the host window manager to finish creating its window before
	// re-enumerating handles.
	DefaultSettleDelay = time.Second

	// DefaultMoveRetries is how many times a move/resize is attempted per
	// window before the failure is recorded.
	DefaultMoveRetries = 3
)

var gridTokenRe = regexp.MustCompile(`^[1-9][0-9]*x[1-9][0-9]*$`)

// WindowRequest is one logical window to create: a unique name, the command
// to run inside the guest and an optional working directory (supports
// home-relative "~" paths, expanded at spawn time).
type WindowRequest struct {
	Name       string
	Command    string
	WorkingDir string
}

// Config is the validated in-memory configuration. Immutable once loaded.
type Config struct {
	Distribution  string
	TargetDisplay int
	GridToken     string
	Grid          tiling.Grid
	SettleDelay   time.Duration
	MoveRetries   int
	Windows       []WindowRequest
}

// MalformedGridError reports a grid token that does not match "COLSxROWS".
type MalformedGridError struct {
	Token string
}

func (e *MalformedGridError) Error() string {
	return fmt.Sprintf("invalid grid format %q: expected \"COLSxROWS\" (e.g. \"2x4\")", e.Token)
}

// NoWindowsError reports an empty windows list.
type NoWindowsError struct{}

func (e *NoWindowsError) Error() string {
	return "at least one window must be configured"
}

// CapacityExceededError reports more windows than the grid can hold.
type CapacityExceededError struct {
	Have int
	Max  int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("too many windows configured: %d for a grid holding %d", e.Have, e.Max)
}

// DuplicateNameError reports a window name used more than once (or left
// empty; every window needs a distinct non-empty name).
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	if e.Name == "" {
		return "window name must not be empty"
	}
	return fmt.Sprintf("duplicate window name: %q", e.Name)
}

// BadDisplayIndexError reports a negative target_display. Bounds against the
// live display list are checked at launch time, not here.
type BadDisplayIndexError struct {
	Index int
}

func (e *BadDisplayIndexError) Error() string {
	return fmt.Sprintf("target_display must be >= 0, got %d", e.Index)
}

// MissingDistributionError reports an absent or empty wsl_distribution.
type MissingDistributionError struct{}

func (e *MissingDistributionError) Error() string {
	return "wsl_distribution is required"
}

// ParseGrid parses a "COLSxROWS" token.
func ParseGrid(token string) (tiling.Grid, error) {
	if !gridTokenRe.MatchString(token) {
		return tiling.Grid{}, &MalformedGridError{Token: token}
	}
	parts := strings.SplitN(token, "x", 2)
	cols, err := strconv.Atoi(parts[0])
	if err != nil {
		return tiling.Grid{}, &MalformedGridError{Token: token}
	}
	rows, err := strconv.Atoi(parts[1])
	if err != nil {
		return tiling.Grid{}, &MalformedGridError{Token: token}
	}
	return tiling.Grid{Cols: cols, Rows: rows}, nil
}

// Validate turns a raw parse into a validated Config. Checks run in a fixed
// order so the same input always yields the same error. No side effects.
func Validate(raw *RawConfig) (*Config, error) {
	gridToken := ""
	if raw.Layout != nil && raw.Layout.Grid != nil {
		gridToken = *raw.Layout.Grid
	}
	grid, err := ParseGrid(gridToken)
	if err != nil {
		return nil, err
	}

	if len(raw.Windows) == 0 {
		return nil, &NoWindowsError{}
	}

	if len(raw.Windows) > grid.Capacity() {
		return nil, &CapacityExceededError{Have: len(raw.Windows), Max: grid.Capacity()}
	}

	seen := make(map[string]struct{}, len(raw.Windows))
	windows := make([]WindowRequest, 0, len(raw.Windows))
	for _, w := range raw.Windows {
		name := ""
		if w.Name != nil {
			name = *w.Name
		}
		if name == "" {
			return nil, &DuplicateNameError{Name: ""}
		}
		if _, dup := seen[name]; dup {
			return nil, &DuplicateNameError{Name: name}
		}
		seen[name] = struct{}{}

		command := DefaultCommand
		if w.Command != nil && *w.Command != "" {
			command = *w.Command
		}
		workingDir := ""
		if w.WorkingDir != nil {
			workingDir = *w.WorkingDir
		}
		windows = append(windows, WindowRequest{
			Name:       name,
			Command:    command,
			WorkingDir: workingDir,
		})
	}

	targetDisplay := 0
	if raw.TargetDisplay != nil {
		targetDisplay = *raw.TargetDisplay
	}
	if targetDisplay < 0 {
		return nil, &BadDisplayIndexError{Index: targetDisplay}
	}

	distribution := ""
	if raw.WSLDistribution != nil {
		distribution = strings.TrimSpace(*raw.WSLDistribution)
	}
	if distribution == "" {
		return nil, &MissingDistributionError{}
	}

	settleDelay := DefaultSettleDelay
	if raw.SettleDelayMS != nil && *raw.SettleDelayMS > 0 {
		settleDelay = time.Duration(*raw.SettleDelayMS) * time.Millisecond
	}
	moveRetries := DefaultMoveRetries
	if raw.MoveRetries != nil && *raw.MoveRetries > 0 {
		moveRetries = *raw.MoveRetries
	}

	return &Config{
		Distribution:  distribution,
		TargetDisplay: targetDisplay,
		GridToken:     gridToken,
		Grid:          grid,
		SettleDelay:   settleDelay,
		MoveRetries:   moveRetries,
		Windows:       windows,
	}, nil
}

// YAML renders the effective config back to YAML for `config print`.
func (c *Config) YAML() ([]byte, error) {
	type exportWindow struct {
		Name       string `yaml:"name"`
		Command    string `yaml:"command"`
		WorkingDir string `yaml:"working_dir,omitempty"`
	}
	type exportLayout struct {
		Grid string `yaml:"grid"`
	}
	type export struct {
		WSLDistribution string         `yaml:"wsl_distribution"`
		TargetDisplay   int            `yaml:"target_display"`
		Layout          exportLayout   `yaml:"layout"`
		SettleDelayMS   int            `yaml:"settle_delay_ms"`
		MoveRetries     int            `yaml:"move_retries"`
		Windows         []exportWindow `yaml:"windows"`
	}

	out := export{
		WSLDistribution: c.Distribution,
		TargetDisplay:   c.TargetDisplay,
		Layout:          exportLayout{Grid: c.GridToken},
		SettleDelayMS:   int(c.SettleDelay / time.Millisecond),
		MoveRetries:     c.MoveRetries,
	}
	for _, w := range c.Windows {
		out.Windows = append(out.Windows, exportWindow{
			Name:       w.Name,
			Command:    w.Command,
			WorkingDir: w.WorkingDir,
		})
	}
	return yaml.Marshal(&out)
}
