package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/1broseidon/wslgrid/internal/platform"
)

type stubDisplays struct {
	displays []platform.Display
}

func (s *stubDisplays) Displays() ([]platform.Display, error) {
	return s.displays, nil
}

type stubEnumerator struct {
	snapshots [][]platform.WindowHandle
	calls     int
}

func (s *stubEnumerator) ListTerminalWindows() ([]platform.WindowHandle, error) {
	i := s.calls
	s.calls++
	if i >= len(s.snapshots) {
		i = len(s.snapshots) - 1
	}
	if i < 0 {
		return nil, nil
	}
	return s.snapshots[i], nil
}

func (s *stubEnumerator) ActiveWindow() (platform.WindowHandle, error) {
	return 0, nil
}

type stubMover struct {
	moves int
}

func (s *stubMover) MoveResize(platform.WindowHandle, platform.Rect) error {
	s.moves++
	return nil
}

type stubSpawner struct {
	spawned int
}

func (s *stubSpawner) Spawn(command, workingDir string) error {
	s.spawned++
	return nil
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const testConfigYAML = `wsl_distribution: Ubuntu-24.04
layout:
  grid: "2x2"
windows:
  - name: one
  - name: two
`

func TestHandleValidateConfig(t *testing.T) {
	path := writeConfig(t, testConfigYAML)
	s := &Server{configPath: path}

	_, out, err := s.handleValidateConfig(context.Background(), nil, ValidateConfigInput{})
	if err != nil {
		t.Fatalf("handleValidateConfig: %v", err)
	}
	if !out.Valid {
		t.Errorf("expected valid config, got error %q", out.Error)
	}
}

func TestHandleValidateConfigInvalid(t *testing.T) {
	path := writeConfig(t, "layout:\n  grid: \"0x0\"\nwindows:\n  - name: a\n")
	s := &Server{configPath: path}

	_, out, err := s.handleValidateConfig(context.Background(), nil, ValidateConfigInput{})
	if err != nil {
		t.Fatalf("handleValidateConfig: %v", err)
	}
	if out.Valid {
		t.Error("expected invalid config")
	}
	if out.Error == "" {
		t.Error("expected an error message")
	}
}

func TestHandleListDisplays(t *testing.T) {
	s := &Server{
		displays: &stubDisplays{displays: []platform.Display{
			{Name: "A", Primary: true, Bounds: platform.Rect{Width: 1920, Height: 1080}},
			{Name: "B", Bounds: platform.Rect{X: 1920, Width: 2560, Height: 1440}},
		}},
	}

	_, out, err := s.handleListDisplays(context.Background(), nil, ListDisplaysInput{})
	if err != nil {
		t.Fatalf("handleListDisplays: %v", err)
	}
	if len(out.Displays) != 2 {
		t.Fatalf("expected 2 displays, got %d", len(out.Displays))
	}
	if out.Displays[1].Index != 1 || out.Displays[1].Bounds.X != 1920 {
		t.Errorf("second display = %+v", out.Displays[1])
	}
}

func TestHandleLaunchWindows(t *testing.T) {
	path := writeConfig(t, testConfigYAML)
	enum := &stubEnumerator{snapshots: [][]platform.WindowHandle{
		nil,
		{101},
		{101, 102},
	}}
	mover := &stubMover{}
	spawner := &stubSpawner{}
	s := &Server{
		configPath: path,
		displays: &stubDisplays{displays: []platform.Display{{
			Name:     `\\.\DISPLAY1`,
			Primary:  true,
			WorkArea: platform.Rect{Width: 1920, Height: 1080},
		}}},
		enum:       enum,
		mover:      mover,
		newSpawner: func(string) platform.Spawner { return spawner },
		sleep:      func(d time.Duration) {},
	}

	_, out, err := s.handleLaunchWindows(context.Background(), nil, LaunchWindowsInput{})
	if err != nil {
		t.Fatalf("handleLaunchWindows: %v", err)
	}
	if !out.Success {
		t.Fatalf("expected success, got %+v", out.Results)
	}
	if spawner.spawned != 2 || mover.moves != 2 {
		t.Errorf("spawned=%d moves=%d, want 2 and 2", spawner.spawned, mover.moves)
	}
	if out.Results[0].Handle != 101 || out.Results[1].Handle != 102 {
		t.Errorf("handles = %d,%d", out.Results[0].Handle, out.Results[1].Handle)
	}
}

func TestHandleGetStatus(t *testing.T) {
	path := writeConfig(t, testConfigYAML)
	enum := &stubEnumerator{snapshots: [][]platform.WindowHandle{{1, 2, 3}}}
	s := &Server{configPath: path, enum: enum}

	_, out, err := s.handleGetStatus(context.Background(), nil, GetStatusInput{})
	if err != nil {
		t.Fatalf("handleGetStatus: %v", err)
	}
	if out.ConfiguredWindows != 2 || out.LiveWindows != 3 {
		t.Errorf("status = %+v", out)
	}
	if out.Grid != "2x2" {
		t.Errorf("grid = %q", out.Grid)
	}
}
