package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/1broseidon/wslgrid/internal/tiling"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func validRaw() *RawConfig {
	return &RawConfig{
		WSLDistribution: strp("Ubuntu-24.04"),
		Layout:          &RawLayout{Grid: strp("2x2")},
		Windows: []RawWindow{
			{Name: strp("a")},
			{Name: strp("b"), Command: strp("htop")},
		},
	}
}

func TestParseGrid(t *testing.T) {
	tests := []struct {
		token string
		want  tiling.Grid
	}{
		{"2x4", tiling.Grid{Cols: 2, Rows: 4}},
		{"3x3", tiling.Grid{Cols: 3, Rows: 3}},
		{"1x1", tiling.Grid{Cols: 1, Rows: 1}},
		{"10x2", tiling.Grid{Cols: 10, Rows: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseGrid(tt.token)
			if err != nil {
				t.Fatalf("ParseGrid(%q): %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("ParseGrid(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseGridRejectsMalformed(t *testing.T) {
	for _, token := range []string{"", "0x4", "2x", "x4", "abc", "2", "axb", "2x4x6", "-1x2", "2X4", " 2x4"} {
		t.Run(token, func(t *testing.T) {
			_, err := ParseGrid(token)
			var mg *MalformedGridError
			if !errors.As(err, &mg) {
				t.Fatalf("ParseGrid(%q) = %v, want MalformedGridError", token, err)
			}
			if mg.Token != token {
				t.Errorf("error token = %q, want %q", mg.Token, token)
			}
		})
	}
}

func TestValidateSuccess(t *testing.T) {
	cfg, err := Validate(validRaw())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Distribution != "Ubuntu-24.04" {
		t.Errorf("distribution = %q", cfg.Distribution)
	}
	if cfg.Grid != (tiling.Grid{Cols: 2, Rows: 2}) {
		t.Errorf("grid = %+v", cfg.Grid)
	}
	if cfg.TargetDisplay != 0 {
		t.Errorf("target display = %d, want default 0", cfg.TargetDisplay)
	}
	if cfg.SettleDelay != DefaultSettleDelay {
		t.Errorf("settle delay = %s, want %s", cfg.SettleDelay, DefaultSettleDelay)
	}
	if cfg.Windows[0].Command != DefaultCommand {
		t.Errorf("default command = %q, want %q", cfg.Windows[0].Command, DefaultCommand)
	}
	if cfg.Windows[1].Command != "htop" {
		t.Errorf("command = %q, want htop", cfg.Windows[1].Command)
	}
}

func TestValidateMalformedGrid(t *testing.T) {
	raw := validRaw()
	raw.Layout.Grid = strp("2x")
	_, err := Validate(raw)
	var mg *MalformedGridError
	if !errors.As(err, &mg) {
		t.Fatalf("expected MalformedGridError, got %v", err)
	}
}

func TestValidateMissingLayout(t *testing.T) {
	raw := validRaw()
	raw.Layout = nil
	_, err := Validate(raw)
	var mg *MalformedGridError
	if !errors.As(err, &mg) {
		t.Fatalf("expected MalformedGridError for missing layout, got %v", err)
	}
}

func TestValidateNoWindows(t *testing.T) {
	raw := validRaw()
	raw.Windows = nil
	_, err := Validate(raw)
	var nw *NoWindowsError
	if !errors.As(err, &nw) {
		t.Fatalf("expected NoWindowsError, got %v", err)
	}
}

func TestValidateCapacityExceeded(t *testing.T) {
	raw := validRaw()
	raw.Layout.Grid = strp("2x4")
	raw.Windows = nil
	for i := 0; i < 9; i++ {
		name := string(rune('a' + i))
		raw.Windows = append(raw.Windows, RawWindow{Name: strp(name)})
	}
	_, err := Validate(raw)
	var ce *CapacityExceededError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CapacityExceededError, got %v", err)
	}
	if ce.Have != 9 || ce.Max != 8 {
		t.Errorf("CapacityExceeded(%d, %d), want (9, 8)", ce.Have, ce.Max)
	}
}

func TestValidateDuplicateName(t *testing.T) {
	raw := validRaw()
	raw.Windows = []RawWindow{
		{Name: strp("claude-1")},
		{Name: strp("claude-1")},
	}
	_, err := Validate(raw)
	var dn *DuplicateNameError
	if !errors.As(err, &dn) {
		t.Fatalf("expected DuplicateNameError, got %v", err)
	}
	if dn.Name != "claude-1" {
		t.Errorf("duplicate name = %q, want claude-1", dn.Name)
	}
}

func TestValidateNamesAreCaseSensitive(t *testing.T) {
	raw := validRaw()
	raw.Windows = []RawWindow{
		{Name: strp("Shell")},
		{Name: strp("shell")},
	}
	if _, err := Validate(raw); err != nil {
		t.Fatalf("case-differing names should be distinct: %v", err)
	}
}

func TestValidateEmptyName(t *testing.T) {
	raw := validRaw()
	raw.Windows = []RawWindow{{Name: strp("")}}
	_, err := Validate(raw)
	var dn *DuplicateNameError
	if !errors.As(err, &dn) {
		t.Fatalf("expected DuplicateNameError for empty name, got %v", err)
	}
}

func TestValidateNegativeDisplay(t *testing.T) {
	raw := validRaw()
	raw.TargetDisplay = intp(-1)
	_, err := Validate(raw)
	var bd *BadDisplayIndexError
	if !errors.As(err, &bd) {
		t.Fatalf("expected BadDisplayIndexError, got %v", err)
	}
	if bd.Index != -1 {
		t.Errorf("index = %d, want -1", bd.Index)
	}
}

func TestValidateMissingDistribution(t *testing.T) {
	raw := validRaw()
	raw.WSLDistribution = nil
	_, err := Validate(raw)
	var md *MissingDistributionError
	if !errors.As(err, &md) {
		t.Fatalf("expected MissingDistributionError, got %v", err)
	}
}

func TestValidateSettleDelayOverride(t *testing.T) {
	raw := validRaw()
	raw.SettleDelayMS = intp(250)
	cfg, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.SettleDelay != 250*time.Millisecond {
		t.Errorf("settle delay = %s, want 250ms", cfg.SettleDelay)
	}
}

func TestValidateDeterministic(t *testing.T) {
	raw := validRaw()
	raw.Layout.Grid = strp("1x1")
	err1 := func() error { _, err := Validate(raw); return err }()
	err2 := func() error { _, err := Validate(raw); return err }()
	if err1 == nil || err2 == nil {
		t.Fatal("expected capacity error both times")
	}
	if err1.Error() != err2.Error() {
		t.Errorf("errors differ: %v vs %v", err1, err2)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `wsl_distribution: Ubuntu-24.04
target_display: 1
layout:
  grid: "2x2"
windows:
  - name: test-1
    command: bash
    working_dir: "~"
  - name: test-2
    command: htop
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TargetDisplay != 1 {
		t.Errorf("target display = %d, want 1", cfg.TargetDisplay)
	}
	if len(cfg.Windows) != 2 {
		t.Fatalf("windows = %d, want 2", len(cfg.Windows))
	}
	if cfg.Windows[0].WorkingDir != "~" {
		t.Errorf("working dir = %q, want ~", cfg.Windows[0].WorkingDir)
	}
	if cfg.Windows[1].WorkingDir != "" {
		t.Errorf("working dir = %q, want empty", cfg.Windows[1].WorkingDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("windows: [unclosed"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestExampleConfigIsValid(t *testing.T) {
	cfg, err := Parse([]byte(ExampleConfig), "builtin")
	if err != nil {
		t.Fatalf("builtin example should validate: %v", err)
	}
	if len(cfg.Windows) == 0 {
		t.Fatal("builtin example has no windows")
	}
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg, err := Validate(validRaw())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	data, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML: %v", err)
	}
	again, err := Parse(data, "roundtrip")
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if again.GridToken != cfg.GridToken || len(again.Windows) != len(cfg.Windows) {
		t.Errorf("round trip mismatch: %+v vs %+v", again, cfg)
	}
}
