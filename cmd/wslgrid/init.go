package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/1broseidon/wslgrid/internal/config"
)

func runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("c", config.DefaultPath, "path to config file")
	force := fs.Bool("force", false, "overwrite an existing config file")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wslgrid init [-c config.yaml] [-force]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Write a starter configuration. When run interactively, prompts for")
		fmt.Fprintln(os.Stderr, "the distribution, grid and display; otherwise writes the built-in")
		fmt.Fprintln(os.Stderr, "example.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if _, err := os.Stat(*configPath); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "%s already exists (use -force to overwrite)\n", *configPath)
		return 1
	}

	content := config.ExampleConfig
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		body, err := promptConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		content = body
	}

	if err := os.WriteFile(*configPath, []byte(content), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *configPath, err)
		return 1
	}
	fmt.Printf("Wrote %s\n", *configPath)
	fmt.Println("Edit the windows list, then run 'wslgrid validate'.")
	return 0
}

// promptConfig collects the key settings interactively and renders a config
// with two starter windows.
func promptConfig() (string, error) {
	distribution := "Ubuntu-24.04"
	grid := "2x2"
	display := "0"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("WSL distribution").
				Description("As shown by 'wsl -l' on the host").
				Value(&distribution).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("distribution is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Grid").
				Description("COLSxROWS, e.g. 2x2 or 3x2").
				Value(&grid).
				Validate(func(s string) error {
					_, err := config.ParseGrid(s)
					return err
				}),
			huh.NewInput().
				Title("Target display").
				Description("0 = primary; see 'wslgrid displays'").
				Value(&display).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return fmt.Errorf("must be a non-negative integer")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("init cancelled: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "wsl_distribution: %s\n", strings.TrimSpace(distribution))
	fmt.Fprintf(&b, "target_display: %s\n", strings.TrimSpace(display))
	b.WriteString("\nlayout:\n")
	fmt.Fprintf(&b, "  grid: %q\n", strings.TrimSpace(grid))
	b.WriteString("\nsettle_delay_ms: 1000\n")
	b.WriteString("\nwindows:\n")
	b.WriteString("  - name: shell-1\n")
	b.WriteString("    working_dir: ~\n")
	b.WriteString("  - name: shell-2\n")
	b.WriteString("    command: htop\n")
	return b.String(), nil
}
