package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/1broseidon/wslgrid/internal/config"
	"github.com/1broseidon/wslgrid/internal/launch"
	"github.com/1broseidon/wslgrid/internal/winhost"
	"github.com/1broseidon/wslgrid/internal/wsl"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "init":
		os.Exit(runInit(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "displays":
		os.Exit(runDisplays(os.Args[2:]))
	case "validate":
		os.Exit(runValidate(os.Args[2:]))
	case "launch":
		os.Exit(runLaunch(os.Args[2:]))
	case "arrange":
		os.Exit(runArrange(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wslgrid <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Launch WSL terminal windows and arrange them into a grid on a display.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  init          Write a starter configuration file")
	fmt.Fprintln(w, "  validate      Validate the configuration file")
	fmt.Fprintln(w, "  launch        Launch all configured windows and arrange them")
	fmt.Fprintln(w, "  arrange       Re-arrange already-running windows without launching")
	fmt.Fprintln(w, "  displays      List host displays")
	fmt.Fprintln(w, "  status        Show configuration and live window summary")
	fmt.Fprintln(w, "  config print  Print the effective configuration")
	fmt.Fprintln(w, "  mcp serve     Start the MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Common options:")
	fmt.Fprintln(w, "  -c <path>     Config file (default: config.yaml)")
	fmt.Fprintln(w, "  -v            Verbose logging")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'wslgrid <command> --help' for command-specific options.")
}

// commonFlags registers the flags every config-driven subcommand shares.
func commonFlags(fs *flag.FlagSet) (configPath *string, verbose *bool) {
	configPath = fs.String("c", config.DefaultPath, "path to config file")
	verbose = fs.Bool("v", false, "enable verbose logging")
	return configPath, verbose
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

func runValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath, verbose := commonFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wslgrid validate [-c config.yaml]")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	setupLogging(*verbose)

	if _, err := config.Load(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}
	fmt.Println("Configuration is valid")
	return 0
}

func runLaunch(args []string) int {
	fs := flag.NewFlagSet("launch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath, verbose := commonFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wslgrid launch [-c config.yaml] [-v]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Launch every configured window, identify each new window by handle")
		fmt.Fprintln(os.Stderr, "diffing, then move them into their grid cells.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	setupLogging(*verbose)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}
	host, err := winhost.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	o := launch.New(cfg, host, host, host, wsl.NewLauncher(cfg.Distribution), nil)
	results, err := o.Launch()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Print(launch.RenderReport(results))
	if !launch.AllOK(results) {
		return 1
	}
	return 0
}

func runArrange(args []string) int {
	fs := flag.NewFlagSet("arrange", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath, verbose := commonFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wslgrid arrange [-c config.yaml] [-v]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Pair live terminal windows to configured slots in order and move")
		fmt.Fprintln(os.Stderr, "them into their grid cells. Nothing is launched.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	setupLogging(*verbose)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}
	host, err := winhost.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	o := launch.New(cfg, host, host, host, wsl.NewLauncher(cfg.Distribution), nil)
	results, err := o.Arrange()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Print(launch.RenderReport(results))
	if !launch.AllOK(results) {
		return 1
	}
	return 0
}

func runDisplays(args []string) int {
	fs := flag.NewFlagSet("displays", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	verbose := fs.Bool("v", false, "enable verbose logging")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wslgrid displays")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	setupLogging(*verbose)

	host, err := winhost.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	displays, err := host.Displays()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	for i, d := range displays {
		primary := ""
		if d.Primary {
			primary = " (primary)"
		}
		fmt.Printf("Display %d: %s%s\n", i, d.Name, primary)
		fmt.Printf("  bounds:    %dx%d at (%d, %d)\n", d.Bounds.Width, d.Bounds.Height, d.Bounds.X, d.Bounds.Y)
		fmt.Printf("  work area: %dx%d at (%d, %d)\n", d.WorkArea.Width, d.WorkArea.Height, d.WorkArea.X, d.WorkArea.Y)
	}
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath, verbose := commonFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wslgrid status [-c config.yaml]")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	setupLogging(*verbose)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	fmt.Printf("Distribution:   %s\n", cfg.Distribution)
	fmt.Printf("Grid:           %s (%d slots)\n", cfg.GridToken, cfg.Grid.Capacity())
	fmt.Printf("Target display: %d\n", cfg.TargetDisplay)
	fmt.Printf("Windows:        %d configured\n", len(cfg.Windows))

	host, err := winhost.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	handles, err := host.ListTerminalWindows()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to enumerate terminal windows: %v\n", err)
		return 1
	}
	fmt.Printf("Live terminals: %d\n", len(handles))
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: wslgrid config print [-c config.yaml]")
		if len(args) == 0 {
			return 2
		}
		return 0
	}
	if args[0] != "print" {
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}

	fs := flag.NewFlagSet("config print", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath, verbose := commonFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wslgrid config print [-c config.yaml]")
	}
	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	setupLogging(*verbose)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}
	out, err := cfg.YAML()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	os.Stdout.Write(out)
	return 0
}
