// Package mcp exposes wslgrid operations as MCP tools over stdio, so agent
// orchestrators can launch and arrange terminal grids programmatically.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wslgrid/internal/launch"
	"github.com/1broseidon/wslgrid/internal/platform"
	"github.com/1broseidon/wslgrid/internal/winhost"
	"github.com/1broseidon/wslgrid/internal/wsl"
)

const (
	ServerName    = "wslgrid"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for wslgrid.
type Server struct {
	mcpServer  *mcpsdk.Server
	configPath string

	displays platform.DisplayProvider
	enum     platform.WindowEnumerator
	mover    platform.WindowMover

	// newSpawner builds a spawner per launch so the distribution follows
	// whatever the loaded config says.
	newSpawner func(distribution string) platform.Spawner
	sleep      launch.SleepFunc
}

// NewServer wires the MCP server to the live Windows host.
func NewServer(configPath string) (*Server, error) {
	host, err := winhost.New()
	if err != nil {
		return nil, err
	}

	s := &Server{
		configPath: configPath,
		displays:   host,
		enum:       host,
		mover:      host,
		newSpawner: func(distribution string) platform.Spawner {
			return wsl.NewLauncher(distribution)
		},
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_displays",
		Description: "List the host's displays with their bounds and usable working areas, in index order. The index is what target_display in the config refers to.",
	}, s.handleListDisplays)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "validate_config",
		Description: "Validate a wslgrid configuration file without launching anything. Returns the first validation error, if any.",
	}, s.handleValidateConfig)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "launch_windows",
		Description: "Launch all configured WSL terminal windows and arrange them into the configured grid. Launches are sequential with a settle delay per window; per-window failures are reported but do not abort the run.",
	}, s.handleLaunchWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "arrange_windows",
		Description: "Re-arrange already-running terminal windows into the configured grid without launching anything. Live windows are paired to configured slots in order.",
	}, s.handleArrangeWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report the configured window count and grid alongside the number of live terminal windows on the host.",
	}, s.handleGetStatus)
}
