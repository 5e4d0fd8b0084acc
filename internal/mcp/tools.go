package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wslgrid/internal/config"
	"github.com/1broseidon/wslgrid/internal/launch"
	"github.com/1broseidon/wslgrid/internal/platform"
)

func (s *Server) resolvePath(path string) string {
	if path != "" {
		return path
	}
	return s.configPath
}

func rectInfo(r platform.Rect) RectInfo {
	return RectInfo{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func windowResults(results []launch.Result) []WindowResult {
	out := make([]WindowResult, len(results))
	for i, r := range results {
		wr := WindowResult{
			Name:       r.Name,
			Identified: r.Identified,
			Placed:     r.Placed,
			Reason:     r.Reason,
		}
		if r.Identified {
			wr.Handle = int64(r.Handle)
		}
		for _, c := range r.Candidates {
			wr.Candidates = append(wr.Candidates, int64(c))
		}
		out[i] = wr
	}
	return out
}

func (s *Server) handleListDisplays(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListDisplaysInput) (*mcpsdk.CallToolResult, ListDisplaysOutput, error) {
	displays, err := s.displays.Displays()
	if err != nil {
		return nil, ListDisplaysOutput{}, err
	}

	out := ListDisplaysOutput{Displays: make([]DisplayInfo, len(displays))}
	for i, d := range displays {
		out.Displays[i] = DisplayInfo{
			Index:       i,
			Name:        d.Name,
			Primary:     d.Primary,
			Bounds:      rectInfo(d.Bounds),
			WorkingArea: rectInfo(d.WorkArea),
		}
	}
	return nil, out, nil
}

func (s *Server) handleValidateConfig(_ context.Context, _ *mcpsdk.CallToolRequest, args ValidateConfigInput) (*mcpsdk.CallToolResult, ValidateConfigOutput, error) {
	if _, err := config.Load(s.resolvePath(args.Path)); err != nil {
		return nil, ValidateConfigOutput{Valid: false, Error: err.Error()}, nil
	}
	return nil, ValidateConfigOutput{Valid: true}, nil
}

func (s *Server) handleLaunchWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args LaunchWindowsInput) (*mcpsdk.CallToolResult, LaunchWindowsOutput, error) {
	cfg, err := config.Load(s.resolvePath(args.Path))
	if err != nil {
		return nil, LaunchWindowsOutput{}, err
	}

	o := launch.New(cfg, s.displays, s.enum, s.mover, s.newSpawner(cfg.Distribution), s.sleep)
	results, err := o.Launch()
	if err != nil {
		return nil, LaunchWindowsOutput{}, err
	}
	return nil, LaunchWindowsOutput{
		Success: launch.AllOK(results),
		Results: windowResults(results),
	}, nil
}

func (s *Server) handleArrangeWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ArrangeWindowsInput) (*mcpsdk.CallToolResult, LaunchWindowsOutput, error) {
	cfg, err := config.Load(s.resolvePath(args.Path))
	if err != nil {
		return nil, LaunchWindowsOutput{}, err
	}

	o := launch.New(cfg, s.displays, s.enum, s.mover, s.newSpawner(cfg.Distribution), s.sleep)
	results, err := o.Arrange()
	if err != nil {
		return nil, LaunchWindowsOutput{}, err
	}
	return nil, LaunchWindowsOutput{
		Success: launch.AllOK(results),
		Results: windowResults(results),
	}, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, args GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	cfg, err := config.Load(s.resolvePath(args.Path))
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	handles, err := s.enum.ListTerminalWindows()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	return nil, GetStatusOutput{
		Distribution:      cfg.Distribution,
		Grid:              cfg.GridToken,
		TargetDisplay:     cfg.TargetDisplay,
		ConfiguredWindows: len(cfg.Windows),
		LiveWindows:       len(handles),
	}, nil
}
