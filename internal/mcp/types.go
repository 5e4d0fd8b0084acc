package mcp

// RectInfo is a rectangle in host screen coordinates.
type RectInfo struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DisplayInfo describes one host display.
type DisplayInfo struct {
	Index       int      `json:"index"`
	Name        string   `json:"name"`
	Primary     bool     `json:"primary"`
	Bounds      RectInfo `json:"bounds"`
	WorkingArea RectInfo `json:"working_area"`
}

// ListDisplaysInput is the input for the list_displays tool.
type ListDisplaysInput struct{}

// ListDisplaysOutput is the output for the list_displays tool.
type ListDisplaysOutput struct {
	Displays []DisplayInfo `json:"displays"`
}

// ValidateConfigInput is the input for the validate_config tool.
type ValidateConfigInput struct {
	Path string `json:"path,omitempty" jsonschema:"Config file path. Defaults to the path the server was started with."`
}

// ValidateConfigOutput is the output for the validate_config tool.
type ValidateConfigOutput struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// LaunchWindowsInput is the input for the launch_windows tool.
type LaunchWindowsInput struct {
	Path string `json:"path,omitempty" jsonschema:"Config file path. Defaults to the path the server was started with."`
}

// WindowResult is one per-request outcome.
type WindowResult struct {
	Name       string  `json:"name"`
	Handle     int64   `json:"handle,omitempty"`
	Identified bool    `json:"identified"`
	Placed     bool    `json:"placed"`
	Reason     string  `json:"reason,omitempty"`
	Candidates []int64 `json:"candidates,omitempty"`
}

// LaunchWindowsOutput is the output for launch_windows and arrange_windows.
type LaunchWindowsOutput struct {
	Success bool           `json:"success"`
	Results []WindowResult `json:"results"`
}

// ArrangeWindowsInput is the input for the arrange_windows tool.
type ArrangeWindowsInput struct {
	Path string `json:"path,omitempty" jsonschema:"Config file path. Defaults to the path the server was started with."`
}

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct {
	Path string `json:"path,omitempty" jsonschema:"Config file path. Defaults to the path the server was started with."`
}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	Distribution      string `json:"distribution"`
	Grid              string `json:"grid"`
	TargetDisplay     int    `json:"target_display"`
	ConfiguredWindows int    `json:"configured_windows"`
	LiveWindows       int    `json:"live_windows"`
}
