package config

// ExampleConfig is the starter file written by `wslgrid init`.
const ExampleConfig = `# wslgrid configuration
#
# Launches WSL terminal windows and arranges them into a grid on the
# target display. Run "wslgrid validate" after editing.

wsl_distribution: Ubuntu-24.04

# 0 = primary display, 1 = secondary, ...
target_display: 0

layout:
  grid: "2x2"

# How long to wait after each launch for the host window manager to
# register the new window, in milliseconds.
settle_delay_ms: 1000

windows:
  - name: shell-1
    working_dir: ~
  - name: shell-2
    command: htop
`
