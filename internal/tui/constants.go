package tui

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Split View Ratios
	SplitPrimaryRatio   = 0.7 // Editor pane share of the width
	SplitSecondaryRatio = 0.3 // Stdin/output column share of the width
	PrimaryMinRatio     = 0.6 // Editor minimum width as a share of the window

	// Minimum pane widths in columns before the first resize
	MinPaneWidth = 20

	// Viewport Padding and Borders
	ViewportBorderWidth = 2 // Width consumed by borders

	// Layout Margins
	StatusBarHeight = 1
	PaneTitleHeight = 1

	// Stdin pane share of the right column height
	StdinHeightRatio = 0.35

	// Status messages longer than this are truncated in the footer
	StatusMessageMax = 100
)
