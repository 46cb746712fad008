package tui

import "math"

// SplitController sizes the two horizontal panes. Sizes are fractions of
// the window; minimum sizes are columns. The primary minimum follows the
// window: every resize sets it to 60% of the width.
type SplitController struct {
	sizes    [2]float64
	minSizes [2]int
	width    int
}

// NewSplitController starts at 70/30 with 20 column minimums
func NewSplitController() *SplitController {
	return &SplitController{
		sizes:    [2]float64{SplitPrimaryRatio, SplitSecondaryRatio},
		minSizes: [2]int{MinPaneWidth, MinPaneWidth},
	}
}

// Resize records the new window width and recomputes the primary minimum
func (s *SplitController) Resize(width int) {
	if width < 0 {
		width = 0
	}
	s.width = width
	s.minSizes[0] = int(math.Floor(float64(width) * PrimaryMinRatio))
}

// MinSizes returns the current minimum widths
func (s *SplitController) MinSizes() [2]int {
	return s.minSizes
}

// Sizes returns the configured fractions
func (s *SplitController) Sizes() [2]float64 {
	return s.sizes
}

// Width returns the last window width
func (s *SplitController) Width() int {
	return s.width
}

// Widths splits the window. Both minimums hold when the window is wide
// enough; otherwise the primary minimum wins and the secondary gets the rest.
func (s *SplitController) Widths() (primary, secondary int) {
	if s.width == 0 {
		return 0, 0
	}

	primary = int(math.Round(float64(s.width) * s.sizes[0]))
	if primary < s.minSizes[0] {
		primary = s.minSizes[0]
	}
	secondary = s.width - primary

	if secondary < s.minSizes[1] {
		secondary = s.minSizes[1]
		primary = s.width - secondary
	}
	if primary < s.minSizes[0] {
		primary = s.minSizes[0]
		secondary = s.width - primary
	}
	if primary > s.width {
		primary = s.width
	}
	if secondary < 0 {
		secondary = 0
	}
	return primary, secondary
}
