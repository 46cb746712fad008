package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitControllerInitial(t *testing.T) {
	s := NewSplitController()

	assert.Equal(t, [2]float64{0.7, 0.3}, s.Sizes())
	assert.Equal(t, [2]int{20, 20}, s.MinSizes())

	p, q := s.Widths()
	assert.Zero(t, p)
	assert.Zero(t, q)
}

func TestSplitControllerResizeSetsPrimaryMin(t *testing.T) {
	tests := []struct {
		width   int
		wantMin int
	}{
		{100, 60},
		{101, 60},
		{80, 48},
		{33, 19},
		{0, 0},
	}

	for _, tt := range tests {
		s := NewSplitController()
		s.Resize(tt.width)
		assert.Equal(t, [2]int{tt.wantMin, 20}, s.MinSizes(), "width %d", tt.width)
	}
}

func TestSplitControllerWidths(t *testing.T) {
	tests := []struct {
		name          string
		width         int
		wantPrimary   int
		wantSecondary int
	}{
		{"wide", 200, 140, 60},
		{"standard", 100, 70, 30},
		{"secondary min binds", 60, 40, 20},
		{"primary min wins when narrow", 30, 18, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSplitController()
			s.Resize(tt.width)

			p, q := s.Widths()
			assert.Equal(t, tt.wantPrimary, p)
			assert.Equal(t, tt.wantSecondary, q)
			assert.Equal(t, tt.width, p+q)
			assert.GreaterOrEqual(t, p, s.MinSizes()[0])
		})
	}
}

func TestSplitControllerRepeatedResize(t *testing.T) {
	s := NewSplitController()
	s.Resize(200)
	s.Resize(50)

	assert.Equal(t, 30, s.MinSizes()[0])
	assert.Equal(t, 50, s.Width())
}
