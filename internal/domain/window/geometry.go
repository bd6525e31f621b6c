package window

import (
	"fmt"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// Viewport is the visible part of the desktop canvas
type Viewport struct {
	ScrollX int `json:"scrollX"`
	ScrollY int `json:"scrollY"`
	Width   int `json:"width"`
	Height  int `json:"height"`
}

// DefaultViewport is assumed until the UI reports its own
var DefaultViewport = Viewport{Width: 1280, Height: 800}

// Valid reports whether the viewport has a usable size
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Direction selects a half of the viewport for SplitWindow
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// ParseDirection validates a split direction
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case DirectionLeft, DirectionRight:
		return d, nil
	default:
		return "", fmt.Errorf("unknown split direction %q", s)
	}
}

// cascadeStep offsets successive windows so they do not stack exactly
const cascadeStep = 20

// placement centres size in the viewport, cascaded by the number of open
// windows, and keeps the title bar below the top inset
func placement(v Viewport, size types.Size, open, topInset int) types.Position {
	offset := cascadeStep * (open % 10)
	pos := types.Position{
		X: v.ScrollX + (v.Width-size.Width)/2 + offset,
		Y: v.ScrollY + (v.Height-size.Height)/2 + offset,
	}
	pos.Y = max(pos.Y, topInset)
	return pos
}

// half returns the left or right half of the viewport below the inset
func half(v Viewport, d Direction, topInset int) (types.Position, types.Size) {
	pos := types.Position{X: v.ScrollX, Y: v.ScrollY + topInset}
	if d == DirectionRight {
		pos.X += v.Width / 2
	}
	return pos, types.Size{Width: v.Width / 2, Height: v.Height - topInset}
}
