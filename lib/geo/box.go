package geo

import "fmt"

type Box struct {
	TopLeft *Point
	Width   float64
	Height  float64
}

func NewBox(tl *Point, width, height float64) *Box {
	return &Box{
		TopLeft: tl,
		Width:   width,
		Height:  height,
	}
}

func (b *Box) Copy() *Box {
	if b == nil {
		return nil
	}
	return NewBox(b.TopLeft.Copy(), b.Width, b.Height)
}

func (b *Box) Center() *Point {
	return NewPoint(b.TopLeft.X+b.Width/2, b.TopLeft.Y+b.Height/2)
}

// HorizontalGapTo returns the horizontal distance between the x-extents of b
// and other. Negative means the extents intersect.
func (b *Box) HorizontalGapTo(other *Box) float64 {
	if b.TopLeft.X < other.TopLeft.X {
		return other.TopLeft.X - (b.TopLeft.X + b.Width)
	}
	return b.TopLeft.X - (other.TopLeft.X + other.Width)
}

func (b *Box) ToString() string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("{TopLeft: %s, Width: %.0f, Height: %.0f}", b.TopLeft.ToString(), b.Width, b.Height)
}
