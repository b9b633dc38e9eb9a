package geometry

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidSize = errors.New("invalid rectangle size")

// Rectangle is axis aligned. Position is the lower-left corner.
type Rectangle struct {
	Width, Height float64
	Position      Point
}

func NewRectangle(width, height float64, pos Point) (Rectangle, error) {
	if !validSide(width) || !validSide(height) {
		return Rectangle{}, fmt.Errorf("%w: %vx%v", ErrInvalidSize, width, height)
	}
	return Rectangle{
		Width:    width,
		Height:   height,
		Position: pos,
	}, nil
}

func validSide(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Max is the corner opposite Position.
func (r Rectangle) Max() Point {
	return Point{
		X: r.Position.X + r.Width,
		Y: r.Position.Y + r.Height,
	}
}

func Area(r Rectangle) float64 {
	return r.Width * r.Height
}

// Contains reports whether p lies inside r. Edges count as inside.
func Contains(r Rectangle, p Point) bool {
	hi := r.Max()
	return p.X >= r.Position.X && p.X <= hi.X &&
		p.Y >= r.Position.Y && p.Y <= hi.Y
}

// Overlaps is a strict AABB test: rectangles that only share an edge do not overlap.
func Overlaps(a, b Rectangle) bool {
	aMax, bMax := a.Max(), b.Max()
	return a.Position.X < bMax.X && aMax.X > b.Position.X &&
		a.Position.Y < bMax.Y && aMax.Y > b.Position.Y
}

func (r Rectangle) Area() float64 {
	return Area(r)
}

func (r Rectangle) Contains(p Point) bool {
	return Contains(r, p)
}

func (r Rectangle) Overlaps(o Rectangle) bool {
	return Overlaps(r, o)
}

// Bounds returns the smallest rectangle covering every rect. Zero rects give the zero Rectangle.
func Bounds(rects ...Rectangle) Rectangle {
	if len(rects) == 0 {
		return Rectangle{}
	}
	lo, hi := rects[0].Position, rects[0].Max()
	for _, r := range rects[1:] {
		rMax := r.Max()
		lo.X = math.Min(lo.X, r.Position.X)
		lo.Y = math.Min(lo.Y, r.Position.Y)
		hi.X = math.Max(hi.X, rMax.X)
		hi.Y = math.Max(hi.Y, rMax.Y)
	}
	return Rectangle{
		Width:    hi.X - lo.X,
		Height:   hi.Y - lo.Y,
		Position: lo,
	}
}
