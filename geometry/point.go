package geometry

import "math"

type Point struct {
	X, Y float64
}

// Distance is the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Move returns p translated by (dx, dy). p itself is left alone.
func Move(p Point, dx, dy float64) Point {
	return Point{
		X: p.X + dx,
		Y: p.Y + dy,
	}
}

func (p Point) Distance(o Point) float64 {
	return Distance(p, o)
}

func (p Point) Move(dx, dy float64) Point {
	return Move(p, dx, dy)
}

func (p Point) ToTileCoordinates(tileSize float64) (int64, int64) {
	return int64(math.Floor(p.X / tileSize)), int64(math.Floor(p.Y / tileSize))
}
