package geometry

import (
	"math"
	"math/rand"
)

// RandomPoint picks a point with whole-number coordinates in [0, maxX) x [0, maxY).
func RandomPoint(maxX, maxY float64) Point {
	return Point{
		X: randomCoordinate(rand.Float64, maxX),
		Y: randomCoordinate(rand.Float64, maxY),
	}
}

// RandomPointFrom is RandomPoint drawing from r, for callers that need a reproducible sequence.
func RandomPointFrom(r *rand.Rand, maxX, maxY float64) Point {
	return Point{
		X: randomCoordinate(r.Float64, maxX),
		Y: randomCoordinate(r.Float64, maxY),
	}
}

func randomCoordinate(next func() float64, bound float64) float64 {
	if !(bound > 0) || math.IsInf(bound, 1) {
		return 0
	}
	return math.Floor(next() * bound)
}
