package client

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"shapes/geometry"
	"shapes/scene"
)

var (
	shapeColor     = color.RGBA{218, 212, 94, 200}
	highlightColor = color.RGBA{208, 70, 72, 200}
	insideColor    = color.RGBA{40, 40, 160, 255}
	outsideColor   = color.RGBA{255, 255, 255, 255}
)

func lerp(v0, v1, t float64) float64 {
	return (1-t)*v0 + t*v1
}

type LerpState struct {
	source    geometry.Point
	target    geometry.Point
	iteration float64
}

func (l *LerpState) Current() geometry.Point {
	return geometry.Point{
		X: lerp(l.source.X, l.target.X, l.iteration),
		Y: lerp(l.source.Y, l.target.Y, l.iteration),
	}
}

func (l *LerpState) Advance() {
	l.iteration = math.Min(l.iteration+0.1, 1.00)
}

// Renderer maps scene coordinates, y up, onto the screen, y down.
type Renderer struct {
	screenHeight int
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) toScreen(p geometry.Point) (float64, float64) {
	return p.X, float64(r.screenHeight) - p.Y
}

func (r *Renderer) fromScreen(x, y int) geometry.Point {
	return geometry.Point{
		X: float64(x),
		Y: float64(r.screenHeight - y),
	}
}

func (r *Renderer) RenderShape(screen *ebiten.Image, shape scene.Shape, highlight bool) {
	clr := shapeColor
	if highlight {
		clr = highlightColor
	}
	// The top-left corner on screen is the rectangle's upper-left in scene space.
	x, y := r.toScreen(geometry.Point{X: shape.Rect.Position.X, Y: shape.Rect.Max().Y})
	ebitenutil.DrawRect(screen, x, y, shape.Rect.Width, shape.Rect.Height, clr)
	if highlight {
		label := fmt.Sprintf("%s\narea %0.0f", shape.ID, shape.Rect.Area())
		ebitenutil.DebugPrintAt(screen, label, int(x), int(y+shape.Rect.Height))
	}
}

func (r *Renderer) RenderPoint(screen *ebiten.Image, p geometry.Point, inside bool) {
	clr := outsideColor
	if inside {
		clr = insideColor
	}
	x, y := r.toScreen(p)
	ebitenutil.DrawRect(screen, x-1, y-1, 3, 3, clr)
}

func (r *Renderer) RenderLine(screen *ebiten.Image, from, to geometry.Point, clr color.Color) {
	x1, y1 := r.toScreen(from)
	x2, y2 := r.toScreen(to)
	ebitenutil.DrawLine(screen, x1, y1, x2, y2, clr)
}
