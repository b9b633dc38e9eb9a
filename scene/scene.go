package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/segmentio/ksuid"

	"shapes/geometry"
)

var (
	ErrDuplicateShape = errors.New("shape already exists")
	ErrUnknownShape   = errors.New("unknown shape")
)

type Shape struct {
	ID   string
	Rect geometry.Rectangle
}

// Scene is not safe for concurrent use. The server owns its scene from a single goroutine.
type Scene struct {
	shapes  map[string]geometry.Rectangle
	version int64
}

func New() *Scene {
	return &Scene{
		shapes: make(map[string]geometry.Rectangle),
	}
}

// Version increases every time a shape is added or removed.
func (s *Scene) Version() int64 {
	return s.version
}

func (s *Scene) Len() int {
	return len(s.shapes)
}

// Add stores rect under a freshly generated id.
func (s *Scene) Add(rect geometry.Rectangle) string {
	ID := ksuid.New().String()
	s.shapes[ID] = rect
	s.version++
	return ID
}

func (s *Scene) Insert(ID string, rect geometry.Rectangle) error {
	if _, ok := s.shapes[ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateShape, ID)
	}
	s.shapes[ID] = rect
	s.version++
	return nil
}

func (s *Scene) Remove(ID string) error {
	if _, ok := s.shapes[ID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownShape, ID)
	}
	delete(s.shapes, ID)
	s.version++
	return nil
}

func (s *Scene) Shape(ID string) (Shape, bool) {
	rect, ok := s.shapes[ID]
	return Shape{ID: ID, Rect: rect}, ok
}

func (s *Scene) ids() []string {
	IDs := make([]string, 0, len(s.shapes))
	for ID := range s.shapes {
		IDs = append(IDs, ID)
	}
	sort.Strings(IDs)
	return IDs
}

// ForEach visits shapes in id order.
func (s *Scene) ForEach(callback func(Shape)) {
	for _, ID := range s.ids() {
		callback(Shape{ID: ID, Rect: s.shapes[ID]})
	}
}

func (s *Scene) Shapes() []Shape {
	shapes := make([]Shape, 0, len(s.shapes))
	s.ForEach(func(shape Shape) {
		shapes = append(shapes, shape)
	})
	return shapes
}

func (s *Scene) ContainingPoint(p geometry.Point) []Shape {
	var shapes []Shape
	s.ForEach(func(shape Shape) {
		if geometry.Contains(shape.Rect, p) {
			shapes = append(shapes, shape)
		}
	})
	return shapes
}

// Overlapping returns every other shape overlapping the shape with the given id.
func (s *Scene) Overlapping(ID string) ([]Shape, error) {
	rect, ok := s.shapes[ID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownShape, ID)
	}

	var shapes []Shape
	s.ForEach(func(shape Shape) {
		if shape.ID != ID && geometry.Overlaps(rect, shape.Rect) {
			shapes = append(shapes, shape)
		}
	})
	return shapes, nil
}

// OverlappingPairs lists each overlapping pair once, lower id first.
func (s *Scene) OverlappingPairs() [][2]string {
	IDs := s.ids()
	var pairs [][2]string
	for i, a := range IDs {
		for _, b := range IDs[i+1:] {
			if geometry.Overlaps(s.shapes[a], s.shapes[b]) {
				pairs = append(pairs, [2]string{a, b})
			}
		}
	}
	return pairs
}

func (s *Scene) Bounds() geometry.Rectangle {
	rects := make([]geometry.Rectangle, 0, len(s.shapes))
	s.ForEach(func(shape Shape) {
		rects = append(rects, shape.Rect)
	})
	return geometry.Bounds(rects...)
}
