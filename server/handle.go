package server

import (
	"fmt"

	"shapes/geometry"
	"shapes/scene"
	"shapes/wire"
)

func argumentError(e *wire.ClientEvent, points, rects, args int) error {
	if len(e.Points) < points || len(e.Rects) < rects || len(e.Args) < args {
		return fmt.Errorf("%v needs %d points, %d rectangles and %d arguments, got %d, %d and %d",
			e.Op, points, rects, args, len(e.Points), len(e.Rects), len(e.Args))
	}
	return nil
}

// Handle applies one client event to s. The reply goes back to the sender only; a non-nil
// broadcast goes to every subscriber.
func Handle(s *scene.Scene, e *wire.ClientEvent) (reply, broadcast *wire.ServerEvent) {
	reply = &wire.ServerEvent{
		Seq: e.Seq,
		Op:  e.Op,
	}

	var err error
	switch e.Op {
	case wire.OpDistance:
		if err = argumentError(e, 2, 0, 0); err == nil {
			reply.Number = geometry.Distance(e.Points[0], e.Points[1])
		}

	case wire.OpMove:
		if err = argumentError(e, 1, 0, 2); err == nil {
			p := geometry.Move(e.Points[0], e.Args[0], e.Args[1])
			reply.Point = &p
		}

	case wire.OpArea:
		if err = argumentError(e, 0, 1, 0); err == nil {
			reply.Number = geometry.Area(e.Rects[0])
		}

	case wire.OpContains:
		if err = argumentError(e, 1, 1, 0); err == nil {
			reply.Flag = geometry.Contains(e.Rects[0], e.Points[0])
		}

	case wire.OpOverlaps:
		if err = argumentError(e, 0, 2, 0); err == nil {
			reply.Flag = geometry.Overlaps(e.Rects[0], e.Rects[1])
		}

	case wire.OpRandomPoint:
		if err = argumentError(e, 0, 0, 2); err == nil {
			p := geometry.RandomPoint(e.Args[0], e.Args[1])
			reply.Point = &p
		}

	case wire.OpQueryPoint:
		if err = argumentError(e, 1, 0, 0); err == nil {
			reply.Shapes = s.ContainingPoint(e.Points[0])
		}

	case wire.OpRequestScene:
		reply.Shapes = s.Shapes()

	case wire.OpAddShape:
		if err = argumentError(e, 0, 1, 0); err != nil {
			break
		}
		var rect geometry.Rectangle
		rect, err = geometry.NewRectangle(e.Rects[0].Width, e.Rects[0].Height, e.Rects[0].Position)
		if err != nil {
			break
		}
		reply.ShapeID = s.Add(rect)
		shape, _ := s.Shape(reply.ShapeID)
		broadcast = &wire.ServerEvent{
			Op:      wire.OpAddShape,
			Shapes:  []scene.Shape{shape},
			ShapeID: shape.ID,
		}

	case wire.OpRemoveShape:
		if err = s.Remove(e.ShapeID); err != nil {
			break
		}
		reply.ShapeID = e.ShapeID
		broadcast = &wire.ServerEvent{
			Op:      wire.OpRemoveShape,
			ShapeID: e.ShapeID,
		}

	default:
		err = fmt.Errorf("unsupported op %v", e.Op)
	}

	if err != nil {
		reply.Error = err.Error()
	}
	reply.Version = s.Version()
	if broadcast != nil {
		broadcast.Version = s.Version()
	}
	return reply, broadcast
}
