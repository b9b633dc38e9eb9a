package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapes/geometry"
	"shapes/scene"
	"shapes/wire"
)

var (
	wide = geometry.Rectangle{Width: 50, Height: 20, Position: geometry.Point{X: 10, Y: 10}}
	tall = geometry.Rectangle{Width: 30, Height: 30, Position: geometry.Point{X: 40, Y: 15}}
)

func TestHandleQueries(t *testing.T) {
	s := scene.New()
	tests := []struct {
		name  string
		event wire.ClientEvent
		check func(t *testing.T, reply *wire.ServerEvent)
	}{
		{
			name: "distance",
			event: wire.ClientEvent{Op: wire.OpDistance, Points: []geometry.Point{
				{X: 0, Y: 0}, {X: 3, Y: 4},
			}},
			check: func(t *testing.T, reply *wire.ServerEvent) {
				assert.InDelta(t, 5, reply.Number, 1e-9)
			},
		},
		{
			name:  "move",
			event: wire.ClientEvent{Op: wire.OpMove, Points: []geometry.Point{{X: 5, Y: 10}}, Args: []float64{0, 0}},
			check: func(t *testing.T, reply *wire.ServerEvent) {
				require.NotNil(t, reply.Point)
				assert.Equal(t, geometry.Point{X: 5, Y: 10}, *reply.Point)
			},
		},
		{
			name:  "area",
			event: wire.ClientEvent{Op: wire.OpArea, Rects: []geometry.Rectangle{wide}},
			check: func(t *testing.T, reply *wire.ServerEvent) {
				assert.Equal(t, 1000.0, reply.Number)
			},
		},
		{
			name:  "contains",
			event: wire.ClientEvent{Op: wire.OpContains, Rects: []geometry.Rectangle{wide}, Points: []geometry.Point{{X: 5, Y: 10}}},
			check: func(t *testing.T, reply *wire.ServerEvent) {
				assert.False(t, reply.Flag)
			},
		},
		{
			name:  "overlaps",
			event: wire.ClientEvent{Op: wire.OpOverlaps, Rects: []geometry.Rectangle{wide, tall}},
			check: func(t *testing.T, reply *wire.ServerEvent) {
				assert.True(t, reply.Flag)
			},
		},
		{
			name:  "random point",
			event: wire.ClientEvent{Op: wire.OpRandomPoint, Args: []float64{10, 5}},
			check: func(t *testing.T, reply *wire.ServerEvent) {
				require.NotNil(t, reply.Point)
				assert.Less(t, reply.Point.X, 10.0)
				assert.Less(t, reply.Point.Y, 5.0)
			},
		},
		{
			name:  "missing arguments",
			event: wire.ClientEvent{Op: wire.OpDistance, Points: []geometry.Point{{}}},
			check: func(t *testing.T, reply *wire.ServerEvent) {
				assert.Contains(t, reply.Error, "distance needs 2 points")
			},
		},
		{
			name:  "sync is not a request",
			event: wire.ClientEvent{Op: wire.OpSync},
			check: func(t *testing.T, reply *wire.ServerEvent) {
				assert.Equal(t, "unsupported op sync", reply.Error)
			},
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.event.Seq = uint64(i + 1)
			reply, broadcast := Handle(s, &tt.event)
			assert.Nil(t, broadcast)
			assert.Equal(t, tt.event.Seq, reply.Seq)
			assert.Equal(t, tt.event.Op, reply.Op)
			tt.check(t, reply)
		})
	}
	assert.Zero(t, s.Version(), "queries do not touch the scene")
}

func TestHandleShapes(t *testing.T) {
	s := scene.New()

	reply, broadcast := Handle(s, &wire.ClientEvent{Seq: 1, Op: wire.OpAddShape, Rects: []geometry.Rectangle{wide}})
	require.Empty(t, reply.Error)
	require.NotEmpty(t, reply.ShapeID)
	require.NotNil(t, broadcast)
	assert.Equal(t, wire.OpAddShape, broadcast.Op)
	assert.Equal(t, []scene.Shape{{ID: reply.ShapeID, Rect: wide}}, broadcast.Shapes)
	assert.Equal(t, int64(1), broadcast.Version)
	wideID := reply.ShapeID

	reply, _ = Handle(s, &wire.ClientEvent{Seq: 2, Op: wire.OpAddShape, Rects: []geometry.Rectangle{tall}})
	tallID := reply.ShapeID

	reply, broadcast = Handle(s, &wire.ClientEvent{Op: wire.OpAddShape, Rects: []geometry.Rectangle{{Width: -1}}})
	assert.Contains(t, reply.Error, geometry.ErrInvalidSize.Error())
	assert.Nil(t, broadcast)

	reply, _ = Handle(s, &wire.ClientEvent{Op: wire.OpQueryPoint, Points: []geometry.Point{{X: 45, Y: 20}}})
	assert.Len(t, reply.Shapes, 2)

	reply, _ = Handle(s, &wire.ClientEvent{Op: wire.OpRequestScene})
	assert.Len(t, reply.Shapes, 2)
	assert.Equal(t, int64(2), reply.Version)

	reply, broadcast = Handle(s, &wire.ClientEvent{Op: wire.OpRemoveShape, ShapeID: wideID})
	require.Empty(t, reply.Error)
	require.NotNil(t, broadcast)
	assert.Equal(t, wideID, broadcast.ShapeID)
	assert.Equal(t, int64(3), broadcast.Version)

	reply, broadcast = Handle(s, &wire.ClientEvent{Op: wire.OpRemoveShape, ShapeID: wideID})
	assert.Contains(t, reply.Error, scene.ErrUnknownShape.Error())
	assert.Nil(t, broadcast)

	reply, _ = Handle(s, &wire.ClientEvent{Op: wire.OpRequestScene})
	require.Len(t, reply.Shapes, 1)
	assert.Equal(t, tallID, reply.Shapes[0].ID)
}
