package scene

import (
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapes/geometry"
)

var (
	wide = geometry.Rectangle{Width: 50, Height: 20, Position: geometry.Point{X: 10, Y: 10}}
	tall = geometry.Rectangle{Width: 30, Height: 30, Position: geometry.Point{X: 40, Y: 15}}
	far  = geometry.Rectangle{Width: 5, Height: 5, Position: geometry.Point{X: 200, Y: 200}}
)

func TestAddRemove(t *testing.T) {
	s := New()
	ID := s.Add(wide)
	_, err := ksuid.Parse(ID)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, int64(1), s.Version())

	shape, ok := s.Shape(ID)
	require.True(t, ok)
	assert.Equal(t, wide, shape.Rect)

	require.NoError(t, s.Remove(ID))
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, int64(2), s.Version())

	err = s.Remove(ID)
	assert.ErrorIs(t, err, ErrUnknownShape)
	assert.Equal(t, int64(2), s.Version(), "failed removals do not bump the version")
}

func TestInsert(t *testing.T) {
	s := New()
	require.NoError(t, s.Insert("a", wide))
	assert.ErrorIs(t, s.Insert("a", tall), ErrDuplicateShape)

	shape, _ := s.Shape("a")
	assert.Equal(t, wide, shape.Rect)
}

func TestForEachOrdered(t *testing.T) {
	s := New()
	require.NoError(t, s.Insert("c", far))
	require.NoError(t, s.Insert("a", wide))
	require.NoError(t, s.Insert("b", tall))

	var IDs []string
	s.ForEach(func(shape Shape) {
		IDs = append(IDs, shape.ID)
	})
	assert.Equal(t, []string{"a", "b", "c"}, IDs)
	assert.Len(t, s.Shapes(), 3)
}

func TestQueries(t *testing.T) {
	s := New()
	require.NoError(t, s.Insert("wide", wide))
	require.NoError(t, s.Insert("tall", tall))
	require.NoError(t, s.Insert("far", far))

	containing := s.ContainingPoint(geometry.Point{X: 45, Y: 20})
	require.Len(t, containing, 2)
	assert.Equal(t, "tall", containing[0].ID)
	assert.Equal(t, "wide", containing[1].ID)

	assert.Empty(t, s.ContainingPoint(geometry.Point{X: 5, Y: 10}))

	overlapping, err := s.Overlapping("wide")
	require.NoError(t, err)
	require.Len(t, overlapping, 1)
	assert.Equal(t, "tall", overlapping[0].ID)

	_, err = s.Overlapping("nope")
	assert.ErrorIs(t, err, ErrUnknownShape)

	assert.Equal(t, [][2]string{{"tall", "wide"}}, s.OverlappingPairs())

	assert.Equal(t, geometry.Rectangle{
		Width:    195,
		Height:   195,
		Position: geometry.Point{X: 10, Y: 10},
	}, s.Bounds())
}
