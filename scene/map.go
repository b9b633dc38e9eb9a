package scene

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"shapes/geometry"
)

var ErrOutOfBounds = errors.New("out of bounds")

// maxTiles bounds the header of a loaded map.
const maxTiles = 1 << 24

type tileIndex int

const (
	skyTile tileIndex = iota
	platformTile
)

var tileIndices = []Tile{
	// skyTile
	{
		Dense: false,
	},
	// platformTile
	{
		Dense: true,
	},
}

type Tile struct {
	Dense bool
}

// Map is a grid of tiles. Row 0 is the first row of the file.
type Map struct {
	Tiles  []tileIndex
	Width  int64
	Height int64
}

func (m *Map) At(x, y int64) (*Tile, error) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	return &tileIndices[m.Tiles[m.Width*y+x]], nil
}

func (m *Map) ForEach(callback func(x, y int64, tile Tile)) {
	for y := int64(0); y < m.Height; y++ {
		for x := int64(0); x < m.Width; x++ {
			callback(x, y, tileIndices[m.Tiles[m.Width*y+x]])
		}
	}
}

// Rectangles merges each horizontal run of dense tiles into one rectangle.
func (m *Map) Rectangles(tileSize float64) []geometry.Rectangle {
	var rects []geometry.Rectangle
	for y := int64(0); y < m.Height; y++ {
		start := int64(-1)
		for x := int64(0); x <= m.Width; x++ {
			dense := x < m.Width && tileIndices[m.Tiles[m.Width*y+x]].Dense
			switch {
			case dense && start < 0:
				start = x
			case !dense && start >= 0:
				rects = append(rects, geometry.Rectangle{
					Width:  float64(x-start) * tileSize,
					Height: tileSize,
					Position: geometry.Point{
						X: float64(start) * tileSize,
						Y: float64(y) * tileSize,
					},
				})
				start = -1
			}
		}
	}
	return rects
}

// FromMap builds a scene holding the dense runs of m.
func FromMap(m *Map, tileSize float64) *Scene {
	s := New()
	for _, rect := range m.Rectangles(tileSize) {
		s.Add(rect)
	}
	return s
}

func LoadMap(contents string) (*Map, error) {
	scanner := bufio.NewScanner(strings.NewReader(contents))

	scanner.Scan()
	width, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("map width: %w", err)
	}

	scanner.Scan()
	height, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("map height: %w", err)
	}
	if width < 0 || height < 0 || (width > 0 && height > maxTiles/width) {
		return nil, fmt.Errorf("invalid map size %dx%d", width, height)
	}

	tiles := make([]tileIndex, 0, width*height)
	for scanner.Scan() {
		for _, item := range scanner.Text() {
			switch item {
			case '.':
				tiles = append(tiles, skyTile)
			case '#':
				tiles = append(tiles, platformTile)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(tiles) != width*height {
		return nil, fmt.Errorf("map has %d tiles, want %d", len(tiles), width*height)
	}

	return &Map{
		Tiles:  tiles,
		Width:  int64(width),
		Height: int64(height),
	}, nil
}

func ReadMap(fileName string) (*Map, error) {
	contents, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	m, err := LoadMap(string(contents))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return m, nil
}
