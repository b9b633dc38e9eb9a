package client

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/segmentio/ksuid"
	log "github.com/sirupsen/logrus"
	"nhooyr.io/websocket"

	"shapes/geometry"
	"shapes/scene"
	"shapes/utils"
	"shapes/wire"
)

const newShapeSize = 32

type Game struct {
	*Renderer
	cfg          *utils.Config
	scene        *scene.Scene
	version      int64
	points       []*LerpState
	anchor       *geometry.Point
	clientID     string
	seq          uint64
	serverEvents chan *wire.ServerEvent
	clientEvents chan *wire.ClientEvent
}

func NewGame(cfg *utils.Config) *Game {
	g := &Game{
		Renderer:     NewRenderer(),
		cfg:          cfg,
		scene:        scene.New(),
		clientID:     ksuid.New().String(),
		serverEvents: make(chan *wire.ServerEvent, 1024),
		clientEvents: make(chan *wire.ClientEvent, 1024),
	}
	g.request(&wire.ClientEvent{Op: wire.OpRequestScene})
	return g
}

func (g *Game) request(e *wire.ClientEvent) {
	g.seq++
	e.ID = g.clientID
	e.Seq = g.seq
	select {
	case g.clientEvents <- e:
	default:
		log.Warnf("dropping %v request, server is not keeping up", e.Op)
	}
}

func (g *Game) onServerEvent(event *wire.ServerEvent) {
	if event.Error != "" {
		log.WithField("op", event.Op).Warn(event.Error)
		return
	}

	switch event.Op {
	case wire.OpSync:
		if event.Version != g.version {
			g.request(&wire.ClientEvent{Op: wire.OpRequestScene})
		}

	case wire.OpRequestScene:
		g.scene = scene.New()
		for _, shape := range event.Shapes {
			if err := g.scene.Insert(shape.ID, shape.Rect); err != nil {
				log.Println(err)
			}
		}
		g.version = event.Version

	case wire.OpAddShape:
		// Our own reply carries no shape; the broadcast that follows does.
		for _, shape := range event.Shapes {
			if _, ok := g.scene.Shape(shape.ID); ok {
				continue
			}
			if err := g.scene.Insert(shape.ID, shape.Rect); err != nil {
				log.Println(err)
			}
		}
		g.version = event.Version

	case wire.OpRemoveShape:
		if event.Seq == 0 {
			if err := g.scene.Remove(event.ShapeID); err != nil {
				log.Println(err)
			}
		}
		g.version = event.Version

	case wire.OpRandomPoint:
		if event.Point == nil {
			return
		}
		center := geometry.Point{X: g.cfg.Scene.Width / 2, Y: g.cfg.Scene.Height / 2}
		g.points = append(g.points, &LerpState{
			source: center,
			target: *event.Point,
		})
	}
}

// handleServerEvents drains and applies server events every frame.
func (g *Game) handleServerEvents() error {
	for len(g.serverEvents) > 0 {
		select {
		case event := <-g.serverEvents:
			g.onServerEvent(event)
		default:
			return errors.New("should never block")
		}
	}
	return nil
}

func (g *Game) cursor() geometry.Point {
	x, y := ebiten.CursorPosition()
	return g.fromScreen(x, y)
}

func (g *Game) handleInput() {
	cursor := g.cursor()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		for i := 0; i < 10; i++ {
			g.request(&wire.ClientEvent{
				Op:   wire.OpRandomPoint,
				Args: []float64{g.cfg.Scene.Width, g.cfg.Scene.Height},
			})
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.points = nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.anchor = &cursor
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.request(&wire.ClientEvent{
			Op: wire.OpAddShape,
			Rects: []geometry.Rectangle{{
				Width:    newShapeSize,
				Height:   newShapeSize,
				Position: geometry.Move(cursor, -newShapeSize/2, -newShapeSize/2),
			}},
		})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		// Topmost shape is the one drawn last.
		if hit := g.scene.ContainingPoint(cursor); len(hit) > 0 {
			g.request(&wire.ClientEvent{
				Op:      wire.OpRemoveShape,
				ShapeID: hit[len(hit)-1].ID,
			})
		}
	}
}

func (g *Game) Update() error {
	if err := g.handleServerEvents(); err != nil {
		return err
	}
	g.handleInput()
	for _, point := range g.points {
		point.Advance()
	}
	return nil
}

func (g *Game) debugString(cursor geometry.Point) string {
	lines := []string{
		fmt.Sprintf("TPS: %0.02f, FPS: %0.02f", ebiten.CurrentTPS(), ebiten.CurrentFPS()),
		fmt.Sprintf("shapes: %d (v%d), points: %d", g.scene.Len(), g.version, len(g.points)),
		fmt.Sprintf("cursor: (%0.0f,%0.0f)", cursor.X, cursor.Y),
		"click: add, right click: remove, space: anchor, r: random points, c: clear",
	}
	if g.anchor != nil {
		lines = append(lines, fmt.Sprintf("distance: %0.2f", geometry.Distance(*g.anchor, cursor)))
	}
	if pairs := g.scene.OverlappingPairs(); len(pairs) > 0 {
		lines = append(lines, fmt.Sprintf("overlapping pairs: %d", len(pairs)))
	}
	return strings.Join(lines, "\n")
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{
		164,
		178,
		191,
		255,
	})

	cursor := g.cursor()
	g.scene.ForEach(func(shape scene.Shape) {
		g.RenderShape(screen, shape, geometry.Contains(shape.Rect, cursor))
	})
	for _, point := range g.points {
		current := point.Current()
		g.RenderPoint(screen, current, len(g.scene.ContainingPoint(current)) > 0)
	}

	if g.anchor != nil {
		g.RenderLine(screen, *g.anchor, cursor, color.RGBA{255, 0, 0, 255})
	}
	ebitenutil.DebugPrint(screen, g.debugString(cursor))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.screenHeight = outsideHeight
	return outsideWidth, outsideHeight
}

// ReadMessages reads the server messages so the game can update accordingly.
func (g *Game) ReadMessages(ctx context.Context, c *websocket.Conn) error {
	for {
		messageType, b, err := c.Read(ctx)
		if err != nil {
			return err
		}
		if messageType != websocket.MessageBinary || len(b) == 0 {
			continue
		}

		var serverEvent wire.ServerEvent
		if err := serverEvent.Unmarshal(b); err != nil {
			log.Println(err)
			continue
		}
		g.serverEvents <- &serverEvent
	}
}

// WriteMessages sends the game requests to the server.
func (g *Game) WriteMessages(ctx context.Context, c *websocket.Conn) error {
	for {
		select {
		case event := <-g.clientEvents:
			if err := c.Write(ctx, websocket.MessageBinary, event.Marshal()); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
