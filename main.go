package main

import (
	"context"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"
	"nhooyr.io/websocket"

	"shapes/client"
	"shapes/geometry"
	"shapes/server"
	"shapes/utils"
)

func runServer(ctx context.Context, cfg *utils.Config) error {
	sc, err := server.LoadScene(cfg)
	if err != nil {
		return err
	}
	return server.Run(ctx, cfg, sc)
}

// demo logs the textbook example: two points, two rectangles and what they say about each other.
func demo(cfg *utils.Config) {
	a := geometry.Point{X: 5, Y: 10}
	b := geometry.Point{X: 10, Y: 10}
	r1 := geometry.Rectangle{Width: 50, Height: 20, Position: b}
	r2 := geometry.Rectangle{Width: 30, Height: 30, Position: geometry.Point{X: 40, Y: 15}}

	moved := geometry.Move(a, 0, 0)
	log.WithFields(log.Fields{
		"a":        a,
		"b":        b,
		"distance": geometry.Distance(a, b),
		"moved":    moved,
		"same":     utils.AlmostEqual(geometry.Distance(a, moved), 0, cfg.Math.Float64EqualityThreshold),
	}).Info("points")
	log.WithFields(log.Fields{
		"area1":    geometry.Area(r1),
		"area2":    geometry.Area(r2),
		"contains": geometry.Contains(r1, a),
		"overlaps": geometry.Overlaps(r1, r2),
	}).Info("rectangles")
	log.WithField("point", geometry.RandomPoint(cfg.Scene.Width, cfg.Scene.Height)).Info("random")
}

func main() {
	cfg, err := utils.ReadTOMLOrDefault("config.toml")
	if err != nil {
		log.Fatal(err)
	}
	p, err := utils.Setup(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Stop()

	ctx := context.Background()
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "server":
			if len(os.Args) > 2 {
				cfg.Server.Address = os.Args[2]
			}
			if err := runServer(ctx, cfg); err != nil {
				log.Fatal(err)
			}
			return
		case "demo":
			demo(cfg)
			return
		}
		log.Fatalf("unknown command %q, want server or demo", os.Args[1])
	}

	resolutionConfig := cfg.UI.Resolution
	log.Printf("%+v", resolutionConfig)

	ebiten.SetWindowSize(resolutionConfig.X, resolutionConfig.Y)
	ebiten.SetWindowTitle("shapes")

	game := client.NewGame(cfg)

	url := "ws://" + cfg.Server.Address
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		log.Printf("Encountered err: %v. Trying to spin up server manually", err)

		// Try to spin up the server if we fail to connect.
		go func() {
			if err := runServer(ctx, cfg); err != nil {
				log.Fatal(err)
			}
			log.Fatal("server shutdown")
		}()

		// TODO: poll until the listener is up instead of sleeping.
		time.Sleep(50 * time.Millisecond)
		c, _, err = websocket.Dial(ctx, url, nil)
		if err != nil {
			log.Fatal(err)
		}
	}
	defer c.Close(websocket.StatusInternalError, "")

	go func() {
		if err := game.ReadMessages(ctx, c); err != nil {
			log.Fatal(err)
		}
	}()
	go func() {
		if err := game.WriteMessages(ctx, c); err != nil {
			log.Fatal(err)
		}
	}()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
