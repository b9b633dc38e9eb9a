package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	"shapes/server"
	"shapes/utils"
)

func main() {
	cfg, err := utils.ReadTOMLOrDefault("config.toml")
	if err != nil {
		log.Fatal(err)
	}
	if len(os.Args) > 1 {
		cfg.Server.Address = os.Args[1]
	}
	p, err := utils.Setup(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Stop()

	sc, err := server.LoadScene(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := server.Run(context.Background(), cfg, sc); err != nil {
		log.Fatal(err)
	}
}
