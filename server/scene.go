package server

import (
	log "github.com/sirupsen/logrus"

	"shapes/scene"
	"shapes/utils"
)

// LoadScene builds the starting scene, seeded from the configured tile map when there is one.
func LoadScene(cfg *utils.Config) (*scene.Scene, error) {
	if cfg.Scene.Map == "" {
		return scene.New(), nil
	}
	m, err := scene.ReadMap(cfg.Scene.Map)
	if err != nil {
		return nil, err
	}
	s := scene.FromMap(m, cfg.Scene.TileSize)
	log.WithFields(log.Fields{
		"map":    cfg.Scene.Map,
		"shapes": s.Len(),
	}).Info("loaded map")
	return s, nil
}
