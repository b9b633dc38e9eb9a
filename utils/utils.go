package utils

import (
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/constraints"
)

type ServerConfig struct {
	Address        string
	TickMillis     int
	SyncMillis     int
	OriginPatterns []string
}

type SceneConfig struct {
	Width, Height float64

	// Map is an optional path to an ASCII tile map loaded into the scene at startup.
	Map      string
	TileSize float64
}

type ResolutionConfig struct {
	X, Y int
}

type UIConfig struct {
	Resolution ResolutionConfig
}

type MathConfig struct {
	Float64EqualityThreshold float64
}

type DebugConfig struct {
	LogLevel string
	// Profile is one of "cpu", "mem" or empty.
	Profile string
}

type Config struct {
	Server ServerConfig
	Scene  SceneConfig
	UI     UIConfig
	Math   MathConfig
	Debug  DebugConfig
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:    "localhost:4242",
			TickMillis: 17,
			SyncMillis: 250,
		},
		Scene: SceneConfig{
			Width:    640,
			Height:   480,
			TileSize: 32,
		},
		UI: UIConfig{
			Resolution: ResolutionConfig{X: 640, Y: 480},
		},
		Math: MathConfig{
			Float64EqualityThreshold: 1e-9,
		},
		Debug: DebugConfig{
			LogLevel: "info",
		},
	}
}

// ReadTOML reads fileName over the defaults, so a partial file only overrides what it names.
func ReadTOML(fileName string) (*Config, error) {
	file, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := toml.Unmarshal(file, config); err != nil {
		return nil, err
	}
	return config, nil
}

// ReadTOMLOrDefault is ReadTOML that falls back to Default when fileName does not exist.
func ReadTOMLOrDefault(fileName string) (*Config, error) {
	config, err := ReadTOML(fileName)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	return config, err
}

func AlmostEqual[T constraints.Float](a, b, threshold T) bool {
	return T(math.Abs(float64(a-b))) <= threshold
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
