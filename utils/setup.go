package utils

import (
	"fmt"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
)

type noProfile struct{}

func (noProfile) Stop() {}

// Setup applies the [Debug] section to the process: log level, caller reporting and profiling.
// The returned value must be stopped before exit. Nothing is changed when cfg is invalid.
func Setup(cfg *Config) (interface{ Stop() }, error) {
	level, err := log.ParseLevel(cfg.Debug.LogLevel)
	if err != nil {
		return nil, err
	}

	var mode func(*profile.Profile)
	switch cfg.Debug.Profile {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	case "":
	default:
		return nil, fmt.Errorf("unknown profile mode %q", cfg.Debug.Profile)
	}

	log.SetReportCaller(true)
	log.SetLevel(level)
	if mode == nil {
		return noProfile{}, nil
	}
	return profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook), nil
}
