package game

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samdwyer/cavewalk/internal/world"
)

// Environment variables read by LoadConfig.
const (
	EnvSeed         = "CAVEWALK_SEED"
	EnvWidth        = "CAVEWALK_WIDTH"
	EnvHeight       = "CAVEWALK_HEIGHT"
	EnvFOVRadius    = "CAVEWALK_FOV_RADIUS"
	EnvStrategy     = "CAVEWALK_STRATEGY"
	EnvSpawnCount   = "CAVEWALK_SPAWN_COUNT"
	EnvConnectivity = "CAVEWALK_CONNECTIVITY"
	EnvLogFile      = "CAVEWALK_LOG_FILE"
)

const (
	DefaultFOVRadius  = 10
	DefaultSpawnCount = 20
	DefaultLogFile    = "cavewalk.log"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible levels.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	Width  int
	Height int

	FOVRadius  int
	SpawnCount int

	Strategy     world.Strategy
	Connectivity world.Connectivity

	// LogFile receives structured logs; the terminal belongs to the UI.
	LogFile string
}

// DefaultConfig returns the configuration used when no variables are set.
func DefaultConfig() Config {
	return Config{
		Width:        world.DefaultWidth,
		Height:       world.DefaultHeight,
		FOVRadius:    DefaultFOVRadius,
		SpawnCount:   DefaultSpawnCount,
		Strategy:     world.StrategyCave,
		Connectivity: world.ConnectivityAccept,
		LogFile:      DefaultLogFile,
	}
}

// LoadConfig reads the CAVEWALK_* environment variables on top of DefaultConfig.
// Unset or empty variables keep their default; malformed ones are an error.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}

	ints := []struct {
		name string
		dst  *int
		min  int
	}{
		{EnvWidth, &cfg.Width, 1},
		{EnvHeight, &cfg.Height, 1},
		{EnvFOVRadius, &cfg.FOVRadius, 0},
		{EnvSpawnCount, &cfg.SpawnCount, 0},
	}
	for _, f := range ints {
		v, ok := lookup(f.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", f.name, err)
		}
		if n < f.min {
			return cfg, fmt.Errorf("%s: %d is below minimum %d", f.name, n, f.min)
		}
		*f.dst = n
	}

	if v, ok := lookup(EnvStrategy); ok {
		s, err := world.ParseStrategy(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvStrategy, err)
		}
		cfg.Strategy = s
	}

	if v, ok := lookup(EnvConnectivity); ok {
		c, err := world.ParseConnectivity(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvConnectivity, err)
		}
		cfg.Connectivity = c
	}

	if v, ok := lookup(EnvLogFile); ok {
		cfg.LogFile = v
	}

	return cfg, nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
