// Package config loads and validates NeuroGraph configuration from TOML.
//
// Configuration is optional: every field has a sensible default, and a
// missing file yields the default configuration rather than an error. The
// file tunes the physics solver, the viewport, the node palette, the layout
// cache, and the embedded viewer server.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/force"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/graph"

	errs "github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/errors"
)

// Cache backend names accepted in the [cache] section.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config is the full NeuroGraph configuration.
type Config struct {
	Physics  Physics  `toml:"physics"`
	Viewport Viewport `toml:"viewport"`
	Palette  Palette  `toml:"palette"`
	Cache    Cache    `toml:"cache"`
	Server   Server   `toml:"server"`
	Mongo    Mongo    `toml:"mongo"`
}

// Physics tunes the force simulation.
type Physics struct {
	LinkDistance   float64 `toml:"link_distance"`
	ChargeStrength float64 `toml:"charge_strength"`
	CollideRadius  float64 `toml:"collide_radius"`
	Seed           int64   `toml:"seed"`
	EntryAnimation bool    `toml:"entry_animation"`
}

// Viewport sets the default logical canvas size for batch layout.
type Viewport struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Palette overrides the fill colors per node type. Empty values keep the
// built-in palette.
type Palette struct {
	Drug       string `toml:"drug"`
	Protein    string `toml:"protein"`
	SideEffect string `toml:"side_effect"`
	Default    string `toml:"default"`
}

// Cache selects and configures the layout cache backend.
type Cache struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	Redis   Redis  `toml:"redis"`
}

// Redis configures the redis cache backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Server configures the embedded viewer server.
type Server struct {
	Addr string `toml:"addr"`
}

// Mongo configures the snapshot store. An empty URI selects the file-based
// store instead.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Physics: Physics{
			LinkDistance:   force.DefaultLinkDistance,
			ChargeStrength: force.DefaultChargeStrength,
			CollideRadius:  force.DefaultCollideRadius,
			EntryAnimation: true,
		},
		Viewport: Viewport{Width: 800, Height: 600},
		Palette: Palette{
			Drug:       graph.ColorDrug,
			Protein:    graph.ColorProtein,
			SideEffect: graph.ColorSideEffect,
			Default:    graph.ColorDefault,
		},
		Cache: Cache{
			Backend: CacheBackendFile,
			Redis:   Redis{Addr: "localhost:6379"},
		},
		Server: Server{Addr: ":8080"},
		Mongo: Mongo{
			Database:   "neurograph",
			Collection: "snapshots",
		},
	}
}

// Load reads a TOML configuration file, applying defaults for any field the
// file omits. A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints the TOML decoder cannot express.
func (c Config) Validate() error {
	if c.Physics.LinkDistance <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "physics.link_distance must be positive, got %v", c.Physics.LinkDistance)
	}
	if c.Physics.ChargeStrength >= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "physics.charge_strength must be negative (repulsive), got %v", c.Physics.ChargeStrength)
	}
	if c.Physics.CollideRadius < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "physics.collide_radius must not be negative, got %v", c.Physics.CollideRadius)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "viewport must have positive dimensions, got %vx%v", c.Viewport.Width, c.Viewport.Height)
	}
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis, or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheBackendRedis && c.Cache.Redis.Addr == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.redis.addr required for the redis backend")
	}
	return nil
}

// ForceConfig converts the physics section into the solver's configuration.
func (c Config) ForceConfig() force.Config {
	return force.Config{
		LinkDistance:   c.Physics.LinkDistance,
		ChargeStrength: c.Physics.ChargeStrength,
		CollideRadius:  c.Physics.CollideRadius,
		Seed:           c.Physics.Seed,
		Width:          c.Viewport.Width,
		Height:         c.Viewport.Height,
	}
}
