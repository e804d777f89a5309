// Package config loads the startup configuration of modelgraph from TOML.
//
// Configuration is read once at startup; nothing reloads it. A file only
// needs the keys it changes:
//
//	flavor = "dmn"
//	log_level = "debug"
//
//	[snap_grid]
//	enabled = true
//	x = 20
//	y = 20
//
//	[min_sizes.decision]
//	width = 200
//	height = 100
//
//	[server]
//	addr = ":8080"
//
//	[cache]
//	dir = "/tmp/modelgraph"
//	# redis_url = "redis://localhost:6379/0"
package config

import (
	"math"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelgraph/pkg/cache"
	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/flavor"
	"github.com/matzehuels/modelgraph/pkg/snapgrid"
)

// Config is the startup configuration.
type Config struct {
	Flavor   string          `toml:"flavor"`
	LogLevel string          `toml:"log_level"`
	SnapGrid snapgrid.Grid   `toml:"snap_grid"`
	MinSizes map[string]Size `toml:"min_sizes"`
	Server   Server          `toml:"server"`
	Cache    Cache           `toml:"cache"`
}

// Size overrides the minimum size of a node type.
type Size struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Cache configures the render artifact cache. RedisURL wins over Dir; an
// empty Dir uses the user cache directory.
type Cache struct {
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Disabled bool   `toml:"disabled"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Flavor:   "dmn",
		LogLevel: "info",
		SnapGrid: snapgrid.Default,
		Server:   Server{Addr: ":8080"},
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against the registered flavors.
func (c Config) Validate() error {
	f, err := flavor.Lookup(c.Flavor)
	if err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid log level %q", c.LogLevel)
	}
	if err := c.SnapGrid.Validate(); err != nil {
		return err
	}
	for name, s := range c.MinSizes {
		if !f.HasNodeType(diagram.NodeType(name)) {
			return errors.New(errors.ErrCodeInvalidConfig, "flavor %s has no node type %q", f.Name, name)
		}
		if !positive(s.Width) || !positive(s.Height) {
			return errors.New(errors.ErrCodeInvalidConfig, "minimum size of %s must be positive, got %vx%v", name, s.Width, s.Height)
		}
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Level returns the configured log level, info when unset or invalid.
func (c Config) Level() log.Level {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// ResolveFlavor returns the configured flavor with the minimum size
// overrides applied.
func (c Config) ResolveFlavor() (*diagram.Flavor, error) {
	f, err := flavor.Lookup(c.Flavor)
	if err != nil {
		return nil, err
	}
	return c.ApplyTo(f), nil
}

// ApplyTo returns f with the minimum size overrides applied. f is returned
// unchanged when there are none.
func (c Config) ApplyTo(f *diagram.Flavor) *diagram.Flavor {
	if len(c.MinSizes) == 0 {
		return f
	}
	sizes := make(map[diagram.NodeType]document.Dimension, len(c.MinSizes))
	for name, s := range c.MinSizes {
		sizes[diagram.NodeType(name)] = document.Dimension{Width: s.Width, Height: s.Height}
	}
	return f.WithMinSizes(sizes)
}

// OpenCache opens the artifact cache the configuration selects: Redis when a
// URL is set, otherwise files under Dir or fallbackDir. A disabled cache, or
// one with nowhere to go, is a NullCache.
func (c Config) OpenCache(fallbackDir string) (cache.Cache, error) {
	switch {
	case c.Cache.Disabled:
		return cache.NullCache{}, nil
	case c.Cache.RedisURL != "":
		rc, err := cache.NewRedisCache(c.Cache.RedisURL)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache redis_url")
		}
		return rc, nil
	}
	dir := c.Cache.Dir
	if dir == "" {
		dir = fallbackDir
	}
	if dir == "" {
		return cache.NullCache{}, nil
	}
	return cache.NewFileCache(dir)
}
