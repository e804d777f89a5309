package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelgraph/pkg/cache"
	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/flavor/bpmn"
	"github.com/matzehuels/modelgraph/pkg/flavor/dmn"
	"github.com/matzehuels/modelgraph/pkg/snapgrid"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.SnapGrid != snapgrid.Default {
		t.Errorf("SnapGrid = %+v, want %+v", cfg.SnapGrid, snapgrid.Default)
	}
	if cfg.Level() != log.InfoLevel {
		t.Errorf("Level() = %v, want info", cfg.Level())
	}
	f, err := cfg.ResolveFlavor()
	if err != nil || f != dmn.Flavor {
		t.Errorf("ResolveFlavor() = %v, %v; want the dmn flavor unchanged", f, err)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
flavor = "bpmn"
log_level = "debug"

[snap_grid]
enabled = true
x = 10
y = 10

[min_sizes.task]
width = 200
height = 100
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Flavor != "bpmn" || cfg.Level() != log.DebugLevel {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SnapGrid != (snapgrid.Grid{Enabled: true, X: 10, Y: 10}) {
		t.Errorf("SnapGrid = %+v", cfg.SnapGrid)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want default :8080", cfg.Server.Addr)
	}

	f, err := cfg.ResolveFlavor()
	if err != nil {
		t.Fatalf("ResolveFlavor: %v", err)
	}
	if got := f.MinSize(bpmn.Task, cfg.SnapGrid); got != (document.Dimension{Width: 200, Height: 100}) {
		t.Errorf("task MinSize = %v, want {200 100}", got)
	}
	if bpmn.Flavor.MinSize(bpmn.Task, cfg.SnapGrid) == (document.Dimension{Width: 200, Height: 100}) {
		t.Error("ResolveFlavor modified the registered flavor")
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax", `flavor = `},
		{"unknown key", `colour = "blue"`},
		{"flavor", `flavor = "cmmn"`},
		{"log level", `log_level = "loud"`},
		{"grid", "[snap_grid]\nenabled = true\nx = 0\ny = 20"},
		{"min size type", "[min_sizes.lane]\nwidth = 10\nheight = 10"},
		{"min size value", "[min_sizes.decision]\nwidth = -1\nheight = 10"},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.toml))
		if err == nil {
			t.Errorf("%s: Parse accepted %q", tt.name, tt.toml)
			continue
		}
		if code := errors.GetCode(err); code != errors.ErrCodeInvalidConfig && code != errors.ErrCodeInvalidFlavor {
			t.Errorf("%s: code = %s, want INVALID_CONFIG or INVALID_FLAVOR", tt.name, code)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modelgraph.toml")
	if err := os.WriteFile(path, []byte("[server]\naddr = \"127.0.0.1:9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Flavor != "dmn" {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load(missing) error = %v, want INVALID_CONFIG", err)
	}
}

func TestOpenCache(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		cache    Cache
		fallback string
		want     string
	}{
		{"nowhere", Cache{}, "", "cache.NullCache"},
		{"disabled", Cache{Dir: dir, RedisURL: "redis://localhost:6379", Disabled: true}, dir, "cache.NullCache"},
		{"fallback dir", Cache{}, dir, "*cache.FileCache"},
		{"configured dir", Cache{Dir: filepath.Join(dir, "artifacts")}, "", "*cache.FileCache"},
		{"redis", Cache{RedisURL: "redis://localhost:6379/0"}, dir, "*cache.RedisCache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Cache = tt.cache
			c, err := cfg.OpenCache(tt.fallback)
			if err != nil {
				t.Fatalf("OpenCache: %v", err)
			}
			defer c.Close()
			if got := fmt.Sprintf("%T", c); got != tt.want {
				t.Errorf("OpenCache() = %s, want %s", got, tt.want)
			}
		})
	}

	cfg := Default()
	cfg.Cache.RedisURL = "localhost:6379"
	if _, err := cfg.OpenCache(""); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("OpenCache with a bad URL error = %v, want INVALID_CONFIG", err)
	}
}

func TestFileCacheDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")
	cfg := Default()
	cfg.Cache.Dir = dir
	c, err := cfg.OpenCache("")
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	if fc, ok := c.(*cache.FileCache); !ok || fc.Dir() != dir {
		t.Errorf("OpenCache() = %#v, want a file cache in %s", c, dir)
	}
}
