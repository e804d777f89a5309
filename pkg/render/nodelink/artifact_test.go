package nodelink

import (
	"context"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelgraph/pkg/cache"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/observability"
)

type cacheEvents struct {
	events []string
}

func (c *cacheEvents) OnCacheHit(string)      { c.events = append(c.events, "hit") }
func (c *cacheEvents) OnCacheMiss(string)     { c.events = append(c.events, "miss") }
func (c *cacheEvents) OnCacheSet(string, int) { c.events = append(c.events, "set") }

func TestRendererCachesSVG(t *testing.T) {
	rec := &cacheEvents{}
	observability.SetCacheHooks(rec)
	t.Cleanup(observability.Reset)

	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := &Renderer{Cache: store, Logger: log.New(io.Discard)}
	dot := ToDOT(testData(nil), Options{})
	ctx := context.Background()

	first, cached, err := r.Render(ctx, dot, FormatSVG, 1)
	if err != nil || cached {
		t.Fatalf("first Render = cached %v, %v; want a fresh render", cached, err)
	}
	second, cached, err := r.Render(ctx, dot, FormatSVG, 1)
	if err != nil || !cached {
		t.Fatalf("second Render = cached %v, %v; want a cache hit", cached, err)
	}
	if string(first) != string(second) {
		t.Error("cached SVG differs from the rendered one")
	}
	if want := []string{"miss", "set", "hit"}; !reflect.DeepEqual(rec.events, want) {
		t.Errorf("cache events = %v, want %v", rec.events, want)
	}
}

func TestRendererDOT(t *testing.T) {
	r := &Renderer{}
	dot := ToDOT(testData(nil), Options{})
	out, cached, err := r.Render(context.Background(), dot, FormatDOT, 1)
	if err != nil || cached || string(out) != dot {
		t.Errorf("Render(dot) = %d bytes, cached %v, %v; want the source", len(out), cached, err)
	}
}

func TestRendererRejectsFormat(t *testing.T) {
	r := &Renderer{Cache: cache.NullCache{}}
	if _, _, err := r.Render(context.Background(), "digraph {}", "gif", 1); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Render(gif) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range Formats {
		if !ValidFormat(f) {
			t.Errorf("ValidFormat(%q) = false", f)
		}
	}
	for _, f := range []string{"", "json", "SVG"} {
		if ValidFormat(f) {
			t.Errorf("ValidFormat(%q) = true", f)
		}
	}
}
