package nodelink

import (
	"context"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelgraph/pkg/cache"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/observability"
)

// Output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// Formats lists the output formats in order of preference.
var Formats = []string{FormatSVG, FormatDOT, FormatPDF, FormatPNG}

// ValidFormat reports whether format is one of [Formats].
func ValidFormat(format string) bool {
	switch format {
	case FormatDOT, FormatSVG, FormatPDF, FormatPNG:
		return true
	}
	return false
}

// Renderer renders DOT source to artifacts through a cache keyed by the
// source, so an unchanged page skips Graphviz. Cache failures are logged and
// rendering goes on without the cache.
type Renderer struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// Render returns dot rendered in format, and whether it came from the cache.
// DOT output is the source itself and is never cached. scale only applies to
// PNG.
func (r *Renderer) Render(ctx context.Context, dot, format string, scale float64) (out []byte, cached bool, err error) {
	if !ValidFormat(format) {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "unknown format %q", format)
	}
	if format == FormatDOT {
		return []byte(dot), false, nil
	}

	variant := format
	if format == FormatPNG {
		variant += "@" + strconv.FormatFloat(scale, 'g', -1, 64)
	}
	key := cache.ArtifactKey(variant, []byte(dot))
	if r.Cache != nil {
		data, ok, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.logger().Warn("cache read failed", "err", err)
		case ok:
			observability.Cache().OnCacheHit("artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss("artifact")
	}

	switch format {
	case FormatSVG:
		out, err = RenderSVG(ctx, dot)
	case FormatPDF:
		out, err = RenderPDF(ctx, dot)
	case FormatPNG:
		out, err = RenderPNG(ctx, dot, scale)
	}
	if err != nil {
		return nil, false, err
	}

	if r.Cache != nil {
		if err := r.Cache.Set(ctx, key, out, 0); err != nil {
			r.logger().Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet("artifact", len(out))
		}
	}
	return out, false, nil
}

func (r *Renderer) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}
