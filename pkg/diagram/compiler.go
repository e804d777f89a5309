package diagram

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelgraph/pkg/cache"
	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/observability"
	"github.com/matzehuels/modelgraph/pkg/snapgrid"
	"github.com/matzehuels/modelgraph/pkg/status"
)

// DefaultMemoSize is how many render graphs a [Compiler] keeps.
const DefaultMemoSize = 16

type memoKey struct {
	doc  *document.Document
	st   *status.Status
	grid *snapgrid.Grid
	page int
}

// Compiler memoizes [Compile] on the identity of its inputs.
//
// Passing the same document, status and grid pointers for the same page
// returns the same *Data without recompiling. The compiler never looks inside
// its inputs to decide this: callers replace pointers to signal change.
type Compiler struct {
	flavor *Flavor
	logger *log.Logger
	memo   *cache.Computed[memoKey, *Data]
}

// NewCompiler returns a compiler for f. A nil logger uses the default logger;
// size below one uses [DefaultMemoSize].
func NewCompiler(f *Flavor, logger *log.Logger, size int) *Compiler {
	if logger == nil {
		logger = log.Default()
	}
	if size < 1 {
		size = DefaultMemoSize
	}
	return &Compiler{flavor: f, logger: logger, memo: cache.NewComputed[memoKey, *Data](size)}
}

// Flavor returns the flavor the compiler was built for.
func (c *Compiler) Flavor() *Flavor { return c.flavor }

// Compile returns the render graph of page. grid must not be nil.
func (c *Compiler) Compile(doc *document.Document, st *status.Status, grid *snapgrid.Grid, page int) *Data {
	key := memoKey{doc: doc, st: st, grid: grid, page: page}
	data, hit := c.memo.GetOrCompute(key, func() *Data {
		start := time.Now()
		d := Compile(c.flavor, doc, st, *grid, page, c.logger)
		observability.Engine().OnCompile(c.flavor.Name, page, len(d.Nodes), len(d.Edges), time.Since(start))
		return d
	})
	if hit {
		observability.Cache().OnCacheHit("render-graph")
	} else {
		observability.Cache().OnCacheMiss("render-graph")
	}
	return data
}

// Invalidate drops every memoized render graph.
func (c *Compiler) Invalidate() { c.memo.Purge() }
