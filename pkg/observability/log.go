package observability

import (
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug line. It implements all hook
// interfaces and is what the CLI registers with --verbose.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger, or the default logger if nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnCompile(flavor string, page, nodes, edges int, d time.Duration) {
	h.logger.Debug("compiled render graph", "flavor", flavor, "page", page, "nodes", nodes, "edges", edges, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnResize(flavor, elementID string, moved int) {
	h.logger.Debug("resized node", "flavor", flavor, "id", elementID, "waypoints", moved)
}

func (h *LogHooks) OnDividerMove(elementID string, y float64) {
	h.logger.Debug("moved divider line", "id", elementID, "y", y)
}

func (h *LogHooks) OnCacheHit(keyType string)  { h.logger.Debug("cache hit", "type", keyType) }
func (h *LogHooks) OnCacheMiss(keyType string) { h.logger.Debug("cache miss", "type", keyType) }

func (h *LogHooks) OnCacheSet(keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(method, route string, status int, d time.Duration) {
	h.logger.Debug("request", "method", method, "route", route, "status", status, "took", d.Round(time.Microsecond))
}

var (
	_ EngineHooks  = (*LogHooks)(nil)
	_ CacheHooks   = (*LogHooks)(nil)
	_ RequestHooks = (*LogHooks)(nil)
)
