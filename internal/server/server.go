// Package server exposes the diagram engine over HTTP for rendering layers
// that do not link the Go packages directly.
//
// The API is stateless: every editing request carries the document it
// applies to and the response carries the edited document together with the
// render graph of the requested page. Routes:
//
//	GET  /healthz
//	GET  /api/v1/flavors
//	GET  /api/v1/flavors/{flavor}/structure
//	GET  /api/v1/flavors/{flavor}/connections?source=&edge=&target=
//	POST /api/v1/compile
//	POST /api/v1/resize
//	POST /api/v1/divider
//	POST /api/v1/connect
//	POST /api/v1/nodes
//	POST /api/v1/render
//
// Rendered SVG, PDF and PNG artifacts go through the configured artifact
// cache; point several servers at one Redis to share it.
//
// Errors are JSON objects {"error", "code"} whose HTTP status follows the
// error code.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/modelgraph/pkg/config"
	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/flavor"
	"github.com/matzehuels/modelgraph/pkg/render/nodelink"
)

const (
	// maxBodyBytes caps request bodies. Documents are JSON and rarely
	// approach this.
	maxBodyBytes = 16 << 20

	shutdownTimeout = 10 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	cfg      config.Config
	flavors  map[string]*diagram.Flavor
	renderer *nodelink.Renderer
	logger   *log.Logger
	router   chi.Router
}

// New returns a server for cfg. The configured minimum sizes apply to the
// configured flavor only; other flavors are served with their defaults.
// Without a configured cache directory or Redis URL nothing is cached.
func New(cfg config.Config, logger *log.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	store, err := cfg.OpenCache("")
	if err != nil {
		return nil, err
	}
	logger = logger.WithPrefix("server")
	s := &Server{
		cfg:      cfg,
		flavors:  make(map[string]*diagram.Flavor),
		renderer: &nodelink.Renderer{Cache: store, Logger: logger},
		logger:   logger,
	}
	for _, f := range flavor.All() {
		if f.Name == cfg.Flavor {
			f = cfg.ApplyTo(f)
		}
		s.flavors[f.Name] = f
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/flavors", s.handleFlavors)
		r.Get("/flavors/{flavor}/structure", s.handleStructure)
		r.Get("/flavors/{flavor}/connections", s.handleConnections)

		r.Group(func(r chi.Router) {
			r.Use(limitBody(maxBodyBytes))
			r.Post("/compile", s.handleCompile)
			r.Post("/resize", s.handleResize)
			r.Post("/divider", s.handleDivider)
			r.Post("/connect", s.handleConnect)
			r.Post("/nodes", s.handleAddNode)
			r.Post("/render", s.handleRender)
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Close releases the artifact cache.
func (s *Server) Close() error { return s.renderer.Cache.Close() }

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "listen on %s", s.cfg.Server.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String(), "flavor", s.cfg.Flavor)
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "serve")
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
	}
	return nil
}

// flavorFor returns the served flavor called name.
func (s *Server) flavorFor(name string) (*diagram.Flavor, error) {
	if name == "" {
		name = s.cfg.Flavor
	}
	if f, ok := s.flavors[name]; ok {
		return f, nil
	}
	_, err := flavor.Lookup(name)
	if err == nil {
		err = errors.New(errors.ErrCodeInvalidFlavor, "flavor %q is not served", name)
	}
	return nil, err
}
