package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/modelgraph/pkg/buildinfo"
	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/flavor"
	"github.com/matzehuels/modelgraph/pkg/graph"
	"github.com/matzehuels/modelgraph/pkg/mutation"
	"github.com/matzehuels/modelgraph/pkg/render/nodelink"
	"github.com/matzehuels/modelgraph/pkg/session"
	"github.com/matzehuels/modelgraph/pkg/status"
)

type documentRequest struct {
	Document *document.Document `json:"document"`
	Page     int                `json:"page"`
}

type compileRequest struct {
	documentRequest
	Status *status.Status `json:"status,omitempty"`
}

type resizeRequest struct {
	documentRequest
	Changes []mutation.ResizeChange `json:"changes"`
}

type dividerRequest struct {
	documentRequest
	Change mutation.DividerChange `json:"change"`
}

type connectRequest struct {
	documentRequest
	Connection diagram.Connection `json:"connection"`
}

type addNodeRequest struct {
	documentRequest
	Node session.NewNode `json:"node"`
}

type renderRequest struct {
	documentRequest
	Status       *status.Status `json:"status,omitempty"`
	Format       string         `json:"format,omitempty"`
	Detailed     bool           `json:"detailed,omitempty"`
	HideExternal bool           `json:"hideExternal,omitempty"`
	Scale        float64        `json:"scale,omitempty"`
}

var contentTypes = map[string]string{
	nodelink.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	nodelink.FormatSVG: "image/svg+xml",
	nodelink.FormatPDF: "application/pdf",
	nodelink.FormatPNG: "image/png",
}

type editResponse struct {
	Document *document.Document `json:"document"`
	Graph    graph.Graph        `json:"graph"`
}

type connectResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id,omitempty"`
	editResponse
}

type addNodeResponse struct {
	ID string `json:"id"`
	editResponse
}

type connectionsResponse struct {
	Valid     *bool              `json:"valid,omitempty"`
	EdgeTypes []diagram.EdgeType `json:"edgeTypes,omitempty"`
	Default   diagram.EdgeType   `json:"default,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleFlavors(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"flavors": flavor.Names(), "default": s.cfg.Flavor})
}

func (s *Server) handleStructure(w http.ResponseWriter, r *http.Request) {
	f, err := s.flavorFor(chi.URLParam(r, "flavor"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f.Describe())
}

// handleConnections answers a validity query when edge is given and lists
// the edge types between source and target otherwise.
func (s *Server) handleConnections(w http.ResponseWriter, r *http.Request) {
	f, err := s.flavorFor(chi.URLParam(r, "flavor"))
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	src, tgt := diagram.NodeType(q.Get("source")), diagram.NodeType(q.Get("target"))
	for _, t := range []diagram.NodeType{src, tgt} {
		if !f.HasNodeType(t) {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "%s has no node type %q", f.Name, t))
			return
		}
	}

	if e := diagram.EdgeType(q.Get("edge")); e != "" {
		if !f.HasEdgeType(e) {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "%s has no edge type %q", f.Name, e))
			return
		}
		valid := f.IsValidConnection(src, e, tgt)
		writeJSON(w, http.StatusOK, connectionsResponse{Valid: &valid})
		return
	}

	resp := connectionsResponse{EdgeTypes: f.Structure.EdgeTypesBetween(src, tgt)}
	if e, ok := f.DefaultEdgeTypeBetween(src, tgt); ok {
		resp.Default = e
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	sess, err := s.open(req.documentRequest)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Status != nil {
		sess.Status().Update(func(*status.Status) *status.Status { return req.Status })
	}
	writeJSON(w, http.StatusOK, graph.FromData(sess.Data()))
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.Changes) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "resize request has no changes"))
		return
	}
	sess, err := s.open(req.documentRequest)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := sess.Resize(req.Changes...); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, edited(sess))
}

func (s *Server) handleDivider(w http.ResponseWriter, r *http.Request) {
	var req dividerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	sess, err := s.open(req.documentRequest)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := sess.MoveDividerLine(req.Change); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, edited(sess))
}

// handleConnect commits a connection. A connection the flavor rejects is
// not an error: the response has ok false and the document unchanged.
func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	sess, err := s.open(req.documentRequest)
	if err != nil {
		writeError(w, err)
		return
	}
	id, ok, err := sess.Connect(req.Connection)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, connectResponse{OK: ok, ID: id, editResponse: edited(sess)})
}

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	var req addNodeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	sess, err := s.open(req.documentRequest)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := sess.AddNode(req.Node)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, addNodeResponse{ID: id, editResponse: edited(sess)})
}

// handleRender draws the page with Graphviz. X-Cache tells whether the
// artifact came from the cache.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Format == "" {
		req.Format = nodelink.FormatSVG
	}
	if req.Scale == 0 {
		req.Scale = 1
	}
	if !nodelink.ValidFormat(req.Format) {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "unknown format %q", req.Format))
		return
	}
	sess, err := s.open(req.documentRequest)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Status != nil {
		sess.Status().Update(func(*status.Status) *status.Status { return req.Status })
	}

	dot := nodelink.ToDOT(sess.Data(), nodelink.Options{Detailed: req.Detailed, HideExternal: req.HideExternal})
	out, cached, err := s.renderer.Render(r.Context(), dot, req.Format, req.Scale)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[req.Format])
	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// open starts a session over the request's document. The document's flavor
// picks the engine; a document without one uses the configured flavor.
func (s *Server) open(req documentRequest) (*session.Session, error) {
	if req.Document == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "request has no document")
	}
	f, err := s.flavorFor(req.Document.Flavor)
	if err != nil {
		return nil, err
	}
	if req.Document.Flavor == "" {
		req.Document.Flavor = f.Name
	}
	if err := req.Document.Validate(); err != nil {
		return nil, err
	}
	return session.New(f, req.Document, session.Options{
		Grid:     s.cfg.SnapGrid,
		Page:     req.Page,
		MemoSize: 1,
		Logger:   s.logger,
	})
}

func edited(sess *session.Session) editResponse {
	return editResponse{Document: sess.Document(), Graph: graph.FromData(sess.Data())}
}
