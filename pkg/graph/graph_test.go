package graph

import (
	"bytes"
	"io"
	"path/filepath"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/flavor/dmn"
	"github.com/matzehuels/modelgraph/pkg/snapgrid"
	"github.com/matzehuels/modelgraph/pkg/status"
)

func shape(ref string, x, y, w, h float64) *document.Shape {
	return &document.Shape{ID: "_" + ref, ElementRef: ref, Bounds: &document.Bounds{X: x, Y: y, Width: w, Height: h}}
}

func model() *document.Document {
	ds := shape("ds", 400, 0, 320, 320)
	ds.DividerLine = &document.DividerLine{Waypoints: []document.Point{{X: 400, Y: 160}, {X: 720, Y: 160}}}
	return &document.Document{
		Flavor: "dmn",
		Elements: []document.Element{
			{ID: "i1", Kind: "inputData"},
			{ID: "i2", Kind: "inputData"},
			{ID: "d1", Kind: "decision", Requirements: []document.Requirement{
				{ID: "r2", Kind: "informationRequirement", Href: "#i2"},
				{ID: "r1", Kind: "informationRequirement", Href: "#i1"},
			}},
			{ID: "ds", Kind: "decisionService", OutputDecisions: []document.Href{"#d1"}},
		},
		Diagrams: []document.Diagram{{Elements: []document.DiagramElement{
			shape("i1", 0, 0, 160, 80),
			shape("i2", 0, 200, 160, 80),
			ds,
			shape("d1", 480, 40, 160, 80),
			&document.Edge{ElementRef: "r1", Waypoints: []document.Point{{X: 80, Y: 40}, {X: 560, Y: 80}}},
			&document.Edge{ElementRef: "r2", Waypoints: []document.Point{{X: 80, Y: 240}, {X: 560, Y: 80}}},
		}}},
	}
}

func compile(doc *document.Document, st *status.Status) *diagram.Data {
	return diagram.Compile(dmn.Flavor, doc, st, snapgrid.Default, 0, log.New(io.Discard))
}

func TestFromData(t *testing.T) {
	st := status.Idle().WithSelection([]string{"i2", "d1"}, []string{"r1"})
	g := FromData(compile(model(), st))

	if g.Flavor != "dmn" || g.Page != 0 {
		t.Errorf("header = %s/%d", g.Flavor, g.Page)
	}
	if len(g.Nodes) != 4 || len(g.Edges) != 2 {
		t.Fatalf("got %d nodes, %d edges; want 4, 2", len(g.Nodes), len(g.Edges))
	}
	if g.Nodes[0].ID != "ds" || g.Nodes[0].Layer != "containers" {
		t.Errorf("first painted = %s (%s), want ds (containers)", g.Nodes[0].ID, g.Nodes[0].Layer)
	}

	ds, _ := g.Node("ds")
	if ds.DividerY == nil || *ds.DividerY != 160 {
		t.Errorf("ds.DividerY = %v, want 160", ds.DividerY)
	}
	if d1, _ := g.Node("d1"); d1.DividerY != nil || !d1.Selected {
		t.Errorf("d1 = %+v", d1)
	}
	if r1, ok := g.Edge("r1"); !ok || r1.Source != "i1" || r1.Target != "d1" || !r1.Selected {
		t.Errorf("r1 = %+v, %v", r1, ok)
	}
	if _, ok := g.Node("missing"); ok {
		t.Error("Node(missing) found")
	}

	want := []Dependency{{Target: "d1", Sources: []string{"i1", "i2"}}}
	if len(g.Adjacency) != 1 || g.Adjacency[0].Target != want[0].Target || !slices.Equal(g.Adjacency[0].Sources, want[0].Sources) {
		t.Errorf("Adjacency = %+v, want %+v", g.Adjacency, want)
	}
	if !slices.Equal(g.Selection.Nodes, []string{"d1", "i2"}) {
		t.Errorf("Selection.Nodes = %v, want [d1 i2]", g.Selection.Nodes)
	}
	if !slices.Equal(g.Selection.NodeTypes, []string{"decision", "inputData"}) {
		t.Errorf("Selection.NodeTypes = %v", g.Selection.NodeTypes)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	a, err := Marshal(compile(model(), nil))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for range 10 {
		b, err := Marshal(compile(model(), nil))
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(a, b) {
			t.Fatalf("equal documents marshaled differently:\n%s\n---\n%s", a, b)
		}
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteFile(compile(model(), nil), path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	g, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := FromData(compile(model(), nil))
	if len(g.Nodes) != len(want.Nodes) || len(g.Edges) != len(want.Edges) {
		t.Errorf("read %d/%d nodes/edges, want %d/%d", len(g.Nodes), len(g.Edges), len(want.Nodes), len(want.Edges))
	}
	if d1, _ := g.Node("d1"); d1.Position != (document.Point{X: 480, Y: 40}) {
		t.Errorf("d1.Position = %v", d1.Position)
	}
}

func TestReadInvalid(t *testing.T) {
	if _, err := Read(bytes.NewReader([]byte("{nodes"))); err == nil {
		t.Error("Read accepted malformed JSON")
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadFile accepted a missing file")
	}
}
