package mutation_test

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/flavor/bpmn"
	"github.com/matzehuels/modelgraph/pkg/mutation"
	"github.com/matzehuels/modelgraph/pkg/snapgrid"
)

func bounds(x, y, w, h float64) document.Bounds {
	return document.Bounds{X: x, Y: y, Width: w, Height: h}
}

func TestDividerLimitsOverlappingChildren(t *testing.T) {
	container := bounds(0, 0, 320, 320)
	outputs := []document.Bounds{bounds(20, 60, 160, 80), bounds(160, 100, 160, 80)}
	encapsulated := []document.Bounds{bounds(80, 260, 160, 80)}

	l := mutation.DividerLimits(container, outputs, encapsulated, 100)
	if l != (mutation.Limits{Upper: 280, Lower: 160}) {
		t.Fatalf("DividerLimits = %+v, want {Upper:280 Lower:160}", l)
	}
	for _, y := range []float64{0, 160, 200, 280, 1000} {
		if got := l.Clamp(y); got != 280 {
			t.Errorf("Clamp(%v) = %v, want 280", y, got)
		}
	}
}

func TestDividerLimitsClamp(t *testing.T) {
	container := bounds(0, 0, 400, 600)
	outputs := []document.Bounds{bounds(40, 60, 160, 80)}
	encapsulated := []document.Bounds{bounds(40, 460, 160, 80)}
	l := mutation.DividerLimits(container, outputs, encapsulated, 100)
	if l != (mutation.Limits{Upper: 240, Lower: 360}) {
		t.Fatalf("DividerLimits = %+v, want {Upper:240 Lower:360}", l)
	}

	tests := []struct {
		y, want float64
	}{
		{100, 240},
		{240, 240},
		{300, 300},
		{360, 360},
		{500, 360},
	}
	for _, tt := range tests {
		if got := l.Clamp(tt.y); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.y, got, tt.want)
		}
	}
}

func TestDividerLimitsWithoutChildren(t *testing.T) {
	l := mutation.DividerLimits(bounds(100, 100, 300, 300), nil, nil, 100)
	if l != (mutation.Limits{Upper: 200, Lower: 300}) {
		t.Errorf("DividerLimits = %+v, want {Upper:200 Lower:300}", l)
	}
	if got := mutation.SolveDividerLine(bounds(100, 100, 300, 300), nil, nil, 150); got != 250 {
		t.Errorf("SolveDividerLine = %v, want 250", got)
	}
}

func TestCentralizedDividerLine(t *testing.T) {
	line := mutation.CentralizedDividerLine(bounds(40, 20, 320, 200))
	want := []document.Point{pt(40, 120), pt(360, 120)}
	if len(line.Waypoints) != 2 || line.Waypoints[0] != want[0] || line.Waypoints[1] != want[1] {
		t.Errorf("CentralizedDividerLine = %v, want %v", line.Waypoints, want)
	}
}

func serviceDoc() *document.Document {
	return &document.Document{
		Elements: []document.Element{
			{ID: "ds", Kind: "decisionService",
				OutputDecisions:       []document.Href{"#o1", "#o2"},
				EncapsulatedDecisions: []document.Href{"#e1"},
			},
			{ID: "o1", Kind: "decision"},
			{ID: "o2", Kind: "decision"},
			{ID: "e1", Kind: "decision"},
		},
		Diagrams: []document.Diagram{{Elements: []document.DiagramElement{
			shape("ds", 0, 0, 320, 320),
			shape("o1", 0, 60, 160, 80),
			shape("o2", 160, 100, 160, 80),
			shape("e1", 80, 260, 160, 80),
		}}},
	}
}

func TestUpdateDividerLine(t *testing.T) {
	doc := serviceDoc()
	err := newMutator().UpdateDividerLine(doc, mutation.DividerChange{ElementID: "ds", LocalY: 200})
	if err != nil {
		t.Fatalf("UpdateDividerLine: %v", err)
	}
	line := page(doc)[0].(*document.Shape).DividerLine
	if line == nil {
		t.Fatal("no divider line written")
	}
	want := []document.Point{pt(0, 280), pt(320, 280)}
	if line.Waypoints[0] != want[0] || line.Waypoints[1] != want[1] {
		t.Errorf("waypoints = %v, want %v", line.Waypoints, want)
	}
}

func TestUpdateDividerLineKeepsX(t *testing.T) {
	doc := &document.Document{
		Elements: []document.Element{{ID: "ds", Kind: "decisionService"}},
		Diagrams: []document.Diagram{{Elements: []document.DiagramElement{
			&document.Shape{
				ElementRef:  "ds",
				Bounds:      &document.Bounds{Width: 400, Height: 600},
				DividerLine: &document.DividerLine{Waypoints: []document.Point{pt(10, 300), pt(390, 300)}},
			},
		}}},
	}
	err := newMutator().UpdateDividerLine(doc, mutation.DividerChange{ElementID: "ds", LocalY: 50})
	if err != nil {
		t.Fatalf("UpdateDividerLine: %v", err)
	}
	line := page(doc)[0].(*document.Shape).DividerLine
	want := []document.Point{pt(10, 100), pt(390, 100)}
	if line.Waypoints[0] != want[0] || line.Waypoints[1] != want[1] {
		t.Errorf("waypoints = %v, want %v", line.Waypoints, want)
	}
}

func TestUpdateDividerLineIncludedService(t *testing.T) {
	doc := &document.Document{
		Elements: []document.Element{{ID: "d1", Kind: "decision"}},
		Includes: []document.Include{{
			Name:      "inc",
			Namespace: "https://example.com/inc",
			Elements: []document.Element{
				{ID: "ds", Kind: "decisionService", OutputDecisions: []document.Href{"#d1"}},
				{ID: "d1", Kind: "decision"},
			},
		}},
		Diagrams: []document.Diagram{{Elements: []document.DiagramElement{
			shape("inc:ds", 0, 0, 400, 400),
			shape("inc:d1", 0, 20, 160, 80),
			shape("d1", 0, 300, 160, 80),
		}}},
	}
	err := newMutator().UpdateDividerLine(doc, mutation.DividerChange{ElementID: "inc:ds", LocalY: 200})
	if err != nil {
		t.Fatalf("UpdateDividerLine: %v", err)
	}
	// limited by inc:d1 (bottom 100), not the local d1 (bottom 380)
	if got := page(doc)[0].(*document.Shape).DividerLine.Waypoints[0].Y; got != 200 {
		t.Errorf("divider y = %v, want 200", got)
	}
}

func TestUpdateDividerLineDuplicateShapes(t *testing.T) {
	doc := &document.Document{
		Elements: []document.Element{{ID: "ds", Kind: "decisionService"}},
		Diagrams: []document.Diagram{{Elements: []document.DiagramElement{
			shape("ds", 0, 0, 400, 600),
			shape("ds", 1000, 1000, 400, 600),
		}}},
	}
	err := newMutator().UpdateDividerLine(doc, mutation.DividerChange{ElementID: "ds", LocalY: 50})
	if err != nil {
		t.Fatalf("UpdateDividerLine: %v", err)
	}
	if got := page(doc)[0].(*document.Shape).DividerLine.Waypoints[0].Y; got != 100 {
		t.Errorf("divider y = %v, want 100", got)
	}
	if page(doc)[1].(*document.Shape).DividerLine != nil {
		t.Error("divider written to the other shape")
	}
}

func TestUpdateDividerLineErrors(t *testing.T) {
	tests := []struct {
		name   string
		m      *mutation.Mutator
		change mutation.DividerChange
		code   errors.Code
	}{
		{"not a service", newMutator(), mutation.DividerChange{ShapeIndex: 1, ElementID: "o1"}, errors.ErrCodeInvalidInput},
		{"flavor without dividers", mutation.New(bpmn.Flavor, snapgrid.Default, log.New(io.Discard)), mutation.DividerChange{ElementID: "ds"}, errors.ErrCodeInvalidInput},
		{"missing shape", newMutator(), mutation.DividerChange{ShapeIndex: 7, ElementID: "ds"}, errors.ErrCodeCorruptDocument},
		{"other element", newMutator(), mutation.DividerChange{ShapeIndex: 1, ElementID: "ds"}, errors.ErrCodeCorruptDocument},
		{"missing page", newMutator(), mutation.DividerChange{Page: 1, ElementID: "ds"}, errors.ErrCodeCorruptDocument},
	}
	for _, tt := range tests {
		err := tt.m.UpdateDividerLine(serviceDoc(), tt.change)
		if !errors.Is(err, tt.code) {
			t.Errorf("%s: error = %v, want %s", tt.name, err, tt.code)
		}
	}
}
