package bpmn

import (
	"slices"
	"testing"

	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/snapgrid"
)

func TestSequenceFlows(t *testing.T) {
	sources := []diagram.NodeType{StartEvent, IntermediateCatchEvent, IntermediateThrowEvent, Task, SubProcess, Gateway}
	for _, src := range Flavor.NodeTypes {
		for _, tgt := range Flavor.NodeTypes {
			want := slices.Contains(sources, src) && slices.Contains(flowTargets, tgt)
			if got := Flavor.IsValidConnection(src, SequenceFlow, tgt); got != want {
				t.Errorf("IsValidConnection(%s, sequenceFlow, %s) = %v, want %v", src, tgt, got, want)
			}
		}
	}
}

func TestDirectionality(t *testing.T) {
	tests := []struct {
		src  diagram.NodeType
		edge diagram.EdgeType
		tgt  diagram.NodeType
		want bool
	}{
		{StartEvent, SequenceFlow, Task, true},
		{Task, SequenceFlow, StartEvent, false},
		{Task, SequenceFlow, EndEvent, true},
		{EndEvent, SequenceFlow, Task, false},
		{DataObject, Association, TextAnnotation, true},
		{TextAnnotation, Association, DataObject, true},
		{TextAnnotation, Association, TextAnnotation, false},
		{Lane, Association, TextAnnotation, false},
		{TextAnnotation, Association, Lane, false},
		{Group, SequenceFlow, Task, false},
	}
	for _, tt := range tests {
		if got := Flavor.IsValidConnection(tt.src, tt.edge, tt.tgt); got != tt.want {
			t.Errorf("IsValidConnection(%s, %s, %s) = %v, want %v", tt.src, tt.edge, tt.tgt, got, tt.want)
		}
	}
}

func TestDefaultEdgeTypeBetween(t *testing.T) {
	if e, ok := Flavor.DefaultEdgeTypeBetween(Task, Gateway); !ok || e != SequenceFlow {
		t.Errorf("DefaultEdgeTypeBetween(task, gateway) = %q, %v", e, ok)
	}
	if e, ok := Flavor.DefaultEdgeTypeBetween(Task, TextAnnotation); !ok || e != Association {
		t.Errorf("DefaultEdgeTypeBetween(task, textAnnotation) = %q, %v", e, ok)
	}
	if _, ok := Flavor.DefaultEdgeTypeBetween(EndEvent, Task); ok {
		t.Error("DefaultEdgeTypeBetween(endEvent, task) found an edge type")
	}
}

func TestContainment(t *testing.T) {
	for _, c := range []diagram.NodeType{Lane, SubProcess} {
		for _, child := range []diagram.NodeType{StartEvent, Task, SubProcess, Gateway, DataObject, TextAnnotation} {
			if !Flavor.MayContain(c, child) {
				t.Errorf("MayContain(%s, %s) = false", c, child)
			}
		}
		if Flavor.MayContain(c, Lane) || Flavor.MayContain(c, Group) {
			t.Errorf("%s may hold a lane or group", c)
		}
	}
	if Flavor.Containment.IsContainer(Group) {
		t.Error("group declared as a container")
	}
}

func TestTags(t *testing.T) {
	tests := map[string]diagram.NodeType{
		"userTask":            Task,
		"callActivity":        Task,
		"transaction":         SubProcess,
		"adHocSubProcess":     SubProcess,
		"eventBasedGateway":   Gateway,
		"boundaryEvent":       IntermediateCatchEvent,
		"dataObjectReference": DataObject,
		"lane":                Lane,
	}
	for kind, want := range tests {
		if got, ok := Flavor.NodeTypeOf(kind); !ok || got != want {
			t.Errorf("NodeTypeOf(%s) = %q, %v; want %q", kind, got, ok, want)
		}
	}
	if _, ok := Flavor.NodeTypeOf("process"); ok {
		t.Error("process mapped to a node type")
	}
	if _, ok := Flavor.EdgeTypeOf("messageFlow"); ok {
		t.Error("messageFlow mapped to an edge type")
	}
}

func TestSizes(t *testing.T) {
	g := snapgrid.Default
	tests := []struct {
		t          diagram.NodeType
		min, deflt document.Dimension
	}{
		{StartEvent, document.Dimension{Width: 60, Height: 60}, document.Dimension{Width: 60, Height: 60}},
		{Task, document.Dimension{Width: 160, Height: 80}, document.Dimension{Width: 160, Height: 80}},
		{SubProcess, document.Dimension{Width: 280, Height: 200}, document.Dimension{Width: 400, Height: 240}},
		{Lane, document.Dimension{Width: 400, Height: 200}, document.Dimension{Width: 400, Height: 200}},
		{DataObject, document.Dimension{Width: 60, Height: 80}, document.Dimension{Width: 60, Height: 80}},
	}
	for _, tt := range tests {
		if got := Flavor.MinSize(tt.t, g); got != tt.min {
			t.Errorf("MinSize(%s) = %v, want %v", tt.t, got, tt.min)
		}
		if got := Flavor.DefaultSize(tt.t, g); got != tt.deflt {
			t.Errorf("DefaultSize(%s) = %v, want %v", tt.t, got, tt.deflt)
		}
	}
}

func TestEveryNodeTypeHasALayer(t *testing.T) {
	for _, nt := range Flavor.NodeTypes {
		l := Flavor.LayerOf(nt)
		if l != diagram.LayerGroups && l != diagram.LayerContainers && l != diagram.LayerNodes {
			t.Errorf("LayerOf(%s) = %v", nt, l)
		}
	}
}
