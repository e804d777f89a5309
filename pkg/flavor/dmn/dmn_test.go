package dmn

import (
	"testing"

	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/snapgrid"
)

// declared mirrors the connection table so that every pair is checked in
// both directions independently.
var declared = map[diagram.NodeType]map[diagram.EdgeType][]diagram.NodeType{
	InputData: {
		InformationRequirement: {Decision},
		AuthorityRequirement:   {KnowledgeSource},
		Association:            {TextAnnotation},
	},
	Decision: {
		InformationRequirement: {Decision},
		AuthorityRequirement:   {KnowledgeSource},
		Association:            {TextAnnotation},
	},
	BKM: {
		KnowledgeRequirement: {Decision, BKM},
		Association:          {TextAnnotation},
	},
	DecisionService: {
		KnowledgeRequirement: {Decision, BKM},
		Association:          {TextAnnotation},
	},
	KnowledgeSource: {
		AuthorityRequirement: {Decision, BKM, KnowledgeSource},
	},
	TextAnnotation: {
		Association: {InputData, Decision, BKM, DecisionService, KnowledgeSource},
	},
	Group: {},
}

func isDeclared(src diagram.NodeType, e diagram.EdgeType, tgt diagram.NodeType) bool {
	for _, t := range declared[src][e] {
		if t == tgt {
			return true
		}
	}
	return false
}

func TestConnectionTableBothDirections(t *testing.T) {
	for _, src := range Flavor.NodeTypes {
		for _, e := range Flavor.EdgeTypes {
			for _, tgt := range Flavor.NodeTypes {
				want := isDeclared(src, e, tgt)
				if got := Flavor.IsValidConnection(src, e, tgt); got != want {
					t.Errorf("IsValidConnection(%s, %s, %s) = %v, want %v", src, e, tgt, got, want)
				}
				wantReverse := isDeclared(tgt, e, src)
				if got := Flavor.IsValidConnection(tgt, e, src); got != wantReverse {
					t.Errorf("IsValidConnection(%s, %s, %s) = %v, want %v", tgt, e, src, got, wantReverse)
				}
			}
		}
	}
}

func TestAsymmetricPairs(t *testing.T) {
	if !Flavor.IsValidConnection(InputData, InformationRequirement, Decision) {
		t.Error("inputData -> decision rejected")
	}
	if Flavor.IsValidConnection(Decision, InformationRequirement, InputData) {
		t.Error("decision -> inputData accepted")
	}
	if !Flavor.IsValidConnection(BKM, KnowledgeRequirement, Decision) {
		t.Error("bkm -> decision rejected")
	}
	if Flavor.IsValidConnection(Decision, KnowledgeRequirement, BKM) {
		t.Error("decision -> bkm accepted")
	}
}

func TestDefaultEdgeTypeBetween(t *testing.T) {
	tests := []struct {
		src, tgt diagram.NodeType
		want     diagram.EdgeType
		ok       bool
	}{
		{InputData, Decision, InformationRequirement, true},
		{Decision, KnowledgeSource, AuthorityRequirement, true},
		{KnowledgeSource, BKM, AuthorityRequirement, true},
		{BKM, BKM, KnowledgeRequirement, true},
		{TextAnnotation, DecisionService, Association, true},
		{Decision, InputData, "", false},
		{Group, Decision, "", false},
	}
	for _, tt := range tests {
		got, ok := Flavor.DefaultEdgeTypeBetween(tt.src, tt.tgt)
		if got != tt.want || ok != tt.ok {
			t.Errorf("DefaultEdgeTypeBetween(%s, %s) = %q, %v; want %q, %v", tt.src, tt.tgt, got, ok, tt.want, tt.ok)
		}
	}
}

func TestContainment(t *testing.T) {
	if !Flavor.MayContain(DecisionService, Decision) {
		t.Error("decision service cannot hold a decision")
	}
	if Flavor.MayContain(DecisionService, InputData) {
		t.Error("decision service may hold input data")
	}
	if !Flavor.MayContain(Group, KnowledgeSource) {
		t.Error("group cannot hold a knowledge source")
	}
	if Flavor.MayContain(Decision, Decision) {
		t.Error("decision may hold a decision")
	}
}

func TestTags(t *testing.T) {
	if nt, ok := Flavor.NodeTypeOf("businessKnowledgeModel"); !ok || nt != BKM {
		t.Errorf("NodeTypeOf(businessKnowledgeModel) = %q, %v", nt, ok)
	}
	if _, ok := Flavor.NodeTypeOf("informationRequirement"); ok {
		t.Error("requirement mapped to a node type")
	}
	if et, ok := Flavor.EdgeTypeOf("association"); !ok || et != Association {
		t.Errorf("EdgeTypeOf(association) = %q, %v", et, ok)
	}
	for kind, nt := range Flavor.NodeTags {
		if _, ok := Flavor.EdgeTags[kind]; ok {
			t.Errorf("kind %q maps to both node type %s and an edge type", kind, nt)
		}
	}
}

func TestSizes(t *testing.T) {
	tests := []struct {
		t          diagram.NodeType
		min, deflt document.Dimension
	}{
		{Decision, document.Dimension{Width: 160, Height: 80}, document.Dimension{Width: 160, Height: 80}},
		{DecisionService, document.Dimension{Width: 280, Height: 280}, document.Dimension{Width: 320, Height: 320}},
		{TextAnnotation, document.Dimension{Width: 200, Height: 200}, document.Dimension{Width: 200, Height: 200}},
		{Group, document.Dimension{Width: 280, Height: 200}, document.Dimension{Width: 320, Height: 320}},
	}
	for _, tt := range tests {
		if got := Flavor.MinSize(tt.t, snapgrid.Default); got != tt.min {
			t.Errorf("MinSize(%s) = %v, want %v", tt.t, got, tt.min)
		}
		if got := Flavor.DefaultSize(tt.t, snapgrid.Default); got != tt.deflt {
			t.Errorf("DefaultSize(%s) = %v, want %v", tt.t, got, tt.deflt)
		}
	}
}

func TestLayers(t *testing.T) {
	for _, nt := range Flavor.NodeTypes {
		Flavor.LayerOf(nt)
	}
	if Flavor.LayerOf(Group) != diagram.LayerGroups || Flavor.LayerOf(DecisionService) != diagram.LayerContainers {
		t.Error("container layers wrong")
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, errors.ErrCodeUnreachable) {
			t.Errorf("LayerOf(unknown) panic = %v, want UNREACHABLE error", r)
		}
	}()
	Flavor.LayerOf("lane")
}
