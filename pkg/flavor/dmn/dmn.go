// Package dmn declares the decision-model flavor: decision requirement
// diagrams with decisions, input data, knowledge models, knowledge sources
// and decision services.
package dmn

import (
	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/structure"
)

// Name is the flavor name documents declare.
const Name = "dmn"

// Node types.
const (
	InputData       diagram.NodeType = "inputData"
	Decision        diagram.NodeType = "decision"
	BKM             diagram.NodeType = "bkm"
	DecisionService diagram.NodeType = "decisionService"
	KnowledgeSource diagram.NodeType = "knowledgeSource"
	TextAnnotation  diagram.NodeType = "textAnnotation"
	Group           diagram.NodeType = "group"
)

// Edge types.
const (
	InformationRequirement diagram.EdgeType = "informationRequirement"
	KnowledgeRequirement   diagram.EdgeType = "knowledgeRequirement"
	AuthorityRequirement   diagram.EdgeType = "authorityRequirement"
	Association            diagram.EdgeType = "association"
)

// Structure is the connection table. Declaration order decides the default
// edge type between two nodes.
var Structure = structure.New[diagram.NodeType, diagram.EdgeType]().
	Allow(InputData, InformationRequirement, Decision).
	Allow(InputData, AuthorityRequirement, KnowledgeSource).
	Allow(InputData, Association, TextAnnotation).
	Allow(Decision, InformationRequirement, Decision).
	Allow(Decision, AuthorityRequirement, KnowledgeSource).
	Allow(Decision, Association, TextAnnotation).
	Allow(BKM, KnowledgeRequirement, Decision, BKM).
	Allow(BKM, Association, TextAnnotation).
	Allow(DecisionService, KnowledgeRequirement, Decision, BKM).
	Allow(DecisionService, Association, TextAnnotation).
	Allow(KnowledgeSource, AuthorityRequirement, Decision, BKM, KnowledgeSource).
	Allow(TextAnnotation, Association, InputData, Decision, BKM, DecisionService, KnowledgeSource).
	NoOutgoing(Group).
	Build()

// Containment lists what decision services and groups may hold.
var Containment = structure.NewContainment[diagram.NodeType]().
	Contain(DecisionService, Decision).
	Contain(Group, InputData, BKM, Decision, KnowledgeSource, TextAnnotation)

const pad = 2 * diagram.ContainerPadding

var minSizes = map[diagram.NodeType]document.Dimension{
	InputData:       {Width: diagram.NodeMinWidth, Height: diagram.NodeMinHeight},
	Decision:        {Width: diagram.NodeMinWidth, Height: diagram.NodeMinHeight},
	BKM:             {Width: diagram.NodeMinWidth, Height: diagram.NodeMinHeight},
	KnowledgeSource: {Width: diagram.NodeMinWidth, Height: diagram.NodeMinHeight},
	DecisionService: {Width: diagram.NodeMinWidth + pad, Height: 2*diagram.NodeMinHeight + pad},
	TextAnnotation:  {Width: 200, Height: 200},
	Group:           {Width: diagram.NodeMinWidth + pad, Height: diagram.NodeMinHeight + pad},
}

var defaultSizes = map[diagram.NodeType]document.Dimension{
	InputData:       {Width: diagram.NodeMinWidth, Height: diagram.NodeMinHeight},
	Decision:        {Width: diagram.NodeMinWidth, Height: diagram.NodeMinHeight},
	BKM:             {Width: diagram.NodeMinWidth, Height: diagram.NodeMinHeight},
	KnowledgeSource: {Width: diagram.NodeMinWidth, Height: diagram.NodeMinHeight},
	DecisionService: {Width: 320, Height: 320},
	TextAnnotation:  {Width: 200, Height: 200},
	Group:           {Width: 320, Height: 320},
}

func layerOf(t diagram.NodeType) diagram.Layer {
	switch t {
	case Group:
		return diagram.LayerGroups
	case DecisionService:
		return diagram.LayerContainers
	case InputData, Decision, BKM, KnowledgeSource, TextAnnotation:
		return diagram.LayerNodes
	default:
		errors.Unreachable("unknown dmn node type: %s", t)
		return 0
	}
}

// Flavor is the decision-model flavor.
var Flavor = &diagram.Flavor{
	Name:        Name,
	NodeTypes:   []diagram.NodeType{InputData, Decision, BKM, DecisionService, KnowledgeSource, TextAnnotation, Group},
	EdgeTypes:   []diagram.EdgeType{InformationRequirement, KnowledgeRequirement, AuthorityRequirement, Association},
	Structure:   Structure,
	Containment: Containment,
	NodeTags: map[string]diagram.NodeType{
		"inputData":              InputData,
		"decision":               Decision,
		"businessKnowledgeModel": BKM,
		"decisionService":        DecisionService,
		"knowledgeSource":        KnowledgeSource,
		"textAnnotation":         TextAnnotation,
		"group":                  Group,
	},
	EdgeTags: map[string]diagram.EdgeType{
		"informationRequirement": InformationRequirement,
		"knowledgeRequirement":   KnowledgeRequirement,
		"authorityRequirement":   AuthorityRequirement,
		"association":            Association,
	},
	NewNodeKinds:   map[diagram.NodeType]string{BKM: "businessKnowledgeModel"},
	OwnedEdgeTypes: []diagram.EdgeType{InformationRequirement, KnowledgeRequirement, AuthorityRequirement},
	MinSizes:       minSizes,
	DefaultSizes:   defaultSizes,
	CollapsedSizes: map[diagram.NodeType]document.Dimension{
		DecisionService: {Width: 300, Height: 100},
	},
	DividerType: DecisionService,
	LayerOf:     layerOf,
	PaintOrder: map[diagram.NodeType]int{
		Group:           0,
		DecisionService: 2,
	},
}
