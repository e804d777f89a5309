// Package bpmn declares the process-model flavor: events, tasks,
// sub-processes, gateways, data objects and lanes of executable processes.
//
// Only elements under a process are drawable. Many element kinds collapse
// onto one node type: every task kind draws as [Task], every gateway kind as
// [Gateway], and boundary events as [IntermediateCatchEvent] attached to
// their host.
package bpmn

import (
	"slices"

	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/structure"
)

// Name is the flavor name documents declare.
const Name = "bpmn"

// Node types.
const (
	StartEvent             diagram.NodeType = "startEvent"
	IntermediateCatchEvent diagram.NodeType = "intermediateCatchEvent"
	IntermediateThrowEvent diagram.NodeType = "intermediateThrowEvent"
	EndEvent               diagram.NodeType = "endEvent"
	Task                   diagram.NodeType = "task"
	SubProcess             diagram.NodeType = "subProcess"
	Gateway                diagram.NodeType = "gateway"
	DataObject             diagram.NodeType = "dataObject"
	TextAnnotation         diagram.NodeType = "textAnnotation"
	Group                  diagram.NodeType = "group"
	Lane                   diagram.NodeType = "lane"
)

// Edge types.
const (
	SequenceFlow diagram.EdgeType = "sequenceFlow"
	Association  diagram.EdgeType = "association"
)

// flowTargets are the node types a sequence flow may enter.
var flowTargets = []diagram.NodeType{IntermediateCatchEvent, IntermediateThrowEvent, EndEvent, Task, SubProcess, Gateway}

// flowNodes are the node types that take part in sequence flows.
var flowNodes = []diagram.NodeType{StartEvent, IntermediateCatchEvent, IntermediateThrowEvent, EndEvent, Task, SubProcess, Gateway}

func buildStructure() *structure.Structure[diagram.NodeType, diagram.EdgeType] {
	b := structure.New[diagram.NodeType, diagram.EdgeType]()
	for _, n := range []diagram.NodeType{StartEvent, IntermediateCatchEvent, IntermediateThrowEvent, Task, SubProcess, Gateway} {
		b.Allow(n, SequenceFlow, flowTargets...)
		b.Allow(n, Association, TextAnnotation)
	}
	b.Allow(EndEvent, Association, TextAnnotation)
	b.Allow(DataObject, Association, TextAnnotation)
	b.Allow(TextAnnotation, Association, slices.Concat(flowNodes, []diagram.NodeType{DataObject})...)
	b.NoOutgoing(Group)
	b.NoOutgoing(Lane)
	return b.Build()
}

// Structure is the connection table.
var Structure = buildStructure()

// Containment lists what lanes and sub-processes may hold. Groups enclose
// by geometry only and are not containers.
var Containment = structure.NewContainment[diagram.NodeType]().
	Contain(Lane, slices.Concat(flowNodes, []diagram.NodeType{DataObject, TextAnnotation})...).
	Contain(SubProcess, slices.Concat(flowNodes, []diagram.NodeType{DataObject, TextAnnotation})...)

const pad = 2 * diagram.ContainerPadding

var minSizes = map[diagram.NodeType]document.Dimension{
	StartEvent:             {Width: 60, Height: 60},
	IntermediateCatchEvent: {Width: 60, Height: 60},
	IntermediateThrowEvent: {Width: 60, Height: 60},
	EndEvent:               {Width: 60, Height: 60},
	Gateway:                {Width: 60, Height: 60},
	Task:                   {Width: diagram.NodeMinWidth, Height: diagram.NodeMinHeight},
	SubProcess:             {Width: diagram.NodeMinWidth + pad, Height: diagram.NodeMinHeight + pad},
	Lane:                   {Width: 400, Height: 200},
	Group:                  {Width: diagram.NodeMinWidth + pad, Height: diagram.NodeMinHeight + pad},
	TextAnnotation:         {Width: 200, Height: 60},
	DataObject:             {Width: 60, Height: 80},
}

var defaultSizes = map[diagram.NodeType]document.Dimension{
	Task:       {Width: 160, Height: 80},
	SubProcess: {Width: 400, Height: 240},
}

func layerOf(t diagram.NodeType) diagram.Layer {
	switch t {
	case Group, Lane:
		return diagram.LayerGroups
	case SubProcess:
		return diagram.LayerContainers
	case StartEvent, IntermediateCatchEvent, IntermediateThrowEvent, EndEvent, Task, Gateway, DataObject, TextAnnotation:
		return diagram.LayerNodes
	default:
		errors.Unreachable("unknown bpmn node type: %s", t)
		return 0
	}
}

func tags[T any](t T, kinds ...string) map[string]T {
	m := make(map[string]T, len(kinds))
	for _, k := range kinds {
		m[k] = t
	}
	return m
}

func merge[T any](ms ...map[string]T) map[string]T {
	out := make(map[string]T)
	for _, m := range ms {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// Flavor is the process-model flavor.
var Flavor = &diagram.Flavor{
	Name: Name,
	NodeTypes: []diagram.NodeType{
		StartEvent, IntermediateCatchEvent, IntermediateThrowEvent, EndEvent,
		Task, SubProcess, Gateway, DataObject, TextAnnotation, Group, Lane,
	},
	EdgeTypes:   []diagram.EdgeType{SequenceFlow, Association},
	Structure:   Structure,
	Containment: Containment,
	NodeTags: merge(
		tags(StartEvent, "startEvent"),
		tags(IntermediateCatchEvent, "intermediateCatchEvent", "boundaryEvent"),
		tags(IntermediateThrowEvent, "intermediateThrowEvent"),
		tags(EndEvent, "endEvent"),
		tags(Task, "task", "userTask", "scriptTask", "serviceTask", "businessRuleTask", "callActivity",
			"sendTask", "receiveTask", "manualTask"),
		tags(SubProcess, "subProcess", "adHocSubProcess", "transaction"),
		tags(Gateway, "exclusiveGateway", "inclusiveGateway", "parallelGateway", "eventBasedGateway", "complexGateway"),
		tags(DataObject, "dataObject", "dataObjectReference"),
		tags(TextAnnotation, "textAnnotation"),
		tags(Group, "group"),
		tags(Lane, "lane"),
	),
	EdgeTags: map[string]diagram.EdgeType{
		"sequenceFlow": SequenceFlow,
		"association":  Association,
	},
	NewNodeKinds: map[diagram.NodeType]string{Gateway: "exclusiveGateway"},
	RootKinds:    []string{"process"},
	MinSizes:     minSizes,
	DefaultSizes: defaultSizes,
	LayerOf:      layerOf,
	PaintOrder: map[diagram.NodeType]int{
		Group:      0,
		Lane:       1,
		SubProcess: 2,
	},
}
