package diagram

import "github.com/matzehuels/modelgraph/pkg/document"

// Description is a serializable view of a flavor's rules.
type Description struct {
	Name        string                  `json:"name"`
	NodeTypes   []NodeTypeInfo          `json:"nodeTypes"`
	EdgeTypes   []EdgeType              `json:"edgeTypes"`
	Connections []ConnectionRule        `json:"connections"`
	Containment map[NodeType][]NodeType `json:"containment"`
	DividerType NodeType                `json:"dividerType,omitempty"`
}

// NodeTypeInfo describes one node type.
type NodeTypeInfo struct {
	Type        NodeType           `json:"type"`
	Layer       string             `json:"layer"`
	MinSize     document.Dimension `json:"minSize"`
	DefaultSize document.Dimension `json:"defaultSize"`
}

// ConnectionRule allows Edge from Source to each of Targets.
type ConnectionRule struct {
	Source  NodeType   `json:"source"`
	Edge    EdgeType   `json:"edge"`
	Targets []NodeType `json:"targets"`
}

// Describe returns the flavor's types, connection table and containment
// rules, with sizes unsnapped.
func (f *Flavor) Describe() Description {
	d := Description{
		Name:        f.Name,
		EdgeTypes:   append([]EdgeType(nil), f.EdgeTypes...),
		Containment: make(map[NodeType][]NodeType),
		DividerType: f.DividerType,
	}
	for _, t := range f.NodeTypes {
		minSize, ok := f.MinSizes[t]
		if !ok {
			minSize = document.Dimension{Width: NodeMinWidth, Height: NodeMinHeight}
		}
		defSize, ok := f.DefaultSizes[t]
		if !ok {
			defSize = minSize
		}
		d.NodeTypes = append(d.NodeTypes, NodeTypeInfo{
			Type:        t,
			Layer:       f.LayerOf(t).String(),
			MinSize:     minSize,
			DefaultSize: defSize,
		})
	}
	for _, e := range f.Structure.Entries() {
		for _, r := range e.Rules {
			d.Connections = append(d.Connections, ConnectionRule{
				Source:  e.Source,
				Edge:    r.Edge,
				Targets: append([]NodeType(nil), r.Targets...),
			})
		}
	}
	for _, c := range f.Containment.Containers() {
		d.Containment[c] = f.Containment.Children(c)
	}
	return d
}
