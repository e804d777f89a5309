package document

import "slices"

// Clone returns a deep copy of the document. Edits applied to the copy never
// reach the original, which is what lets identity-keyed caches notice changes.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Flavor:    d.Flavor,
		Namespace: d.Namespace,
		Elements:  cloneElements(d.Elements),
	}
	if d.Includes != nil {
		out.Includes = make([]Include, len(d.Includes))
		for i, inc := range d.Includes {
			out.Includes[i] = Include{Name: inc.Name, Namespace: inc.Namespace, Elements: cloneElements(inc.Elements)}
		}
	}
	if d.Diagrams != nil {
		out.Diagrams = make([]Diagram, len(d.Diagrams))
		for i, dg := range d.Diagrams {
			out.Diagrams[i] = dg.clone()
		}
	}
	return out
}

func cloneElements(in []Element) []Element {
	if in == nil {
		return nil
	}
	out := make([]Element, len(in))
	for i, e := range in {
		e.Requirements = slices.Clone(e.Requirements)
		e.OutputDecisions = slices.Clone(e.OutputDecisions)
		e.EncapsulatedDecisions = slices.Clone(e.EncapsulatedDecisions)
		e.FlowNodeRefs = slices.Clone(e.FlowNodeRefs)
		e.Lanes = cloneElements(e.Lanes)
		e.Children = cloneElements(e.Children)
		out[i] = e
	}
	return out
}

func (dg Diagram) clone() Diagram {
	out := Diagram{ID: dg.ID, Name: dg.Name}
	if dg.Elements == nil {
		return out
	}
	out.Elements = make([]DiagramElement, len(dg.Elements))
	for i, el := range dg.Elements {
		switch v := el.(type) {
		case *Shape:
			s := *v
			if v.Bounds != nil {
				b := *v.Bounds
				s.Bounds = &b
			}
			if v.DividerLine != nil {
				s.DividerLine = &DividerLine{Waypoints: slices.Clone(v.DividerLine.Waypoints)}
			}
			out.Elements[i] = &s
		case *Edge:
			e := *v
			e.Waypoints = slices.Clone(v.Waypoints)
			out.Elements[i] = &e
		default:
			out.Elements[i] = el
		}
	}
	return out
}
