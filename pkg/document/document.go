package document

import (
	"strings"
)

// Document is a parsed decision-model or process-model document.
//
// Elements is the arena of truth: the semantic tree with stable ids. Diagrams
// holds one or more pages of shapes that refer to elements by id. Elements
// never point back at shapes, so the semantic tree stays independent of any
// single page.
//
// The engine treats a Document as immutable input to compilation: callers that
// edit it must do so on a copy (see [Document.Clone]) and replace the pointer,
// otherwise memoized render graphs keep serving the old state.
type Document struct {
	Flavor    string    `json:"flavor"`
	Namespace string    `json:"namespace,omitempty"`
	Elements  []Element `json:"elements"`
	Includes  []Include `json:"includes,omitempty"`
	Diagrams  []Diagram `json:"diagrams"`
}

// Include is an external model whose elements may be drawn on this
// document's diagrams. Shapes address them as "<name>:<id>".
type Include struct {
	Name      string    `json:"name"`
	Namespace string    `json:"namespace,omitempty"`
	Elements  []Element `json:"elements"`
}

// Element is a typed node of the semantic tree. Kind is the discriminant tag
// ("decision", "task", "sequenceFlow", ...). Only the fields relevant to a
// given kind are populated.
type Element struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`

	// Edge-like elements.
	SourceRef string `json:"sourceRef,omitempty"`
	TargetRef string `json:"targetRef,omitempty"`

	// Requirements are edge-like records owned by their target element
	// (information, knowledge and authority requirements).
	Requirements []Requirement `json:"requirements,omitempty"`

	// Decision services.
	OutputDecisions       []Href `json:"outputDecisions,omitempty"`
	EncapsulatedDecisions []Href `json:"encapsulatedDecisions,omitempty"`

	// Lanes.
	FlowNodeRefs []string `json:"flowNodeRefs,omitempty"`

	// Boundary events.
	AttachedToRef string `json:"attachedToRef,omitempty"`

	// Process lane sets (flattened) and nested flow elements of processes
	// and sub-processes.
	Lanes    []Element `json:"lanes,omitempty"`
	Children []Element `json:"children,omitempty"`
}

// Requirement is an edge owned by the element it points at.
type Requirement struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Href Href   `json:"href"`
}

// ContainedIDs returns the ids of the elements structurally contained by e:
// decision-service output and encapsulated decisions, lane flow node
// references and sub-process children. Groups contain by geometry only, so
// they report nothing.
func (e *Element) ContainedIDs() []string {
	var ids []string
	for _, h := range e.OutputDecisions {
		ids = append(ids, h.ID())
	}
	for _, h := range e.EncapsulatedDecisions {
		ids = append(ids, h.ID())
	}
	ids = append(ids, e.FlowNodeRefs...)
	for i := range e.Children {
		ids = append(ids, e.Children[i].ID)
	}
	return ids
}

// Href is a reference to an element id, optionally qualified by a namespace:
// "#id" for local elements and "namespace#id" for included ones.
type Href string

// ID returns the referenced element id without the namespace part.
func (h Href) ID() string {
	s := string(h)
	if i := strings.LastIndexByte(s, '#'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Namespace returns the namespace part of the reference, empty for local ones.
func (h Href) Namespace() string {
	s := string(h)
	if i := strings.LastIndexByte(s, '#'); i >= 0 {
		return s[:i]
	}
	return ""
}

// LocalHref builds a reference to a local element.
func LocalHref(id string) Href { return Href("#" + id) }

// QualifiedID joins an include name and an element id the way shapes refer to
// elements of included models.
func QualifiedID(include, id string) string {
	if include == "" {
		return id
	}
	return include + ":" + id
}

// IncludeOf returns the name of the include a qualified ref points into, or
// "" for refs to local elements.
func (d *Document) IncludeOf(ref string) string {
	for i := range d.Includes {
		if name := d.Includes[i].Name; name != "" && strings.HasPrefix(ref, name+":") {
			return name
		}
	}
	return ""
}

// ResolveHref returns the ref shapes use for the element h points at, where h
// was found on an element of include ("" for local elements). Namespace-less
// hrefs stay inside the include they were found in.
func (d *Document) ResolveHref(h Href, include string) string {
	if h == "" {
		return ""
	}
	switch ns := h.Namespace(); {
	case ns == "":
		return QualifiedID(include, h.ID())
	case ns == d.Namespace:
		return h.ID()
	}
	for _, inc := range d.Includes {
		if inc.Namespace == h.Namespace() {
			return QualifiedID(inc.Name, h.ID())
		}
	}
	return string(h)
}

// Walk calls fn for every element in the tree in document order, descending
// into lanes and children. Returning false from fn skips the element's subtree.
func Walk(elements []Element, fn func(e *Element) bool) {
	for i := range elements {
		e := &elements[i]
		if !fn(e) {
			continue
		}
		Walk(e.Lanes, fn)
		Walk(e.Children, fn)
	}
}
