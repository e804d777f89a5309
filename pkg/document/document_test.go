package document

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	mgerrors "github.com/matzehuels/modelgraph/pkg/errors"
)

const sampleJSON = `{
  "flavor": "dmn",
  "elements": [
    {"id": "d1", "kind": "decision",
     "requirements": [{"id": "r1", "kind": "informationRequirement", "href": "#i1"}]},
    {"id": "i1", "kind": "inputData"},
    {"id": "ds", "kind": "decisionService",
     "outputDecisions": ["#d1"], "encapsulatedDecisions": ["#d2"]}
  ],
  "includes": [{"name": "lib", "elements": [{"id": "x", "kind": "decision"}]}],
  "diagrams": [{
    "name": "main",
    "elements": [
      {"type": "shape", "elementRef": "d1", "bounds": {"x": 0, "y": 0, "width": 160, "height": 80}},
      {"type": "edge", "elementRef": "r1", "waypoints": [{"x": 80, "y": 200}, {"x": 80, "y": 80}]},
      {"type": "shape", "elementRef": "lib:x", "bounds": {"x": 300, "y": 0, "width": 160, "height": 80}}
    ]
  }]
}`

func TestReadJSON(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if doc.Flavor != "dmn" {
		t.Errorf("Flavor = %q, want dmn", doc.Flavor)
	}
	if len(doc.Diagrams) != 1 || len(doc.Diagrams[0].Elements) != 3 {
		t.Fatalf("diagram elements = %d, want 3", len(doc.Diagrams[0].Elements))
	}
	if _, ok := doc.Diagrams[0].Elements[0].(*Shape); !ok {
		t.Errorf("element 0 = %T, want *Shape", doc.Diagrams[0].Elements[0])
	}
	e, ok := doc.Diagrams[0].Elements[1].(*Edge)
	if !ok {
		t.Fatalf("element 1 = %T, want *Edge", doc.Diagrams[0].Elements[1])
	}
	if len(e.Waypoints) != 2 || e.Waypoints[1].Y != 80 {
		t.Errorf("waypoints = %v", e.Waypoints)
	}

	var buf bytes.Buffer
	if err := WriteJSON(doc, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	again, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON(WriteJSON): %v", err)
	}
	if got := again.Diagrams[0].Elements[2].Ref(); got != "lib:x" {
		t.Errorf("round-trip ref = %q, want lib:x", got)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  mgerrors.Code
	}{
		{"malformed", `{`, mgerrors.ErrCodeInvalidDocument},
		{"missing flavor", `{"elements": []}`, mgerrors.ErrCodeInvalidFlavor},
		{"empty id", `{"flavor": "dmn", "elements": [{"kind": "decision"}]}`, mgerrors.ErrCodeInvalidDocument},
		{"nested empty id", `{"flavor": "bpmn", "elements": [{"id": "p", "kind": "process", "children": [{"id": "", "kind": "task"}]}]}`, mgerrors.ErrCodeInvalidDocument},
		{"unknown diagram element", `{"flavor": "dmn", "diagrams": [{"elements": [{"type": "label"}]}]}`, mgerrors.ErrCodeInvalidDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !mgerrors.Is(err, tt.code) {
				t.Errorf("ReadJSON error = %v, want code %v", err, tt.code)
			}
		})
	}

	_, err := ReadJSON(strings.NewReader(`{"flavor": "dmn", "diagrams": [{"elements": [{"type": "label"}]}]}`))
	if !errors.Is(err, ErrUnknownDiagramElement) {
		t.Errorf("errors.Is(err, ErrUnknownDiagramElement) = false for %v", err)
	}
}

func TestValidateReportsFirstInvalidElement(t *testing.T) {
	doc := &Document{Flavor: "dmn", Elements: []Element{
		{ID: "d1", Kind: "decision"},
		{Kind: "inputData"},
		{ID: "bad id!", Kind: "knowledgeSource"},
	}}
	err := doc.Validate()
	if !mgerrors.Is(err, mgerrors.ErrCodeInvalidDocument) {
		t.Fatalf("Validate error = %v, want INVALID_DOCUMENT", err)
	}
	if !strings.Contains(err.Error(), `"inputData"`) {
		t.Errorf("Validate error = %v, want the inputData element", err)
	}
	if err := (&Document{Flavor: "dmn"}).Validate(); err != nil {
		t.Errorf("Validate(empty) = %v", err)
	}
}

func TestHref(t *testing.T) {
	tests := []struct {
		href   Href
		id, ns string
	}{
		{"#d1", "d1", ""},
		{"https://example.com/model#d1", "d1", "https://example.com/model"},
		{"d1", "d1", ""},
		{LocalHref("abc"), "abc", ""},
	}
	for _, tt := range tests {
		if got := tt.href.ID(); got != tt.id {
			t.Errorf("Href(%q).ID() = %q, want %q", tt.href, got, tt.id)
		}
		if got := tt.href.Namespace(); got != tt.ns {
			t.Errorf("Href(%q).Namespace() = %q, want %q", tt.href, got, tt.ns)
		}
	}
}

func TestResolveHref(t *testing.T) {
	doc := &Document{
		Namespace: "https://example.com/main",
		Includes: []Include{
			{Name: "inc", Namespace: "https://example.com/inc"},
			{Name: "other", Namespace: "https://example.com/other"},
		},
	}
	tests := []struct {
		href    Href
		include string
		want    string
	}{
		{"#d1", "", "d1"},
		{"#d1", "inc", "inc:d1"},
		{"https://example.com/main#d1", "inc", "d1"},
		{"https://example.com/other#d1", "", "other:d1"},
		{"https://example.com/unknown#d1", "", "https://example.com/unknown#d1"},
		{"", "inc", ""},
	}
	for _, tt := range tests {
		if got := doc.ResolveHref(tt.href, tt.include); got != tt.want {
			t.Errorf("ResolveHref(%q, %q) = %q, want %q", tt.href, tt.include, got, tt.want)
		}
	}

	for ref, want := range map[string]string{"inc:ds": "inc", "ds": "", "other:x": "other", "incx:ds": ""} {
		if got := doc.IncludeOf(ref); got != want {
			t.Errorf("IncludeOf(%q) = %q, want %q", ref, got, want)
		}
	}
}

func TestContainedIDs(t *testing.T) {
	ds := Element{ID: "ds", Kind: "decisionService", OutputDecisions: []Href{"#a"}, EncapsulatedDecisions: []Href{"#b", "#c"}}
	if got := strings.Join(ds.ContainedIDs(), ","); got != "a,b,c" {
		t.Errorf("decision service ContainedIDs = %s, want a,b,c", got)
	}
	lane := Element{ID: "l", Kind: "lane", FlowNodeRefs: []string{"t1", "t2"}}
	if got := strings.Join(lane.ContainedIDs(), ","); got != "t1,t2" {
		t.Errorf("lane ContainedIDs = %s, want t1,t2", got)
	}
	sp := Element{ID: "sp", Kind: "subProcess", Children: []Element{{ID: "x", Kind: "task"}}}
	if got := strings.Join(sp.ContainedIDs(), ","); got != "x" {
		t.Errorf("sub-process ContainedIDs = %s, want x", got)
	}
	group := Element{ID: "g", Kind: "group"}
	if got := group.ContainedIDs(); len(got) != 0 {
		t.Errorf("group ContainedIDs = %v, want none", got)
	}
}

func TestWalkOrder(t *testing.T) {
	elements := []Element{
		{ID: "p", Kind: "process",
			Lanes:    []Element{{ID: "l1", Kind: "lane", Lanes: []Element{{ID: "l1a", Kind: "lane"}}}},
			Children: []Element{{ID: "sp", Kind: "subProcess", Children: []Element{{ID: "t", Kind: "task"}}}}},
		{ID: "q", Kind: "process"},
	}
	var ids []string
	Walk(elements, func(e *Element) bool {
		ids = append(ids, e.ID)
		return e.ID != "sp"
	})
	if got := strings.Join(ids, ","); got != "p,l1,l1a,sp,q" {
		t.Errorf("Walk order = %s, want p,l1,l1a,sp,q", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	c := doc.Clone()

	c.Diagrams[0].Elements[0].(*Shape).Bounds.Width = 999
	c.Diagrams[0].Elements[1].(*Edge).Waypoints[0].X = -1
	c.Elements[2].OutputDecisions[0] = "#changed"
	c.Includes[0].Elements[0].ID = "y"

	if w := doc.Diagrams[0].Elements[0].(*Shape).Bounds.Width; w != 160 {
		t.Errorf("original width = %v, want 160", w)
	}
	if x := doc.Diagrams[0].Elements[1].(*Edge).Waypoints[0].X; x != 80 {
		t.Errorf("original waypoint x = %v, want 80", x)
	}
	if h := doc.Elements[2].OutputDecisions[0]; h != "#d1" {
		t.Errorf("original output decision = %v, want #d1", h)
	}
	if id := doc.Includes[0].Elements[0].ID; id != "x" {
		t.Errorf("original include element = %v, want x", id)
	}
	if (*Document)(nil).Clone() != nil {
		t.Error("nil Clone() != nil")
	}
}

func TestIndex(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	idx := NewIndex(doc, 0)
	if _, ok := idx.ElementsByID["lib:x"]; !ok {
		t.Error("included element not indexed under lib:x")
	}
	if s, ok := idx.ShapesByRef["lib:x"]; !ok || s.Index != 2 {
		t.Errorf("ShapesByRef[lib:x] = %+v, %v; want index 2", s, ok)
	}
	if _, ok := idx.ShapesByRef["r1"]; ok {
		t.Error("edges must not be indexed as shapes")
	}
	if empty := NewIndex(doc, 5); len(empty.ShapesByRef) != 0 {
		t.Errorf("out-of-range page indexed %d shapes", len(empty.ShapesByRef))
	}

	dg, err := doc.Page(0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dg.ShapeAt(1); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("ShapeAt(edge) error = %v, want ErrUnknownShape", err)
	}
	if _, err := dg.EdgeAt(0); !errors.Is(err, ErrUnknownEdge) {
		t.Errorf("EdgeAt(shape) error = %v, want ErrUnknownEdge", err)
	}
	if _, err := dg.EdgeAt(9); !errors.Is(err, ErrUnknownEdge) {
		t.Errorf("EdgeAt(9) error = %v, want ErrUnknownEdge", err)
	}
	if _, err := doc.Page(1); !errors.Is(err, ErrUnknownPage) {
		t.Errorf("Page(1) error = %v, want ErrUnknownPage", err)
	}
	if e, ok := doc.FindElement("i1"); !ok || e.Kind != "inputData" {
		t.Errorf("FindElement(i1) = %v, %v", e, ok)
	}
}
