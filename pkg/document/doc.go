// Package document models the persisted decision-model and process-model
// documents the diagram engine reads and edits.
//
// # Overview
//
// A [Document] has two parallel parts joined by id:
//
//   - the semantic tree ([Element]): decisions, tasks, lanes, flows, ...
//   - one or more diagram pages ([Diagram]) holding [Shape] and [Edge] records
//     with bounds and waypoints
//
// Shapes are the only part of a document the engine mutates. The semantic tree
// is read-only from the engine's point of view.
//
// # JSON Format
//
// The package stands in for the XML marshalling layer with a JSON interchange:
//
//	{
//	  "flavor": "dmn",
//	  "elements": [
//	    {"id": "d1", "kind": "decision"},
//	    {"id": "i1", "kind": "inputData"},
//	    {"id": "d2", "kind": "decision",
//	     "requirements": [{"id": "r1", "kind": "informationRequirement", "href": "#i1"}]}
//	  ],
//	  "diagrams": [{
//	    "elements": [
//	      {"type": "shape", "elementRef": "d1", "bounds": {"x": 0, "y": 0, "width": 160, "height": 80}},
//	      {"type": "edge", "elementRef": "r1", "waypoints": [{"x": 80, "y": 80}, {"x": 80, "y": 200}]}
//	    ]
//	  }]
//	}
//
// Diagram elements carry a "type" discriminant; everything else is optional.
//
// # Copy-on-write
//
// Render graphs are memoized by document identity. Edit a [Document.Clone]
// and swap pointers instead of editing a document that has been compiled.
package document
