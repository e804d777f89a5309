// Package graph is the wire format of render graphs.
//
// A [Graph] is a JSON snapshot of a diagram.Data: nodes in paint order, edges
// in page order, the adjacency list and the selection. It is what the CLI
// prints and what the HTTP API returns to rendering layers.
//
// Snapshots are deterministic. Maps and sets of the render graph become
// slices sorted by id, so compiling equal documents yields byte-identical
// output:
//
//	{
//	  "flavor": "dmn",
//	  "page": 0,
//	  "nodes": [{"id": "d1", "type": "decision", "layer": "nodes", ...}],
//	  "edges": [{"id": "r1", "type": "informationRequirement", "source": "i1", "target": "d1", ...}],
//	  "adjacency": [{"target": "d1", "sources": ["i1"]}],
//	  "selection": {"nodes": ["d1"]}
//	}
//
// Use [FromData] to build a snapshot and [Marshal], [Write] or [WriteFile]
// to encode one. [Read] and [ReadFile] decode snapshots for tools that only
// consume them; they do not rebuild a diagram.Data.
package graph
