// Package diagram derives render graphs from documents and answers the type
// questions editors ask while a user drags things around.
//
// # Flavors
//
// A [Flavor] bundles everything that differs between editor kinds: the closed
// set of node and edge types, the element tags that map onto them, the
// connection and containment tables, minimum and default sizes, and paint
// order. Flavors are built once at package initialization (see the flavor/dmn
// and flavor/bpmn packages) and never mutated.
//
// # Compilation
//
// [Compile] turns one page of a document, the current interaction
// [status.Status] and the snap grid into a [Data] render graph:
//
//	data := diagram.Compile(dmn.Flavor, doc, st, snapgrid.Default, 0, logger)
//	for _, n := range data.Nodes {
//	    fmt.Println(n.ID, n.Type, n.Position, n.Dimension)
//	}
//
// Compilation never fails on malformed documents. Shapes that point at
// unknown elements, edges whose endpoints are not drawn on the page and
// duplicate shapes are logged and left out.
//
// [Compiler] memoizes [Compile] on the identity of its inputs. Callers must
// pass a new document, status or grid pointer after every change; editing a
// compiled document in place serves stale render graphs.
//
// # Connections
//
// [Flavor.IsValidConnection] and [Flavor.DefaultEdgeTypeBetween] answer
// drag-to-connect questions. A rejected connection is a plain false, never an
// error.
package diagram
