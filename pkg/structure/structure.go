// Package structure declares which edges may connect which node types, and
// which node types may contain which others.
//
// A [Structure] is an ordered table: for every source node type it lists edge
// types, and for every edge type the node types it may reach. Order matters:
// when several edge types connect the same pair, [Structure.DefaultEdgeTypeBetween]
// returns the one declared first.
//
// Tables are built once with a [Builder] and never mutated afterwards, so a
// built table is safe for concurrent use.
package structure

import (
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Rule is one edge type allowed out of a source node type, with its targets
// in declaration order.
type Rule[N, E comparable] struct {
	Edge    E
	Targets []N
}

// Entry is the full outgoing declaration of one source node type.
type Entry[N, E comparable] struct {
	Source N
	Rules  []Rule[N, E]
}

type triple[N, E comparable] struct {
	src  N
	edge E
	tgt  N
}

// Structure is an immutable connection table.
type Structure[N, E comparable] struct {
	entries []Entry[N, E]
	bySrc   map[N]int
	valid   sets.Set[triple[N, E]]
}

// Builder accumulates declarations for a [Structure].
type Builder[N, E comparable] struct {
	entries []Entry[N, E]
	bySrc   map[N]int
}

// New returns an empty builder.
func New[N, E comparable]() *Builder[N, E] {
	return &Builder[N, E]{bySrc: make(map[N]int)}
}

func (b *Builder[N, E]) entry(src N) *Entry[N, E] {
	i, ok := b.bySrc[src]
	if !ok {
		i = len(b.entries)
		b.bySrc[src] = i
		b.entries = append(b.entries, Entry[N, E]{Source: src})
	}
	return &b.entries[i]
}

// Allow declares that edges of type edge may go from src to each of targets.
// Repeated calls for the same (src, edge) append targets to the existing rule
// without changing its position.
func (b *Builder[N, E]) Allow(src N, edge E, targets ...N) *Builder[N, E] {
	e := b.entry(src)
	for i := range e.Rules {
		if e.Rules[i].Edge == edge {
			for _, t := range targets {
				if !slices.Contains(e.Rules[i].Targets, t) {
					e.Rules[i].Targets = append(e.Rules[i].Targets, t)
				}
			}
			return b
		}
	}
	var uniq []N
	for _, t := range targets {
		if !slices.Contains(uniq, t) {
			uniq = append(uniq, t)
		}
	}
	e.Rules = append(e.Rules, Rule[N, E]{Edge: edge, Targets: uniq})
	return b
}

// NoOutgoing registers src as a known node type without outgoing edges.
func (b *Builder[N, E]) NoOutgoing(src N) *Builder[N, E] {
	b.entry(src)
	return b
}

// Build freezes the declarations. The builder must not be reused.
func (b *Builder[N, E]) Build() *Structure[N, E] {
	s := &Structure[N, E]{
		entries: b.entries,
		bySrc:   b.bySrc,
		valid:   sets.New[triple[N, E]](),
	}
	for _, e := range s.entries {
		for _, r := range e.Rules {
			for _, t := range r.Targets {
				s.valid.Insert(triple[N, E]{src: e.Source, edge: r.Edge, tgt: t})
			}
		}
	}
	b.entries, b.bySrc = nil, nil
	return s
}

// IsValid reports whether an edge of type edge may go from src to tgt.
// Unknown node or edge types are never valid.
func (s *Structure[N, E]) IsValid(src N, edge E, tgt N) bool {
	return s.valid.Has(triple[N, E]{src: src, edge: edge, tgt: tgt})
}

// EdgeTypesBetween returns every edge type that may connect src to tgt, in
// declaration order.
func (s *Structure[N, E]) EdgeTypesBetween(src, tgt N) []E {
	i, ok := s.bySrc[src]
	if !ok {
		return nil
	}
	var out []E
	for _, r := range s.entries[i].Rules {
		if slices.Contains(r.Targets, tgt) {
			out = append(out, r.Edge)
		}
	}
	return out
}

// DefaultEdgeTypeBetween returns the first declared edge type connecting src
// to tgt. ambiguous is true when more than one edge type qualifies.
func (s *Structure[N, E]) DefaultEdgeTypeBetween(src, tgt N) (edge E, ok, ambiguous bool) {
	types := s.EdgeTypesBetween(src, tgt)
	if len(types) == 0 {
		return edge, false, false
	}
	return types[0], true, len(types) > 1
}

// OutgoingEdgeTypes returns the edge types declared for src.
func (s *Structure[N, E]) OutgoingEdgeTypes(src N) []E {
	i, ok := s.bySrc[src]
	if !ok {
		return nil
	}
	out := make([]E, 0, len(s.entries[i].Rules))
	for _, r := range s.entries[i].Rules {
		out = append(out, r.Edge)
	}
	return out
}

// OutgoingNodeTypes returns every node type reachable from src by any edge
// type, each listed once, in declaration order.
func (s *Structure[N, E]) OutgoingNodeTypes(src N) []N {
	i, ok := s.bySrc[src]
	if !ok {
		return nil
	}
	var out []N
	for _, r := range s.entries[i].Rules {
		for _, t := range r.Targets {
			if !slices.Contains(out, t) {
				out = append(out, t)
			}
		}
	}
	return out
}

// Sources returns every declared source node type in declaration order.
func (s *Structure[N, E]) Sources() []N {
	out := make([]N, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Source
	}
	return out
}

// Entries returns a copy of the table.
func (s *Structure[N, E]) Entries() []Entry[N, E] {
	out := make([]Entry[N, E], len(s.entries))
	for i, e := range s.entries {
		rules := make([]Rule[N, E], len(e.Rules))
		for j, r := range e.Rules {
			rules[j] = Rule[N, E]{Edge: r.Edge, Targets: slices.Clone(r.Targets)}
		}
		out[i] = Entry[N, E]{Source: e.Source, Rules: rules}
	}
	return out
}
