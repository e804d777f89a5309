package structure

import (
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Containment maps container node types to the node types they may hold.
// Groups that only enclose by geometry are declared here too; whether a
// container owns its children semantically is the flavor's concern.
type Containment[N comparable] struct {
	order    []N
	children map[N][]N
	index    map[N]sets.Set[N]
}

// NewContainment returns an empty containment table.
func NewContainment[N comparable]() *Containment[N] {
	return &Containment[N]{
		children: make(map[N][]N),
		index:    make(map[N]sets.Set[N]),
	}
}

// Contain declares that container may hold each of children. It is meant for
// package initialization only.
func (c *Containment[N]) Contain(container N, children ...N) *Containment[N] {
	if _, ok := c.index[container]; !ok {
		c.order = append(c.order, container)
		c.index[container] = sets.New[N]()
	}
	for _, ch := range children {
		if c.index[container].Has(ch) {
			continue
		}
		c.index[container].Insert(ch)
		c.children[container] = append(c.children[container], ch)
	}
	return c
}

// MayContain reports whether container may hold child.
func (c *Containment[N]) MayContain(container, child N) bool {
	return c.index[container].Has(child)
}

// IsContainer reports whether n is declared as a container.
func (c *Containment[N]) IsContainer(n N) bool {
	_, ok := c.index[n]
	return ok
}

// Children returns the node types container may hold, in declaration order.
func (c *Containment[N]) Children(container N) []N {
	return slices.Clone(c.children[container])
}

// Containers returns every declared container in declaration order.
func (c *Containment[N]) Containers() []N {
	return slices.Clone(c.order)
}
