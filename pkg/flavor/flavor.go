// Package flavor looks up the editor flavors by name.
package flavor

import (
	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/flavor/bpmn"
	"github.com/matzehuels/modelgraph/pkg/flavor/dmn"
)

var registry = []*diagram.Flavor{dmn.Flavor, bpmn.Flavor}

// Lookup returns the flavor called name.
func Lookup(name string) (*diagram.Flavor, error) {
	if err := errors.ValidateFlavorName(name); err != nil {
		return nil, err
	}
	for _, f := range registry {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidFlavor, "unknown flavor: %s", name)
}

// Names returns the registered flavor names.
func Names() []string {
	out := make([]string, len(registry))
	for i, f := range registry {
		out[i] = f.Name
	}
	return out
}

// All returns the registered flavors.
func All() []*diagram.Flavor {
	return append([]*diagram.Flavor(nil), registry...)
}
