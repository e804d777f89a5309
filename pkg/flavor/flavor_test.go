package flavor

import (
	"slices"
	"testing"

	"github.com/matzehuels/modelgraph/pkg/errors"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"dmn", "bpmn"} {
		f, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if f.Name != name {
			t.Errorf("Lookup(%q).Name = %q", name, f.Name)
		}
	}

	tests := []string{"", "DMN", "cmmn"}
	for _, name := range tests {
		if _, err := Lookup(name); !errors.Is(err, errors.ErrCodeInvalidFlavor) {
			t.Errorf("Lookup(%q) error = %v, want INVALID_FLAVOR", name, err)
		}
	}
}

func TestNames(t *testing.T) {
	if got := Names(); !slices.Equal(got, []string{"dmn", "bpmn"}) {
		t.Errorf("Names() = %v, want [dmn bpmn]", got)
	}
	all := All()
	all[0] = nil
	if All()[0] == nil {
		t.Error("All() exposes the registry")
	}
}
