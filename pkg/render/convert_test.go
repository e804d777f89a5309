package render

import (
	"context"
	"testing"

	"github.com/matzehuels/modelgraph/pkg/errors"
)

func TestToPNGRejectsScale(t *testing.T) {
	for _, scale := range []float64{0, -1} {
		if _, err := ToPNG(context.Background(), []byte("<svg/>"), scale); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ToPNG(scale=%v) error = %v, want INVALID_INPUT", scale, err)
		}
	}
}
