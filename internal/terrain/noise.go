package terrain

import "github.com/ojrac/opensimplex-go"

// Field is a deterministic, continuous 2D scalar field.
// Implementations must return the same value for the same (x, y) forever
// and be safe for concurrent reads.
type Field interface {
	Eval2(x, y float64) float64
}

// NewField returns the OpenSimplex field for seed. Values lie in [-1, 1].
func NewField(seed uint32) Field {
	return opensimplex.New(int64(seed))
}
