package codec

import (
	"fmt"
	"math"
)

// LuminanceTable maps a 5-bit index to a luminance in nits. Values are
// strictly increasing, so each value appears once.
type LuminanceTable struct {
	name string
	nits [32]float64
}

// MinLuminance is the minimum display luminance table, 0.000 to 1.048 nits.
var MinLuminance = &LuminanceTable{
	name: "min luminance",
	nits: [32]float64{
		0.000, 0.001, 0.002, 0.005, 0.008, 0.013, 0.019, 0.026,
		0.035, 0.046, 0.058, 0.072, 0.088, 0.106, 0.127, 0.150,
		0.176, 0.204, 0.236, 0.271, 0.310, 0.353, 0.399, 0.450,
		0.506, 0.566, 0.631, 0.702, 0.779, 0.862, 0.951, 1.048,
	},
}

// MaxLuminance is the maximum display luminance table, 97 to 10000 nits.
var MaxLuminance = &LuminanceTable{
	name: "max luminance",
	nits: [32]float64{
		97, 114, 133, 155, 181, 211, 246, 286,
		332, 386, 447, 519, 601, 697, 807, 935,
		1082, 1253, 1450, 1679, 1944, 2251, 2607, 3021,
		3501, 4060, 4710, 5468, 6351, 7383, 8589, 10000,
	},
}

// Name returns the table name used in messages.
func (t *LuminanceTable) Name() string {
	return t.name
}

// Len returns the number of entries.
func (t *LuminanceTable) Len() int {
	return len(t.nits)
}

// Values returns a copy of the table in index order.
func (t *LuminanceTable) Values() []float64 {
	out := make([]float64, len(t.nits))
	copy(out, t.nits[:])
	return out
}

// Nits returns the luminance for index.
func (t *LuminanceTable) Nits(index uint8) (float64, error) {
	if int(index) >= len(t.nits) {
		return 0, &FieldOverflowError{Field: t.field(), Value: index, Width: 5}
	}
	return t.nits[index], nil
}

// Lookup returns the index whose value is nearest to nits. Ties go to the
// lower index. exact is false when the chosen value differs from nits; NaN
// always resolves to index 0 and is never exact.
func (t *LuminanceTable) Lookup(nits float64) (index uint8, exact bool) {
	if math.IsNaN(nits) {
		return 0, false
	}

	best := 0
	bestDiff := math.Inf(1)
	for i, v := range t.nits {
		// strict less-than keeps the first minimum on ties
		if d := math.Abs(v - nits); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	// +Inf and -Inf give an infinite distance to every entry
	if math.IsInf(bestDiff, 1) && nits > 0 {
		best = len(t.nits) - 1
	}
	return uint8(best), t.nits[best] == nits
}

func (t *LuminanceTable) field() Field {
	if t == MaxLuminance {
		return FieldMaxLuminance
	}
	return FieldMinLuminance
}

func formatNits(t *LuminanceTable, index uint8) string {
	v, err := t.Nits(index)
	if err != nil {
		return fmt.Sprintf("unrecognized index %d", index)
	}
	if t == MinLuminance {
		return fmt.Sprintf("%.3f nits", v)
	}
	return fmt.Sprintf("%g nits", v)
}
