package dynamo

import "math"

// SineTable holds precomputed sine values with linear interpolation between
// entries. The trail colors evaluate one sine per point per frame, which is
// where this pays off; physics keeps using math.Sin.
type SineTable struct {
	vals []float64
	n    int
}

// DefaultSineTable has 4096 entries, about 0.0015 rad apart.
var DefaultSineTable = NewSineTable(4096)

func NewSineTable(n int) *SineTable {
	t := &SineTable{vals: make([]float64, n+1), n: n}
	for i := 0; i <= n; i++ {
		t.vals[i] = math.Sin(float64(i) * 2 * math.Pi / float64(n))
	}
	return t
}

// Sin approximates math.Sin(x) for any finite x.
func (t *SineTable) Sin(x float64) float64 {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	idx := x * float64(t.n) / (2 * math.Pi)
	i := int(idx)
	if i >= t.n {
		i = t.n - 1
	}
	frac := idx - float64(i)
	return t.vals[i]*(1-frac) + t.vals[i+1]*frac
}

// FastSin uses the default table.
func FastSin(x float64) float64 {
	return DefaultSineTable.Sin(x)
}
