package metrics

import (
	"strconv"

	"github.com/san-kum/glowpend/internal/physics"
)

// Energy holds the latest cosmetic energy readout of a chain.
type Energy struct {
	value float64
	peak  float64
}

func NewEnergy() *Energy {
	return &Energy{}
}

func (e *Energy) Name() string { return "energy" }

func (e *Energy) Observe(c *physics.Chain) float64 {
	e.value = c.Energy()
	if e.value > e.peak {
		e.peak = e.value
	}
	return e.value
}

func (e *Energy) Value() float64 { return e.value }

// Peak is the largest readout seen since the last Reset.
func (e *Energy) Peak() float64 { return e.peak }

// Text formats the readout with two decimals.
func (e *Energy) Text() string {
	return FormatEnergy(e.value)
}

func (e *Energy) Reset() {
	e.value = 0
	e.peak = 0
}

func FormatEnergy(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
