package metrics

// Metric is a running readout shown next to the animation.
type Metric interface {
	Name() string
	Value() float64
	Reset()
}
