package colormap

// Normalize linearly maps [Min, Max] onto [0, 1].
type Normalize struct {
	Min, Max float64
}

// Apply maps v without clipping, so values outside [Min, Max] land outside
// [0, 1]. A degenerate range maps everything to 0.
func (n Normalize) Apply(v float64) float64 {
	if n.Max == n.Min {
		return 0
	}
	return (v - n.Min) / (n.Max - n.Min)
}

// Clip is Apply clamped into [0, 1].
func (n Normalize) Clip(v float64) float64 {
	t := n.Apply(v)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
