package random

// FixedSource replays a fixed sequence of floats. IntN maps the next float
// onto [0, n). When the sequence is exhausted it cycles from the start.
// Intended for tests and scripted replays.
type FixedSource struct {
	values []float64
	pos    int
}

// Fixed returns a FixedSource over values. With no values every draw is 0.
func Fixed(values ...float64) *FixedSource {
	return &FixedSource{values: values}
}

// Float64 returns the next value in the sequence.
func (f *FixedSource) Float64() float64 {
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.pos%len(f.values)]
	f.pos++
	return v
}

// IntN returns int(next * n), clamped into [0, n).
func (f *FixedSource) IntN(n int) int {
	if n <= 0 {
		panic("random: invalid argument to IntN")
	}
	v := int(f.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Draws returns how many values have been consumed.
func (f *FixedSource) Draws() int {
	return f.pos
}
