package worldmap

import "math"

// Extremes accumulates the minimum and maximum of a stream of elevations.
// The zero value holds no samples. Merge is associative and commutative,
// so partial results from disjoint tiles can be combined in any order.
type Extremes struct {
	Min   float32
	Max   float32
	Valid bool // false until the first sample
}

// Add folds one sample into e. NaN and infinite samples are ignored.
func (e *Extremes) Add(v float32) {
	if f := float64(v); math.IsNaN(f) || math.IsInf(f, 0) {
		return
	}
	if !e.Valid {
		e.Min, e.Max, e.Valid = v, v, true
		return
	}
	e.Min = min(e.Min, v)
	e.Max = max(e.Max, v)
}

// Merge returns the extremes of both sample sets.
func (e Extremes) Merge(o Extremes) Extremes {
	switch {
	case !e.Valid:
		return o
	case !o.Valid:
		return e
	}
	return Extremes{
		Min:   min(e.Min, o.Min),
		Max:   max(e.Max, o.Max),
		Valid: true,
	}
}

// Span returns Max - Min, or 0 when no samples were seen.
// It is computed in float64 so distant float32 extremes cannot overflow.
func (e Extremes) Span() float64 {
	if !e.Valid {
		return 0
	}
	return float64(e.Max) - float64(e.Min)
}
