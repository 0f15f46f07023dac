package model

// Series is one branch of a tree, materialized as float64 values in entry order.
type Series struct {
	Name   string
	Values []float64
}

// Len returns the number of entries in the series.
func (s Series) Len() int { return len(s.Values) }

// Range is a closed [Min, Max] interval on one axis.
// The zero value means "derive from the data".
type Range struct {
	Min float64
	Max float64
}

// IsZero reports whether the range was left unset.
func (r Range) IsZero() bool { return r.Min == 0 && r.Max == 0 }
