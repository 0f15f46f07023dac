package model

import "time"

// PlotState is the last drawn series, kept so it can be re-rendered on save.
type PlotState struct {
	Label     string    `json:"label"`
	Values    []float64 `json:"values"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Empty reports whether no draw has populated the state yet.
func (p *PlotState) Empty() bool {
	return p == nil || (p.Label == "" && len(p.Values) == 0)
}
