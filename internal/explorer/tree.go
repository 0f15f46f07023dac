package explorer

import (
	"log"
	"time"

	"gonum.org/v1/plot/vg"

	"TreeScope/internal/cut"
	"TreeScope/internal/model"
	"TreeScope/internal/render"
	"TreeScope/internal/source"
)

// Tree exposes the branches of one tree and remembers the last 1D draw.
// A Tree is not safe for concurrent use.
type Tree struct {
	src    source.Source
	viewer render.Viewer
	width  vg.Length
	height vg.Length
	last   *model.PlotState
}

// Option configures a Tree.
type Option func(*Tree)

// WithViewer sets where drawn plots are shown. The default shows nothing.
func WithViewer(v render.Viewer) Option {
	return func(t *Tree) { t.viewer = v }
}

// WithImageSize sets the size of images written by SaveHistogram.
func WithImageSize(width, height vg.Length) Option {
	return func(t *Tree) {
		t.width = width
		t.height = height
	}
}

// NewTree wraps any Source.
func NewTree(src source.Source, opts ...Option) *Tree {
	t := &Tree{
		src:    src,
		viewer: render.NopViewer{},
		width:  render.DefaultWidth,
		height: render.DefaultHeight,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tree) Name() string       { return t.src.Name() }
func (t *Tree) Entries() int64     { return t.src.Entries() }
func (t *Tree) Branches() []string { return t.src.Branches() }

// Branch returns the full contents of the named branch.
func (t *Tree) Branch(name string) (model.Series, error) {
	return t.src.Series(name)
}

// PlotState returns a copy of the last drawn state, or nil before any draw.
func (t *Tree) PlotState() *model.PlotState {
	if t.last == nil {
		return nil
	}
	ps := *t.last
	ps.Values = append([]float64(nil), t.last.Values...)
	return &ps
}

// Restore seeds the plot state, e.g. from a state file written by an earlier process.
func (t *Tree) Restore(ps *model.PlotState) {
	if ps.Empty() {
		t.last = nil
		return
	}
	cp := *ps
	cp.Values = append([]float64(nil), ps.Values...)
	t.last = &cp
}

func (t *Tree) remember(label string, values []float64) {
	t.last = &model.PlotState{
		Label:     label,
		Values:    append([]float64(nil), values...),
		UpdatedAt: time.Now(),
	}
}

// cutMask evaluates expr for n entries. Any failure is logged and yields a
// nil mask, which callers treat as "no filter".
func (t *Tree) cutMask(expr string, n int) []bool {
	if expr == "" {
		return nil
	}
	mask, err := cut.Evaluate(t.src, expr)
	if err == nil && len(mask) != n {
		log.Printf("[WARN] cut %q ignored: mask has %d entries, branch has %d", expr, len(mask), n)
		return nil
	}
	if err != nil {
		log.Printf("[WARN] cut %q ignored, using unfiltered data: %v", expr, err)
		return nil
	}
	return mask
}
