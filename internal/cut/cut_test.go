package cut

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TreeScope/internal/source"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Expr
	}{
		{"pt > 20", Expr{Branch: "pt", Op: GT, Value: 20}},
		{"pt<20", Expr{Branch: "pt", Op: LT, Value: 20}},
		{"  eta <= 2.5  ", Expr{Branch: "eta", Op: LE, Value: 2.5}},
		{"n_jets >= 2", Expr{Branch: "n_jets", Op: GE, Value: 2}},
		{"charge == 1", Expr{Branch: "charge", Op: EQ, Value: 1}},
		{"flag != 0", Expr{Branch: "flag", Op: NE, Value: 0}},
		{"x>.5", Expr{Branch: "x", Op: GT, Value: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{
		"",
		"pt",
		"pt > ",
		"pt && eta > 1",
		"pt > 1 && eta < 2",
		"pt > 1 || eta < 2",
		"pt > -1",
		"pt =< 1",
		"pt = 1",
		"pt ! 1",
		"pt > 1.2.3",
		"pt > .",
		"p.t > 1",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormat), "got %v", err)
		})
	}
}

func TestMask_GreaterThanSelectsStrictlyGreater(t *testing.T) {
	values := []float64{-1, 0, 1, 1.5, 2, 2, 3, 10}
	e := Expr{Branch: "b", Op: GT, Value: 2}

	mask := e.Mask(values)
	require.Len(t, mask, len(values))
	for i, v := range values {
		assert.Equal(t, v > 2, mask[i], "index %d value %v", i, v)
	}
}

func TestMatch_AllOperators(t *testing.T) {
	tests := []struct {
		op   Op
		x    float64
		want bool
	}{
		{LT, 1, true}, {LT, 2, false},
		{GT, 3, true}, {GT, 2, false},
		{LE, 2, true}, {LE, 3, false},
		{GE, 2, true}, {GE, 1, false},
		{EQ, 2, true}, {EQ, 2.0001, false},
		{NE, 1, true}, {NE, 2, false},
	}
	for _, tt := range tests {
		e := Expr{Branch: "b", Op: tt.op, Value: 2}
		assert.Equal(t, tt.want, e.Match(tt.x), "%v %s", tt.x, e)
	}
}

func TestEvaluate(t *testing.T) {
	src := source.NewMemTree("events").
		Add("pt", []float64{5, 25, 15, 40}).
		Add("eta", []float64{0.1, 3, -1, 2})

	mask, err := Evaluate(src, "pt > 10")
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, true, true}, mask)

	_, err = Evaluate(src, "phi > 1")
	assert.True(t, errors.Is(err, source.ErrBranchNotFound), "got %v", err)

	_, err = Evaluate(src, "pt > 1 && eta < 2")
	assert.True(t, errors.Is(err, ErrFormat), "got %v", err)
}

func TestOpString(t *testing.T) {
	for tok, op := range opTokens {
		assert.Equal(t, tok, op.String())
	}
}
