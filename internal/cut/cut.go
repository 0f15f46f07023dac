// Package cut parses and evaluates single-condition selection strings such
// as "pt > 20". Exactly one comparison of a branch against a non-negative
// numeric literal is accepted; boolean combinations are rejected.
package cut

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"TreeScope/internal/source"
)

// ErrFormat is returned when a cut string does not match the grammar.
var ErrFormat = errors.New("invalid cut string format")

var grammar = regexp.MustCompile(`^\s*([A-Za-z0-9_]+)\s*([<>=!]+)\s*([0-9.]+)\s*$`)

// Op is a comparison operator.
type Op int

const (
	LT Op = iota
	GT
	LE
	GE
	EQ
	NE
)

var opTokens = map[string]Op{
	"<":  LT,
	">":  GT,
	"<=": LE,
	">=": GE,
	"==": EQ,
	"!=": NE,
}

func (o Op) String() string {
	switch o {
	case LT:
		return "<"
	case GT:
		return ">"
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "=="
	case NE:
		return "!="
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Expr is a parsed cut: Branch Op Value.
type Expr struct {
	Branch string
	Op     Op
	Value  float64
}

func (e Expr) String() string {
	return fmt.Sprintf("%s %s %g", e.Branch, e.Op, e.Value)
}

// Parse parses s into an Expr.
func Parse(s string) (Expr, error) {
	m := grammar.FindStringSubmatch(s)
	if m == nil {
		return Expr{}, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	op, ok := opTokens[m[2]]
	if !ok {
		return Expr{}, fmt.Errorf("%w: unknown operator %q", ErrFormat, m[2])
	}
	v, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Expr{}, fmt.Errorf("%w: bad number %q", ErrFormat, m[3])
	}
	return Expr{Branch: m[1], Op: op, Value: v}, nil
}

// Match reports whether x satisfies the condition.
func (e Expr) Match(x float64) bool {
	switch e.Op {
	case LT:
		return x < e.Value
	case GT:
		return x > e.Value
	case LE:
		return x <= e.Value
	case GE:
		return x >= e.Value
	case EQ:
		return x == e.Value
	case NE:
		return x != e.Value
	}
	return false
}

// Mask returns one entry per value, true where the condition holds.
func (e Expr) Mask(values []float64) []bool {
	mask := make([]bool, len(values))
	for i, x := range values {
		mask[i] = e.Match(x)
	}
	return mask
}

// Evaluate parses s and computes its mask against the branch it names in src.
func Evaluate(src source.Source, s string) ([]bool, error) {
	e, err := Parse(s)
	if err != nil {
		return nil, err
	}
	series, err := src.Series(e.Branch)
	if err != nil {
		return nil, err
	}
	return e.Mask(series.Values), nil
}
