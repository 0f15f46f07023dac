package source

import (
	"fmt"

	"TreeScope/internal/model"
)

// MemTree is an in-memory Source for tests and programmatic use.
type MemTree struct {
	TreeName string
	names    []string
	columns  map[string][]float64
}

// NewMemTree creates an empty in-memory tree.
func NewMemTree(name string) *MemTree {
	return &MemTree{TreeName: name, columns: make(map[string][]float64)}
}

// Add stores a column, replacing any existing one with the same name.
func (m *MemTree) Add(name string, values []float64) *MemTree {
	if _, ok := m.columns[name]; !ok {
		m.names = append(m.names, name)
	}
	m.columns[name] = values
	return m
}

func (m *MemTree) Name() string { return m.TreeName }

// Entries returns the length of the longest column.
func (m *MemTree) Entries() int64 {
	var n int
	for _, col := range m.columns {
		if len(col) > n {
			n = len(col)
		}
	}
	return int64(n)
}

func (m *MemTree) Branches() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

func (m *MemTree) Series(name string) (model.Series, error) {
	col, ok := m.columns[name]
	if !ok {
		return model.Series{}, fmt.Errorf("%w: %q in tree %q", ErrBranchNotFound, name, m.TreeName)
	}
	values := make([]float64, len(col))
	copy(values, col)
	return model.Series{Name: name, Values: values}, nil
}
