// Package testutil writes small ROOT files for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"
)

// Column is one float64 branch to write.
type Column struct {
	Name   string
	Values []float64
}

// WriteTree writes a single flat tree of float64 columns into a new ROOT file
// under t.TempDir() and returns the file path. All columns must have the same
// length.
func WriteTree(t testing.TB, treeName string, cols ...Column) string {
	t.Helper()

	vals := make([]float64, len(cols))
	wvars := make([]rtree.WriteVar, len(cols))
	for i, c := range cols {
		wvars[i] = rtree.WriteVar{Name: c.Name, Value: &vals[i]}
	}
	n := 0
	if len(cols) > 0 {
		n = len(cols[0].Values)
	}
	for _, c := range cols {
		require.Len(t, c.Values, n, "column %q", c.Name)
	}

	return WriteVars(t, treeName, n, wvars, func(i int) {
		for j, c := range cols {
			vals[j] = c.Values[i]
		}
	})
}

// WriteVars writes n entries of a tree whose branches are described by wvars.
// Before each entry, fill(i) sets the values the WriteVar pointers refer to.
func WriteVars(t testing.TB, treeName string, n int, wvars []rtree.WriteVar, fill func(i int)) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.root")

	f, err := groot.Create(path)
	require.NoError(t, err)

	w, err := rtree.NewWriter(f, treeName, wvars)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		fill(i)
		_, err := w.Write()
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}
