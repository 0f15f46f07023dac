package source

import (
	"fmt"

	"go-hep.org/x/hep/groot/rtree"

	"TreeScope/internal/model"
)

// RootTree implements Source on top of a groot tree.
type RootTree struct {
	Tree rtree.Tree
}

// NewRootTree wraps a tree read from a ROOT file.
func NewRootTree(t rtree.Tree) *RootTree {
	return &RootTree{Tree: t}
}

func (r *RootTree) Name() string   { return r.Tree.Name() }
func (r *RootTree) Entries() int64 { return r.Tree.Entries() }

func (r *RootTree) Branches() []string {
	branches := r.Tree.Branches()
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.Name())
	}
	return names
}

// Series reads every entry of the named branch, converting it to float64.
func (r *RootTree) Series(name string) (model.Series, error) {
	if r.Tree.Branch(name) == nil {
		return model.Series{}, fmt.Errorf("%w: %q in tree %q", ErrBranchNotFound, name, r.Tree.Name())
	}

	var rvar *rtree.ReadVar
	for _, rv := range rtree.NewReadVars(r.Tree) {
		if rv.Name == name {
			rvar = &rv
			break
		}
	}
	if rvar == nil {
		return model.Series{}, fmt.Errorf("%w: %q", ErrUnsupportedBranch, name)
	}
	if _, ok := toFloat(rvar.Value); !ok {
		return model.Series{}, fmt.Errorf("%w: %q holds %T", ErrUnsupportedBranch, name, rvar.Value)
	}

	reader, err := rtree.NewReader(r.Tree, []rtree.ReadVar{*rvar})
	if err != nil {
		return model.Series{}, fmt.Errorf("create reader for %q: %w", name, err)
	}
	defer reader.Close()

	values := make([]float64, 0, r.Tree.Entries())
	err = reader.Read(func(rtree.RCtx) error {
		v, _ := toFloat(rvar.Value)
		values = append(values, v)
		return nil
	})
	if err != nil {
		return model.Series{}, fmt.Errorf("read branch %q: %w", name, err)
	}
	return model.Series{Name: name, Values: values}, nil
}

// toFloat dereferences a scalar read target.
func toFloat(v any) (float64, bool) {
	switch p := v.(type) {
	case *float64:
		return *p, true
	case *float32:
		return float64(*p), true
	case *int64:
		return float64(*p), true
	case *int32:
		return float64(*p), true
	case *int16:
		return float64(*p), true
	case *int8:
		return float64(*p), true
	case *uint64:
		return float64(*p), true
	case *uint32:
		return float64(*p), true
	case *uint16:
		return float64(*p), true
	case *uint8:
		return float64(*p), true
	case *bool:
		if *p {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
