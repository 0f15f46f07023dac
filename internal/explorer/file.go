// Package explorer provides TFile/TTree-style access to ROOT trees: fetch a
// branch, filter it with a single-condition cut, histogram it, optionally fit
// a Gaussian, and render or save the plot.
package explorer

import (
	"errors"
	"fmt"
	"os"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"

	"TreeScope/internal/source"
)

// ErrTreeNotFound is returned when a key is missing or does not hold a tree.
var ErrTreeNotFound = errors.New("tree not found")

// File is an open ROOT file.
type File struct {
	Path string
	file *riofs.File
}

// Open opens a ROOT file for reading.
func Open(path string) (*File, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	f, err := groot.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &File{Path: path, file: f}, nil
}

// Get returns the tree stored under key. Keys may name nested directories, as in "dir/tree".
func (f *File) Get(key string, opts ...Option) (*Tree, error) {
	obj, err := riofs.Dir(f.file).Get(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %q in %s: %v", ErrTreeNotFound, key, f.Path, err)
	}
	t, ok := obj.(rtree.Tree)
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s is a %s", ErrTreeNotFound, key, f.Path, obj.Class())
	}
	return NewTree(source.NewRootTree(t), opts...), nil
}

// Key describes one top-level object of the file.
type Key struct {
	Name  string
	Class string
}

// Keys lists the top-level objects of the file.
func (f *File) Keys() []Key {
	keys := f.file.Keys()
	out := make([]Key, 0, len(keys))
	for _, k := range keys {
		out = append(out, Key{Name: k.Name(), Class: k.ClassName()})
	}
	return out
}

// Close releases the file handle.
func (f *File) Close() error {
	return f.file.Close()
}
