package source

import (
	"errors"

	"TreeScope/internal/model"
)

var (
	// ErrBranchNotFound is returned when a tree has no branch with the requested name.
	ErrBranchNotFound = errors.New("branch not found")
	// ErrUnsupportedBranch is returned for branches that are not scalar numbers.
	ErrUnsupportedBranch = errors.New("branch is not a scalar numeric type")
)

// Source defines the interface for reading branches out of a tree.
type Source interface {
	Name() string
	Entries() int64
	Branches() []string
	Series(name string) (model.Series, error)
}
