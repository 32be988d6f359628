// Package gpu owns the opaque vertex-array handles the registry binds to tabs,
// panes and tab bars.
package gpu

import "fmt"

// Handle indexes a vertex array owned by an Allocator
type Handle int32

// NoHandle marks an entity that currently holds no GPU geometry
const NoHandle Handle = -1

// Valid reports whether h refers to an allocated vertex array
func (h Handle) Valid() bool {
	return h > NoHandle
}

// Layout describes which vertex format a handle was created with
type Layout int

const (
	CellLayout Layout = iota
	BorderLayout
)

func (l Layout) String() string {
	switch l {
	case CellLayout:
		return "cell"
	case BorderLayout:
		return "border"
	default:
		return fmt.Sprintf("layout(%d)", int(l))
	}
}

// Allocator creates and releases vertex arrays. Callers must make the owning
// window's graphics context current before calling any method. Allocation
// failures are not reported: an allocator that cannot allocate panics.
type Allocator interface {
	CreateCellVAO() Handle
	CreateBorderVAO() Handle
	RemoveVAO(h Handle)
}
