// Package column describes the columns an encoder is selected for.
package column

import (
	"strings"

	"github.com/arloliu/encsel/format"
)

// Descriptor identifies a column's physical type and schema path.
//
// Descriptors are immutable values supplied by the caller for every selection.
type Descriptor struct {
	// Path is the dotted schema path split into its components.
	Path []string
	// Type is the column's physical type.
	Type format.PhysicalType
	// TypeLength is the value width of a FixedLenByteArray column, ignored otherwise.
	TypeLength int
}

// New returns a descriptor for a column of type typ at the given path.
func New(typ format.PhysicalType, path ...string) Descriptor {
	p := make([]string, len(path))
	copy(p, path)

	return Descriptor{Path: p, Type: typ}
}

// NewFixedLen returns a descriptor for a fixed-length byte array column of the given width.
func NewFixedLen(length int, path ...string) Descriptor {
	d := New(format.FixedLenByteArray, path...)
	d.TypeLength = length

	return d
}

// PathString returns the path joined with dots.
func (d Descriptor) PathString() string {
	return strings.Join(d.Path, ".")
}

func (d Descriptor) String() string {
	return d.PathString() + " " + d.Type.String()
}
