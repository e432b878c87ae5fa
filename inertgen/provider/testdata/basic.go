// Package testdata holds interfaces the provider tests walk.
package testdata

import (
	"io"
	"reflect"
	"time"
)

// Shape has an area.
type Shape interface {
	Area() int
}

// Counter has a read/write property and a reset method.
type Counter interface {
	Count() int
	SetCount(int)
	Reset()
}

// Settings covers getter-only and setter-only properties.
type Settings interface {
	GetTimeout() time.Duration
	SetVerbose(bool)
	getName() string
	setName(string)
}

// Button exposes events.
type Button interface {
	OnClick(func(x, y int))
	OnHover(func()) CancelFunc
}

// CancelFunc stops a subscription.
type CancelFunc func()

// Mismatched pairs a setter with a getter of another type.
type Mismatched interface {
	Size() int
	SetSize(int64)
}

// Logger mixes variadic methods and foreign types.
type Logger interface {
	Printf(format string, args ...any)
	Output() io.Writer
	SetOutput(io.Writer)
	Since(t time.Time) (time.Duration, error)
}

// Old is kept for compatibility.
//
// Deprecated: use Shape.
type Old interface {
	Area() int
}

// Named is the shared base of a diamond.
type Named interface {
	Name() string
	SetName(string)
}

// Left extends Named.
type Left interface {
	Named
	Left() int
}

// Right extends Named.
type Right interface {
	Named
	Right() int
}

// Both embeds Named twice.
type Both interface {
	Left
	Right
}

// ReadCloser embeds standard library interfaces.
type ReadCloser interface {
	io.Reader
	io.Closer
	error
}

// Number is a constraint, not a method set.
type Number interface {
	~int | ~float64
}

// Keyed embeds comparable.
type Keyed interface {
	comparable
	Key() string
}

// Reflected embeds an interface with unexported methods of another package.
type Reflected interface {
	reflect.Type
}

// Point is not an interface.
type Point struct {
	X, Y int
}

// ShapeAlias aliases Shape.
type ShapeAlias = Shape

// Widget cannot get a default stub name.
type Widget interface {
	Draw()
}

// nullWidget collides with the default stub name for Widget.
type nullWidget struct{}
