// Package testfixtures provides interfaces used for testing the inert
// runtime and generator. inert_null.go holds their generated null objects.
package testfixtures

import "time"

//go:generate go run github.com/broady/inert/cmd/inert gen

// Empty has no members.
//
//inert:null
type Empty interface{}

// Shape exposes a computed value.
//
//inert:null
type Shape interface {
	Area() int
}

// Sink accepts values.
//
//inert:null
type Sink interface {
	Write(value int)
}

// PrimitiveDataType covers the zero values of common slot types.
//
//inert:null
type PrimitiveDataType interface {
	Boolean() bool
	SetBoolean(bool)
	DateTime() time.Time
	SetDateTime(time.Time)
	Integer() int
	SetInteger(int)
	Long() int64
	SetLong(int64)
	String() string
	SetString(string)
}

// Item is a value referenced by pointer from interfaces below.
type Item struct {
	ID   int
	Name string
}

// MethodWithArgs has methods whose arguments must be ignored.
//
//inert:null
type MethodWithArgs interface {
	Test(i int, l int64, b bool, t time.Time, v any) (int, error)
	Lookup(id int) (*Item, bool)
	Printf(format string, args ...any)
}

// GetterOnly declares a property without a setter.
//
//inert:null
type GetterOnly interface {
	GetInteger() int
}

// SetterOnly declares a property without a getter.
//
//inert:null
type SetterOnly interface {
	SetInteger(int)
}

// Base is extended by Derived.
//
//inert:null
type Base interface {
	Integer() int
	SetInteger(int)
}

// Derived adds members on top of Base.
//
//inert:null
type Derived interface {
	Base
	String() string
	SetString(string)
	Test() error
}

// Named is the shared base of the Left/Right diamond.
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

// Both extends Named twice, through Left and Right.
//
//inert:null
type Both interface {
	Left
	Right
}

// Box holds a value of any type.
//
//inert:null inst=int inst=*Item
type Box[V any] interface {
	Value() V
	SetValue(V)
}

// Pair extends Box with a label.
//
//inert:null inst=int inst=string
type Pair[V any] interface {
	Box[V]
	Label() string
	SetLabel(string)
}

// Button exposes events.
//
//inert:null
type Button interface {
	OnClick(func(x, y int))
	OnHover(func()) func()
}

// Repository is a generic store.
//
//inert:null inst=int,*Item
type Repository[K comparable, V any] interface {
	Find(K) (V, error)
	Save(K, V) error
	All() []V
	Len() int
}

// Point is not an interface.
type Point struct {
	X, Y int
}
