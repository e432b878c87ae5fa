package testdata

import (
	leftmodel "github.com/broady/inert/inertgen/provider/testdata/left/model"
	rightmodel "github.com/broady/inert/inertgen/provider/testdata/right/model"
)

// Box holds a value.
type Box[V any] interface {
	Value() V
	SetValue(V)
}

// Pair extends Box with a label.
type Pair[V any] interface {
	Box[V]
	Label() string
	SetLabel(string)
}

// Repository is a generic store.
type Repository[K comparable, V any] interface {
	Find(K) (V, error)
	Save(K, V) error
}

// Ordered has an implicit constraint.
type Ordered[T ~int | ~string] interface {
	Min() T
}

// Models references two packages with the same name.
type Models interface {
	Left() leftmodel.Item
	Right() rightmodel.Item
}

// Slot's getter and setter only agree when V is int.
type Slot[V any] interface {
	Value() V
	SetValue(int)
}

// Hooks takes a handler whose type is only known once instantiated.
type Hooks[F any] interface {
	On(F) func()
}
