package inert

import (
	"fmt"
	"reflect"
)

// Of returns a new null object for interface T from the default registry.
//
// Every method of the result does nothing and returns zero values, every
// property starts at its zero value and keeps what its setter stores, and
// every event subscription is accepted and ignored. Each call returns an
// independent instance.
//
// Of fails with ErrUnsupportedKind if T is not an interface, and with a
// *SynthesisError if no implementation can be produced.
func Of[T any]() (T, error) {
	return From[T](defaultRegistry)
}

// From is like Of but uses registry r.
func From[T any](r *Registry) (T, error) {
	var zero T
	impl, err := r.Implementation(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	v, ok := impl.New().(T)
	if !ok {
		return zero, &SynthesisError{Type: impl.typ, Cause: fmt.Errorf("stub %s does not implement %s", impl.stub, impl.typ)}
	}
	return v, nil
}

// Must is like Of but panics on error. It suits package-level variables and
// test setup.
func Must[T any]() T {
	v, err := Of[T]()
	if err != nil {
		panic(err)
	}
	return v
}

// Dynamic returns a dynamic-dispatch null object for interface T from the
// default registry. Unlike Of it works for every interface, stub or not.
func Dynamic[T any]() (*Object, error) {
	return DynamicFrom[T](defaultRegistry)
}

// DynamicFrom is like Dynamic but uses registry r.
func DynamicFrom[T any](r *Registry) (*Object, error) {
	return r.Dynamic(reflect.TypeFor[T]())
}
