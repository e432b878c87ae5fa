package inert

import (
	"reflect"
	"sync"
)

// stubTable holds the constructors handed over by generated code.
type stubTable struct {
	mu    sync.RWMutex
	ctors map[reflect.Type]func() any
}

var provided = &stubTable{ctors: make(map[reflect.Type]func() any)}

func (s *stubTable) put(t reflect.Type, ctor func() any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctors[t] = ctor
}

func (s *stubTable) lookup(t reflect.Type) func() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctors[t]
}

// Provide makes ctor the stub constructor for interface T in every registry
// that has not cached T yet. Files written by `inert gen` call it from init:
//
//	func init() {
//		inert.Provide(func() Shape { return new(nullShape) })
//	}
//
// Provide panics if T is not an interface or ctor is nil.
func Provide[T any](ctor func() T) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Interface {
		panic((&KindError{Type: t}).Error())
	}
	if ctor == nil {
		panic("inert: Provide called with nil constructor for " + t.String())
	}
	provided.put(t, func() any { return ctor() })
}

// Register makes ctor the stub constructor for interface T in r only. It
// takes precedence over Provide and must happen before r first synthesizes T:
// once a build of T has started, Register fails with ErrAlreadySynthesized.
func Register[T any](r *Registry, ctor func() T) error {
	t := reflect.TypeFor[T]()
	if ctor == nil {
		return &SynthesisError{Type: t, Cause: ErrNilInstance}
	}
	return r.register(t, func() any { return ctor() })
}
