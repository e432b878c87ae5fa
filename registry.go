package inert

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Registry caches one synthesized Implementation per interface type.
//
// A type moves from "absent" to "present" at most once and never back:
// concurrent first requests for the same type share a single build, requests
// for different types never wait on each other, and a failed build leaves no
// entry behind so a later request retries.
//
// The zero value is an empty registry ready to use. Most programs use the
// process-wide Default registry through Of.
type Registry struct {
	impls  sync.Map // reflect.Type -> *Implementation
	tables sync.Map // reflect.Type -> *MemberSet
	flight singleflight.Group

	mu       sync.RWMutex
	stubs    map[reflect.Type]func() any // registry-local, checked before provided
	building map[reflect.Type]bool       // types with a build in flight
}

// NewRegistry returns an empty registry. It sees every constructor passed to
// Provide plus those registered on it with Register.
func NewRegistry() *Registry {
	return &Registry{
		stubs:    make(map[reflect.Type]func() any),
		building: make(map[reflect.Type]bool),
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by Of, Must and Dynamic.
func Default() *Registry {
	return defaultRegistry
}

// Implementation returns the cached implementation of interface type t,
// synthesizing it on first use.
func (r *Registry) Implementation(t reflect.Type) (*Implementation, error) {
	if t == nil || t.Kind() != reflect.Interface {
		return nil, &KindError{Type: t}
	}

	if v, ok := r.impls.Load(t); ok {
		return v.(*Implementation), nil
	}

	v, err, _ := r.flight.Do(flightKey(t), func() (any, error) {
		// A previous flight may have stored it between Load and Do.
		if v, ok := r.impls.Load(t); ok {
			return v, nil
		}
		r.setBuilding(t, true)
		defer r.setBuilding(t, false)
		impl, err := r.synthesize(t)
		if err != nil {
			return nil, err
		}
		actual, _ := r.impls.LoadOrStore(t, impl)
		return actual, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Implementation), nil
}

// Cached reports whether an implementation of t is already cached.
func (r *Registry) Cached(t reflect.Type) bool {
	_, ok := r.impls.Load(t)
	return ok
}

// Len returns the number of cached implementations.
func (r *Registry) Len() int {
	n := 0
	r.impls.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Members returns the classified member table of interface type t. Tables
// are cached separately from implementations: they exist for every
// interface, with or without a stub.
func (r *Registry) Members(t reflect.Type) (*MemberSet, error) {
	if v, ok := r.tables.Load(t); ok {
		return v.(*MemberSet), nil
	}
	ms, err := Members(t)
	if err != nil {
		return nil, err
	}
	// Building a table is pure, so racing builders store equal tables.
	actual, _ := r.tables.LoadOrStore(t, ms)
	return actual.(*MemberSet), nil
}

// Dynamic returns a new dynamic-dispatch null object for interface type t.
// It needs no generated stub.
func (r *Registry) Dynamic(t reflect.Type) (*Object, error) {
	ms, err := r.Members(t)
	if err != nil {
		return nil, err
	}
	return newObject(ms), nil
}

func (r *Registry) register(t reflect.Type, ctor func() any) error {
	if t == nil || t.Kind() != reflect.Interface {
		return &KindError{Type: t}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Cached(t) {
		return fmt.Errorf("%w: %s", ErrAlreadySynthesized, t)
	}
	// The build has already chosen its constructor.
	if r.building[t] {
		return fmt.Errorf("%w: %s is being synthesized", ErrAlreadySynthesized, t)
	}
	if r.stubs == nil {
		r.stubs = make(map[reflect.Type]func() any)
	}
	r.stubs[t] = ctor
	return nil
}

// setBuilding marks t as having a build in flight until the result is
// stored. Register refuses new constructors for t while it is set.
func (r *Registry) setBuilding(t reflect.Type, on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !on {
		delete(r.building, t)
		return
	}
	if r.building == nil {
		r.building = make(map[reflect.Type]bool)
	}
	r.building[t] = true
}

func (r *Registry) stub(t reflect.Type) func() any {
	r.mu.RLock()
	ctor, ok := r.stubs[t]
	r.mu.RUnlock()
	if ok {
		return ctor
	}
	return provided.lookup(t)
}

// synthesize builds the implementation of t. It is only called inside a
// flight for t.
func (r *Registry) synthesize(t reflect.Type) (*Implementation, error) {
	ms, err := r.Members(t)
	if err != nil {
		return nil, err
	}

	ctor := r.stub(t)
	if ctor == nil {
		if ms.Len() > 0 {
			return nil, &SynthesisError{Type: t, Cause: ErrNoStub}
		}
		// Any value satisfies an interface with no methods.
		ctor = newEmpty
	}

	stub, err := probe(t, ctor)
	if err != nil {
		return nil, &SynthesisError{Type: t, Cause: err}
	}

	return &Implementation{
		typ:     t,
		stub:    stub,
		members: ms,
		ctor:    ctor,
	}, nil
}

// probe calls ctor once and checks the result before it is cached.
func probe(t reflect.Type, ctor func() any) (stub reflect.Type, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("stub constructor panicked: %v", rec)
		}
	}()

	v := ctor()
	if v == nil {
		return nil, ErrNilInstance
	}
	stub = reflect.TypeOf(v)
	if !stub.Implements(t) {
		return nil, fmt.Errorf("stub %s does not implement %s", stub, t)
	}
	return stub, nil
}

// flightKey identifies t within a singleflight group. Type strings are not
// unique across packages with equal names, rtype addresses are.
func flightKey(t reflect.Type) string {
	return strconv.FormatUint(uint64(reflect.ValueOf(t).Pointer()), 16)
}

type empty struct{}

func newEmpty() any { return &empty{} }
