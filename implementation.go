package inert

import "reflect"

// Implementation is the synthesized blueprint for one interface type. It is
// created once per registry and interface, never mutated, and safe to share.
type Implementation struct {
	typ     reflect.Type
	stub    reflect.Type
	members *MemberSet
	ctor    func() any
}

// Type returns the interface type this implementation satisfies.
func (impl *Implementation) Type() reflect.Type { return impl.typ }

// Stub returns the concrete type of the instances New produces.
func (impl *Implementation) Stub() reflect.Type { return impl.stub }

// Members returns the classified members of the interface.
func (impl *Implementation) Members() []Member { return impl.members.All() }

// New returns a fresh instance with every property at its zero value.
// Instances never share storage.
func (impl *Implementation) New() any { return impl.ctor() }
