package inert

import (
	"reflect"
)

// Object is a dynamic-dispatch null object: a member table shared by all
// objects of an interface plus private property slots. It answers calls by
// member or method name instead of satisfying the interface statically, so it
// exists for every interface even without a generated stub.
type Object struct {
	members *MemberSet
	slots   []reflect.Value // by member index; invalid for non-properties
}

func newObject(ms *MemberSet) *Object {
	o := &Object{
		members: ms,
		slots:   make([]reflect.Value, len(ms.members)),
	}
	for i, m := range ms.members {
		if m.Kind == KindProperty {
			o.slots[i] = reflect.New(m.Type).Elem()
		}
	}
	return o
}

// Type returns the interface type the object stands in for.
func (o *Object) Type() reflect.Type { return o.members.typ }

// Members returns the interface members.
func (o *Object) Members() []Member { return o.members.All() }

// Get returns the current value of a readable property.
func (o *Object) Get(name string) (any, error) {
	idx, err := o.property(name)
	if err != nil {
		return nil, err
	}
	if o.members.members[idx].Getter == "" {
		return nil, memberError(ErrWrongMemberKind, name, "property has no getter")
	}
	return o.slots[idx].Interface(), nil
}

// Set stores v in a writable property. Untyped nil is accepted for slots
// whose type has a nil value.
func (o *Object) Set(name string, v any) error {
	idx, err := o.property(name)
	if err != nil {
		return err
	}
	if o.members.members[idx].Setter == "" {
		return memberError(ErrWrongMemberKind, name, "property has no setter")
	}
	return o.store(idx, name, v)
}

// Call invokes interface method name with args and returns its results.
// Property accessors read and write the slot, event subscriptions return a
// no-op canceler when the signature has one, and every other method returns
// zero values.
func (o *Object) Call(name string, args ...any) ([]any, error) {
	acc, ok := o.members.methods[name]
	if !ok {
		return nil, memberError(ErrUnknownMember, name, "no such method on %s", o.members.typ)
	}
	m := o.members.members[acc.index]

	switch acc.role {
	case roleGet:
		if err := checkArgs(name, nil, false, args); err != nil {
			return nil, err
		}
		return []any{o.slots[acc.index].Interface()}, nil
	case roleSet:
		if err := checkArgs(name, []reflect.Type{m.Type}, false, args); err != nil {
			return nil, err
		}
		return nil, o.store(acc.index, name, args[0])
	case roleSubscribe:
		if err := checkArgs(name, []reflect.Type{m.Type}, false, args); err != nil {
			return nil, err
		}
		if m.Canceler == nil {
			return nil, nil
		}
		return []any{noopFunc(m.Canceler).Interface()}, nil
	}

	ft := m.Type
	params := make([]reflect.Type, ft.NumIn())
	for i := range params {
		params[i] = ft.In(i)
	}
	if err := checkArgs(name, params, ft.IsVariadic(), args); err != nil {
		return nil, err
	}
	results := make([]any, ft.NumOut())
	for i := range results {
		results[i] = reflect.Zero(ft.Out(i)).Interface()
	}
	return results, nil
}

// Subscribe accepts handler for event name and discards it. The returned
// canceler is never nil and does nothing.
func (o *Object) Subscribe(name string, handler any) (func(), error) {
	idx, ok := o.members.byName[name]
	if !ok {
		return nil, memberError(ErrUnknownMember, name, "no such event on %s", o.members.typ)
	}
	m := o.members.members[idx]
	if m.Kind != KindEvent {
		return nil, memberError(ErrWrongMemberKind, name, "%s is a %s, not an event", name, m.Kind)
	}
	if err := checkArgs(name, []reflect.Type{m.Type}, false, []any{handler}); err != nil {
		return nil, err
	}
	return func() {}, nil
}

func (o *Object) property(name string) (int, error) {
	idx, ok := o.members.byName[name]
	if !ok {
		return 0, memberError(ErrUnknownMember, name, "no such property on %s", o.members.typ)
	}
	if m := o.members.members[idx]; m.Kind != KindProperty {
		return 0, memberError(ErrWrongMemberKind, name, "%s is a %s, not a property", name, m.Kind)
	}
	return idx, nil
}

func (o *Object) store(idx int, name string, v any) error {
	slot := o.slots[idx]
	val, err := convertArg(name, 0, slot.Type(), v)
	if err != nil {
		return err
	}
	slot.Set(val)
	return nil
}

func checkArgs(name string, params []reflect.Type, variadic bool, args []any) error {
	fixed := len(params)
	if variadic {
		fixed--
		if len(args) < fixed {
			return &ArgumentError{Member: name, Index: -1, Reason: "too few arguments"}
		}
	} else if len(args) != fixed {
		return &ArgumentError{Member: name, Index: -1, Reason: "wrong number of arguments"}
	}
	for i, arg := range args {
		want := params[min(i, len(params)-1)]
		if variadic && i >= fixed {
			want = want.Elem()
		}
		if _, err := convertArg(name, i, want, arg); err != nil {
			return err
		}
	}
	return nil
}

// convertArg returns v as a value assignable to want. Untyped nil is accepted
// for types that have a nil value.
func convertArg(name string, i int, want reflect.Type, v any) (reflect.Value, error) {
	if v == nil {
		switch want.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, &ArgumentError{Member: name, Index: i, Want: want}
	}
	val := reflect.ValueOf(v)
	if !val.Type().AssignableTo(want) {
		return reflect.Value{}, &ArgumentError{Member: name, Index: i, Want: want, Got: val.Type()}
	}
	if want.Kind() == reflect.Interface {
		out := reflect.New(want).Elem()
		out.Set(val)
		return out, nil
	}
	return val, nil
}

func noopFunc(t reflect.Type) reflect.Value {
	return reflect.MakeFunc(t, func([]reflect.Value) []reflect.Value { return nil })
}
