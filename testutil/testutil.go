// Package testutil provides testing helpers for null objects produced by
// inert. It can be used from any package, including ones that hand-write
// their stubs.
package testutil

import (
	"reflect"
	"testing"

	"github.com/broady/inert"
)

// AssertNull checks that v behaves as a null object for T. v must be a fresh
// instance: every property getter must report the zero value, every setter
// must be observable through its getter, every event must accept a handler
// without invoking it, and every method must return zero values.
//
// AssertNull changes the state of v's properties.
func AssertNull[T any](t testing.TB, v T) {
	t.Helper()

	typ := reflect.TypeFor[T]()
	ms, err := inert.Default().Members(typ)
	if err != nil {
		t.Fatalf("inspecting %s: %v", typ, err)
		return
	}
	rv := reflect.ValueOf(&v).Elem()
	if rv.IsNil() {
		t.Fatalf("expected a %s, got nil", typ)
		return
	}
	for _, m := range ms.All() {
		switch m.Kind {
		case inert.KindProperty:
			assertProperty(t, rv, m)
		case inert.KindEvent:
			assertEvent(t, rv, m)
		default:
			assertMethod(t, rv, m)
		}
	}
}

// AssertZero checks that calling method name on v with zero arguments
// returns only zero values.
func AssertZero[T any](t testing.TB, v T, name string) {
	t.Helper()
	rv := reflect.ValueOf(&v).Elem()
	fn := rv.MethodByName(name)
	if !fn.IsValid() {
		t.Fatalf("%s has no method %s", rv.Type(), name)
		return
	}
	checkZero(t, name, call(fn))
}

func assertProperty(t testing.TB, rv reflect.Value, m inert.Member) {
	t.Helper()
	if m.Getter != "" {
		got := rv.MethodByName(m.Getter).Call(nil)[0]
		if !got.IsZero() {
			t.Errorf("%s: expected zero %s, got %v", m.Getter, m.Type, got)
		}
	}
	if m.Setter == "" {
		return
	}
	want := sample(m.Type)
	rv.MethodByName(m.Setter).Call([]reflect.Value{want})
	if m.Getter == "" {
		return
	}
	got := rv.MethodByName(m.Getter).Call(nil)[0]
	if !sameValue(got, want) {
		t.Errorf("%s after %s: expected %v, got %v", m.Getter, m.Setter, want, got)
	}
}

func assertEvent(t testing.TB, rv reflect.Value, m inert.Member) {
	t.Helper()
	handler := reflect.MakeFunc(m.Type, func(args []reflect.Value) []reflect.Value {
		t.Errorf("%s: handler invoked", m.Name)
		return zeros(m.Type)
	})
	out := rv.MethodByName(m.Name).Call([]reflect.Value{handler})
	if m.Canceler == nil {
		return
	}
	cancel := out[0]
	if cancel.IsNil() {
		t.Errorf("%s: expected a cancel func, got nil", m.Name)
		return
	}
	call(cancel)
}

func assertMethod(t testing.TB, rv reflect.Value, m inert.Member) {
	t.Helper()
	checkZero(t, m.Name, call(rv.MethodByName(m.Name)))
}

func checkZero(t testing.TB, name string, results []reflect.Value) {
	t.Helper()
	for i, r := range results {
		if !r.IsZero() {
			t.Errorf("%s: expected zero result %d, got %v", name, i, r)
		}
	}
}

// call invokes fn with zero arguments. The variadic tail is left empty.
func call(fn reflect.Value) []reflect.Value {
	ft := fn.Type()
	n := ft.NumIn()
	if ft.IsVariadic() {
		n--
	}
	args := make([]reflect.Value, n)
	for i := range args {
		args[i] = reflect.Zero(ft.In(i))
	}
	return fn.Call(args)
}

func zeros(ft reflect.Type) []reflect.Value {
	out := make([]reflect.Value, ft.NumOut())
	for i := range out {
		out[i] = reflect.Zero(ft.Out(i))
	}
	return out
}

// sample returns a value of t that differs from the zero value where t
// allows it.
func sample(t reflect.Type) reflect.Value {
	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Bool:
		v.SetBool(true)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(7)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v.SetUint(7)
	case reflect.Float32, reflect.Float64:
		v.SetFloat(1.5)
	case reflect.Complex64, reflect.Complex128:
		v.SetComplex(1i)
	case reflect.String:
		v.SetString("sample")
	case reflect.Pointer:
		v.Set(reflect.New(t.Elem()))
	case reflect.Slice:
		v.Set(reflect.MakeSlice(t, 1, 1))
	case reflect.Map:
		v.Set(reflect.MakeMap(t))
	case reflect.Chan:
		v.Set(reflect.MakeChan(t, 0))
	case reflect.Func:
		v.Set(reflect.MakeFunc(t, func([]reflect.Value) []reflect.Value { return zeros(t) }))
	}
	return v
}

// sameValue reports whether got holds want. Funcs are only comparable to
// nil, so a non-nil func matches any non-nil func.
func sameValue(got, want reflect.Value) bool {
	if want.Kind() == reflect.Func {
		return got.IsNil() == want.IsNil()
	}
	return reflect.DeepEqual(got.Interface(), want.Interface())
}
