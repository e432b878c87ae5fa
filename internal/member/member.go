// Package member classifies the flattened method set of an interface into
// properties, events and plain methods.
//
// Go interfaces only declare methods, so properties and events are recognized
// by convention:
//
//   - SetX(v V) paired with X() V or GetX() V is a read/write property X.
//   - GetX() V alone is a getter-only property; SetX(V) alone is setter-only.
//   - A method taking exactly one func-typed parameter and returning nothing,
//     or returning a func() canceler, is an event subscription.
//   - Everything else is a method.
//
// Unexported accessors (setX, x, getX) follow the same rules.
//
// The classifier is generic over the type representation so the generator
// (go/types) and the runtime registry (reflect) agree on every decision.
package member

import (
	"unicode"
	"unicode/utf8"
)

// Kind identifies the category of a member.
type Kind int

const (
	KindMethod Kind = iota
	KindProperty
	KindEvent
)

func (k Kind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindProperty:
		return "property"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Signature is one method of an interface. T is the type representation.
type Signature[T any] struct {
	Name     string
	Params   []T
	Results  []T
	Variadic bool
}

// TypeSystem answers the questions the classifier asks about T.
type TypeSystem[T any] interface {
	// Identical reports whether a and b denote the same type.
	Identical(a, b T) bool

	// IsFunc reports whether t is a function type.
	IsFunc(t T) bool

	// IsCanceler reports whether t is a function type with no parameters
	// and no results.
	IsCanceler(t T) bool
}

// Property is a slot-backed member reached through a getter, a setter, or both.
type Property[T any] struct {
	Name   string
	Type   T
	Getter string // empty if the interface declares no getter
	Setter string // empty if the interface declares no setter
}

// HasGetter reports whether the property is readable.
func (p Property[T]) HasGetter() bool { return p.Getter != "" }

// HasSetter reports whether the property is writable.
func (p Property[T]) HasSetter() bool { return p.Setter != "" }

// Event is a subscription method. Handlers are never stored.
type Event[T any] struct {
	Name        string
	Handler     T
	Canceler    T
	HasCanceler bool
}

// Mismatch records a setter whose getter has a different value type.
// Both are kept, the setter as a setter-only property and the getter as a
// method.
type Mismatch struct {
	Setter string
	Getter string
}

// Set is the classified member set of one interface.
type Set[T any] struct {
	Properties []Property[T]
	Events     []Event[T]
	Methods    []Signature[T]
	Mismatches []Mismatch
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	return len(s.Properties) + len(s.Events) + len(s.Methods)
}

// Classify sorts sigs into properties, events and methods. Every signature
// ends up in exactly one member; accessors are never reported as methods.
// Output order follows input order.
func Classify[T any](sigs []Signature[T], ts TypeSystem[T]) *Set[T] {
	byName := make(map[string]int, len(sigs))
	for i, sig := range sigs {
		byName[sig.Name] = i
	}

	consumed := make([]bool, len(sigs))
	props := make(map[string]bool)
	set := &Set[T]{}

	// Setters first: they decide which getters are accessors.
	for i, sig := range sigs {
		name, ok := setterProperty(sig)
		if !ok || props[name] {
			continue
		}
		value := sig.Params[0]
		prop := Property[T]{Name: name, Type: value, Setter: sig.Name}
		for _, getter := range getterNames(sig.Name) {
			j, found := byName[getter]
			if !found || consumed[j] || !isGetter(sigs[j]) {
				continue
			}
			if !ts.Identical(sigs[j].Results[0], value) {
				set.Mismatches = append(set.Mismatches, Mismatch{Setter: sig.Name, Getter: getter})
				continue
			}
			prop.Getter = getter
			consumed[j] = true
			break
		}
		consumed[i] = true
		props[name] = true
		set.Properties = append(set.Properties, prop)
	}

	// Unpaired GetX() getters are getter-only properties.
	for i, sig := range sigs {
		if consumed[i] || !isGetter(sig) {
			continue
		}
		name, ok := trimAccessorPrefix(sig.Name, "Get", "get")
		if !ok || props[name] {
			continue
		}
		consumed[i] = true
		props[name] = true
		set.Properties = append(set.Properties, Property[T]{Name: name, Type: sig.Results[0], Getter: sig.Name})
	}

	for i, sig := range sigs {
		if consumed[i] {
			continue
		}
		if ev, ok := event(sig, ts); ok {
			set.Events = append(set.Events, ev)
			continue
		}
		set.Methods = append(set.Methods, sig)
	}

	return set
}

func isGetter[T any](sig Signature[T]) bool {
	return len(sig.Params) == 0 && len(sig.Results) == 1
}

func setterProperty[T any](sig Signature[T]) (string, bool) {
	if len(sig.Params) != 1 || len(sig.Results) != 0 || sig.Variadic {
		return "", false
	}
	return trimAccessorPrefix(sig.Name, "Set", "set")
}

// getterNames lists the getter candidates for a setter, in preference order.
func getterNames(setter string) []string {
	if name, ok := trimAccessorPrefix(setter, "Set", ""); ok {
		return []string{name, "Get" + name}
	}
	name, _ := trimAccessorPrefix(setter, "set", "")
	return []string{lowerFirst(name), "get" + name}
}

// trimAccessorPrefix strips an accessor prefix. The remainder must start with
// an upper-case letter so that Settle or Getaway are not accessors. A
// lower-case prefix (unexported accessor) yields a lower-case property name.
func trimAccessorPrefix(name, exported, unexported string) (string, bool) {
	for _, prefix := range []string{exported, unexported} {
		if prefix == "" || len(name) <= len(prefix) || name[:len(prefix)] != prefix {
			continue
		}
		rest := name[len(prefix):]
		if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsUpper(r) {
			continue
		}
		if prefix == unexported {
			return lowerFirst(rest), true
		}
		return rest, true
	}
	return "", false
}

func event[T any](sig Signature[T], ts TypeSystem[T]) (Event[T], bool) {
	if len(sig.Params) != 1 || sig.Variadic || !ts.IsFunc(sig.Params[0]) {
		return Event[T]{}, false
	}
	switch len(sig.Results) {
	case 0:
		return Event[T]{Name: sig.Name, Handler: sig.Params[0]}, true
	case 1:
		if !ts.IsCanceler(sig.Results[0]) {
			return Event[T]{}, false
		}
		return Event[T]{Name: sig.Name, Handler: sig.Params[0], Canceler: sig.Results[0], HasCanceler: true}, true
	}
	return Event[T]{}, false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
