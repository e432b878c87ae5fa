package ir

import "strings"

// MemberKind identifies the category of an interface member.
type MemberKind int

const (
	KindProperty MemberKind = iota // getter and/or setter backed by a slot
	KindEvent                      // subscription taking a handler func
	KindMethod                     // anything else
)

// String returns the string representation of the member kind.
func (k MemberKind) String() string {
	switch k {
	case KindProperty:
		return "Property"
	case KindEvent:
		return "Event"
	case KindMethod:
		return "Method"
	default:
		return "Unknown"
	}
}

// InterfaceDescriptor is one interface, flattened and classified.
//
// For generic interfaces the members are expressed in terms of the
// interface's own type parameters; Targets pick the instantiations.
type InterfaceDescriptor struct {
	Name       GoIdentifier
	TypeParams []TypeParam
	Doc        Documentation
	Source     Source

	Properties []Property
	Events     []Event
	Methods    []Method

	// Stub is the name of the generated stub type.
	Stub string

	// Constructor is the name of the exported constructor, if one is
	// generated.
	Constructor string
}

// Generic reports whether the interface declares type parameters.
func (d *InterfaceDescriptor) Generic() bool {
	return len(d.TypeParams) > 0
}

// Len returns the number of members.
func (d *InterfaceDescriptor) Len() int {
	return len(d.Properties) + len(d.Events) + len(d.Methods)
}

// MethodNames returns the names of every interface method the stub must
// declare, accessors and subscriptions included.
func (d *InterfaceDescriptor) MethodNames() []string {
	var names []string
	for _, p := range d.Properties {
		if p.Getter != "" {
			names = append(names, p.Getter)
		}
		if p.Setter != "" {
			names = append(names, p.Setter)
		}
	}
	for _, e := range d.Events {
		names = append(names, e.Name)
	}
	for _, m := range d.Methods {
		names = append(names, m.Name)
	}
	return names
}

// TypeParam is a type parameter of a generic interface.
type TypeParam struct {
	Name       string
	Constraint string
}

// Property is a slot-backed member.
type Property struct {
	Name   string
	Type   string
	Getter string // empty for setter-only properties
	Setter string // empty for getter-only properties
}

// Event is a subscription method. Canceler is the returned func type, or
// empty when the method returns nothing.
type Event struct {
	Name     string
	Handler  string
	Canceler string
}

// Method is a plain method. For variadic methods the last parameter is
// written with its "..." prefix.
type Method struct {
	Name     string
	Params   []string
	Results  []string
	Variadic bool
}

// Target is one interface instantiation that gets a registered stub.
type Target struct {
	// Interface is the (possibly generic) interface.
	Interface GoIdentifier

	// TypeArgs are the type arguments, empty for non-generic interfaces.
	TypeArgs []string

	// Expr is the instantiated type as written in the generated file,
	// e.g. "Shape" or "Pair[int]".
	Expr string
}

// TargetExpr formats name instantiated with args.
func TargetExpr(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + "[" + strings.Join(args, ", ") + "]"
}
