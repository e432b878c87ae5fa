package inert

import (
	"fmt"
	"reflect"

	"github.com/broady/inert/internal/member"
)

// MemberKind identifies the category of an interface member.
type MemberKind int

const (
	KindMethod MemberKind = iota
	KindProperty
	KindEvent
)

func (k MemberKind) String() string {
	return member.Kind(k).String()
}

// Member describes one member of an interface as the synthesizer sees it.
//
// Type is the property value type for properties, the handler type for
// events, and the method's func type (without receiver) for methods.
type Member struct {
	Kind MemberKind
	Name string
	Type reflect.Type

	// Getter and Setter name the accessor methods of a property.
	Getter string
	Setter string

	// Canceler is the unsubscribe func type returned by an event, or nil.
	Canceler reflect.Type
}

// accessor locates the member served by an interface method.
type accessor struct {
	index int
	role  accessorRole
}

type accessorRole int

const (
	roleCall accessorRole = iota
	roleGet
	roleSet
	roleSubscribe
)

// MemberSet is the flattened, classified member table of one interface.
// It is immutable once built and shared by every Object of the interface.
type MemberSet struct {
	typ     reflect.Type
	members []Member
	byName  map[string]int
	methods map[string]accessor
}

// Members classifies the method set of interface type t. The reflect method
// set of an interface already includes every embedded interface, with
// duplicates collapsed.
func Members(t reflect.Type) (*MemberSet, error) {
	if t == nil || t.Kind() != reflect.Interface {
		return nil, &KindError{Type: t}
	}

	sigs := make([]member.Signature[reflect.Type], 0, t.NumMethod())
	funcs := make(map[string]reflect.Type, t.NumMethod())
	pkgs := make(map[string]string, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		// Unexported methods of different packages may share a name; members
		// are addressed by name alone.
		if prev, dup := pkgs[m.Name]; dup {
			return nil, &SynthesisError{
				Type:  t,
				Cause: fmt.Errorf("method %s is declared by both %s and %s", m.Name, prev, m.PkgPath),
			}
		}
		pkgs[m.Name] = m.PkgPath
		ft := m.Type
		sig := member.Signature[reflect.Type]{Name: m.Name, Variadic: ft.IsVariadic()}
		for j := 0; j < ft.NumIn(); j++ {
			sig.Params = append(sig.Params, ft.In(j))
		}
		for j := 0; j < ft.NumOut(); j++ {
			sig.Results = append(sig.Results, ft.Out(j))
		}
		sigs = append(sigs, sig)
		funcs[m.Name] = ft
	}

	set := member.Classify(sigs, reflectTypes{})

	ms := &MemberSet{
		typ:     t,
		members: make([]Member, 0, set.Len()),
		byName:  make(map[string]int, set.Len()),
		methods: make(map[string]accessor, len(sigs)),
	}
	for _, p := range set.Properties {
		idx := ms.add(Member{Kind: KindProperty, Name: p.Name, Type: p.Type, Getter: p.Getter, Setter: p.Setter})
		if p.HasGetter() {
			ms.methods[p.Getter] = accessor{index: idx, role: roleGet}
		}
		if p.HasSetter() {
			ms.methods[p.Setter] = accessor{index: idx, role: roleSet}
		}
	}
	for _, ev := range set.Events {
		m := Member{Kind: KindEvent, Name: ev.Name, Type: ev.Handler}
		if ev.HasCanceler {
			m.Canceler = ev.Canceler
		}
		ms.methods[ev.Name] = accessor{index: ms.add(m), role: roleSubscribe}
	}
	for _, sig := range set.Methods {
		idx := ms.add(Member{Kind: KindMethod, Name: sig.Name, Type: funcs[sig.Name]})
		ms.methods[sig.Name] = accessor{index: idx, role: roleCall}
	}
	return ms, nil
}

func (ms *MemberSet) add(m Member) int {
	idx := len(ms.members)
	ms.members = append(ms.members, m)
	// A property may share its name with its own getter; the property wins.
	if _, taken := ms.byName[m.Name]; !taken {
		ms.byName[m.Name] = idx
	}
	return idx
}

// Type returns the interface type.
func (ms *MemberSet) Type() reflect.Type { return ms.typ }

// Len returns the number of members.
func (ms *MemberSet) Len() int { return len(ms.members) }

// All returns a copy of the members: properties first, then events, then
// methods.
func (ms *MemberSet) All() []Member {
	out := make([]Member, len(ms.members))
	copy(out, ms.members)
	return out
}

// Lookup returns the member with the given name.
func (ms *MemberSet) Lookup(name string) (Member, bool) {
	idx, ok := ms.byName[name]
	if !ok {
		return Member{}, false
	}
	return ms.members[idx], true
}

// reflectTypes adapts reflect to the classifier.
type reflectTypes struct{}

func (reflectTypes) Identical(a, b reflect.Type) bool { return a == b }

func (reflectTypes) IsFunc(t reflect.Type) bool { return t.Kind() == reflect.Func }

func (reflectTypes) IsCanceler(t reflect.Type) bool {
	return t.Kind() == reflect.Func && t.NumIn() == 0 && t.NumOut() == 0
}
