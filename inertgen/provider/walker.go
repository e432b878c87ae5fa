package provider

import (
	"errors"
	"fmt"
	"go/types"
	"slices"
	"strings"

	"github.com/broady/inert/internal/member"
)

var (
	// ErrNotInterface is returned when a target type is not an interface.
	ErrNotInterface = errors.New("not an interface")

	// ErrTypeSetInterface is returned for constraint interfaces (type terms,
	// unions, comparable), which no type can implement at run time.
	ErrTypeSetInterface = errors.New("interface has a type set and is only usable as a constraint")

	// ErrUnexportedForeignMethod is returned when an interface embeds an
	// unexported method of another package, which code outside that package
	// cannot implement.
	ErrUnexportedForeignMethod = errors.New("interface has an unexported method of another package")

	// ErrInstanceLayout is returned when type arguments turn a method into a
	// property or event (or the reverse). One generic stub serves every
	// instantiation, so each must classify its members like the declaration.
	ErrInstanceLayout = errors.New("type arguments change how members are classified")
)

// walkInterface returns the flattened method set of iface: its explicit
// methods followed, depth first, by those of each embedded interface. A
// method reached through several embedding paths appears once.
func walkInterface(iface *types.Interface, pkg *types.Package) ([]*types.Func, error) {
	if !iface.IsMethodSet() {
		return nil, ErrTypeSetInterface
	}

	w := &walker{pkg: pkg, seen: make(map[string]*types.Func)}
	if err := w.walk(iface); err != nil {
		return nil, err
	}
	if len(w.methods) != iface.NumMethods() {
		return nil, fmt.Errorf("walked %d methods, type checker reports %d", len(w.methods), iface.NumMethods())
	}
	return w.methods, nil
}

type walker struct {
	pkg     *types.Package
	seen    map[string]*types.Func // by Func.Id
	methods []*types.Func
}

func (w *walker) walk(iface *types.Interface) error {
	for i := 0; i < iface.NumExplicitMethods(); i++ {
		if err := w.add(iface.ExplicitMethod(i)); err != nil {
			return err
		}
	}
	for i := 0; i < iface.NumEmbeddeds(); i++ {
		emb := iface.EmbeddedType(i)
		under, ok := emb.Underlying().(*types.Interface)
		if !ok {
			return fmt.Errorf("embedded %s: %w", emb, ErrTypeSetInterface)
		}
		if err := w.walk(under); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) add(m *types.Func) error {
	if !m.Exported() && m.Pkg() != w.pkg {
		return fmt.Errorf("%s.%s: %w", m.Pkg().Path(), m.Name(), ErrUnexportedForeignMethod)
	}
	id := m.Id()
	if prev, ok := w.seen[id]; ok {
		if !types.Identical(prev.Type(), m.Type()) {
			return fmt.Errorf("method %s declared with conflicting signatures %s and %s", m.Name(), prev.Type(), m.Type())
		}
		return nil
	}
	w.seen[id] = m
	w.methods = append(w.methods, m)
	return nil
}

// signatures converts methods for the member classifier.
func signatures(methods []*types.Func) []member.Signature[types.Type] {
	sigs := make([]member.Signature[types.Type], 0, len(methods))
	for _, m := range methods {
		sig := m.Type().(*types.Signature)
		s := member.Signature[types.Type]{Name: m.Name(), Variadic: sig.Variadic()}
		for i := 0; i < sig.Params().Len(); i++ {
			s.Params = append(s.Params, sig.Params().At(i).Type())
		}
		for i := 0; i < sig.Results().Len(); i++ {
			s.Results = append(s.Results, sig.Results().At(i).Type())
		}
		sigs = append(sigs, s)
	}
	return sigs
}

// goTypes adapts go/types to the member classifier.
type goTypes struct{}

func (goTypes) Identical(a, b types.Type) bool { return types.Identical(a, b) }

func (goTypes) IsFunc(t types.Type) bool {
	_, ok := t.Underlying().(*types.Signature)
	return ok
}

func (goTypes) IsCanceler(t types.Type) bool {
	sig, ok := t.Underlying().(*types.Signature)
	return ok && sig.Params().Len() == 0 && sig.Results().Len() == 0
}

// layout lists how set classifies each member, sorted.
func layout[T any](set *member.Set[T]) []string {
	out := make([]string, 0, set.Len())
	for _, p := range set.Properties {
		switch {
		case p.HasGetter() && p.HasSetter():
			out = append(out, fmt.Sprintf("property %s (%s, %s)", p.Name, p.Getter, p.Setter))
		case p.HasGetter():
			out = append(out, fmt.Sprintf("property %s (%s)", p.Name, p.Getter))
		default:
			out = append(out, fmt.Sprintf("property %s (%s)", p.Name, p.Setter))
		}
	}
	for _, e := range set.Events {
		if e.HasCanceler {
			out = append(out, "event "+e.Name+" with canceler")
			continue
		}
		out = append(out, "event "+e.Name)
	}
	for _, m := range set.Methods {
		out = append(out, "method "+m.Name)
	}
	slices.Sort(out)
	return out
}

// compareLayouts returns nil when both layouts match, and otherwise an
// ErrInstanceLayout error naming the members that differ.
func compareLayouts(generic, inst []string) error {
	if slices.Equal(generic, inst) {
		return nil
	}
	var diffs []string
	for _, l := range generic {
		if !slices.Contains(inst, l) {
			diffs = append(diffs, "declared "+l)
		}
	}
	for _, l := range inst {
		if !slices.Contains(generic, l) {
			diffs = append(diffs, "instantiated "+l)
		}
	}
	return fmt.Errorf("%w: %s", ErrInstanceLayout, strings.Join(diffs, "; "))
}
