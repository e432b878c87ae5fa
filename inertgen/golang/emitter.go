package golang

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/broady/inert/inertgen/ir"
)

// InertPath is the import path of the runtime package.
const InertPath = "github.com/broady/inert"

// Emitter writes the Go source of a stub file. The output is syntactically
// valid but not formatted; Generate runs it through Format.
type Emitter struct {
	schema *ir.Schema
	config GeneratorConfig
}

// NewEmitter returns an emitter for schema.
func NewEmitter(schema *ir.Schema, config GeneratorConfig) *Emitter {
	return &Emitter{schema: schema, config: config}
}

// register reports whether the file gets an init function.
func (e *Emitter) register() bool {
	return !e.config.SkipRegistration && len(e.schema.Targets) > 0
}

// Emit returns the complete file.
func (e *Emitter) Emit() ([]byte, error) {
	var body bytes.Buffer

	ifaces := make([]*ir.InterfaceDescriptor, len(e.schema.Interfaces))
	copy(ifaces, e.schema.Interfaces)
	sort.Slice(ifaces, func(i, j int) bool { return ifaces[i].Stub < ifaces[j].Stub })

	for _, d := range ifaces {
		body.WriteString("\n")
		if err := e.EmitStub(&body, d); err != nil {
			return nil, err
		}
	}
	if e.register() {
		body.WriteString("\n")
		if err := e.emitRegistration(&body); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	buf.WriteString(Header)
	buf.WriteString("\n\npackage ")
	buf.WriteString(e.schema.Package.Name)
	buf.WriteString("\n")
	e.emitImports(&buf, body.Bytes())
	buf.Write(body.Bytes())
	return buf.Bytes(), nil
}

// emitImports writes the import declaration for the imports body refers to,
// standard library first.
func (e *Emitter) emitImports(buf *bytes.Buffer, body []byte) {
	var std, other []ir.Import
	add := func(imp ir.Import) {
		if !references(body, imp.Name) {
			return
		}
		if isStd(imp.Path) {
			std = append(std, imp)
		} else {
			other = append(other, imp)
		}
	}
	for _, imp := range e.schema.Imports {
		add(imp)
	}
	if e.register() {
		add(ir.Import{Path: InertPath, Name: "inert"})
	}

	byPath := func(list []ir.Import) {
		sort.Slice(list, func(i, j int) bool { return list[i].Path < list[j].Path })
	}
	byPath(std)
	byPath(other)

	spec := func(imp ir.Import) string {
		if imp.Alias {
			return fmt.Sprintf("%s %q", imp.Name, imp.Path)
		}
		return fmt.Sprintf("%q", imp.Path)
	}

	switch n := len(std) + len(other); {
	case n == 0:
		return
	case n == 1:
		buf.WriteString("\nimport ")
		buf.WriteString(spec(append(std, other...)[0]))
		buf.WriteString("\n")
		return
	}

	buf.WriteString("\nimport (\n")
	for _, imp := range std {
		buf.WriteString("\t" + spec(imp) + "\n")
	}
	if len(std) > 0 && len(other) > 0 {
		buf.WriteString("\n")
	}
	for _, imp := range other {
		buf.WriteString("\t" + spec(imp) + "\n")
	}
	buf.WriteString(")\n")
}

// references reports whether src contains a selector on name.
func references(src []byte, name string) bool {
	re := regexp.MustCompile(`(^|[^\w.])` + regexp.QuoteMeta(name) + `\.`)
	return re.Match(src)
}

// stub holds the names chosen for one stub type.
type stub struct {
	d       *ir.InterfaceDescriptor
	typ     string   // stub type with its type parameters, e.g. nullBox[V]
	decl    string   // type parameter list with constraints, e.g. [V any]
	iface   string   // interface with its type parameters, e.g. Box[V]
	recv    string   // receiver name for methods that touch fields
	param   string   // setter parameter name
	fields  []string // field of each property, parallel to props
	props   []ir.Property
	events  []ir.Event
	methods []ir.Method
	tpNames []string
}

func newStub(d *ir.InterfaceDescriptor) *stub {
	s := &stub{d: d}
	for _, tp := range d.TypeParams {
		s.tpNames = append(s.tpNames, tp.Name)
	}
	if d.Generic() {
		args := "[" + strings.Join(s.tpNames, ", ") + "]"
		s.typ = d.Stub + args
		s.iface = d.Name.Name + args
		decl := make([]string, len(d.TypeParams))
		for i, tp := range d.TypeParams {
			decl[i] = tp.Name + " " + tp.Constraint
		}
		s.decl = "[" + strings.Join(decl, ", ") + "]"
	} else {
		s.typ = d.Stub
		s.iface = d.Name.Name
	}

	local := newNames(s.tpNames...)
	s.recv = local.claim("s")
	s.param = local.claim("v")

	s.props = append(s.props, d.Properties...)
	sort.Slice(s.props, func(i, j int) bool { return s.props[i].Name < s.props[j].Name })
	s.events = append(s.events, d.Events...)
	sort.Slice(s.events, func(i, j int) bool { return s.events[i].Name < s.events[j].Name })
	s.methods = append(s.methods, d.Methods...)
	sort.Slice(s.methods, func(i, j int) bool { return s.methods[i].Name < s.methods[j].Name })

	// Fields share a namespace with the stub's methods.
	fields := newNames(d.MethodNames()...)
	for _, p := range s.props {
		s.fields = append(s.fields, fields.claim(lowerFirst(p.Name)))
	}
	return s
}

// EmitStub writes the stub type for d and all of its methods.
func (e *Emitter) EmitStub(buf *bytes.Buffer, d *ir.InterfaceDescriptor) error {
	if d.Stub == "" {
		return fmt.Errorf("interface %s has no stub name", d.Name)
	}
	s := newStub(d)

	fmt.Fprintf(buf, "// %s is the null object for %s.\n", d.Stub, d.Name.Name)
	if e.config.EmitComments && d.Doc.Summary != "" {
		buf.WriteString("//\n")
		for _, line := range wrap(d.Doc.Summary, 76) {
			buf.WriteString("// " + line + "\n")
		}
	}
	fmt.Fprintf(buf, "type %s%s struct", d.Stub, s.decl)
	if len(s.props) == 0 {
		buf.WriteString("{}\n")
	} else {
		buf.WriteString(" {\n")
		for i, p := range s.props {
			fmt.Fprintf(buf, "\t%s %s\n", s.fields[i], p.Type)
		}
		buf.WriteString("}\n")
	}

	for i, p := range s.props {
		if p.Getter != "" {
			fmt.Fprintf(buf, "\nfunc (%s *%s) %s() %s { return %s.%s }\n",
				s.recv, s.typ, p.Getter, p.Type, s.recv, s.fields[i])
		}
		if p.Setter != "" {
			fmt.Fprintf(buf, "\nfunc (%s *%s) %s(%s %s) { %s.%s = %s }\n",
				s.recv, s.typ, p.Setter, s.param, p.Type, s.recv, s.fields[i], s.param)
		}
	}

	for _, ev := range s.events {
		if ev.Canceler == "" {
			fmt.Fprintf(buf, "\nfunc (*%s) %s(%s) {}\n", s.typ, ev.Name, ev.Handler)
			continue
		}
		fmt.Fprintf(buf, "\nfunc (*%s) %s(%s) %s { return func() {} }\n", s.typ, ev.Name, ev.Handler, ev.Canceler)
	}

	for _, m := range s.methods {
		fmt.Fprintf(buf, "\nfunc (*%s) %s(%s)", s.typ, m.Name, strings.Join(m.Params, ", "))
		if len(m.Results) == 0 {
			buf.WriteString(" {}\n")
			continue
		}
		results := make([]string, len(m.Results))
		for i, r := range m.Results {
			results[i] = "_ " + r
		}
		fmt.Fprintf(buf, " (%s) { return }\n", strings.Join(results, ", "))
	}

	if d.Constructor != "" {
		fmt.Fprintf(buf, "\n// %s returns a new null object for %s.\n", d.Constructor, d.Name.Name)
		fmt.Fprintf(buf, "func %s%s() %s { return new(%s) }\n", d.Constructor, s.decl, s.iface, s.typ)
	}
	return nil
}

// emitRegistration writes the init function that provides every target to
// the runtime.
func (e *Emitter) emitRegistration(buf *bytes.Buffer) error {
	targets := make([]ir.Target, len(e.schema.Targets))
	copy(targets, e.schema.Targets)
	sort.Slice(targets, func(i, j int) bool { return targets[i].Expr < targets[j].Expr })

	buf.WriteString("func init() {\n")
	for _, t := range targets {
		d := e.schema.FindInterface(t.Interface)
		if d == nil {
			return fmt.Errorf("target %s: unknown interface %s", t.Expr, t.Interface)
		}
		if len(t.TypeArgs) != len(d.TypeParams) {
			return fmt.Errorf("target %s: %d type arguments for %d type parameters", t.Expr, len(t.TypeArgs), len(d.TypeParams))
		}
		expr := t.Expr
		if expr == "" {
			expr = ir.TargetExpr(d.Name.Name, t.TypeArgs)
		}
		fmt.Fprintf(buf, "\tinert.Provide(func() %s { return new(%s) })\n", expr, ir.TargetExpr(d.Stub, t.TypeArgs))
	}
	buf.WriteString("}\n")
	return nil
}

// wrap breaks text into lines of at most width runes where possible.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
