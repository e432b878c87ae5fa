// Package provider loads Go packages and turns the interfaces selected for
// null object generation into the intermediate representation.
package provider

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/broady/inert/inertgen/ir"
	"github.com/broady/inert/internal/directive"
	"github.com/broady/inert/internal/member"
	"golang.org/x/tools/go/packages"
)

// InertPath is the import path of the runtime package generated code
// registers its stubs with.
const InertPath = "github.com/broady/inert"

// SourceProvider extracts interfaces by analyzing Go source code.
type SourceProvider struct{}

// SourceInputOptions configures source-based interface extraction.
type SourceInputOptions struct {
	// Package is the Go package pattern to analyze. It must match exactly
	// one package.
	Package string

	// Dir is the working directory for package loading. Empty means the
	// current directory.
	Dir string

	// Types are type expressions evaluated in package scope, e.g. "Shape"
	// or "Pair[int]".
	Types []string

	// Directives enables //inert:null directive scanning.
	Directives bool

	// StubPrefix is prepended to interface names to name stub types.
	// Defaults to "null".
	StubPrefix string

	// Constructors requests an exported constructor for every stub.
	Constructors bool

	// Overlay replaces file contents during loading, keyed by absolute path.
	Overlay map[string][]byte
}

// BuildSchema loads the package and returns a Schema for the selected
// interfaces. Interfaces are sorted by name and targets by expression.
func (p *SourceProvider) BuildSchema(ctx context.Context, opts SourceInputOptions) (*ir.Schema, error) {
	if opts.Package == "" {
		return nil, fmt.Errorf("no package specified")
	}
	if opts.StubPrefix == "" {
		opts.StubPrefix = "null"
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     opts.Dir,
		Overlay: opts.Overlay,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, opts.Package)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", opts.Package)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found matching %q; specify a single package", opts.Package)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package %s has errors: %v", pkg.PkgPath, pkg.Errors)
	}

	b := newSchemaBuilder(pkg, opts)

	if opts.Directives {
		directives, err := directive.ParseFiles(pkg.Fset, pkg.Syntax)
		if err != nil {
			return nil, err
		}
		for _, d := range directives {
			if err := b.addDirective(d); err != nil {
				return nil, err
			}
		}
	}

	for _, expr := range opts.Types {
		if err := b.addTypeExpr(expr, directive.Options{}); err != nil {
			return nil, fmt.Errorf("target %s: %w", expr, err)
		}
	}

	return b.finish(), nil
}

// schemaBuilder accumulates interfaces and targets for one package.
type schemaBuilder struct {
	pkg     *packages.Package
	opts    SourceInputOptions
	schema  *ir.Schema
	imports *importSet
	ifaces  map[*types.TypeName]*ir.InterfaceDescriptor
	layouts map[*types.TypeName][]string
	skipped map[string]bool
}

func newSchemaBuilder(pkg *packages.Package, opts SourceInputOptions) *schemaBuilder {
	info := ir.PackageInfo{Path: pkg.PkgPath, Name: pkg.Name}
	if len(pkg.GoFiles) > 0 {
		info.Dir = filepath.Dir(pkg.GoFiles[0])
	}
	return &schemaBuilder{
		pkg:     pkg,
		opts:    opts,
		schema:  &ir.Schema{Package: info},
		imports: newImportSet(pkg.Types),
		ifaces:  make(map[*types.TypeName]*ir.InterfaceDescriptor),
		layouts: make(map[*types.TypeName][]string),
		skipped: make(map[string]bool),
	}
}

func (b *schemaBuilder) addDirective(d directive.Directive) error {
	if d.Options.Skip {
		b.skipped[d.TypeName] = true
		return nil
	}
	insts, err := d.Options.Instantiations()
	if err != nil {
		return fmt.Errorf("%s: %w", d.Pos, err)
	}
	if len(insts) == 0 {
		if err := b.addTypeExpr(d.TypeName, d.Options); err != nil {
			return fmt.Errorf("%s: %s: %w", d.Pos, d.TypeName, err)
		}
		return nil
	}
	for _, args := range insts {
		expr := ir.TargetExpr(d.TypeName, args)
		if err := b.addTypeExpr(expr, d.Options); err != nil {
			return fmt.Errorf("%s: %s: %w", d.Pos, expr, err)
		}
	}
	return nil
}

// addTypeExpr resolves expr in package scope and adds it as a target.
func (b *schemaBuilder) addTypeExpr(expr string, opts directive.Options) error {
	typ, err := b.resolve(expr)
	if err != nil {
		return err
	}

	named, ok := types.Unalias(typ).(*types.Named)
	if !ok {
		return fmt.Errorf("%s: %w", typ, ErrNotInterface)
	}
	origin := named.Origin()
	obj := origin.Obj()
	if obj.Pkg() != b.pkg.Types {
		return fmt.Errorf("%s is not declared in %s", obj.Name(), b.pkg.PkgPath)
	}
	if b.skipped[obj.Name()] {
		return nil
	}
	if _, ok := origin.Underlying().(*types.Interface); !ok {
		return fmt.Errorf("%s: %w", obj.Name(), ErrNotInterface)
	}
	if origin.TypeParams().Len() > 0 && named.TypeArgs().Len() == 0 {
		return fmt.Errorf("generic interface %s needs type arguments", obj.Name())
	}

	d, err := b.describe(obj, opts)
	if err != nil {
		return err
	}
	if named.TypeArgs().Len() > 0 {
		if err := b.checkInstance(named); err != nil {
			return err
		}
	}

	var args []string
	for i := 0; i < named.TypeArgs().Len(); i++ {
		args = append(args, b.typeString(named.TypeArgs().At(i)))
	}
	target := ir.Target{
		Interface: d.Name,
		TypeArgs:  args,
		Expr:      ir.TargetExpr(obj.Name(), args),
	}
	if b.schema.FindTarget(target.Expr) == nil {
		b.schema.AddTarget(target)
	}
	return nil
}

// checkInstance classifies the members of an instantiated generic interface
// with its type arguments substituted and compares the result with the
// declaration's classification, which the generic stub implements.
func (b *schemaBuilder) checkInstance(named *types.Named) error {
	iface, ok := named.Underlying().(*types.Interface)
	if !ok {
		return fmt.Errorf("%s: %w", named, ErrNotInterface)
	}
	methods, err := walkInterface(iface, b.pkg.Types)
	if err != nil {
		return fmt.Errorf("%s: %w", named.Obj().Name(), err)
	}
	inst := layout(member.Classify(signatures(methods), goTypes{}))
	return compareLayouts(b.layouts[named.Origin().Obj()], inst)
}

// resolve looks identifiers up directly and type checks anything else, such
// as instantiations, with types.Eval.
func (b *schemaBuilder) resolve(expr string) (types.Type, error) {
	if !token.IsIdentifier(expr) {
		tv, err := types.Eval(b.pkg.Fset, b.pkg.Types, token.NoPos, expr)
		if err != nil {
			return nil, err
		}
		if !tv.IsType() {
			return nil, fmt.Errorf("%s is not a type", expr)
		}
		return tv.Type, nil
	}

	_, obj := b.pkg.Types.Scope().LookupParent(expr, token.NoPos)
	if obj == nil {
		return nil, fmt.Errorf("undefined: %s", expr)
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%s is not a type", expr)
	}
	if named, ok := tn.Type().(*types.Named); ok && named.TypeParams().Len() > 0 {
		return nil, fmt.Errorf("generic interface %s needs type arguments", expr)
	}
	return tn.Type(), nil
}

// describe returns the descriptor of the interface declared by obj, building
// it on first use. Options only apply when the descriptor is built.
func (b *schemaBuilder) describe(obj *types.TypeName, opts directive.Options) (*ir.InterfaceDescriptor, error) {
	if d, ok := b.ifaces[obj]; ok {
		return d, nil
	}

	named := obj.Type().(*types.Named)
	iface := named.Underlying().(*types.Interface)
	methods, err := walkInterface(iface, b.pkg.Types)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", obj.Name(), err)
	}
	set := member.Classify(signatures(methods), goTypes{})
	b.layouts[obj] = layout(set)

	d := &ir.InterfaceDescriptor{
		Name:   ir.GoIdentifier{Name: obj.Name(), Package: b.pkg.PkgPath},
		Doc:    b.extractDocumentation(obj),
		Source: b.extractSource(obj),
		Stub:   b.opts.StubPrefix + obj.Name(),
	}
	if opts.Name != "" {
		d.Stub = opts.Name
	}
	if opts.Ctor != "" {
		d.Constructor = opts.Ctor
	} else if b.opts.Constructors {
		d.Constructor = "New" + upperFirst(d.Stub)
	}
	for _, name := range []string{d.Stub, d.Constructor} {
		if name != "" && b.pkg.Types.Scope().Lookup(name) != nil {
			return nil, fmt.Errorf("%s: generated name %s collides with an existing declaration", obj.Name(), name)
		}
	}

	for i := 0; i < named.TypeParams().Len(); i++ {
		tp := named.TypeParams().At(i)
		d.TypeParams = append(d.TypeParams, ir.TypeParam{
			Name:       tp.Obj().Name(),
			Constraint: b.typeString(tp.Constraint()),
		})
	}

	for _, p := range set.Properties {
		d.Properties = append(d.Properties, ir.Property{
			Name:   p.Name,
			Type:   b.typeString(p.Type),
			Getter: p.Getter,
			Setter: p.Setter,
		})
	}
	for _, e := range set.Events {
		ev := ir.Event{Name: e.Name, Handler: b.typeString(e.Handler)}
		if e.HasCanceler {
			ev.Canceler = b.typeString(e.Canceler)
		}
		d.Events = append(d.Events, ev)
	}
	for _, sig := range set.Methods {
		m := ir.Method{Name: sig.Name, Variadic: sig.Variadic}
		for i, t := range sig.Params {
			if sig.Variadic && i == len(sig.Params)-1 {
				m.Params = append(m.Params, "..."+b.typeString(t.(*types.Slice).Elem()))
				continue
			}
			m.Params = append(m.Params, b.typeString(t))
		}
		for _, t := range sig.Results {
			m.Results = append(m.Results, b.typeString(t))
		}
		d.Methods = append(d.Methods, m)
	}

	for _, mm := range set.Mismatches {
		src := d.Source
		b.schema.AddWarning(ir.Warning{
			Code:     "ACCESSOR_TYPE_MISMATCH",
			Message:  fmt.Sprintf("%s.%s and %s.%s have different value types; %s is treated as a method", obj.Name(), mm.Getter, obj.Name(), mm.Setter, mm.Getter),
			Source:   &src,
			TypeName: obj.Name(),
		})
	}
	if d.Doc.Deprecated != nil {
		src := d.Source
		b.schema.AddWarning(ir.Warning{
			Code:     "DEPRECATED_INTERFACE",
			Message:  fmt.Sprintf("interface %s is deprecated", obj.Name()),
			Source:   &src,
			TypeName: obj.Name(),
		})
	}

	b.ifaces[obj] = d
	b.schema.AddInterface(d)
	return d, nil
}

func (b *schemaBuilder) typeString(t types.Type) string {
	return types.TypeString(t, b.imports.qualifier)
}

func (b *schemaBuilder) finish() *ir.Schema {
	s := b.schema
	sort.Slice(s.Interfaces, func(i, j int) bool { return s.Interfaces[i].Name.Name < s.Interfaces[j].Name.Name })
	sort.Slice(s.Targets, func(i, j int) bool { return s.Targets[i].Expr < s.Targets[j].Expr })
	s.Imports = b.imports.list()
	return s
}

// extractDocumentation finds the doc comment of a type declaration.
func (b *schemaBuilder) extractDocumentation(obj types.Object) ir.Documentation {
	pos := obj.Pos()
	for _, file := range b.pkg.Syntax {
		if file.Pos() > pos || file.End() < pos {
			continue
		}
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)
				if ts.Name.Pos() != pos {
					continue
				}
				doc := ts.Doc
				if doc == nil {
					doc = gen.Doc
				}
				return parseDocumentation(doc)
			}
		}
	}
	return ir.Documentation{}
}

func parseDocumentation(cg *ast.CommentGroup) ir.Documentation {
	if cg == nil {
		return ir.Documentation{}
	}
	body := strings.TrimSpace(cg.Text())
	if body == "" {
		return ir.Documentation{}
	}

	doc := ir.Documentation{Body: body}
	paragraphs := strings.Split(body, "\n\n")
	doc.Summary = strings.Join(strings.Fields(paragraphs[0]), " ")
	for _, para := range paragraphs {
		if msg, ok := strings.CutPrefix(para, "Deprecated:"); ok {
			msg = strings.Join(strings.Fields(msg), " ")
			doc.Deprecated = &msg
			break
		}
	}
	return doc
}

func (b *schemaBuilder) extractSource(obj types.Object) ir.Source {
	pos := obj.Pos()
	if !pos.IsValid() || b.pkg.Fset == nil {
		return ir.Source{}
	}
	position := b.pkg.Fset.Position(pos)
	return ir.Source{
		File:   position.Filename,
		Line:   position.Line,
		Column: position.Column,
	}
}

// importSet names the packages referenced from type expressions. The
// generated file also imports the runtime package, so its name is reserved.
type importSet struct {
	self   *types.Package
	byPath map[string]*ir.Import
	taken  map[string]bool
}

func newImportSet(self *types.Package) *importSet {
	s := &importSet{
		self:   self,
		byPath: make(map[string]*ir.Import),
		taken:  map[string]bool{"inert": true},
	}
	// Package-level identifiers would shadow an import of the same name.
	for _, name := range self.Scope().Names() {
		s.taken[name] = true
	}
	return s
}

func (s *importSet) qualifier(p *types.Package) string {
	if p == s.self {
		return ""
	}
	if p.Path() == InertPath {
		return "inert"
	}
	if imp, ok := s.byPath[p.Path()]; ok {
		return imp.Name
	}
	name, alias := p.Name(), false
	for n := 2; s.taken[name]; n++ {
		name, alias = p.Name()+strconv.Itoa(n), true
	}
	s.taken[name] = true
	s.byPath[p.Path()] = &ir.Import{Path: p.Path(), Name: name, Alias: alias}
	return name
}

func (s *importSet) list() []ir.Import {
	out := make([]ir.Import, 0, len(s.byPath))
	for _, imp := range s.byPath {
		out = append(out, *imp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
