// Package directive parses inert directives from Go source files.
//
// Directives are line comments in the doc comment of an interface type
// declaration:
//
//	// Shape is anything with an area.
//	//
//	//inert:null
//	type Shape interface{ Area() int }
//
// Options follow the verb as key=value pairs:
//
//	//inert:null name=quietShape ctor=NewQuietShape
//	//inert:null inst=int inst=string,*Item
//	//inert:null skip
//
// name sets the stub type name, ctor the exported constructor name, inst adds
// one instantiation of a generic interface (type arguments separated by
// commas) and skip excludes the interface even when it is listed explicitly.
package directive

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"net/url"
	"sort"
	"strings"

	"github.com/gorilla/schema"
)

const prefix = "//inert:"

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(false)
}

// Directive is a parsed //inert:null directive.
type Directive struct {
	TypeName string         // interface the directive is attached to
	Options  Options        // decoded key=value options
	Pos      token.Position // source location of the directive comment
}

// Options are the key=value pairs of a directive.
type Options struct {
	Name string   `schema:"name"`
	Ctor string   `schema:"ctor"`
	Inst []string `schema:"inst"`
	Skip bool     `schema:"skip"`
}

// Instantiations splits each inst option into its type arguments.
func (o Options) Instantiations() ([][]string, error) {
	var out [][]string
	for _, inst := range o.Inst {
		args, err := SplitTypeArgs(inst)
		if err != nil {
			return nil, err
		}
		out = append(out, args)
	}
	return out, nil
}

// ParseFiles extracts directives from already parsed files. The files must
// have been parsed with comments.
//
// Returns an error if:
//   - A directive verb or option is unknown
//   - A directive is not attached to an interface type declaration
//   - An interface carries more than one directive
func ParseFiles(fset *token.FileSet, files []*ast.File) ([]Directive, error) {
	var all []Directive
	seen := make(map[string]token.Position)
	for _, f := range files {
		directives, err := parseFile(fset, f)
		if err != nil {
			return nil, err
		}
		for _, d := range directives {
			if prev, ok := seen[d.TypeName]; ok {
				return nil, fmt.Errorf("multiple //inert:null directives for %s:\n  %s\n  %s", d.TypeName, prev, d.Pos)
			}
			seen[d.TypeName] = d.Pos
			all = append(all, d)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].TypeName < all[j].TypeName })
	return all, nil
}

type pending struct {
	fields []string
	pos    token.Position
	used   bool
}

// parseFile extracts directives from a single file.
func parseFile(fset *token.FileSet, f *ast.File) ([]Directive, error) {
	// Directives keyed by the end of their comment group, so they can be
	// matched to the declaration the group documents.
	byGroup := make(map[token.Pos][]*pending)
	var order []*pending

	for _, cg := range f.Comments {
		for _, c := range cg.List {
			if !strings.HasPrefix(c.Text, prefix) {
				continue
			}
			fields := strings.Fields(strings.TrimPrefix(c.Text, prefix))
			pos := fset.Position(c.Pos())
			if len(fields) == 0 {
				return nil, fmt.Errorf("%s: empty //inert: directive", pos)
			}
			if fields[0] != "null" {
				return nil, fmt.Errorf("%s: unknown directive %s%s", pos, prefix, fields[0])
			}
			p := &pending{fields: fields[1:], pos: pos}
			byGroup[cg.End()] = append(byGroup[cg.End()], p)
			order = append(order, p)
		}
	}

	var directives []Directive
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			if doc == nil {
				continue
			}
			ps := byGroup[doc.End()]
			if len(ps) == 0 {
				continue
			}
			for _, p := range ps {
				p.used = true
			}
			if _, ok := ts.Type.(*ast.InterfaceType); !ok {
				return nil, fmt.Errorf("%s: //inert:null directive must be attached to an interface type declaration, %s is not an interface", ps[0].pos, ts.Name.Name)
			}
			if len(ps) > 1 {
				return nil, fmt.Errorf("multiple //inert:null directives for %s:\n  %s\n  %s", ts.Name.Name, ps[0].pos, ps[1].pos)
			}
			opts, err := decodeOptions(ps[0].fields)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", ps[0].pos, err)
			}
			if len(opts.Inst) > 0 && ts.TypeParams == nil {
				return nil, fmt.Errorf("%s: inst option on non-generic interface %s", ps[0].pos, ts.Name.Name)
			}
			directives = append(directives, Directive{
				TypeName: ts.Name.Name,
				Options:  opts,
				Pos:      ps[0].pos,
			})
		}
	}

	for _, p := range order {
		if !p.used {
			return nil, fmt.Errorf("%s: //inert:null directive must be attached to an interface type declaration", p.pos)
		}
	}

	return directives, nil
}

// decodeOptions turns key=value fields into Options. A bare key is true.
func decodeOptions(fields []string) (Options, error) {
	values := url.Values{}
	for _, field := range fields {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			value = "true"
		}
		if key == "" {
			return Options{}, fmt.Errorf("invalid option %q", field)
		}
		values.Add(key, value)
	}

	var opts Options
	if err := decoder.Decode(&opts, values); err != nil {
		return Options{}, optionError(err)
	}
	for _, key := range []string{"name", "ctor", "skip"} {
		if len(values[key]) > 1 {
			return Options{}, fmt.Errorf("option %s given more than once", key)
		}
	}
	return opts, nil
}

// optionError flattens schema's MultiError into a deterministic message.
func optionError(err error) error {
	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return fmt.Errorf("invalid options: %w", err)
	}
	keys := make([]string, 0, len(multi))
	for key := range multi {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, key := range keys {
		var unknown schema.UnknownKeyError
		if errors.As(multi[key], &unknown) {
			msgs = append(msgs, "unknown option "+key)
			continue
		}
		msgs = append(msgs, fmt.Sprintf("option %s: %v", key, multi[key]))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// SplitTypeArgs splits a comma-separated type argument list, ignoring commas
// nested inside brackets, parentheses or braces.
func SplitTypeArgs(s string) ([]string, error) {
	var args []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced type arguments %q", s)
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced type arguments %q", s)
	}
	args = append(args, strings.TrimSpace(s[start:]))
	for _, a := range args {
		if a == "" {
			return nil, fmt.Errorf("empty type argument in %q", s)
		}
	}
	return args, nil
}
