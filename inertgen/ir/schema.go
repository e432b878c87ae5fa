package ir

import (
	"go/token"
	"strconv"
)

// Schema is everything the emitter needs to write one stub file.
type Schema struct {
	// Package is the package the stubs are written into. Every interface in
	// the schema is declared there.
	Package PackageInfo

	// Interfaces are the interfaces that get a stub type, in any order.
	Interfaces []*InterfaceDescriptor

	// Targets are the instantiations registered with the runtime.
	Targets []Target

	// Imports are the packages referenced by member types.
	Imports []Import

	// Warnings contains non-fatal issues encountered during schema building.
	Warnings []Warning
}

// AddInterface adds an interface descriptor to the schema.
func (s *Schema) AddInterface(d *InterfaceDescriptor) {
	s.Interfaces = append(s.Interfaces, d)
}

// AddTarget adds a target to the schema.
func (s *Schema) AddTarget(t Target) {
	s.Targets = append(s.Targets, t)
}

// AddWarning adds a warning to the schema.
func (s *Schema) AddWarning(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// FindInterface looks up an interface by name. Returns nil if not found.
func (s *Schema) FindInterface(name GoIdentifier) *InterfaceDescriptor {
	for _, d := range s.Interfaces {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// FindTarget looks up a target by expression. Returns nil if not found.
func (s *Schema) FindTarget(expr string) *Target {
	for i := range s.Targets {
		if s.Targets[i].Expr == expr {
			return &s.Targets[i]
		}
	}
	return nil
}

// Validate checks the schema for structural issues.
// Returns all validation errors found (not just the first).
func (s *Schema) Validate() []error {
	var errs []*ValidationError

	names := make(map[GoIdentifier]*InterfaceDescriptor)
	stubs := make(map[string]string)
	ctors := make(map[string]string)
	for _, d := range s.Interfaces {
		if names[d.Name] != nil {
			errs = append(errs, &ValidationError{
				Code:    "duplicate_interface",
				Message: "duplicate interface: " + d.Name.String(),
			})
		}
		names[d.Name] = d

		if d.Name.Package != s.Package.Path {
			errs = append(errs, &ValidationError{
				Code:    "foreign_interface",
				Message: "interface " + d.Name.String() + " is not declared in package " + s.Package.Path,
			})
		}

		if !token.IsIdentifier(d.Stub) {
			errs = append(errs, &ValidationError{
				Code:    "invalid_stub_name",
				Message: "stub name for " + d.Name.Name + " is not a valid identifier: " + strconv.Quote(d.Stub),
			})
		} else if other, ok := stubs[d.Stub]; ok {
			errs = append(errs, &ValidationError{
				Code:    "duplicate_stub_name",
				Message: "interfaces " + other + " and " + d.Name.Name + " share stub name " + d.Stub,
			})
		}
		stubs[d.Stub] = d.Name.Name

		if d.Constructor != "" {
			if !token.IsIdentifier(d.Constructor) {
				errs = append(errs, &ValidationError{
					Code:    "invalid_constructor_name",
					Message: "constructor name for " + d.Name.Name + " is not a valid identifier: " + strconv.Quote(d.Constructor),
				})
			} else if other, ok := ctors[d.Constructor]; ok {
				errs = append(errs, &ValidationError{
					Code:    "duplicate_constructor_name",
					Message: "interfaces " + other + " and " + d.Name.Name + " share constructor name " + d.Constructor,
				})
			}
			ctors[d.Constructor] = d.Name.Name
		}

		members := make(map[string]bool)
		for _, m := range d.MethodNames() {
			if members[m] {
				errs = append(errs, &ValidationError{
					Code:    "duplicate_member",
					Message: "interface " + d.Name.Name + " declares method " + m + " twice",
				})
			}
			members[m] = true
		}
	}

	for name := range ctors {
		if _, ok := stubs[name]; ok {
			errs = append(errs, &ValidationError{
				Code:    "constructor_stub_collision",
				Message: "constructor and stub share the name " + name,
			})
		}
	}

	exprs := make(map[string]bool)
	for _, t := range s.Targets {
		if exprs[t.Expr] {
			errs = append(errs, &ValidationError{
				Code:    "duplicate_target",
				Message: "duplicate target: " + t.Expr,
			})
		}
		exprs[t.Expr] = true

		d := names[t.Interface]
		if d == nil {
			errs = append(errs, &ValidationError{
				Code:    "unknown_interface",
				Message: "target " + t.Expr + " refers to unknown interface " + t.Interface.String(),
			})
			continue
		}
		if len(t.TypeArgs) != len(d.TypeParams) {
			errs = append(errs, &ValidationError{
				Code: "type_argument_count",
				Message: "target " + t.Expr + " has " + strconv.Itoa(len(t.TypeArgs)) +
					" type arguments, " + d.Name.Name + " has " + strconv.Itoa(len(d.TypeParams)) + " type parameters",
			})
		}
	}

	var result []error
	for _, e := range errs {
		result = append(result, e)
	}
	return result
}

// ValidationError is a structural problem found by Schema.Validate.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
