// Package ir defines the intermediate representation passed from the
// provider, which walks Go interfaces with go/types, to the emitter, which
// writes null object stubs.
//
// Type expressions are carried as Go source text already qualified for the
// package the stubs are written into, together with the imports they need.
package ir

// GoIdentifier represents a named Go entity with package context.
type GoIdentifier struct {
	// Name is the declared identifier, without type arguments.
	Name string

	// Package is the fully qualified package path.
	Package string
}

// IsZero returns true if the identifier is empty.
func (id GoIdentifier) IsZero() bool {
	return id.Name == "" && id.Package == ""
}

// String returns the qualified name.
func (id GoIdentifier) String() string {
	if id.Package == "" {
		return id.Name
	}
	return id.Package + "." + id.Name
}

// Documentation holds documentation comments extracted from Go source.
type Documentation struct {
	// Summary is the first sentence or paragraph.
	Summary string

	// Body is the complete documentation text, including the summary.
	Body string

	// Deprecated is non-nil if the symbol is marked deprecated.
	// The string value is the deprecation message (may be empty).
	Deprecated *string
}

// IsZero returns true if the documentation is empty.
func (d Documentation) IsZero() bool {
	return d.Summary == "" && d.Body == "" && d.Deprecated == nil
}

// Source represents source code location information.
type Source struct {
	File   string
	Line   int
	Column int
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Column == 0
}

// Warning represents a non-fatal issue encountered during generation.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// Source is the location that triggered the warning, if applicable.
	Source *Source

	// TypeName is the interface that triggered the warning, if applicable.
	TypeName string
}

// PackageInfo describes a Go package.
type PackageInfo struct {
	// Path is the import path (e.g., "github.com/foo/bar").
	Path string

	// Name is the package name (e.g., "bar").
	Name string

	// Dir is the filesystem directory, if known.
	Dir string
}

// IsZero returns true if the package info is empty.
func (p PackageInfo) IsZero() bool {
	return p.Path == "" && p.Name == "" && p.Dir == ""
}

// Import is a package referenced by a type expression.
type Import struct {
	// Path is the import path.
	Path string

	// Name is the local name used in type expressions. It differs from the
	// package name only when two imports would otherwise collide.
	Name string

	// Alias reports whether Name must be written in the import spec.
	Alias bool
}
