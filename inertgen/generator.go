// Package inertgen generates null object stubs for Go interfaces.
//
// The generated file declares one unexported stub type per interface and an
// init function that provides each stub to the inert runtime, so that
// inert.Of returns a usable null object for the interface.
//
//	inertgen.FromPackage("./shapes").
//	    Types("Shape", "Pair[int]").
//	    WithConstructors().
//	    Write(ctx)
//
// Interfaces can also opt in with a directive in their doc comment:
//
//	//inert:null
//	type Shape interface{ Area() int }
package inertgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/broady/inert/inertgen/golang"
	"github.com/broady/inert/inertgen/ir"
	"github.com/broady/inert/inertgen/provider"
	"github.com/broady/inert/inertgen/sink"
	"golang.org/x/tools/go/packages"
)

var (
	// ErrNoTargets is returned when neither explicit types nor directives
	// select an interface.
	ErrNoTargets = errors.New("no interfaces selected; pass type names or add //inert:null directives")

	// ErrStale is returned by Check when the generated file is missing or
	// out of date.
	ErrStale = errors.New("generated file is out of date")
)

// Generator provides a fluent API for stub generation.
// Create with FromPackage or FromConfig and configure with method chaining.
type Generator struct {
	cfg    Config
	logger *slog.Logger
}

// FromPackage creates a Generator for the package matching pattern.
func FromPackage(pattern string) *Generator {
	return &Generator{cfg: Config{Package: pattern}}
}

// FromConfig creates a Generator from a complete configuration.
func FromConfig(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// Dir sets the working directory for package loading.
func (g *Generator) Dir(dir string) *Generator {
	g.cfg.Dir = dir
	return g
}

// Types adds type expressions, e.g. "Shape" or "Pair[int]".
func (g *Generator) Types(exprs ...string) *Generator {
	g.cfg.Types = append(g.cfg.Types, exprs...)
	return g
}

// Output sets the name of the generated file.
func (g *Generator) Output(name string) *Generator {
	g.cfg.Output = name
	return g
}

// StubPrefix sets the prefix of stub type names.
func (g *Generator) StubPrefix(prefix string) *Generator {
	g.cfg.StubPrefix = prefix
	return g
}

// WithConstructors adds an exported constructor for every stub.
func (g *Generator) WithConstructors() *Generator {
	g.cfg.Constructors = true
	return g
}

// WithoutRegistration omits the init function.
func (g *Generator) WithoutRegistration() *Generator {
	g.cfg.NoRegister = true
	return g
}

// WithoutDirectives ignores //inert:null directives.
func (g *Generator) WithoutDirectives() *Generator {
	g.cfg.NoDirectives = true
	return g
}

// WithComments copies interface documentation onto stubs.
func (g *Generator) WithComments() *Generator {
	g.cfg.Comments = true
	return g
}

// Force allows overwriting an output file that is not generated code.
func (g *Generator) Force() *Generator {
	g.cfg.Force = true
	return g
}

// WithLogger sets the logger. The default is slog.Default().
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	g.logger = logger
	return g
}

// Config returns the configuration with defaults applied.
func (g *Generator) Config() Config {
	return applyConfigDefaults(g.cfg)
}

func (g *Generator) log() *slog.Logger {
	if g.logger != nil {
		return g.logger
	}
	return slog.Default()
}

// GenerateResult is the output of a generation run.
type GenerateResult struct {
	// Schema is the analyzed package.
	Schema *ir.Schema

	// Path is where the generated file belongs: the package directory
	// joined with the configured output name.
	Path string

	// Content is the formatted source.
	Content []byte

	// Stubs is the number of stub types generated.
	Stubs int

	// Targets is the number of instantiations registered with the runtime.
	Targets int

	// Warnings contains non-fatal issues encountered.
	Warnings []ir.Warning
}

// Schema loads the package and returns the analyzed interfaces without
// generating code.
func (g *Generator) Schema(ctx context.Context) (*ir.Schema, error) {
	cfg := g.Config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	schema, _, err := g.buildSchema(ctx, cfg)
	return schema, err
}

// Generate returns the generated file in memory without writing to disk.
// Use Write or ToDir to write it.
func (g *Generator) Generate(ctx context.Context) (*GenerateResult, error) {
	cfg := g.Config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := g.log()

	schema, dir, err := g.buildSchema(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if len(schema.Interfaces) == 0 {
		return nil, ErrNoTargets
	}

	mem := sink.NewMemorySink()
	gen := &golang.GoGenerator{}
	res, err := gen.Generate(ctx, schema, golang.GenerateOptions{
		Sink: mem,
		Config: golang.GeneratorConfig{
			Filename:         cfg.Output,
			SkipRegistration: cfg.NoRegister,
			EmitComments:     cfg.Comments,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate Go: %w", err)
	}

	for _, w := range res.Warnings {
		attrs := []any{"code", w.Code, "type", w.TypeName}
		if w.Source != nil && !w.Source.IsZero() {
			attrs = append(attrs, "source", fmt.Sprintf("%s:%d", w.Source.File, w.Source.Line))
		}
		logger.WarnContext(ctx, w.Message, attrs...)
	}
	logger.DebugContext(ctx, "generated stubs",
		"package", schema.Package.Path,
		"stubs", res.StubsGenerated,
		"targets", res.TargetsRegistered)

	return &GenerateResult{
		Schema:   schema,
		Path:     filepath.Join(dir, cfg.Output),
		Content:  mem.Get(cfg.Output),
		Stubs:    res.StubsGenerated,
		Targets:  res.TargetsRegistered,
		Warnings: res.Warnings,
	}, nil
}

// Write generates the stub file into the package directory.
func (g *Generator) Write(ctx context.Context) (*GenerateResult, error) {
	result, err := g.Generate(ctx)
	if err != nil {
		return nil, err
	}
	if err := g.write(ctx, filepath.Dir(result.Path), result); err != nil {
		return nil, err
	}
	return result, nil
}

// ToDir generates the stub file into dir instead of the package directory.
// Result.Path is updated to the written location.
func (g *Generator) ToDir(ctx context.Context, dir string) (*GenerateResult, error) {
	result, err := g.Generate(ctx)
	if err != nil {
		return nil, err
	}
	if err := g.write(ctx, dir, result); err != nil {
		return nil, err
	}
	result.Path = filepath.Join(dir, filepath.Base(result.Path))
	return result, nil
}

func (g *Generator) write(ctx context.Context, dir string, result *GenerateResult) error {
	cfg := g.Config()
	fs := sink.NewFilesystemSink(dir)
	fs.Force = cfg.Force
	if err := fs.WriteFile(ctx, cfg.Output, result.Content); err != nil {
		return err
	}
	g.log().InfoContext(ctx, "wrote stubs", "path", filepath.Join(dir, cfg.Output), "stubs", result.Stubs)
	return nil
}

// Check generates in memory and compares the result with the file on disk.
// It returns an error wrapping ErrStale when they differ.
func (g *Generator) Check(ctx context.Context) (*GenerateResult, error) {
	result, err := g.Generate(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := os.ReadFile(result.Path)
	if errors.Is(err, os.ErrNotExist) {
		return result, fmt.Errorf("%s: %w (missing)", result.Path, ErrStale)
	}
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(existing, result.Content) {
		return result, fmt.Errorf("%s: %w", result.Path, ErrStale)
	}
	return result, nil
}

// buildSchema runs the source provider. A previously generated output file
// is hidden from the type checker so a stale file cannot break loading.
func (g *Generator) buildSchema(ctx context.Context, cfg Config) (*ir.Schema, string, error) {
	dir, name, err := locate(ctx, cfg)
	if err != nil {
		return nil, "", err
	}

	out := filepath.Join(dir, cfg.Output)
	var overlay map[string][]byte
	if content, err := os.ReadFile(out); err == nil {
		if !sink.IsGenerated(content) && !cfg.Force {
			return nil, "", fmt.Errorf("%s: %w", out, sink.ErrNotGenerated)
		}
		if sink.IsGenerated(content) {
			overlay = map[string][]byte{out: []byte("package " + name + "\n")}
			g.log().DebugContext(ctx, "hiding existing output from type checker", "path", out)
		}
	}

	p := &provider.SourceProvider{}
	schema, err := p.BuildSchema(ctx, provider.SourceInputOptions{
		Package:      cfg.Package,
		Dir:          cfg.Dir,
		Types:        cfg.Types,
		Directives:   !cfg.NoDirectives,
		StubPrefix:   cfg.StubPrefix,
		Constructors: cfg.Constructors,
		Overlay:      overlay,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to build schema: %w", err)
	}
	schema.Package.Dir = dir
	return schema, dir, nil
}

// locate finds the directory and name of the package without type checking
// it.
func locate(ctx context.Context, cfg Config) (dir, name string, err error) {
	pkgs, err := packages.Load(&packages.Config{
		Context: ctx,
		Dir:     cfg.Dir,
		Mode:    packages.NeedName | packages.NeedFiles,
	}, cfg.Package)
	if err != nil {
		return "", "", fmt.Errorf("load package: %w", err)
	}
	if len(pkgs) != 1 {
		return "", "", fmt.Errorf("pattern %q matched %d packages; specify a single package", cfg.Package, len(pkgs))
	}
	// Errors are left for the type-checking load, which sees the overlay.
	pkg := pkgs[0]
	if len(pkg.GoFiles) == 0 {
		if len(pkg.Errors) > 0 {
			return "", "", fmt.Errorf("package %s has errors: %v", pkg.PkgPath, pkg.Errors[0])
		}
		return "", "", fmt.Errorf("package %s has no Go files", pkg.PkgPath)
	}
	return filepath.Dir(pkg.GoFiles[0]), pkg.Name, nil
}
