// Package golang writes null object stubs as Go source.
package golang

import (
	"context"
	"errors"
	"fmt"

	"github.com/broady/inert/inertgen/ir"
	"golang.org/x/tools/imports"
)

// GoGenerator implements Generator for Go.
type GoGenerator struct{}

// Name returns "go".
func (g *GoGenerator) Name() string {
	return "go"
}

// Generate writes one stub file for schema to opts.Sink.
func (g *GoGenerator) Generate(ctx context.Context, schema *ir.Schema, opts GenerateOptions) (*GenerateResult, error) {
	if schema == nil {
		return nil, errors.New("schema is nil")
	}
	if opts.Sink == nil {
		return nil, errors.New("sink is nil")
	}
	if schema.Package.Name == "" {
		return nil, errors.New("schema has no package name")
	}
	if errs := schema.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid schema: %w", errors.Join(errs...))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filename := opts.Config.Filename
	if filename == "" {
		filename = DefaultFilename
	}

	src, err := NewEmitter(schema, opts.Config).Emit()
	if err != nil {
		return nil, err
	}
	out, err := Format(filename, src)
	if err != nil {
		return nil, err
	}

	if err := opts.Sink.WriteFile(ctx, filename, out); err != nil {
		return nil, fmt.Errorf("write %s: %w", filename, err)
	}

	result := &GenerateResult{
		Files:          []OutputFile{{Path: filename, Size: int64(len(out))}},
		StubsGenerated: len(schema.Interfaces),
		Warnings:       append([]ir.Warning(nil), schema.Warnings...),
	}
	if !opts.Config.SkipRegistration {
		result.TargetsRegistered = len(schema.Targets)
	}
	return result, nil
}

// Format gofmts generated source and groups its imports. It never adds or
// removes imports.
func Format(filename string, src []byte) ([]byte, error) {
	out, err := imports.Process(filename, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", filename, err)
	}
	return out, nil
}
