package golang

import (
	"context"

	"github.com/broady/inert/inertgen/ir"
	"github.com/broady/inert/inertgen/sink"
)

// DefaultFilename is the name of the generated file when none is configured.
const DefaultFilename = "inert_null.go"

// Header is the first line of every generated file.
const Header = "// Code generated by inert. DO NOT EDIT."

// Generator transforms a schema into source code.
type Generator interface {
	// Name returns the generator's identifier.
	Name() string

	// Generate produces source code for the given schema.
	Generate(ctx context.Context, schema *ir.Schema, opts GenerateOptions) (*GenerateResult, error)
}

// GenerateOptions configures generation behavior.
type GenerateOptions struct {
	// Sink receives generated output files.
	Sink sink.OutputSink

	// Config contains generator configuration.
	Config GeneratorConfig
}

// GeneratorConfig controls the shape of the generated file.
type GeneratorConfig struct {
	// Filename is the path of the generated file relative to the sink
	// (default: DefaultFilename).
	Filename string

	// SkipRegistration omits the init function that hands stubs to the
	// runtime. Stubs are then only reachable through constructors.
	SkipRegistration bool

	// EmitComments copies the summary of each interface's documentation
	// onto its stub.
	EmitComments bool
}

// GenerateResult contains generation output metadata.
type GenerateResult struct {
	// Files lists all files that were written.
	Files []OutputFile

	// StubsGenerated is the number of stub types written.
	StubsGenerated int

	// TargetsRegistered is the number of instantiations handed to the
	// runtime.
	TargetsRegistered int

	// Warnings contains non-fatal issues encountered.
	Warnings []ir.Warning
}

// OutputFile describes a generated file.
type OutputFile struct {
	// Path is the relative path of the generated file.
	Path string

	// Size is the number of bytes written.
	Size int64
}
