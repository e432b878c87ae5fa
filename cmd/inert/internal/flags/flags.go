// Package flags holds the command line options shared by inert subcommands.
package flags

import (
	"log/slog"
	"os"

	"github.com/broady/inert/inertgen"
)

// Target selects the package and interfaces to work on. Flags override
// values from the configuration file.
type Target struct {
	Package      string   `help:"Package to scan (default: current directory)." short:"p"`
	Types        []string `help:"Interface type expression, e.g. Shape or Pair[int]. Repeatable." short:"t" name:"type" sep:"none"`
	Config       string   `help:"Configuration file (default: inert.yaml in the current directory, if present)." short:"c" type:"path"`
	Prefix       string   `help:"Prefix for stub type names (default: null)."`
	Constructors bool     `help:"Generate exported constructors for every stub."`
	NoRegister   bool     `help:"Do not register stubs with the runtime."`
	NoDirectives bool     `help:"Ignore //inert:null directives."`
}

// Resolve merges the configuration file, if any, with the flags.
func (t *Target) Resolve(logger *slog.Logger) (inertgen.Config, error) {
	var cfg inertgen.Config

	path := t.Config
	if path == "" {
		if _, err := os.Stat(inertgen.ConfigFile); err == nil {
			path = inertgen.ConfigFile
		}
	}
	if path != "" {
		loaded, err := inertgen.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		logger.Debug("loaded config", "path", path)
		cfg = *loaded
	}

	if t.Package != "" {
		cfg.Package = t.Package
	}
	if cfg.Package == "" {
		cfg.Package = "."
	}
	cfg.Types = append(cfg.Types, t.Types...)
	if t.Prefix != "" {
		cfg.StubPrefix = t.Prefix
	}
	cfg.Constructors = cfg.Constructors || t.Constructors
	cfg.NoRegister = cfg.NoRegister || t.NoRegister
	cfg.NoDirectives = cfg.NoDirectives || t.NoDirectives
	return cfg, nil
}
