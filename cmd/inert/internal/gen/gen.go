package gen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/broady/inert/cmd/inert/internal/flags"
	"github.com/broady/inert/inertgen"
)

type Cmd struct {
	flags.Target `embed:""`

	Output   string `help:"Name of the generated file (default: inert_null.go)." short:"o"`
	Comments bool   `help:"Copy interface documentation onto stubs."`
	Force    bool   `help:"Overwrite an output file that is not generated code."`
	DryRun   bool   `help:"Print the generated file instead of writing it." name:"dry-run"`

	stdout io.Writer
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := c.Resolve(logger)
	if err != nil {
		return err
	}
	if c.Output != "" {
		cfg.Output = c.Output
	}
	cfg.Comments = cfg.Comments || c.Comments
	cfg.Force = cfg.Force || c.Force

	g := inertgen.FromConfig(cfg).WithLogger(logger)

	if c.DryRun {
		result, err := g.Generate(ctx)
		if err != nil {
			return err
		}
		_, err = c.out().Write(result.Content)
		return err
	}

	result, err := g.Write(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out(), "✓ %s: %d stubs, %d registered\n", result.Path, result.Stubs, result.Targets)
	return nil
}

func (c *Cmd) out() io.Writer {
	if c.stdout != nil {
		return c.stdout
	}
	return os.Stdout
}
