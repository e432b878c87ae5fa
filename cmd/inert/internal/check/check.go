package check

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/broady/inert/cmd/inert/internal/flags"
	"github.com/broady/inert/inertgen"
	"github.com/broady/inert/inertgen/ir"
)

type Cmd struct {
	flags.Target `embed:""`

	Output string `help:"Name of the generated file (default: inert_null.go)." short:"o"`
	Verify bool   `help:"Fail if the generated file is missing or out of date."`

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

	g := inertgen.FromConfig(cfg).WithLogger(logger)
	schema, err := g.Schema(ctx)
	if err != nil {
		return err
	}
	if len(schema.Interfaces) == 0 {
		return inertgen.ErrNoTargets
	}

	out := c.out()
	for _, d := range schema.Interfaces {
		printInterface(out, d)
	}
	for _, w := range schema.Warnings {
		fmt.Fprintf(out, "! %s: %s\n", w.Code, w.Message)
	}
	fmt.Fprintf(out, "✓ %d interfaces, %d targets\n", len(schema.Interfaces), len(schema.Targets))

	if !c.Verify {
		return nil
	}
	result, err := g.Check(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ %s is up to date\n", result.Path)
	return nil
}

// printInterface writes one interface and its classified members.
func printInterface(w io.Writer, d *ir.InterfaceDescriptor) {
	name := d.Name.Name
	if d.Generic() {
		params := make([]string, len(d.TypeParams))
		for i, tp := range d.TypeParams {
			params[i] = tp.Name + " " + tp.Constraint
		}
		name += "[" + strings.Join(params, ", ") + "]"
	}
	fmt.Fprintf(w, "%s (%s)\n", name, d.Stub)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range d.Properties {
		var access []string
		if p.Getter != "" {
			access = append(access, "get "+p.Getter)
		}
		if p.Setter != "" {
			access = append(access, "set "+p.Setter)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", ir.KindProperty, p.Name, p.Type, strings.Join(access, ", "))
	}
	for _, e := range d.Events {
		returns := ""
		if e.Canceler != "" {
			returns = "returns " + e.Canceler
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", ir.KindEvent, e.Name, e.Handler, returns)
	}
	for _, m := range d.Methods {
		sig := "(" + strings.Join(m.Params, ", ") + ")"
		switch len(m.Results) {
		case 0:
		case 1:
			sig += " " + m.Results[0]
		default:
			sig += " (" + strings.Join(m.Results, ", ") + ")"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t\n", ir.KindMethod, m.Name, sig)
	}
	tw.Flush()
}

func (c *Cmd) out() io.Writer {
	if c.stdout != nil {
		return c.stdout
	}
	return os.Stdout
}
