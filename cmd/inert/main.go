package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/broady/inert/cmd/inert/internal/check"
	"github.com/broady/inert/cmd/inert/internal/gen"
)

type CLI struct {
	Verbose bool `help:"Enable debug logging." short:"v"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate null object stubs for a package."`
	Check   check.Cmd  `cmd:"" help:"Classify interface members without generating files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var level slog.LevelVar
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &level}))

	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("inert"),
		kong.Description("Generate null objects for Go interfaces."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(logger),
	)
	if cli.Verbose {
		level.Set(slog.LevelDebug)
	}
	err := kctx.Run()
	kctx.FatalIfErrorf(err)
}
