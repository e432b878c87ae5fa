package check

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/broady/inert/cmd/inert/internal/flags"
	"github.com/broady/inert/inertgen"
)

const widgets = `package widgets

import "io"

//inert:null
type Widget interface {
	Title() string
	SetTitle(string)
	GetWidth() int
	OnResize(func(w, h int)) func()
	Draw(io.Writer, ...int) (int, error)
	Close()
}

//inert:null inst=string
type Box[V any] interface {
	Value() V
	SetValue(V)
}

//inert:null
type Gauge interface {
	Level() int
	SetLevel(float64)
}
`

func setup(t *testing.T) string {
	t.Helper()
	// Disable go.work so temp directories work as standalone modules
	t.Setenv("GOWORK", "off")
	dir := t.TempDir()
	files := map[string]string{
		"go.mod":     "module example.com/widgets\n\ngo 1.21\n",
		"widgets.go": widgets,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)
	return dir
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestCmd_Run(t *testing.T) {
	dir := setup(t)

	var out bytes.Buffer
	cmd := &Cmd{stdout: &out}
	if err := cmd.Run(context.Background(), discard); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Box[V any] (nullBox)\n",
		"Gauge (nullGauge)\n",
		"Widget (nullWidget)\n",
		"Property  Title",
		"get Title, set SetTitle",
		"get GetWidth",
		"Event     OnResize",
		"returns func()",
		"Method    Draw",
		"(io.Writer, ...int) (int, error)",
		"Method    Close     ()",
		"! ACCESSOR_TYPE_MISMATCH:",
		"✓ 3 interfaces, 3 targets\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "inert_null.go")); !os.IsNotExist(err) {
		t.Error("check wrote a file")
	}
}

func TestCmd_Verify(t *testing.T) {
	setup(t)
	ctx := context.Background()

	cmd := &Cmd{Verify: true, stdout: io.Discard}
	if err := cmd.Run(ctx, discard); !errors.Is(err, inertgen.ErrStale) {
		t.Fatalf("Run() before generation error = %v, want ErrStale", err)
	}

	if _, err := inertgen.FromPackage(".").WithLogger(discard).Write(ctx); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cmd = &Cmd{Verify: true, stdout: &out}
	if err := cmd.Run(ctx, discard); err != nil {
		t.Fatalf("Run() after generation error = %v", err)
	}
	if !strings.Contains(out.String(), "inert_null.go is up to date") {
		t.Errorf("output = %q", out.String())
	}
}

func TestCmd_NoTargets(t *testing.T) {
	setup(t)
	cmd := &Cmd{Target: flags.Target{NoDirectives: true}, stdout: io.Discard}
	if err := cmd.Run(context.Background(), discard); !errors.Is(err, inertgen.ErrNoTargets) {
		t.Errorf("Run() error = %v, want ErrNoTargets", err)
	}
}
