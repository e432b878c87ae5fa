package flags

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/broady/inert/inertgen"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestTarget_Resolve(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string // contents of inert.yaml in the working directory; empty means no file
		target Target
		want   inertgen.Config
	}{
		{
			name: "defaults",
			want: inertgen.Config{Package: "."},
		},
		{
			name:   "flags only",
			target: Target{Package: "./shapes", Types: []string{"Shape", "Pair[int, string]"}, Prefix: "quiet", Constructors: true},
			want:   inertgen.Config{Package: "./shapes", Types: []string{"Shape", "Pair[int, string]"}, StubPrefix: "quiet", Constructors: true},
		},
		{
			name: "config file",
			yaml: "package: ./shapes\ntypes: [Shape]\nno_register: true\noutput: null_gen.go\n",
			want: inertgen.Config{Package: "./shapes", Types: []string{"Shape"}, NoRegister: true, Output: "null_gen.go"},
		},
		{
			name:   "flags override and extend config",
			yaml:   "package: ./shapes\ntypes: [Shape]\nstub_prefix: quiet\n",
			target: Target{Package: "./other", Types: []string{"Box[int]"}, Prefix: "empty", NoDirectives: true},
			want:   inertgen.Config{Package: "./other", Types: []string{"Shape", "Box[int]"}, StubPrefix: "empty", NoDirectives: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.yaml != "" {
				if err := os.WriteFile(filepath.Join(dir, inertgen.ConfigFile), []byte(tt.yaml), 0644); err != nil {
					t.Fatal(err)
				}
			}
			t.Chdir(dir)

			got, err := tt.target.Resolve(discard)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTarget_ResolveExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("constructors: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := (&Target{Config: path}).Resolve(discard)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Constructors || got.Package != "." {
		t.Errorf("Resolve() = %+v", got)
	}

	if _, err := (&Target{Config: filepath.Join(dir, "missing.yaml")}).Resolve(discard); err == nil {
		t.Error("Resolve() with missing explicit config succeeded")
	}

	if err := os.WriteFile(path, []byte("bogus: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := (&Target{Config: path}).Resolve(discard); err == nil {
		t.Error("Resolve() with unknown key succeeded")
	}
}
