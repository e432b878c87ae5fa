package inertgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/broady/inert/inertgen/golang"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the optional configuration file.
const ConfigFile = "inert.yaml"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their yaml keys.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		return token.IsIdentifier(fl.Field().String())
	})
	_ = v.RegisterValidation("gofile", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		return strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, "_test.go") &&
			!strings.ContainsAny(name, `/\`) &&
			name != ".go"
	})
	return v
}

// Config holds the configuration for stub generation.
type Config struct {
	// Package is the pattern of the package declaring the interfaces, in go
	// command syntax. e.g. "." or "github.com/myorg/myapp/shapes"
	Package string `yaml:"package" validate:"required"`

	// Dir is the working directory for package loading.
	Dir string `yaml:"dir"`

	// Types are type expressions evaluated in package scope.
	// e.g. []string{"Shape", "Pair[int]"}
	Types []string `yaml:"types" validate:"dive,required"`

	// Output is the name of the generated file, written to the package
	// directory.
	// Default: "inert_null.go"
	Output string `yaml:"output" validate:"omitempty,gofile"`

	// StubPrefix is prepended to interface names to name stub types.
	// Default: "null"
	StubPrefix string `yaml:"stub_prefix" validate:"omitempty,goident"`

	// Constructors adds an exported NewNullX constructor for every stub.
	Constructors bool `yaml:"constructors"`

	// NoRegister omits the init function that provides stubs to the
	// runtime.
	NoRegister bool `yaml:"no_register"`

	// NoDirectives ignores //inert:null directives.
	NoDirectives bool `yaml:"no_directives"`

	// Comments copies interface documentation summaries onto stubs.
	Comments bool `yaml:"comments"`

	// Force allows replacing an output file that is not generated code.
	Force bool `yaml:"force"`
}

// LoadConfig reads a YAML configuration file. Unknown keys are errors.
// The result is not validated; flags may still fill in missing values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the configuration. The returned error wraps
// validator.ValidationErrors.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}
	return &ConfigError{Errs: valErrs}
}

// ConfigError reports every invalid configuration field.
type ConfigError struct {
	Errs validator.ValidationErrors
}

func (e *ConfigError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, fe := range e.Errs {
		msgs = append(msgs, fe.Namespace()[strings.Index(fe.Namespace(), ".")+1:]+": "+formatValidationError(fe))
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

func (e *ConfigError) Unwrap() error {
	return e.Errs
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "goident":
		return "must be a Go identifier"
	case "gofile":
		return "must be a non-test .go file name without directories"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// applyConfigDefaults applies default values to Config.
func applyConfigDefaults(cfg Config) Config {
	if cfg.Output == "" {
		cfg.Output = golang.DefaultFilename
	}
	if cfg.StubPrefix == "" {
		cfg.StubPrefix = "null"
	}
	return cfg
}
