package inert

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrUnsupportedKind is returned when a null object is requested for a
	// type that is not an interface.
	ErrUnsupportedKind = errors.New("inert: unsupported target kind")

	// ErrSynthesis matches every *SynthesisError.
	ErrSynthesis = errors.New("inert: synthesis failed")

	// ErrNoStub means no constructor was provided for a non-empty interface.
	// Run `inert gen` in the interface's package, or call Register.
	ErrNoStub = errors.New("no stub constructor provided")

	// ErrNilInstance means a stub constructor returned nil.
	ErrNilInstance = errors.New("stub constructor returned nil")

	// ErrAlreadySynthesized is returned by Register when the registry has
	// already cached an implementation for the type.
	ErrAlreadySynthesized = errors.New("inert: implementation already synthesized")

	// ErrUnknownMember is returned by Object when no member has the name.
	ErrUnknownMember = errors.New("inert: unknown member")

	// ErrWrongMemberKind is returned by Object when a member is used in a way
	// its kind does not allow (e.g. Set on a getter-only property).
	ErrWrongMemberKind = errors.New("inert: wrong member kind")
)

// KindError reports a non-interface target type.
type KindError struct {
	Type reflect.Type
}

func (e *KindError) Error() string {
	if e.Type == nil {
		return "inert: unsupported target kind <nil>: only interfaces have null objects"
	}
	return fmt.Sprintf("inert: unsupported target kind %s (%s): only interfaces have null objects", e.Type, e.Type.Kind())
}

// Unwrap returns ErrUnsupportedKind.
func (e *KindError) Unwrap() error {
	return ErrUnsupportedKind
}

// SynthesisError reports that no implementation could be produced for an
// interface. Failed syntheses are never cached.
type SynthesisError struct {
	Type  reflect.Type
	Cause error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("inert: cannot synthesize %s: %v", e.Type, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *SynthesisError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrSynthesis.
func (e *SynthesisError) Is(target error) bool {
	return target == ErrSynthesis
}

// ArgumentError reports a value that does not fit a member's signature.
type ArgumentError struct {
	Member string
	Index  int // -1 for arity errors
	Want   reflect.Type
	Got    reflect.Type
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("inert: %s: %s", e.Member, e.Reason)
	}
	return fmt.Sprintf("inert: %s: argument %d: cannot use %v as %v", e.Member, e.Index, e.Got, e.Want)
}

func memberError(sentinel error, name, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", sentinel, name, fmt.Sprintf(format, args...))
}
