// Package inert produces null objects for Go interfaces.
//
// A null object implements an interface with members that do nothing:
//
//   - methods accept any arguments and return zero values;
//   - properties, a getter X or GetX paired with a setter SetX, are backed by
//     a slot that starts at the zero value and keeps whatever the setter
//     stores;
//   - events, methods taking a single func handler, accept and ignore the
//     handler, returning a no-op cancel func when the method has one.
//
// Go cannot declare a new method set at run time, so the concrete stub types
// are generated ahead of time by the inert command (see package inertgen)
// and handed to the runtime with Provide from the generated file's init
// function:
//
//	//go:generate go run github.com/broady/inert/cmd/inert gen
//
//	//inert:null
//	type Shape interface{ Area() int }
//
// After that, Of builds instances on demand:
//
//	shape, err := inert.Of[Shape]()
//
// Implementations are built once per interface type and cached for the life
// of the Registry; concurrent first requests share one build. Dynamic
// returns an Object that reaches the same members by name, for code that
// only knows the interface through reflection.
package inert
