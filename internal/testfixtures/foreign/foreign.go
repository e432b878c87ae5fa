// Package foreign declares interfaces whose unexported methods belong to
// another package than the interfaces that embed them.
package foreign

// Sealed can only be implemented inside package foreign.
type Sealed interface {
	Name() string
	sealed()
}
