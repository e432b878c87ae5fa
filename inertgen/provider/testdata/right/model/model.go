// Package model shares its name with ../../left/model.
package model

// Item is referenced from testdata interfaces.
type Item struct{ Name string }
