// Package model is one of two packages named model.
package model

// Item is referenced from testdata interfaces.
type Item struct{ ID int }
