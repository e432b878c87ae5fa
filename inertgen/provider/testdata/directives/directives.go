// Package directives holds interfaces selected with //inert:null.
package directives

// Shape has an area.
//
//inert:null
type Shape interface {
	Area() int
}

// Box holds a value.
//
//inert:null inst=int inst=*Item
type Box[V any] interface {
	Value() V
	SetValue(V)
}

// Store is a generic store.
//
//inert:null name=quietStore ctor=NewQuietStore inst=string,*Item
type Store[K comparable, V any] interface {
	Get(K) (V, bool)
}

// Hidden is never generated.
//
//inert:null skip
type Hidden interface {
	Secret() string
}

// Plain has no directive.
type Plain interface {
	Do()
}

// Item is referenced by instantiations.
type Item struct{}
