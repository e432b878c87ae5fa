package quickstart

import (
	"context"
	"fmt"
	"log"

	"github.com/broady/inert"
	"github.com/broady/inert/inertgen"
)

// [snippet:service collapse]
type Service struct {
	notify Notifier
}

func NewService(n Notifier) *Service {
	if n == nil {
		n = inert.Must[Notifier]()
	}
	return &Service{notify: n}
}

func (s *Service) Signup(ctx context.Context, email string) error {
	return s.notify.Send(ctx, email, "welcome")
}

// [/snippet:service]

func exampleOf() {
	// [snippet:of]
	n, err := inert.Of[Notifier]()
	if err != nil {
		log.Fatal(err)
	}
	n.SetEnabled(true)
	fmt.Println(n.Enabled()) // true
	// [/snippet:of]
}

func exampleDynamic() {
	// [snippet:dynamic]
	obj, err := inert.Dynamic[Notifier]()
	if err != nil {
		log.Fatal(err)
	}
	for _, m := range obj.Members() {
		fmt.Println(m.Kind, m.Name)
	}
	// [/snippet:dynamic]
}

func exampleGeneration() {
	// [snippet:generation]
	if _, err := inertgen.FromPackage("./notify").
		StubPrefix("quiet").
		WithConstructors().
		Write(context.Background()); err != nil {
		log.Fatal(err)
	}
	// [/snippet:generation]
}

// Keep examples referenced.
var (
	_ = exampleOf
	_ = exampleDynamic
	_ = exampleGeneration
)
