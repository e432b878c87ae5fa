// Package quickstart provides simple example code for documentation.
package quickstart

import "context"

//go:generate go run github.com/broady/inert/cmd/inert gen

// [snippet:types]

// Notifier delivers messages to recipients.
//
//inert:null
type Notifier interface {
	Enabled() bool
	SetEnabled(bool)
	OnSent(func(to string)) func()
	Send(ctx context.Context, to, body string) error
}

// [/snippet:types]
