// Package command maps a single line of operator input to at most one event
// store mutation.
//
// Only the first character of a token matters and it is matched without
// regard to case:
//
//	p  press the button    (level held)
//	r  release the button  (level released)
//	m  send a message      (edge latched)
//
// Anything else, including an empty line, is ignored without error so the
// harness stays usable for quick manual probing.
package command

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/ciao/internal/events"
)

// Kind is the result of interpreting one token.
type Kind int

const (
	Ignore Kind = iota
	PressButton
	ReleaseButton
	SendMessage
)

// String returns the short name used in logs and traces.
func (k Kind) String() string {
	switch k {
	case PressButton:
		return "press"
	case ReleaseButton:
		return "release"
	case SendMessage:
		return "message"
	default:
		return "ignore"
	}
}

// Shared by every Parse call; the drive loop is single-threaded.
var folder = cases.Fold()

// Parse inspects the first character of token. Leading whitespace is not
// skipped, so " p" is ignored.
func Parse(token string) Kind {
	if token == "" {
		return Ignore
	}
	r, _ := utf8.DecodeRuneInString(norm.NFC.String(token))
	if r == utf8.RuneError {
		return Ignore
	}

	switch folder.String(string(r)) {
	case "p":
		return PressButton
	case "r":
		return ReleaseButton
	case "m":
		return SendMessage
	default:
		return Ignore
	}
}

// Apply performs the mutation for k. Ignore leaves m untouched.
func Apply(k Kind, m events.Mutator) {
	switch k {
	case PressButton:
		m.SetButton(true)
	case ReleaseButton:
		m.SetButton(false)
	case SendMessage:
		m.SetMessagePending()
	}
}

// Interpret parses token and applies the result to m.
func Interpret(token string, m events.Mutator) Kind {
	k := Parse(token)
	Apply(k, m)
	return k
}
