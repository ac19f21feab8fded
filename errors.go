package main

import (
	"errors"
	"fmt"
)

// Failure kinds. Every evaluation error wraps exactly one of these, so
// callers can classify with errors.Is without parsing messages.
var (
	ErrStackUnderflow   = errors.New("stack underflow")
	ErrUnknownWord      = errors.New("unknown word")
	ErrUnmatchedControl = errors.New("unmatched control")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrDivideByZero     = errors.New("divide by zero")
	ErrUnexpectedEnd    = errors.New("unexpected end of input")
)

// ErrBye is returned by Eval when the BYE word runs; Run treats it as a
// clean end of session, CLI callers should stop reading input.
var ErrBye = errors.New("bye")

func underflowErr(stack string) error {
	return fmt.Errorf("%w on %s stack", ErrStackUnderflow, stack)
}

func unknownWordErr(token string) error {
	return fmt.Errorf("%w %q", ErrUnknownWord, token)
}

func unmatchedErr(open, want string) error {
	return fmt.Errorf("%w: %s without %s", ErrUnmatchedControl, open, want)
}

func mismatchErr(op string, operands ...Value) error {
	kinds := ""
	for i, v := range operands {
		if i > 0 {
			kinds += ", "
		}
		kinds += v.kind.String()
	}
	return fmt.Errorf("%w: %s not defined on (%s)", ErrTypeMismatch, op, kinds)
}
