package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/jcorbin/fourth/internal/flushio"
)

// Forth is one interpreter instance: a dictionary plus the four stacks.
// All state is owned by the instance, so independent instances never
// interfere and tests can run them side by side.
type Forth struct {
	in  io.Reader
	out flushio.WriteFlusher

	logfn func(mess string, args ...interface{})

	now    func() time.Time
	rand   *rand.Rand
	locale string

	stack  []Value // data stack
	rstack []Value // return stack
	loops  []loopFrame
	begins []int

	dict dictionary
}

// loopFrame is the bookkeeping for one DO..LOOP nesting level; the
// innermost frame is the top of the loop stack.
type loopFrame struct {
	index  float64
	limit  float64
	resume int
}

func (f *Forth) logf(mess string, args ...interface{}) {
	if f.logfn != nil {
		f.logfn(mess, args...)
	}
}

func (f *Forth) push(v Value) {
	f.stack = append(f.stack, v)
}

func (f *Forth) pop() (Value, error) {
	i := len(f.stack) - 1
	if i < 0 {
		return Value{}, underflowErr("data")
	}
	v := f.stack[i]
	f.stack = f.stack[:i]
	return v, nil
}

func (f *Forth) peek() (Value, error) {
	if len(f.stack) == 0 {
		return Value{}, underflowErr("data")
	}
	return f.stack[len(f.stack)-1], nil
}

// popNumber pops the top value, requiring a Number tag.
func (f *Forth) popNumber(word string) (float64, error) {
	v, err := f.pop()
	if err != nil {
		return 0, err
	}
	if v.kind != kindNumber {
		return 0, fmt.Errorf("%w: %s wants a Number, got %s", ErrTypeMismatch, word, v.kind)
	}
	return v.num, nil
}

func (f *Forth) rpush(v Value) {
	f.rstack = append(f.rstack, v)
}

func (f *Forth) rpop() (Value, error) {
	i := len(f.rstack) - 1
	if i < 0 {
		return Value{}, underflowErr("return")
	}
	v := f.rstack[i]
	f.rstack = f.rstack[:i]
	return v, nil
}

func (f *Forth) rpeek() (Value, error) {
	if len(f.rstack) == 0 {
		return Value{}, underflowErr("return")
	}
	return f.rstack[len(f.rstack)-1], nil
}

func (f *Forth) emit(s string) error {
	_, err := io.WriteString(f.out, s)
	return err
}

func (f *Forth) emitLine(s string) error {
	return f.emit(s + "\n")
}
