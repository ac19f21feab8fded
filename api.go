package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"
)

func New(opts ...Option) *Forth {
	var f Forth
	f.dict = newDictionary()
	f.apply(Options(opts...))
	return &f
}

// Eval runs one line of input as one evaluation unit. Any failure aborts
// the whole line and is returned as one error; stacks and dictionary are
// left exactly as they stood at the failure, so the next line starts from
// that partial state.
func (f *Forth) Eval(line string) error {
	return capture("eval", func() error {
		return f.evalTokens(scanTokens(line))
	})
}

// Run evaluates input lines until EOF, BYE, or context cancellation,
// reporting each line's error through the output sink and carrying on.
func (f *Forth) Run(ctx context.Context) error {
	sc := bufio.NewScanner(f.in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f.Eval(sc.Text()); err != nil {
			if errors.Is(err, ErrBye) {
				return f.out.Flush()
			}
			fmt.Fprintf(f.out, "error: %v\n", err)
		}
		if err := f.out.Flush(); err != nil {
			return err
		}
	}
	return sc.Err()
}

// Flush forces buffered output through to the underlying writer.
func (f *Forth) Flush() error { return f.out.Flush() }

func WithInput(r io.Reader) Option          { return inputOption{r} }
func WithOutput(w io.Writer) Option         { return outputOption{w} }
func WithTee(w io.Writer) Option            { return teeOption{w} }
func WithNow(now func() time.Time) Option   { return nowOption(now) }
func WithRandSource(src rand.Source) Option { return randOption{src} }
func WithLocale(locale string) Option       { return localeOption(locale) }

func WithLogf(logfn func(mess string, args ...interface{})) Option { return logfnOption(logfn) }
