// Package flushio provides flush-aware writer plumbing for line-oriented
// output sinks.
package flushio

import (
	"bufio"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// New wraps w so it can be flushed: in-memory buffers and writers that
// already flush pass through, anything else gets a bufio.Writer.
func New(w io.Writer) WriteFlusher {
	if wf, ok := w.(WriteFlusher); ok {
		return wf
	}

	// bytes.Buffer and strings.Builder shaped writers need no flushing
	type buffer interface {
		io.Writer
		Len() int
		Grow(n int)
		Reset()
	}
	if _, ok := w.(buffer); ok {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// Multi fans writes and flushes out to every given sink; nils drop out.
func Multi(wfs ...WriteFlusher) WriteFlusher {
	var all multi
	for _, wf := range wfs {
		if more, ok := wf.(multi); ok {
			all = append(all, more...)
		} else if wf != nil {
			all = append(all, wf)
		}
	}
	if len(all) == 1 {
		return all[0]
	}
	return all
}

type multi []WriteFlusher

func (m multi) Write(p []byte) (n int, err error) {
	for _, wf := range m {
		n, err = wf.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

func (m multi) Flush() (err error) {
	for _, wf := range m {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}
