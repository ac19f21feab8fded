package main

import (
	"bytes"
	"io"
	"math/rand"
	"time"

	"github.com/jcorbin/fourth/internal/flushio"
)

type Option interface{ apply(f *Forth) }

// Options combines any number of options into one; nils are skipped.
func Options(opts ...Option) Option { return options(opts) }

type options []Option

func (opts options) apply(f *Forth) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(f)
		}
	}
}

var defaults = options{
	inputOption{bytes.NewReader(nil)},
	outputOption{io.Discard},
	nowOption(time.Now),
	randOption{nil},
	localeOption("en_US"),
}

func (f *Forth) apply(opts ...Option) {
	defaults.apply(f)
	options(opts).apply(f)
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type nowOption func() time.Time
type randOption struct{ src rand.Source }
type localeOption string
type logfnOption func(mess string, args ...interface{})

func (i inputOption) apply(f *Forth) {
	f.in = i.Reader
}

func (o outputOption) apply(f *Forth) {
	if f.out != nil {
		f.out.Flush()
	}
	f.out = flushio.New(o.Writer)
}

func (o teeOption) apply(f *Forth) {
	f.out = flushio.Multi(f.out, flushio.New(o.Writer))
}

func (n nowOption) apply(f *Forth) {
	f.now = n
}

func (r randOption) apply(f *Forth) {
	src := r.src
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	f.rand = rand.New(src)
}

func (l localeOption) apply(f *Forth) {
	f.locale = string(l)
}

func (logfn logfnOption) apply(f *Forth) {
	f.logfn = logfn
}
