package main

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/goodsign/monday"
)

type nativeFunc func(f *Forth) error

// binaryOp pops two values (second operand from the top) and pushes the
// result of op.
func binaryOp(op func(a, b Value) (Value, error)) nativeFunc {
	return func(f *Forth) error {
		b, err := f.pop()
		if err != nil {
			return err
		}
		a, err := f.pop()
		if err != nil {
			return err
		}
		v, err := op(a, b)
		if err != nil {
			return err
		}
		f.push(v)
		return nil
	}
}

// mathOp wraps a single-argument math routine as a word over Numbers.
func mathOp(name string, fn func(float64) float64) nativeFunc {
	return func(f *Forth) error {
		n, err := f.popNumber(name)
		if err != nil {
			return err
		}
		f.push(numberValue(fn(n)))
		return nil
	}
}

func compareOp(name string, accept func(c int) bool) nativeFunc {
	return func(f *Forth) error {
		b, err := f.pop()
		if err != nil {
			return err
		}
		a, err := f.pop()
		if err != nil {
			return err
		}
		c, err := compareValues(name, a, b)
		if err != nil {
			return err
		}
		f.push(boolValue(accept(c)))
		return nil
	}
}

var natives map[string]nativeFunc

func init() {
	natives = map[string]nativeFunc{
		".": func(f *Forth) error {
			v, err := f.pop()
			if err != nil {
				return err
			}
			return f.emitLine(v.String())
		},

		".S": func(f *Forth) error {
			parts := make([]string, len(f.stack))
			for i, v := range f.stack {
				parts[i] = v.String()
			}
			return f.emitLine(fmt.Sprintf("<%d> %s", len(f.stack), strings.Join(parts, " ")))
		},

		"DUP": func(f *Forth) error {
			v, err := f.peek()
			if err != nil {
				return err
			}
			f.push(v)
			return nil
		},

		"DROP": func(f *Forth) error {
			_, err := f.pop()
			return err
		},

		"SWAP": func(f *Forth) error {
			b, err := f.pop()
			if err != nil {
				return err
			}
			a, err := f.pop()
			if err != nil {
				return err
			}
			f.push(b)
			f.push(a)
			return nil
		},

		"OVER": func(f *Forth) error {
			if len(f.stack) < 2 {
				return underflowErr("data")
			}
			f.push(f.stack[len(f.stack)-2])
			return nil
		},

		"ROT": func(f *Forth) error {
			if len(f.stack) < 3 {
				return underflowErr("data")
			}
			i := len(f.stack) - 3
			a := f.stack[i]
			copy(f.stack[i:], f.stack[i+1:])
			f.stack[len(f.stack)-1] = a
			return nil
		},

		"PICK": func(f *Forth) error {
			n, err := f.popNumber("PICK")
			if err != nil {
				return err
			}
			i := len(f.stack) - 1 - int(n)
			if n < 0 || i < 0 {
				return underflowErr("data")
			}
			f.push(f.stack[i])
			return nil
		},

		"DEPTH": func(f *Forth) error {
			f.push(numberValue(float64(len(f.stack))))
			return nil
		},

		"CLEARSTACK": func(f *Forth) error {
			f.stack = f.stack[:0]
			return nil
		},

		">R": func(f *Forth) error {
			v, err := f.pop()
			if err != nil {
				return err
			}
			f.rpush(v)
			return nil
		},

		"R>": func(f *Forth) error {
			v, err := f.rpop()
			if err != nil {
				return err
			}
			f.push(v)
			return nil
		},

		"R@": func(f *Forth) error {
			v, err := f.rpeek()
			if err != nil {
				return err
			}
			f.push(v)
			return nil
		},

		"+": binaryOp(addValues),
		"-": binaryOp(subValues),
		"*": binaryOp(mulValues),
		"/": binaryOp(divValues),

		"MOD": binaryOp(modValues),

		"/MOD": func(f *Forth) error {
			b, err := f.popNumber("/MOD")
			if err != nil {
				return err
			}
			a, err := f.popNumber("/MOD")
			if err != nil {
				return err
			}
			if b == 0 {
				return fmt.Errorf("%w: /mod", ErrDivideByZero)
			}
			f.push(numberValue(math.Mod(a, b)))
			f.push(numberValue(math.Trunc(a / b)))
			return nil
		},

		"NEGATE": mathOp("NEGATE", func(n float64) float64 { return -n }),
		"ABS":    mathOp("ABS", math.Abs),
		"1+":     mathOp("1+", func(n float64) float64 { return n + 1 }),
		"1-":     mathOp("1-", func(n float64) float64 { return n - 1 }),

		"MIN": binaryOp(func(a, b Value) (Value, error) {
			c, err := compareValues("min", a, b)
			if err != nil {
				return Value{}, err
			}
			if c <= 0 {
				return a, nil
			}
			return b, nil
		}),

		"MAX": binaryOp(func(a, b Value) (Value, error) {
			c, err := compareValues("max", a, b)
			if err != nil {
				return Value{}, err
			}
			if c >= 0 {
				return a, nil
			}
			return b, nil
		}),

		"=":  compareOp("=", func(c int) bool { return c == 0 }),
		"<>": compareOp("<>", func(c int) bool { return c != 0 }),
		"<":  compareOp("<", func(c int) bool { return c < 0 }),
		">":  compareOp(">", func(c int) bool { return c > 0 }),
		"<=": compareOp("<=", func(c int) bool { return c <= 0 }),
		">=": compareOp(">=", func(c int) bool { return c >= 0 }),

		"AND": func(f *Forth) error {
			b, err := f.pop()
			if err != nil {
				return err
			}
			a, err := f.pop()
			if err != nil {
				return err
			}
			f.push(boolValue(truthy(a) && truthy(b)))
			return nil
		},

		"OR": func(f *Forth) error {
			b, err := f.pop()
			if err != nil {
				return err
			}
			a, err := f.pop()
			if err != nil {
				return err
			}
			f.push(boolValue(truthy(a) || truthy(b)))
			return nil
		},

		"NOT": func(f *Forth) error {
			v, err := f.pop()
			if err != nil {
				return err
			}
			f.push(boolValue(!truthy(v)))
			return nil
		},

		"TRUE":  func(f *Forth) error { f.push(numberValue(1)); return nil },
		"FALSE": func(f *Forth) error { f.push(numberValue(0)); return nil },

		"SIN":   mathOp("SIN", math.Sin),
		"COS":   mathOp("COS", math.Cos),
		"TAN":   mathOp("TAN", math.Tan),
		"ASIN":  mathOp("ASIN", math.Asin),
		"ACOS":  mathOp("ACOS", math.Acos),
		"ATAN":  mathOp("ATAN", math.Atan),
		"SQRT":  mathOp("SQRT", math.Sqrt),
		"EXP":   mathOp("EXP", math.Exp),
		"LN":    mathOp("LN", math.Log),
		"LOG":   mathOp("LOG", math.Log10),
		"FLOOR": mathOp("FLOOR", math.Floor),
		"CEIL":  mathOp("CEIL", math.Ceil),
		"ROUND": mathOp("ROUND", math.Round),

		"POW": func(f *Forth) error {
			b, err := f.popNumber("POW")
			if err != nil {
				return err
			}
			a, err := f.popNumber("POW")
			if err != nil {
				return err
			}
			f.push(numberValue(math.Pow(a, b)))
			return nil
		},

		"NOW": func(f *Forth) error {
			f.push(momentValue(f.now()))
			return nil
		},

		"TODAY": func(f *Forth) error {
			t := f.now()
			f.push(momentValue(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())))
			return nil
		},

		"PARSE-DATE": func(f *Forth) error {
			v, err := f.pop()
			if err != nil {
				return err
			}
			if v.kind != kindText {
				return fmt.Errorf("%w: PARSE-DATE wants Text, got %s", ErrTypeMismatch, v.kind)
			}
			t, err := dateparse.ParseIn(v.str, time.UTC)
			if err != nil {
				return fmt.Errorf("PARSE-DATE: cannot parse %q", v.str)
			}
			f.push(momentValue(t))
			return nil
		},

		"DATE.": func(f *Forth) error {
			v, err := f.pop()
			if err != nil {
				return err
			}
			if v.kind != kindMoment {
				return fmt.Errorf("%w: DATE. wants a Moment, got %s", ErrTypeMismatch, v.kind)
			}
			return f.emitLine(monday.Format(v.t, "Monday, January 2, 2006", f.mondayLocale()))
		},

		"RANDOM": func(f *Forth) error {
			f.push(numberValue(f.rand.Float64()))
			return nil
		},

		"RANDINT": func(f *Forth) error {
			n, err := f.popNumber("RANDINT")
			if err != nil {
				return err
			}
			if int(n) < 1 {
				return fmt.Errorf("%w: RANDINT wants a positive range", ErrTypeMismatch)
			}
			f.push(numberValue(float64(f.rand.Intn(int(n)))))
			return nil
		},

		"WORDS": func(f *Forth) error {
			return f.emitLine(strings.Join(f.Words(), " "))
		},

		"CR": func(f *Forth) error {
			return f.emit("\n")
		},

		"EMIT": func(f *Forth) error {
			n, err := f.popNumber("EMIT")
			if err != nil {
				return err
			}
			return f.emit(string(rune(int(n))))
		},

		"BYE": func(f *Forth) error {
			return ErrBye
		},
	}
}

// Words lists everything currently invocable: user definitions first, then
// control keywords and natives. The REPL uses it for tab completion.
func (f *Forth) Words() []string {
	names := f.dict.names()
	for name := range controlWords {
		names = append(names, name)
	}
	names = append(names, ":", ";")
	for name := range natives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var mondayLocales = map[string]monday.Locale{
	"en":    monday.LocaleEnUS,
	"en_us": monday.LocaleEnUS,
	"en_gb": monday.LocaleEnGB,
	"de":    monday.LocaleDeDE,
	"de_de": monday.LocaleDeDE,
	"fr":    monday.LocaleFrFR,
	"fr_fr": monday.LocaleFrFR,
	"es":    monday.LocaleEsES,
	"es_es": monday.LocaleEsES,
	"it":    monday.LocaleItIT,
	"nl":    monday.LocaleNlNL,
	"pt":    monday.LocalePtPT,
	"ja":    monday.LocaleJaJP,
}

func (f *Forth) mondayLocale() monday.Locale {
	key := strings.ToLower(strings.ReplaceAll(f.locale, "-", "_"))
	if loc, ok := mondayLocales[key]; ok {
		return loc
	}
	return monday.LocaleEnUS
}
