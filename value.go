package main

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

type valueKind int

const (
	kindNumber valueKind = iota
	kindText
	kindMoment
	kindDuration
	kindDelta
)

func (k valueKind) String() string {
	switch k {
	case kindNumber:
		return "Number"
	case kindText:
		return "Text"
	case kindMoment:
		return "Moment"
	case kindDuration:
		return "Duration"
	case kindDelta:
		return "CalendarDelta"
	}
	return fmt.Sprintf("valueKind(%d)", int(k))
}

// Value is one stack cell: a closed tagged variant. Values are immutable
// once pushed; popping transfers ownership to the popper.
type Value struct {
	kind  valueKind
	num   float64
	str   string
	t     time.Time
	d     time.Duration
	delta calendarDelta
}

func numberValue(n float64) Value        { return Value{kind: kindNumber, num: n} }
func textValue(s string) Value           { return Value{kind: kindText, str: s} }
func momentValue(t time.Time) Value      { return Value{kind: kindMoment, t: t.Truncate(time.Second)} }
func durationValue(d time.Duration) Value {
	return Value{kind: kindDuration, d: d.Truncate(time.Second)}
}
func deltaValue(cd calendarDelta) Value { return Value{kind: kindDelta, delta: cd} }

func (v Value) String() string {
	switch v.kind {
	case kindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case kindText:
		return v.str
	case kindMoment:
		return formatMoment(v.t)
	case kindDuration:
		return formatDuration(v.d)
	case kindDelta:
		return v.delta.String()
	}
	return "?"
}

// truthy decides flag values for IF, UNTIL, and WHILE: zero Numbers and
// empty Text are falsey, everything else is truthy.
func truthy(v Value) bool {
	switch v.kind {
	case kindNumber:
		return v.num != 0
	case kindText:
		return v.str != ""
	}
	return true
}

// addValues dispatches `+` over operand tags. Addition commutes, so both
// operand orders of each mixed pair are accepted.
func addValues(a, b Value) (Value, error) {
	if b.kind < a.kind {
		a, b = b, a
	}
	switch {
	case a.kind == kindNumber && b.kind == kindNumber:
		return numberValue(a.num + b.num), nil
	case a.kind == kindNumber && b.kind == kindMoment:
		return momentValue(addDays(b.t, a.num)), nil
	case a.kind == kindMoment && b.kind == kindDuration:
		return momentValue(a.t.Add(b.d)), nil
	case a.kind == kindMoment && b.kind == kindDelta:
		return momentValue(applyDelta(a.t, b.delta)), nil
	case a.kind == kindDuration && b.kind == kindDuration:
		return durationValue(a.d + b.d), nil
	}
	return Value{}, mismatchErr("+", a, b)
}

// subValues dispatches `-`: a b - computes a minus b. Moment minus Moment
// yields a CalendarDelta whose sign is negative when b is the later one.
func subValues(a, b Value) (Value, error) {
	switch {
	case a.kind == kindNumber && b.kind == kindNumber:
		return numberValue(a.num - b.num), nil
	case a.kind == kindMoment && b.kind == kindMoment:
		return deltaValue(diffMoments(a.t, b.t)), nil
	case a.kind == kindMoment && b.kind == kindDuration:
		return momentValue(a.t.Add(-b.d)), nil
	case a.kind == kindDuration && b.kind == kindDuration:
		return durationValue(a.d - b.d), nil
	}
	return Value{}, mismatchErr("-", a, b)
}

func mulValues(a, b Value) (Value, error) {
	if a.kind == kindNumber && b.kind == kindNumber {
		return numberValue(a.num * b.num), nil
	}
	return Value{}, mismatchErr("*", a, b)
}

func divValues(a, b Value) (Value, error) {
	if a.kind != kindNumber || b.kind != kindNumber {
		return Value{}, mismatchErr("/", a, b)
	}
	if b.num == 0 {
		return Value{}, fmt.Errorf("%w: /", ErrDivideByZero)
	}
	return numberValue(a.num / b.num), nil
}

func modValues(a, b Value) (Value, error) {
	if a.kind != kindNumber || b.kind != kindNumber {
		return Value{}, mismatchErr("mod", a, b)
	}
	if b.num == 0 {
		return Value{}, fmt.Errorf("%w: mod", ErrDivideByZero)
	}
	return numberValue(math.Mod(a.num, b.num)), nil
}

// compareValues orders two same-tagged values, returning -1, 0, or 1.
// Cross-tag comparison is an error rather than a silent coercion.
func compareValues(op string, a, b Value) (int, error) {
	if a.kind != b.kind {
		return 0, mismatchErr(op, a, b)
	}
	switch a.kind {
	case kindNumber:
		switch {
		case a.num < b.num:
			return -1, nil
		case a.num > b.num:
			return 1, nil
		}
		return 0, nil
	case kindText:
		switch {
		case a.str < b.str:
			return -1, nil
		case a.str > b.str:
			return 1, nil
		}
		return 0, nil
	case kindMoment:
		switch {
		case a.t.Before(b.t):
			return -1, nil
		case a.t.After(b.t):
			return 1, nil
		}
		return 0, nil
	case kindDuration:
		switch {
		case a.d < b.d:
			return -1, nil
		case a.d > b.d:
			return 1, nil
		}
		return 0, nil
	}
	return 0, mismatchErr(op, a, b)
}

func boolValue(b bool) Value {
	if b {
		return numberValue(1)
	}
	return numberValue(0)
}
