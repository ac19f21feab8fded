package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type forthTestCases []forthTestCase

func (fts forthTestCases) run(t *testing.T) {
	for _, ft := range fts {
		t.Run(ft.name, ft.run)
	}
}

func forthTest(name string) (ft forthTestCase) {
	ft.name = name
	return ft
}

type forthTestCase struct {
	name    string
	opts    []Option
	lines   []string
	expect  []func(t *testing.T, f *Forth)
	wantErr error
}

func (ft forthTestCase) withOptions(opts ...Option) forthTestCase {
	ft.opts = append(ft.opts, opts...)
	return ft
}

func (ft forthTestCase) do(lines ...string) forthTestCase {
	ft.lines = append(ft.lines, lines...)
	return ft
}

func (ft forthTestCase) expectError(err error) forthTestCase {
	ft.wantErr = err
	return ft
}

func (ft forthTestCase) expectStack(values ...Value) forthTestCase {
	ft.expect = append(ft.expect, func(t *testing.T, f *Forth) {
		if values == nil {
			values = []Value{}
		}
		got := f.stack
		if got == nil {
			got = []Value{}
		}
		assert.Equal(t, values, got, "expected data stack")
	})
	return ft
}

func (ft forthTestCase) expectRStack(values ...Value) forthTestCase {
	ft.expect = append(ft.expect, func(t *testing.T, f *Forth) {
		if values == nil {
			values = []Value{}
		}
		got := f.rstack
		if got == nil {
			got = []Value{}
		}
		assert.Equal(t, values, got, "expected return stack")
	})
	return ft
}

func (ft forthTestCase) expectOutput(output string) forthTestCase {
	var out strings.Builder
	ft.opts = append(ft.opts, WithOutput(&out))
	ft.expect = append(ft.expect, func(t *testing.T, f *Forth) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return ft
}

func (ft forthTestCase) expectDefined(name string, defined bool) forthTestCase {
	ft.expect = append(ft.expect, func(t *testing.T, f *Forth) {
		_, ok := f.dict.lookup(name)
		assert.Equal(t, defined, ok, "expected %q defined=%v", name, defined)
	})
	return ft
}

func (ft forthTestCase) run(t *testing.T) {
	f := New(ft.opts...)

	var evalErr error
	for _, line := range ft.lines {
		if evalErr = f.Eval(line); evalErr != nil {
			break
		}
	}

	if ft.wantErr != nil {
		require.Error(t, evalErr, "expected an evaluation error")
		assert.True(t, errors.Is(evalErr, ft.wantErr),
			"expected error %v, got %+v", ft.wantErr, evalErr)
	} else {
		require.NoError(t, evalErr, "unexpected evaluation error")
	}

	for _, expect := range ft.expect {
		expect(t, f)
	}
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func TestEval_basics(t *testing.T) {
	forthTestCases{

		forthTest("empty line").
			do("").
			expectStack(),

		forthTest("push literals").
			do(`1 2.5 "hello world" 2021-03-01 T1:30`).
			expectStack(
				numberValue(1),
				numberValue(2.5),
				textValue("hello world"),
				momentValue(time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)),
				durationValue(90*time.Minute),
			),

		forthTest("sequential arithmetic").
			do("3 4 +").
			expectStack(numberValue(7)),

		forthTest("print pops").
			do("3 4 + .").
			expectStack().
			expectOutput(lines("7")),

		forthTest("dot-s keeps the stack").
			do("1 2 3 .S").
			expectStack(numberValue(1), numberValue(2), numberValue(3)).
			expectOutput(lines("<3> 1 2 3")),

		forthTest("case insensitive words").
			do("3 dup *").
			expectStack(numberValue(9)),

		forthTest("state persists across lines").
			do("1 2", "+").
			expectStack(numberValue(3)),

		forthTest("return stack round trip").
			do("1 >R 2 R> +").
			expectStack(numberValue(3)).
			expectRStack(),

		forthTest("r-fetch peeks").
			do("1 >R R@ R@ +").
			expectStack(numberValue(2)).
			expectRStack(numberValue(1)),

		forthTest("exponent literal").
			do("1e3 2 *").
			expectStack(numberValue(2000)),

		forthTest("unknown word").
			do("FROBNICATE").
			expectError(ErrUnknownWord),

		forthTest("underflow not a default value").
			do("1 + ").
			expectError(ErrStackUnderflow),

		forthTest("drop on empty underflows").
			do("DROP").
			expectError(ErrStackUnderflow),

		forthTest("return stack underflow").
			do("R>").
			expectError(ErrStackUnderflow),

		forthTest("divide by zero").
			do("1 0 /").
			expectError(ErrDivideByZero),

		forthTest("mod by zero").
			do("7 0 MOD").
			expectError(ErrDivideByZero),

		forthTest("type mismatch errors not coerces").
			do(`"abc" 1 +`).
			expectError(ErrTypeMismatch),

		forthTest("failure preserves prior state").
			do("1 2 3", "FROBNICATE").
			expectError(ErrUnknownWord).
			expectStack(numberValue(1), numberValue(2), numberValue(3)),
	}.run(t)
}

func TestEval_conditionals(t *testing.T) {
	forthTestCases{

		forthTest("taken if").
			do("1 IF 10 ELSE 20 THEN .").
			expectOutput(lines("10")),

		forthTest("untaken if").
			do("0 IF 10 ELSE 20 THEN .").
			expectOutput(lines("20")),

		forthTest("if without else").
			do("1 IF 10 THEN .", "0 IF 99 THEN").
			expectOutput(lines("10")).
			expectStack(),

		forthTest("nested if").
			do("1 IF 0 IF 1 ELSE 2 THEN ELSE 3 THEN .").
			expectOutput(lines("2")),

		forthTest("nested if outer else").
			do("0 IF 0 IF 1 ELSE 2 THEN ELSE 3 THEN .").
			expectOutput(lines("3")),

		forthTest("unterminated if fails even when taken").
			do("5 IF .").
			expectError(ErrUnmatchedControl),

		forthTest("unterminated if fails when untaken").
			do("0 IF 10").
			expectError(ErrUnmatchedControl),

		forthTest("truthy text flag").
			do(`"yes" IF 1 ELSE 2 THEN`).
			expectStack(numberValue(1)),

		forthTest("if on empty stack underflows").
			do("IF 1 THEN").
			expectError(ErrStackUnderflow),
	}.run(t)
}

func TestEval_loops(t *testing.T) {
	forthTestCases{

		forthTest("counted loop").
			do("5 0 DO I . LOOP").
			expectOutput(lines("0", "1", "2", "3", "4")),

		forthTest("descending plus-loop").
			do("0 5 DO I . -1 +LOOP").
			expectOutput(lines("5", "4", "3", "2", "1")),

		forthTest("plus-loop with stride").
			do("10 0 DO I . 3 +LOOP").
			expectOutput(lines("0", "3", "6", "9")),

		forthTest("nested loops with J").
			do("2 0 DO 2 0 DO J I + . LOOP LOOP").
			expectOutput(lines("0", "1", "1", "2")),

		forthTest("leave exits innermost loop").
			do("10 0 DO I . I 3 = IF LEAVE THEN LOOP").
			expectOutput(lines("0", "1", "2", "3")),

		forthTest("loop without do").
			do("LOOP").
			expectError(ErrStackUnderflow),

		forthTest("i outside a loop").
			do("I").
			expectError(ErrStackUnderflow),

		forthTest("j needs two levels").
			do("5 0 DO J LOOP").
			expectError(ErrStackUnderflow),

		forthTest("leave without loop end").
			do("5 0 DO LEAVE").
			expectError(ErrUnmatchedControl),

		forthTest("begin until").
			do("0 BEGIN 1 + DUP . DUP 3 = UNTIL").
			expectOutput(lines("1", "2", "3")).
			expectStack(numberValue(3)),

		forthTest("begin while repeat").
			do("0 BEGIN DUP 3 < WHILE 1 + DUP . REPEAT").
			expectOutput(lines("1", "2", "3")).
			expectStack(numberValue(3)),

		forthTest("while skips body when false at once").
			do("5 BEGIN DUP 3 < WHILE 1 + REPEAT").
			expectStack(numberValue(5)),

		forthTest("until without begin").
			do("1 UNTIL").
			expectError(ErrStackUnderflow),

		forthTest("while without repeat").
			do("BEGIN 0 WHILE 1").
			expectError(ErrUnmatchedControl),
	}.run(t)
}

func TestEval_definitions(t *testing.T) {
	forthTestCases{

		forthTest("define and call").
			do(": SQUARE DUP * ;", "3 SQUARE").
			expectStack(numberValue(9)),

		forthTest("definition with control flow").
			do(": SIGN DUP 0 < IF DROP -1 ELSE 0 > IF 1 ELSE 0 THEN THEN ;",
				"-5 SIGN 7 SIGN 0 SIGN").
			expectStack(numberValue(-1), numberValue(1), numberValue(0)),

		forthTest("recursive definition").
			do(": COUNTDOWN DUP . DUP 0 > IF 1 - COUNTDOWN THEN ;", "3 COUNTDOWN").
			expectOutput(lines("3", "2", "1", "0")).
			expectStack(numberValue(0)),

		forthTest("last definition wins").
			do(": FOO 1 ;", ": FOO 2 ;", "FOO").
			expectStack(numberValue(2)),

		forthTest("user word shadows native").
			do(": DUP 42 ;", "1 DUP").
			expectStack(numberValue(1), numberValue(42)),

		forthTest("user word shadows control keyword").
			do(": LEAVE 99 ;", "LEAVE").
			expectStack(numberValue(99)),

		forthTest("definition name is case folded").
			do(": twice 2 * ;", "4 TWICE").
			expectStack(numberValue(8)),

		forthTest("forget removes the word").
			do(": FOO 1 ;", "FORGET FOO", "FOO").
			expectError(ErrUnknownWord).
			expectDefined("FOO", false),

		forthTest("forget unknown word").
			do("FORGET FOO").
			expectError(ErrUnknownWord),

		forthTest("see prints the body").
			do(": SQUARE DUP * ;", "SEE SQUARE").
			expectOutput(lines(": SQUARE DUP * ;")),

		forthTest("colon without name").
			do(":").
			expectError(ErrUnexpectedEnd),

		forthTest("colon without semicolon").
			do(": FOO 1 2").
			expectError(ErrUnexpectedEnd).
			expectDefined("FOO", false),

		forthTest("bad body fails only when invoked").
			do(": BROKEN 1 IF 2 ;", "BROKEN").
			expectError(ErrUnmatchedControl).
			expectDefined("BROKEN", true),

		forthTest("definition mid-line").
			do("1 : INC 1 + ; INC").
			expectStack(numberValue(2)),
	}.run(t)
}

func TestEval_calendar(t *testing.T) {
	clock := func() time.Time {
		return time.Date(2021, 6, 15, 10, 30, 0, 0, time.UTC)
	}

	forthTestCases{

		forthTest("moment minus moment is a delta").
			do("2021-03-01 2021-01-31 - .").
			expectOutput(lines("+0000-00-29 00:00:00")),

		forthTest("moment difference round trip").
			do("2021-01-31 2021-03-01 2021-01-31 - + .").
			expectOutput(lines("2021-03-01")),

		forthTest("negative delta when subtrahend is later").
			do("2021-01-31 2021-03-01 - .").
			expectOutput(lines("-0000-00-29 00:00:00")),

		forthTest("moment plus duration").
			do("2021-03-01T12:00 T1:30 + .").
			expectOutput(lines("2021-03-01 13:30:00")),

		forthTest("moment minus duration").
			do("2021-03-01T12:00 T1:30 - .").
			expectOutput(lines("2021-03-01 10:30:00")),

		forthTest("moment plus day offset").
			do("2021-02-28 1 + .").
			expectOutput(lines("2021-03-01")),

		forthTest("duration arithmetic").
			do("T2:00 T0:45 - .").
			expectOutput(lines("T1:15:00")),

		forthTest("moment ordering").
			do("2021-01-01 2021-06-01 <").
			expectStack(numberValue(1)),

		forthTest("now uses the injected clock").
			withOptions(WithNow(clock)).
			do("NOW .").
			expectOutput(lines("2021-06-15 10:30:00")),

		forthTest("today is midnight of now").
			withOptions(WithNow(clock)).
			do("TODAY .").
			expectOutput(lines("2021-06-15")),

		forthTest("parse-date accepts loose formats").
			do(`"March 1, 2021" PARSE-DATE .`).
			expectOutput(lines("2021-03-01")),

		forthTest("moment minus number mismatches").
			do("2021-03-01 1 -").
			expectError(ErrTypeMismatch),

		forthTest("duration times duration mismatches").
			do("T1:00 T1:00 *").
			expectError(ErrTypeMismatch),
	}.run(t)
}
