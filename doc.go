/* Package main: FOURTH -- a FORTH that knows what day it is

FOURTH is a small interactive FORTH-family interpreter. Like any FORTH it
reads words separated by whitespace, pushes literals onto a data stack, and
looks everything else up in a dictionary of native and user-defined words.
Unlike most FORTHs its stack cells are not machine integers but tagged
values: numbers, text, timestamps, durations, and calendar deltas. The
arithmetic words dispatch over those tags, so `2021-03-01 2021-01-31 -`
answers with a year/month/day decomposition rather than a cell difference.

There is no compilation step and no bytecode. A `:` definition stores its
body as the very tokens you typed, and invoking the word replays them.
Control flow (IF/ELSE/THEN, DO/LOOP/+LOOP/LEAVE, BEGIN/UNTIL/WHILE/REPEAT)
works by repositioning an instruction pointer inside the flat token
sequence, matching brackets by nesting-depth scans that are resolved once
per sequence and remembered.

One input line is one evaluation unit. Errors abort the line, report one
message, and leave the stacks and dictionary exactly where they stood; the
next line picks up from there, which is the honest thing for an
interactive console to do.

The evaluator lives in eval.go, the value model in value.go and
calendar.go, the native words in words.go, and the CLI wrapping it all in
main.go.
*/
package main
