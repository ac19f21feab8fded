package main

import (
	"fmt"
	"runtime/debug"
)

// capture converts a panic escaping f into an error return, so a bug in a
// native word aborts one evaluation instead of the whole process.
func capture(name string, f func() error) (rerr error) {
	defer func() {
		if e := recover(); e != nil {
			rerr = panicError{name: name, e: e, stack: debug.Stack()}
		}
	}()
	return f()
}

type panicError struct {
	name  string
	e     interface{}
	stack []byte
}

func (pe panicError) Error() string {
	return fmt.Sprintf("%v paniced: %v", pe.name, pe.e)
}

func (pe panicError) Format(fs fmt.State, c rune) {
	fmt.Fprintf(fs, "%v paniced: %v", pe.name, pe.e)
	if c == 'v' && fs.Flag('+') {
		fmt.Fprintf(fs, "\npanic stack: %s", pe.stack)
	}
}

func (pe panicError) Unwrap() error {
	err, _ := pe.e.(error)
	return err
}
