package main

import (
	"fmt"
	"strconv"
	"strings"
)

// evalTokens runs one token sequence left to right. Each iteration either
// advances ip by one or a control-flow branch sets ip to the token just
// before the desired resumption point, since the loop applies its own
// increment afterward. User definitions are evaluated recursively over
// their stored token slices; jump targets are local to the sequence being
// scanned.
func (f *Forth) evalTokens(tokens []string) error {
	res := newResolver(tokens)
	for ip := 0; ip < len(tokens); ip++ {
		token := tokens[ip]
		f.logf("eval @%d %q -- s:%v r:%v l:%v b:%v",
			ip, token, len(f.stack), len(f.rstack), len(f.loops), len(f.begins))

		if token == ":" {
			end, err := f.compileWord(tokens, ip)
			if err != nil {
				return err
			}
			ip = end
			continue
		}

		if body, defined := f.dict.lookup(token); defined {
			if err := f.evalTokens(body); err != nil {
				return err
			}
			continue
		}

		if isControlWord(token) {
			nip, err := f.evalControl(res, tokens, ip)
			if err != nil {
				return err
			}
			ip = nip
			continue
		}

		if v, isLiteral := parseLiteral(token); isLiteral {
			f.push(v)
			continue
		}

		if native, ok := natives[strings.ToUpper(token)]; ok {
			if err := native(f); err != nil {
				return err
			}
			continue
		}

		return unknownWordErr(token)
	}
	return nil
}

// compileWord captures a `:` definition: the next token names the word,
// everything up to the next bare `;` is stored verbatim. Bodies are not
// validated here; malformed control flow surfaces when the word runs.
func (f *Forth) compileWord(tokens []string, ip int) (int, error) {
	if ip+1 >= len(tokens) {
		return 0, fmt.Errorf("%w: `:` needs a name", ErrUnexpectedEnd)
	}
	name := tokens[ip+1]
	for j := ip + 2; j < len(tokens); j++ {
		if tokens[j] == ";" {
			body := append([]string(nil), tokens[ip+2:j]...)
			f.dict.define(name, body)
			f.logf("define %q = %v", name, body)
			return j, nil
		}
	}
	return 0, fmt.Errorf("%w: `: %s` missing `;`", ErrUnexpectedEnd, name)
}

// parseLiteral classifies a literal token, trying quoted string, then
// timestamp, then duration, then plain number; first match wins.
func parseLiteral(token string) (Value, bool) {
	if strings.HasPrefix(token, `"`) {
		s := strings.TrimPrefix(token, `"`)
		s = strings.TrimSuffix(s, `"`)
		return textValue(s), true
	}
	if t, ok := parseMoment(token); ok {
		return momentValue(t), true
	}
	if d, ok := parseDurationLiteral(token); ok {
		return durationValue(d), true
	}
	if n, err := strconv.ParseFloat(token, 64); err == nil {
		return numberValue(n), true
	}
	return Value{}, false
}

var controlWords = map[string]bool{
	"IF": true, "ELSE": true, "THEN": true,
	"DO": true, "LOOP": true, "+LOOP": true, "I": true, "J": true, "LEAVE": true,
	"BEGIN": true, "UNTIL": true, "WHILE": true, "REPEAT": true,
	"FORGET": true, "SEE": true,
}

func isControlWord(token string) bool {
	return controlWords[strings.ToUpper(token)]
}

// evalControl handles one control keyword at ip, returning the new ip.
func (f *Forth) evalControl(res *resolver, tokens []string, ip int) (int, error) {
	switch strings.ToUpper(tokens[ip]) {

	case "IF":
		flag, err := f.pop()
		if err != nil {
			return 0, err
		}
		// resolve even on the truthy path, so an IF with no THEN in
		// reach fails when executed rather than silently falling off
		target, err := res.ifTarget(ip)
		if err != nil {
			return 0, err
		}
		if !truthy(flag) {
			return target, nil
		}
		return ip, nil

	case "ELSE":
		// reached only by fall-through from a taken IF
		target, err := res.thenTarget(ip)
		if err != nil {
			return 0, err
		}
		return target, nil

	case "THEN":
		return ip, nil

	case "DO":
		start, err := f.popNumber("DO")
		if err != nil {
			return 0, err
		}
		limit, err := f.popNumber("DO")
		if err != nil {
			return 0, err
		}
		f.loops = append(f.loops, loopFrame{index: start, limit: limit, resume: ip})
		return ip, nil

	case "LOOP":
		frame, err := f.innerLoop()
		if err != nil {
			return 0, err
		}
		frame.index++
		if frame.index < frame.limit {
			return frame.resume, nil
		}
		f.loops = f.loops[:len(f.loops)-1]
		return ip, nil

	case "+LOOP":
		step, err := f.popNumber("+LOOP")
		if err != nil {
			return 0, err
		}
		frame, err := f.innerLoop()
		if err != nil {
			return 0, err
		}
		frame.index += step
		if step > 0 && frame.index < frame.limit || step < 0 && frame.index > frame.limit {
			return frame.resume, nil
		}
		f.loops = f.loops[:len(f.loops)-1]
		return ip, nil

	case "I":
		frame, err := f.innerLoop()
		if err != nil {
			return 0, err
		}
		f.push(numberValue(frame.index))
		return ip, nil

	case "J":
		if len(f.loops) < 2 {
			return 0, underflowErr("loop")
		}
		f.push(numberValue(f.loops[len(f.loops)-2].index))
		return ip, nil

	case "LEAVE":
		if _, err := f.innerLoop(); err != nil {
			return 0, err
		}
		f.loops = f.loops[:len(f.loops)-1]
		target, err := res.loopEnd(ip)
		if err != nil {
			return 0, err
		}
		return target, nil

	case "BEGIN":
		f.begins = append(f.begins, ip)
		return ip, nil

	case "UNTIL":
		mark, err := f.beginMark()
		if err != nil {
			return 0, err
		}
		flag, err := f.pop()
		if err != nil {
			return 0, err
		}
		if !truthy(flag) {
			return mark, nil
		}
		f.begins = f.begins[:len(f.begins)-1]
		return ip, nil

	case "WHILE":
		if _, err := f.beginMark(); err != nil {
			return 0, err
		}
		flag, err := f.pop()
		if err != nil {
			return 0, err
		}
		if !truthy(flag) {
			target, err := res.repeatTarget(ip)
			if err != nil {
				return 0, err
			}
			f.begins = f.begins[:len(f.begins)-1]
			return target, nil
		}
		return ip, nil

	case "REPEAT":
		// the begin mark is popped only on WHILE's falsey exit
		mark, err := f.beginMark()
		if err != nil {
			return 0, err
		}
		return mark, nil

	case "FORGET":
		if ip+1 >= len(tokens) {
			return 0, fmt.Errorf("%w: FORGET needs a name", ErrUnexpectedEnd)
		}
		name := tokens[ip+1]
		if !f.dict.forget(name) {
			return 0, unknownWordErr(name)
		}
		return ip + 1, nil

	case "SEE":
		if ip+1 >= len(tokens) {
			return 0, fmt.Errorf("%w: SEE needs a name", ErrUnexpectedEnd)
		}
		name := tokens[ip+1]
		body, defined := f.dict.lookup(name)
		if !defined {
			return 0, unknownWordErr(name)
		}
		if err := f.emitLine(": " + name + " " + strings.Join(body, " ") + " ;"); err != nil {
			return 0, err
		}
		return ip + 1, nil
	}

	return 0, unknownWordErr(tokens[ip])
}

func (f *Forth) innerLoop() (*loopFrame, error) {
	if len(f.loops) == 0 {
		return nil, underflowErr("loop")
	}
	return &f.loops[len(f.loops)-1], nil
}

func (f *Forth) beginMark() (int, error) {
	if len(f.begins) == 0 {
		return 0, underflowErr("begin")
	}
	return f.begins[len(f.begins)-1], nil
}

// resolver memoizes bracket-matching scans over one token sequence, so a
// loop body is scanned once rather than once per iteration. A failed match
// is UnmatchedControl at execution time; bodies are unvalidated until run.
type resolver struct {
	tokens   []string
	ifs      map[int]int // IF -> matching ELSE (depth 1) or THEN (depth 0)
	thens    map[int]int // ELSE -> matching THEN
	repeats  map[int]int // WHILE -> matching REPEAT
	loopEnds map[int]int // LEAVE -> matching LOOP / +LOOP
}

func newResolver(tokens []string) *resolver {
	return &resolver{tokens: tokens}
}

// ifTarget finds where a falsey IF at ip jumps: the matching ELSE at
// nesting depth one, or the matching THEN closing depth zero.
func (r *resolver) ifTarget(ip int) (int, error) {
	if at, ok := r.ifs[ip]; ok {
		return at, nil
	}
	depth := 1
	for j := ip + 1; j < len(r.tokens); j++ {
		switch strings.ToUpper(r.tokens[j]) {
		case "IF":
			depth++
		case "ELSE":
			if depth == 1 {
				return r.memo(&r.ifs, ip, j), nil
			}
		case "THEN":
			if depth--; depth == 0 {
				return r.memo(&r.ifs, ip, j), nil
			}
		}
	}
	return 0, unmatchedErr("IF", "THEN")
}

// thenTarget finds the THEN matching the ELSE at ip.
func (r *resolver) thenTarget(ip int) (int, error) {
	if at, ok := r.thens[ip]; ok {
		return at, nil
	}
	depth := 1
	for j := ip + 1; j < len(r.tokens); j++ {
		switch strings.ToUpper(r.tokens[j]) {
		case "IF":
			depth++
		case "THEN":
			if depth--; depth == 0 {
				return r.memo(&r.thens, ip, j), nil
			}
		}
	}
	return 0, unmatchedErr("ELSE", "THEN")
}

// repeatTarget finds the REPEAT matching the WHILE at ip. Nesting counts
// WHILE only, not BEGIN.
func (r *resolver) repeatTarget(ip int) (int, error) {
	if at, ok := r.repeats[ip]; ok {
		return at, nil
	}
	depth := 1
	for j := ip + 1; j < len(r.tokens); j++ {
		switch strings.ToUpper(r.tokens[j]) {
		case "WHILE":
			depth++
		case "REPEAT":
			if depth--; depth == 0 {
				return r.memo(&r.repeats, ip, j), nil
			}
		}
	}
	return 0, unmatchedErr("WHILE", "REPEAT")
}

// loopEnd finds the LOOP or +LOOP closing the innermost DO around ip.
func (r *resolver) loopEnd(ip int) (int, error) {
	if at, ok := r.loopEnds[ip]; ok {
		return at, nil
	}
	depth := 1
	for j := ip + 1; j < len(r.tokens); j++ {
		switch strings.ToUpper(r.tokens[j]) {
		case "DO":
			depth++
		case "LOOP", "+LOOP":
			if depth--; depth == 0 {
				return r.memo(&r.loopEnds, ip, j), nil
			}
		}
	}
	return 0, unmatchedErr("DO", "LOOP")
}

func (r *resolver) memo(m *map[int]int, ip, at int) int {
	if *m == nil {
		*m = make(map[int]int)
	}
	(*m)[ip] = at
	return at
}
