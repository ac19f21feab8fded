package main

import (
	"sort"
	"strings"
)

// userWord is one stored definition: the name as first written, and the
// body tokens captured verbatim between `:` NAME and `;`.
type userWord struct {
	name string
	body []string
}

// dictionary maps case-folded names to user definitions. The last
// definition of a name wins, and user definitions shadow native words and
// control keywords of the same name.
type dictionary struct {
	defs map[string]userWord
}

func newDictionary() dictionary {
	return dictionary{defs: make(map[string]userWord)}
}

func (d dictionary) define(name string, body []string) {
	d.defs[strings.ToUpper(name)] = userWord{name: name, body: body}
}

func (d dictionary) lookup(name string) ([]string, bool) {
	w, ok := d.defs[strings.ToUpper(name)]
	return w.body, ok
}

func (d dictionary) forget(name string) bool {
	key := strings.ToUpper(name)
	if _, ok := d.defs[key]; !ok {
		return false
	}
	delete(d.defs, key)
	return true
}

func (d dictionary) names() []string {
	names := make([]string, 0, len(d.defs))
	for _, w := range d.defs {
		names = append(names, w.name)
	}
	sort.Strings(names)
	return names
}
