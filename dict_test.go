package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDictionary(t *testing.T) {
	d := newDictionary()

	_, ok := d.lookup("SQUARE")
	assert.False(t, ok)

	d.define("square", []string{"DUP", "*"})
	body, ok := d.lookup("SQUARE")
	if assert.True(t, ok) {
		assert.Equal(t, []string{"DUP", "*"}, body)
	}
	_, ok = d.lookup("Square")
	assert.True(t, ok, "lookup folds case")

	// last definition wins
	d.define("SQUARE", []string{"DUP", "DUP", "*", "*"})
	body, _ = d.lookup("square")
	assert.Equal(t, []string{"DUP", "DUP", "*", "*"}, body)

	d.define("cube", []string{"DUP", "DUP", "*", "*"})
	assert.Equal(t, []string{"SQUARE", "cube"}, d.names())

	assert.True(t, d.forget("Square"))
	assert.False(t, d.forget("Square"))
	assert.Equal(t, []string{"cube"}, d.names())
}
