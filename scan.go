package main

import "strings"

// scanTokens splits one input line on whitespace, except inside a
// double-quoted span where whitespace is preserved and the quotes are
// retained in the token. An unterminated quote absorbs the rest of the
// line into one open token; there is no escape mechanism.
func scanTokens(line string) []string {
	line = strings.ReplaceAll(line, "\t", " ")
	var tokens []string
	for i := 0; i < len(line); {
		for i < len(line) && line[i] == ' ' {
			i++
		}
		if i >= len(line) {
			break
		}
		start := i
		if line[i] == '"' {
			i++
			for i < len(line) && line[i] != '"' {
				i++
			}
			if i < len(line) {
				i++ // keep the closing quote
			}
		} else {
			for i < len(line) && line[i] != ' ' {
				i++
			}
		}
		tokens = append(tokens, line[start:i])
	}
	return tokens
}
