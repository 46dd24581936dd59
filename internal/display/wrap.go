package display

import (
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// DefaultWidth is the column an inventory listing wraps at.
const DefaultWidth = 80

// entryIndent is how far stack lines sit under their kind heading.
const entryIndent = 2

// WrapEntry word-wraps one listing entry, preserving ANSI escape sequences,
// so that it and its continuation lines sit entryIndent columns in and
// still fit DefaultWidth.
func WrapEntry(text string) string {
	return indent.String(wordwrap.String(text, DefaultWidth-entryIndent), entryIndent)
}

// Heading renders the title line for a group of stacks.
func Heading(title string) string {
	return Capitalize(title) + ":"
}

// Capitalize returns s with its first character uppercased.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
