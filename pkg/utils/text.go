// Package utils provides shared utilities for text and logging.
package utils

import "strings"

// Truncate returns s truncated to maxLen characters, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// FirstName returns the text of name before the first space.
func FirstName(name string) string {
	first, _, _ := strings.Cut(name, " ")
	return first
}

// Plural returns word with an "s" appended unless n is exactly 1.
func Plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
