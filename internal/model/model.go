// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the core data structures shared by the store, the
// edit session and the user interfaces.
package model // import "github.com/rymate/notes/internal/model"

import (
	"fmt"
	"strings"
)

const (
	// InvalidID is returned together with an error when an insert fails.
	InvalidID int64 = -1

	// UncategorizedID is the category reference stored for notes that were
	// never assigned a category.
	UncategorizedID int64 = 0

	// AllNotesCategoryID is the id of the first seeded category. It is a
	// pseudo category: selecting it shows every note.
	AllNotesCategoryID int64 = 1
)

// Seeded category titles, inserted once when the categories table is created.
const (
	AllNotesTitle      = "All Notes"
	UncategorisedTitle = "Uncategorised"
)

// Note is a user-authored title/body pair with an optional category tag.
type Note struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	CategoryID int64  `json:"category_id"`
}

// String returns a short single-line description of the note.
func (n Note) String() string {
	return fmt.Sprintf("#%d %s", n.ID, n.Title)
}

// Preview returns the leading words of the body, see Sample.
func (n Note) Preview() string {
	return Sample(n.Body)
}

// Category is a named grouping for notes, identified numerically.
type Category struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// String returns the category title.
func (c Category) String() string {
	return c.Title
}

// sampleWords is the maximum number of words returned by Sample.
const sampleWords = 8

// Sample returns the first one to eight whitespace-separated words of s,
// including the whitespace that follows each word. Leading whitespace is
// skipped and an empty or blank input yields "".
func Sample(s string) string {
	start := strings.IndexFunc(s, func(r rune) bool { return !isSpace(r) })
	if start < 0 {
		return ""
	}
	rest := s[start:]
	words := 0
	inWord := false
	for i, r := range rest {
		if isSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			if words == sampleWords {
				return rest[:i]
			}
			words++
			inWord = true
		}
	}
	return rest
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
