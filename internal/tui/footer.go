// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AlignFooter returns a single line with left at the start and right aligned
// to width columns. Styled strings are measured by their printable width. If
// width is too small a single space separates the two.
func AlignFooter(left, right string, width int) string {
	spaces := width - lipgloss.Width(left) - lipgloss.Width(right)
	if spaces < 1 {
		spaces = 1
	}
	return left + strings.Repeat(" ", spaces) + right
}

// footer renders the help text and the status message of a screen.
func footer(help, status string, statusIsErr bool, width int) string {
	right := ""
	if status != "" {
		if statusIsErr {
			right = errorStyle.Render(status)
		} else {
			right = statusMessageStyle.Render(status)
		}
	}
	return AlignFooter(helpStyle.Render(help), right, width)
}
