// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

// Package frame holds reusable TUI building blocks.
package frame

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Result is the outcome of a key press handled by a Dialog.
type Result int

const (
	// Pending means the dialog is still open.
	Pending Result = iota
	// Confirmed means the right (confirm) button was chosen.
	Confirmed
	// Cancelled means the left (cancel) button was chosen or esc pressed.
	Cancelled
)

// Dialog is a modal box with a title, a message, a cancel button on the left
// and a confirm button on the right. The cancel button has focus initially.
type Dialog struct {
	title   string
	message string
	cancel  string
	confirm string
	focused bool // false = cancel, true = confirm
	width   int
}

// NewDialog creates a dialog with the given title, message and button labels.
func NewDialog(title, message, cancel, confirm string) *Dialog {
	return &Dialog{
		title:   title,
		message: message,
		cancel:  cancel,
		confirm: confirm,
		width:   60,
	}
}

// SetWidth sets the dialog width, clamped to a usable minimum.
func (d *Dialog) SetWidth(width int) {
	if width < 30 {
		width = 30
	}
	d.width = width
}

// FocusRight moves focus to the confirm button.
func (d *Dialog) FocusRight() { d.focused = true }

// FocusLeft moves focus to the cancel button.
func (d *Dialog) FocusLeft() { d.focused = false }

// IsFocusedRight reports whether the confirm button has focus.
func (d *Dialog) IsFocusedRight() bool { return d.focused }

// HandleKey moves focus or resolves the dialog. The first letter shortcuts
// y/j confirm and n cancel.
func (d *Dialog) HandleKey(msg tea.KeyMsg) Result {
	switch msg.String() {
	case "left", "h":
		d.FocusLeft()
	case "right", "l":
		d.FocusRight()
	case "tab", "shift+tab":
		d.focused = !d.focused
	case "enter", " ":
		if d.focused {
			return Confirmed
		}
		return Cancelled
	case "y", "Y", "j", "J":
		return Confirmed
	case "n", "N", "esc", "q":
		return Cancelled
	}
	return Pending
}

// Render produces the dialog box.
func (d *Dialog) Render() string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("60")).
		Bold(true).
		Width(d.width).
		Render(" " + d.title)

	message := lipgloss.NewStyle().
		Width(d.width-4).
		Padding(1, 2, 0, 2).
		Render(d.message)

	body := lipgloss.JoinVertical(lipgloss.Left, header, message, d.renderButtons())

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Width(d.width).
		Render(body)
}

func (d *Dialog) renderButtons() string {
	base := lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("239")).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("239")).
		Padding(0, 3)
	active := base.
		Background(lipgloss.Color("60")).
		BorderForeground(lipgloss.Color("60"))

	left, right := active, base
	if d.focused {
		left, right = base, active
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, left.Render(d.cancel), "  ", right.Render(d.confirm))
	return lipgloss.NewStyle().Padding(1, 2).Render(row)
}
