// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rymate/notes/internal/db"
	"github.com/rymate/notes/internal/i18n"
	"github.com/rymate/notes/internal/model"
)

// clipboardWriteAll is replaced in tests.
var clipboardWriteAll = clipboard.WriteAll

type noteLoadedMsg struct {
	note *model.Note
	err  error
}

// noteViewModel shows a single note read-only in a scrollable viewport.
type noteViewModel struct {
	store      db.Store
	id         int64
	note       *model.Note
	categories []model.Category
	err        error
	viewport   viewport.Model
	width      int
	height     int
}

func newNoteViewModel(store db.Store, id int64, categories []model.Category, width, height int) noteViewModel {
	m := noteViewModel{store: store, id: id, categories: categories}
	m.viewport = viewport.New(0, 0)
	m.setSize(width, height)
	return m
}

func (m noteViewModel) Init() tea.Cmd {
	store, id := m.store, m.id
	return func() tea.Msg {
		n, err := store.FetchNote(context.Background(), id)
		return noteLoadedMsg{note: n, err: err}
	}
}

func (m *noteViewModel) setSize(width, height int) {
	m.width, m.height = width, height
	w, h := width-4, height-8
	if w < 10 {
		w = 10
	}
	if h < 3 {
		h = 3
	}
	m.viewport.Width = w
	m.viewport.Height = h
	m.refreshContent()
}

func (m *noteViewModel) refreshContent() {
	if m.note == nil {
		return
	}
	m.viewport.SetContent(bodyStyle.Width(m.viewport.Width).Render(m.note.Body))
}

func (m noteViewModel) Update(msg tea.Msg) (noteViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case noteLoadedMsg:
		m.err = msg.err
		m.note = msg.note
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "backspace":
			return m, func() tea.Msg { return backToListMsg{} }
		case "e":
			id := m.id
			return m, func() tea.Msg { return editNoteMsg{id: id} }
		case "d":
			if m.note != nil {
				n := *m.note
				return m, func() tea.Msg { return confirmDeleteMsg{note: n} }
			}
			return m, nil
		case "y":
			if m.note != nil {
				text := m.note.Title + "\n\n" + m.note.Body
				return m, func() tea.Msg {
					if err := clipboardWriteAll(text); err != nil {
						return statusMsg{text: i18n.T("note.copy_failed", err), isErr: true}
					}
					return statusMsg{text: i18n.T("note.copied")}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m noteViewModel) View() string {
	if m.err != nil {
		if errors.Is(m.err, db.ErrNotFound) {
			return errorStyle.Render(i18n.T("note.not_found", m.id))
		}
		return errorStyle.Render(i18n.T("note.load_failed", m.err))
	}
	if m.note == nil {
		return ""
	}
	title := m.note.Title
	if title == "" {
		title = i18n.T("note.untitled")
	}
	header := AlignFooter(titleStyle.Render(title), categoryStyle.Render(categoryTitle(m.categories, m.note.CategoryID)), m.width-4)
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.viewport.View())
}

// categoryTitle resolves a category id for display. Id 0 means none.
func categoryTitle(categories []model.Category, id int64) string {
	if id == model.UncategorizedID {
		return i18n.T("category.none")
	}
	for _, c := range categories {
		if c.ID == id {
			return c.Title
		}
	}
	return i18n.T("category.unknown", id)
}
