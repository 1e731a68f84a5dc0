// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rymate/notes/internal/db"
	"github.com/rymate/notes/internal/i18n"
	"github.com/rymate/notes/internal/model"
)

// notesLoadedMsg carries the result of a list reload. categoryID is the filter
// the notes were loaded for, AllNotesCategoryID when every note was listed.
type notesLoadedMsg struct {
	categoryID int64
	categories []model.Category
	notes      []model.Note
	err        error
}

// notesListModel shows the notes of the selected category. Selecting the
// "All Notes" category, or having no categories at all, lists every note.
type notesListModel struct {
	store      db.Store
	categories []model.Category
	catIndex   int
	notes      []model.Note
	cursor     int
	loaded     bool
	err        error
	width      int
	height     int
}

func newNotesListModel(store db.Store) notesListModel {
	return notesListModel{store: store}
}

func (m notesListModel) Init() tea.Cmd {
	return m.load()
}

// selectedCategory returns the category filter and whether every note should
// be listed instead.
func (m notesListModel) selectedCategory() (model.Category, bool) {
	if m.catIndex < 0 || m.catIndex >= len(m.categories) {
		return model.Category{ID: model.AllNotesCategoryID, Title: model.AllNotesTitle}, true
	}
	c := m.categories[m.catIndex]
	return c, c.ID == model.AllNotesCategoryID
}

// load fetches categories and the notes of the current filter.
func (m notesListModel) load() tea.Cmd {
	store := m.store
	cat, all := m.selectedCategory()
	return func() tea.Msg {
		ctx := context.Background()
		cats, err := store.FetchCategories(ctx)
		if err != nil {
			return notesLoadedMsg{categoryID: cat.ID, err: err}
		}
		var notes []model.Note
		if all {
			notes, err = store.FetchAllNotes(ctx)
		} else {
			notes, err = store.FetchNotesByCategory(ctx, cat.ID)
		}
		return notesLoadedMsg{categoryID: cat.ID, categories: cats, notes: notes, err: err}
	}
}

// selected returns the note under the cursor.
func (m notesListModel) selected() (model.Note, bool) {
	if m.cursor < 0 || m.cursor >= len(m.notes) {
		return model.Note{}, false
	}
	return m.notes[m.cursor], true
}

func (m notesListModel) cycleCategory(delta int) (notesListModel, tea.Cmd) {
	if len(m.categories) == 0 {
		return m, nil
	}
	n := len(m.categories)
	m.catIndex = ((m.catIndex+delta)%n + n) % n
	m.cursor = 0
	return m, m.load()
}

func (m notesListModel) Update(msg tea.Msg) (notesListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case notesLoadedMsg:
		// A reload for a filter the user already moved away from.
		if cat, _ := m.selectedCategory(); msg.categoryID != cat.ID {
			return m, nil
		}
		m.loaded = true
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.categories = msg.categories
		if m.catIndex >= len(m.categories) {
			m.catIndex = 0
		}
		m.notes = msg.notes
		if m.cursor >= len(m.notes) {
			m.cursor = len(m.notes) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.notes)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			if len(m.notes) > 0 {
				m.cursor = len(m.notes) - 1
			}
		case "enter":
			if n, ok := m.selected(); ok {
				return m, func() tea.Msg { return openNoteMsg{id: n.ID} }
			}
		case "n":
			cat, all := m.selectedCategory()
			catID := cat.ID
			if all {
				catID = model.UncategorizedID
			}
			return m, func() tea.Msg { return editNoteMsg{categoryID: catID} }
		case "e":
			if n, ok := m.selected(); ok {
				return m, func() tea.Msg { return editNoteMsg{id: n.ID} }
			}
		case "d", "delete":
			if n, ok := m.selected(); ok {
				return m, func() tea.Msg { return confirmDeleteMsg{note: n} }
			}
		case "c", "right":
			return m.cycleCategory(1)
		case "C", "left":
			return m.cycleCategory(-1)
		case "r":
			return m, m.load()
		}
	}
	return m, nil
}

// visibleRange returns the slice of notes that fits into height rows while
// keeping the cursor visible.
func (m notesListModel) visibleRange(rows int) (int, int) {
	if rows <= 0 || len(m.notes) <= rows {
		return 0, len(m.notes)
	}
	start := m.cursor - rows/2
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > len(m.notes) {
		end = len(m.notes)
		start = end - rows
	}
	return start, end
}

func (m notesListModel) View() string {
	var b strings.Builder

	cat, _ := m.selectedCategory()
	header := titleStyle.Render(i18n.T("list.title")) + " " + categoryStyle.Render(cat.Title)
	count := helpStyle.Render(i18n.T("list.count", len(m.notes)))
	b.WriteString(AlignFooter(header, count, m.width-4))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(i18n.T("list.load_failed", m.err)))
	case m.loaded && len(m.notes) == 0:
		b.WriteString(helpStyle.Render(i18n.T("list.empty")))
	default:
		start, end := m.visibleRange(m.height - 8)
		for i := start; i < end; i++ {
			b.WriteString(m.renderItem(i))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m notesListModel) renderItem(i int) string {
	n := m.notes[i]
	title := n.Title
	if title == "" {
		title = i18n.T("note.untitled")
	}
	preview := strings.Join(strings.Fields(n.Preview()), " ")
	line := fmt.Sprintf("%s  %s", title, previewStyle.Render(preview))
	if m.width > 8 {
		line = lipgloss.NewStyle().MaxWidth(m.width - 6).Render(line)
	}
	if i == m.cursor {
		return selectedItemStyle.Render("▸ " + line)
	}
	return itemStyle.Render(line)
}
