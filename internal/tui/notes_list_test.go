// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"errors"
	"testing"

	"github.com/rymate/notes/internal/i18n"
	"github.com/rymate/notes/internal/model"
	"github.com/stretchr/testify/assert"
)

func loadedList(notes ...model.Note) notesListModel {
	m := newNotesListModel(nil)
	m.width, m.height = 80, 24
	m, _ = m.Update(notesLoadedMsg{
		categoryID: model.AllNotesCategoryID,
		categories: []model.Category{
			{ID: model.AllNotesCategoryID, Title: model.AllNotesTitle},
			{ID: 2, Title: model.UncategorisedTitle},
		},
		notes: notes,
	})
	return m
}

func TestNotesList_CursorStaysInBounds(t *testing.T) {
	m := loadedList(model.Note{ID: 1, Title: "a"}, model.Note{ID: 2, Title: "b"})

	m, _ = m.Update(keyMsg("up"))
	assert.Equal(t, 0, m.cursor)
	m, _ = m.Update(keyMsg("down"))
	m, _ = m.Update(keyMsg("down"))
	m, _ = m.Update(keyMsg("j"))
	assert.Equal(t, 1, m.cursor)
	m, _ = m.Update(keyMsg("g"))
	assert.Equal(t, 0, m.cursor)
	m, _ = m.Update(keyMsg("G"))
	assert.Equal(t, 1, m.cursor)

	// a reload with fewer notes pulls the cursor back
	m, _ = m.Update(notesLoadedMsg{categoryID: model.AllNotesCategoryID, categories: m.categories, notes: []model.Note{{ID: 1, Title: "a"}}})
	assert.Equal(t, 0, m.cursor)
}

func TestNotesList_ActionsEmitMessages(t *testing.T) {
	m := loadedList(model.Note{ID: 7, Title: "seven"})

	_, cmd := m.Update(keyMsg("enter"))
	assert.Equal(t, openNoteMsg{id: 7}, cmd())

	_, cmd = m.Update(keyMsg("e"))
	assert.Equal(t, editNoteMsg{id: 7}, cmd())

	_, cmd = m.Update(keyMsg("d"))
	assert.Equal(t, confirmDeleteMsg{note: model.Note{ID: 7, Title: "seven"}}, cmd())

	_, cmd = m.Update(keyMsg("n"))
	assert.Equal(t, editNoteMsg{categoryID: model.UncategorizedID}, cmd())
}

func TestNotesList_EmptyListHasNoSelectionActions(t *testing.T) {
	m := loadedList()
	for _, k := range []string{"enter", "e", "d"} {
		_, cmd := m.Update(keyMsg(k))
		assert.Nil(t, cmd, "key %q", k)
	}
	assert.Contains(t, m.View(), i18n.T("list.empty"))
}

func TestNotesList_LoadError(t *testing.T) {
	m := newNotesListModel(nil)
	m, _ = m.Update(notesLoadedMsg{categoryID: model.AllNotesCategoryID, err: errors.New("boom")})
	assert.Contains(t, m.View(), "boom")
}

func TestNotesList_DropsStaleReloads(t *testing.T) {
	cats := []model.Category{
		{ID: model.AllNotesCategoryID, Title: model.AllNotesTitle},
		{ID: 2, Title: model.UncategorisedTitle},
		{ID: 3, Title: "Work"},
	}
	m := newNotesListModel(nil)
	m.width, m.height = 80, 24
	m, _ = m.Update(notesLoadedMsg{categoryID: model.AllNotesCategoryID, categories: cats})

	// two quick category switches: Uncategorised, then Work
	m, _ = m.Update(keyMsg("c"))
	m, _ = m.Update(keyMsg("c"))
	cat, _ := m.selectedCategory()
	assert.Equal(t, int64(3), cat.ID)

	// the Work reload finishes first, the Uncategorised one arrives late
	m, _ = m.Update(notesLoadedMsg{categoryID: 3, categories: cats, notes: []model.Note{{ID: 5, Title: "Report", CategoryID: 3}}})
	m, _ = m.Update(notesLoadedMsg{categoryID: 2, categories: cats, notes: []model.Note{{ID: 6, Title: "Groceries", CategoryID: 2}}})

	assert.Equal(t, []model.Note{{ID: 5, Title: "Report", CategoryID: 3}}, m.notes)
	assert.Contains(t, m.View(), "Report")
	assert.NotContains(t, m.View(), "Groceries")
}

func TestNotesList_UntitledAndPreview(t *testing.T) {
	m := loadedList(model.Note{ID: 1, Body: "one two three four five six seven eight nine"})
	out := m.View()
	assert.Contains(t, out, i18n.T("note.untitled"))
	assert.Contains(t, out, "eight")
	assert.NotContains(t, out, "nine")
}

func TestVisibleRange(t *testing.T) {
	m := notesListModel{notes: make([]model.Note, 10)}
	start, end := m.visibleRange(4)
	assert.Equal(t, 0, start)
	assert.Equal(t, 4, end)

	m.cursor = 9
	start, end = m.visibleRange(4)
	assert.Equal(t, 6, start)
	assert.Equal(t, 10, end)

	start, end = m.visibleRange(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)
}

func TestCategoryTitle(t *testing.T) {
	cats := []model.Category{{ID: 3, Title: "Work"}}
	assert.Equal(t, i18n.T("category.none"), categoryTitle(cats, model.UncategorizedID))
	assert.Equal(t, "Work", categoryTitle(cats, 3))
	assert.Equal(t, "#9", categoryTitle(cats, 9))
}

func TestAlignFooter(t *testing.T) {
	assert.Equal(t, "left     right", AlignFooter("left", "right", 14))
	assert.Equal(t, "left right", AlignFooter("left", "right", 3))
}
