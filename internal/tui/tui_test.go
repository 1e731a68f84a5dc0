// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rymate/notes/internal/db"
	"github.com/rymate/notes/internal/i18n"
	"github.com/rymate/notes/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) db.Store {
	t.Helper()
	i18n.Init("en")
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	s, err := db.NewStoreFromDSN("sqlite", "file:tui_"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes cmd and flattens batches. Commands that do not return
// promptly, such as cursor blink ticks, are dropped.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, runCmd(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(250 * time.Millisecond):
		return nil
	}
}

// feed delivers msgs to m and keeps processing the messages produced by the
// returned commands until the model settles.
func feed(t *testing.T, m tea.Model, msgs ...tea.Msg) mainModel {
	t.Helper()
	queue := append([]tea.Msg(nil), msgs...)
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "model did not settle")
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		queue = append(queue, runCmd(cmd)...)
	}
	return m.(mainModel)
}

func start(t *testing.T, store db.Store) mainModel {
	t.Helper()
	m := newMainModel(store)
	return feed(t, m, runCmd(m.Init())...)
}

func noteTitles(notes []model.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Title)
	}
	return out
}

func TestMainModel_ListsAndFiltersByCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	work, err := store.AddCategory(ctx, "Work")
	require.NoError(t, err)
	_, err = store.CreateNote(ctx, "Report", "quarterly numbers", work)
	require.NoError(t, err)
	_, err = store.CreateNote(ctx, "Groceries", "milk", model.UncategorizedID)
	require.NoError(t, err)

	m := start(t, store)
	assert.Equal(t, listView, m.state)
	assert.Equal(t, []string{"Report", "Groceries"}, noteTitles(m.list.notes))
	assert.Contains(t, m.View(), model.AllNotesTitle)

	// All Notes -> Uncategorised -> Work
	m = feed(t, m, keyMsg("c"))
	assert.Empty(t, m.list.notes)
	assert.Contains(t, m.View(), i18n.T("list.empty"))

	m = feed(t, m, keyMsg("c"))
	assert.Equal(t, []string{"Report"}, noteTitles(m.list.notes))

	// wraps around to All Notes
	m = feed(t, m, keyMsg("c"))
	assert.Len(t, m.list.notes, 2)

	m = feed(t, m, keyMsg("C"))
	assert.Equal(t, []string{"Report"}, noteTitles(m.list.notes))
}

func TestMainModel_CreateNoteThroughEditor(t *testing.T) {
	store := newTestStore(t)
	m := start(t, store)

	m = feed(t, m, keyMsg("n"))
	require.Equal(t, editView, m.state)
	require.NotNil(t, m.edit.session)
	assert.Contains(t, m.View(), i18n.T("edit.new_title"))

	m = feed(t, m, keyMsg("Groceries"), keyMsg("tab"), keyMsg("milk eggs"), keyMsg("esc"))
	assert.Equal(t, listView, m.state)
	assert.Equal(t, i18n.T("note.saved"), m.status)
	assert.False(t, m.statusIsErr)

	notes, err := store.FetchAllNotes(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Groceries", notes[0].Title)
	assert.Equal(t, "milk eggs", notes[0].Body)
	assert.Equal(t, model.UncategorizedID, notes[0].CategoryID)
	assert.Equal(t, []string{"Groceries"}, noteTitles(m.list.notes))
}

func TestMainModel_NewNoteInSelectedCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	work, err := store.AddCategory(ctx, "Work")
	require.NoError(t, err)

	m := start(t, store)
	m = feed(t, m, keyMsg("c"), keyMsg("c"), keyMsg("n"))
	require.Equal(t, editView, m.state)
	assert.Equal(t, work, m.edit.selectedCategoryID())

	m = feed(t, m, keyMsg("Standup"), keyMsg("ctrl+s"))
	assert.Equal(t, editView, m.state)
	assert.Equal(t, i18n.T("note.saved"), m.status)
	assert.NotZero(t, m.edit.id)

	n, err := store.FetchNote(ctx, m.edit.id)
	require.NoError(t, err)
	assert.Equal(t, work, n.CategoryID)
}

func TestMainModel_EmptyNewNoteIsDiscarded(t *testing.T) {
	store := newTestStore(t)
	m := start(t, store)

	m = feed(t, m, keyMsg("n"), keyMsg("esc"))
	assert.Equal(t, listView, m.state)
	assert.Equal(t, i18n.T("note.discarded"), m.status)

	count, err := store.CountNotes(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMainModel_EditExistingNoteCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	id, err := store.CreateNote(ctx, "Todo", "call mom", model.UncategorizedID)
	require.NoError(t, err)

	m := start(t, store)
	m = feed(t, m, keyMsg("e"))
	require.Equal(t, editView, m.state)
	assert.Equal(t, "Todo", m.edit.title.Value())
	assert.Equal(t, "call mom", m.edit.body.Value())
	assert.Contains(t, m.View(), i18n.T("edit.edit_title", id))

	// options: None, Uncategorised; "All Notes" is never offered
	for _, opt := range m.edit.options {
		assert.NotEqual(t, model.AllNotesCategoryID, opt.ID)
	}

	m = feed(t, m, keyMsg("tab"), keyMsg("tab"), keyMsg("right"), keyMsg("ctrl+s"))
	assert.Equal(t, i18n.T("note.saved"), m.status)

	n, err := store.FetchNote(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n.CategoryID)
	assert.Equal(t, "Todo", n.Title)
}

func TestMainModel_EditKeepsUnknownCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	id, err := store.CreateNote(ctx, "Old", "from an older release", 42)
	require.NoError(t, err)

	m := start(t, store)
	m = feed(t, m, keyMsg("e"))
	assert.Equal(t, int64(42), m.edit.selectedCategoryID())

	m = feed(t, m, keyMsg(" more"), keyMsg("esc"))
	assert.Equal(t, listView, m.state)

	n, err := store.FetchNote(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Old more", n.Title)
	assert.Equal(t, int64(42), n.CategoryID)
}

func TestMainModel_DeleteAsksForConfirmation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, err := store.CreateNote(ctx, "Scratch", "", model.UncategorizedID)
	require.NoError(t, err)

	m := start(t, store)
	m = feed(t, m, keyMsg("d"))
	require.NotNil(t, m.dialog)
	assert.Contains(t, m.View(), "Scratch")

	m = feed(t, m, keyMsg("n"))
	assert.Nil(t, m.dialog)
	count, err := store.CountNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	m = feed(t, m, keyMsg("d"), keyMsg("right"), keyMsg("enter"))
	assert.Nil(t, m.dialog)
	assert.Equal(t, i18n.T("note.deleted"), m.status)
	assert.Empty(t, m.list.notes)
	count, err = store.CountNotes(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMainModel_ViewAndCopy(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, err := store.CreateNote(ctx, "Recipe", "flour\nsugar", model.UncategorizedID)
	require.NoError(t, err)

	var copied string
	prev := clipboardWriteAll
	clipboardWriteAll = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { clipboardWriteAll = prev })

	m := start(t, store)
	m = feed(t, m, keyMsg("enter"))
	require.Equal(t, noteView, m.state)
	require.NotNil(t, m.view.note)
	out := m.View()
	assert.Contains(t, out, "Recipe")
	assert.Contains(t, out, "sugar")
	assert.Contains(t, out, i18n.T("category.none"))

	m = feed(t, m, keyMsg("y"))
	assert.Equal(t, "Recipe\n\nflour\nsugar", copied)
	assert.Equal(t, i18n.T("note.copied"), m.status)

	m = feed(t, m, keyMsg("esc"))
	assert.Equal(t, listView, m.state)
}

func TestMainModel_ViewMissingNote(t *testing.T) {
	store := newTestStore(t)
	m := start(t, store)
	m = feed(t, m, openNoteMsg{id: 999})
	assert.Equal(t, noteView, m.state)
	assert.Contains(t, m.View(), i18n.T("note.not_found", 999))
}

func TestMainModel_Quit(t *testing.T) {
	store := newTestStore(t)
	m := start(t, store)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestMainModel_WindowResize(t *testing.T) {
	store := newTestStore(t)
	m := start(t, store)
	m = feed(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 120, m.list.width)
	assert.NotEmpty(t, m.View())
}

func TestMainModel_OutOfOrderReloadsKeepSelectedCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	work, err := store.AddCategory(ctx, "Work")
	require.NoError(t, err)
	_, err = store.CreateNote(ctx, "Report", "", work)
	require.NoError(t, err)
	_, err = store.CreateNote(ctx, "Groceries", "", model.UncategorizedID)
	require.NoError(t, err)

	m := start(t, store)

	var tm tea.Model = m
	tm, toUncategorised := tm.Update(keyMsg("c"))
	tm, toWork := tm.Update(keyMsg("c"))

	// the later reload completes first
	m = feed(t, tm, append(runCmd(toWork), runCmd(toUncategorised)...)...)

	cat, _ := m.list.selectedCategory()
	assert.Equal(t, work, cat.ID)
	assert.Equal(t, []string{"Report"}, noteTitles(m.list.notes))
}
