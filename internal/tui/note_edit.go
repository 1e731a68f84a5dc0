// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rymate/notes/internal/db"
	"github.com/rymate/notes/internal/editor"
	"github.com/rymate/notes/internal/i18n"
	"github.com/rymate/notes/internal/logging"
	"github.com/rymate/notes/internal/model"
)

type editField int

const (
	titleField editField = iota
	bodyField
	categoryField
	fieldCount
)

// editLoadedMsg delivers a loaded session and the selectable categories.
type editLoadedMsg struct {
	session    *editor.Session
	categories []model.Category
	err        error
}

// noteSavedMsg reports the result of saving the edit session.
type noteSavedMsg struct {
	ok    bool
	leave bool
	err   error
}

// noteEditModel edits a new or existing note. The session is loaded when the
// screen opens and saved on ctrl+s or when leaving with esc.
type noteEditModel struct {
	store   db.Store
	id      int64
	session *editor.Session

	title textinput.Model
	body  textarea.Model

	// options[0] is always "no category" (id 0).
	options  []model.Category
	catIndex int
	// initialCategory preselects a category for new notes.
	initialCategory int64

	focus  editField
	saving bool
	err    error
	width  int
	height int
}

func newNoteEditModel(store db.Store, id, categoryID int64, width, height int) noteEditModel {
	ti := textinput.New()
	ti.Placeholder = i18n.T("edit.title_label")
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = i18n.T("edit.body_label")
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = ""

	m := noteEditModel{
		store:           store,
		id:              id,
		title:           ti,
		body:            ta,
		initialCategory: categoryID,
	}
	m.setSize(width, height)
	return m
}

func (m noteEditModel) Init() tea.Cmd {
	store, id := m.store, m.id
	return func() tea.Msg {
		ctx := context.Background()
		s := editor.New(store, id)
		if err := s.Load(ctx); err != nil {
			return editLoadedMsg{err: err}
		}
		cats, err := store.FetchCategoriesExcludingFirst(ctx)
		return editLoadedMsg{session: s, categories: cats, err: err}
	}
}

func (m *noteEditModel) setSize(width, height int) {
	m.width, m.height = width, height
	w := width - 6
	if w < 20 {
		w = 20
	}
	h := height - 14
	if h < 3 {
		h = 3
	}
	m.title.Width = w
	m.body.SetWidth(w)
	m.body.SetHeight(h)
}

// setOptions builds the category choices and selects id. An id that no
// longer exists is kept as an extra option so saving does not change it.
func (m *noteEditModel) setOptions(categories []model.Category, id int64) {
	m.options = append([]model.Category{{ID: model.UncategorizedID, Title: i18n.T("category.none")}}, categories...)
	for i, c := range m.options {
		if c.ID == id {
			m.catIndex = i
			return
		}
	}
	m.options = append(m.options, model.Category{ID: id, Title: i18n.T("category.unknown", id)})
	m.catIndex = len(m.options) - 1
}

func (m noteEditModel) selectedCategoryID() int64 {
	if m.catIndex < 0 || m.catIndex >= len(m.options) {
		return model.UncategorizedID
	}
	return m.options[m.catIndex].ID
}

func (m noteEditModel) setFocus(f editField) (noteEditModel, tea.Cmd) {
	m.focus = f
	m.title.Blur()
	m.body.Blur()
	switch f {
	case titleField:
		return m, m.title.Focus()
	case bodyField:
		return m, m.body.Focus()
	}
	return m, nil
}

// save copies the form into the session and stores it in a command.
func (m noteEditModel) save(leave bool) (noteEditModel, tea.Cmd) {
	if m.session == nil || m.saving {
		if leave && m.session == nil {
			return m, backCmd
		}
		return m, nil
	}
	s := m.session
	s.Title = m.title.Value()
	s.Body = m.body.Value()
	s.CategoryID = m.selectedCategoryID()

	if s.IsNew() && s.Title == "" && s.Body == "" {
		if leave {
			return m, tea.Batch(statusCmd(i18n.T("note.discarded"), false), backCmd)
		}
		return m, nil
	}
	if !s.Dirty() && !s.IsNew() {
		if leave {
			return m, backCmd
		}
		return m, statusCmd(i18n.T("note.saved"), false)
	}

	m.saving = true
	return m, func() tea.Msg {
		ok, err := s.Save(context.Background())
		return noteSavedMsg{ok: ok, leave: leave, err: err}
	}
}

func (m noteEditModel) Update(msg tea.Msg) (noteEditModel, tea.Cmd) {
	switch msg := msg.(type) {
	case editLoadedMsg:
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.session = msg.session
		m.title.SetValue(m.session.Title)
		m.body.SetValue(m.session.Body)
		catID := m.session.CategoryID
		if m.session.IsNew() {
			catID = m.initialCategory
			m.session.CategoryID = catID
		}
		m.setOptions(msg.categories, catID)
		return m, nil

	case noteSavedMsg:
		m.saving = false
		switch {
		case msg.err != nil:
			logging.Errorf("tui: save note: %v", msg.err)
			return m, statusCmd(i18n.T("note.save_failed"), true)
		case !msg.ok:
			return m, statusCmd(i18n.T("note.save_failed"), true)
		}
		m.id = m.session.ID()
		if msg.leave {
			return m, tea.Batch(statusCmd(i18n.T("note.saved"), false), backCmd)
		}
		return m, statusCmd(i18n.T("note.saved"), false)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			return m.save(false)
		case "esc":
			return m.save(true)
		case "tab":
			return m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab":
			return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		}
		if m.focus == categoryField {
			switch msg.String() {
			case "left", "h":
				if len(m.options) > 0 {
					m.catIndex = (m.catIndex + len(m.options) - 1) % len(m.options)
				}
			case "right", "l", " ":
				if len(m.options) > 0 {
					m.catIndex = (m.catIndex + 1) % len(m.options)
				}
			}
			return m, nil
		}
		if m.focus == titleField && msg.String() == "enter" {
			return m.setFocus(bodyField)
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case titleField:
		m.title, cmd = m.title.Update(msg)
	case bodyField:
		m.body, cmd = m.body.Update(msg)
	}
	return m, cmd
}

func (m noteEditModel) label(f editField, text string) string {
	if m.focus == f {
		return focusedLabelStyle.Render(text)
	}
	return labelStyle.Render(text)
}

func (m noteEditModel) View() string {
	if m.err != nil {
		return errorStyle.Render(i18n.T("note.load_failed", m.err))
	}
	heading := i18n.T("edit.new_title")
	if m.id != 0 {
		heading = i18n.T("edit.edit_title", m.id)
	}

	var cats []string
	for i, c := range m.options {
		if i == m.catIndex {
			cats = append(cats, categoryStyle.Render("["+c.Title+"]"))
		} else {
			cats = append(cats, helpStyle.Render(c.Title))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(heading),
		"",
		m.label(titleField, i18n.T("edit.title_label")),
		m.title.View(),
		"",
		m.label(bodyField, i18n.T("edit.body_label")),
		m.body.View(),
		"",
		m.label(categoryField, i18n.T("edit.category_label"))+"  "+strings.Join(cats, " "),
	)
}

func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isErr: isErr} }
}

func backCmd() tea.Msg { return backToListMsg{} }
