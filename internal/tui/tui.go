// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rymate/notes/internal/db"
	"github.com/rymate/notes/internal/i18n"
	"github.com/rymate/notes/internal/logging"
	"github.com/rymate/notes/internal/model"
	"github.com/rymate/notes/internal/tui/frame"
)

// viewState represents which screen is currently active.
type viewState int

const (
	listView viewState = iota
	noteView
	editView
)

// Navigation and status messages shared by the screens.
type (
	openNoteMsg struct{ id int64 }
	// editNoteMsg opens the editor for note id, or for a new note in
	// categoryID when id is 0.
	editNoteMsg struct {
		id         int64
		categoryID int64
	}
	confirmDeleteMsg struct{ note model.Note }
	noteDeletedMsg   struct {
		ok  bool
		err error
	}
	backToListMsg struct{}
	statusMsg     struct {
		text  string
		isErr bool
	}
)

// mainModel routes messages to the active screen and owns the delete dialog.
type mainModel struct {
	store  db.Store
	state  viewState
	list   notesListModel
	view   noteViewModel
	edit   noteEditModel
	dialog *frame.Dialog
	// pendingDelete is the note the open dialog asks about.
	pendingDelete *model.Note

	status      string
	statusIsErr bool
	width       int
	height      int
}

func newMainModel(store db.Store) mainModel {
	const width, height = 80, 24
	list := newNotesListModel(store)
	list.width, list.height = width, height
	return mainModel{
		store:  store,
		state:  listView,
		list:   list,
		view:   newNoteViewModel(store, 0, nil, width, height),
		edit:   newNoteEditModel(store, 0, model.UncategorizedID, width, height),
		width:  width,
		height: height,
	}
}

func (m mainModel) Init() tea.Cmd {
	return m.list.Init()
}

func (m mainModel) setStatus(text string, isErr bool) mainModel {
	m.status, m.statusIsErr = text, isErr
	return m
}

func (m mainModel) deleteNote(id int64) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ok, err := store.DeleteNote(context.Background(), id)
		return noteDeletedMsg{ok: ok, err: err}
	}
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.width, m.list.height = msg.Width, msg.Height
		m.view.setSize(msg.Width, msg.Height)
		m.edit.setSize(msg.Width, msg.Height)
		if m.dialog != nil {
			m.dialog.SetWidth(msg.Width / 2)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.dialog != nil {
			switch m.dialog.HandleKey(msg) {
			case frame.Confirmed:
				id := m.pendingDelete.ID
				m.dialog, m.pendingDelete = nil, nil
				return m, m.deleteNote(id)
			case frame.Cancelled:
				m.dialog, m.pendingDelete = nil, nil
			}
			return m, nil
		}
		m.status = ""
		if m.state == listView && msg.String() == "q" {
			return m, tea.Quit
		}

	case openNoteMsg:
		m.state = noteView
		m.view = newNoteViewModel(m.store, msg.id, m.list.categories, m.width, m.height)
		return m, m.view.Init()

	case editNoteMsg:
		m.state = editView
		m.edit = newNoteEditModel(m.store, msg.id, msg.categoryID, m.width, m.height)
		return m, m.edit.Init()

	case confirmDeleteMsg:
		n := msg.note
		title := n.Title
		if title == "" {
			title = i18n.T("note.untitled")
		}
		m.pendingDelete = &n
		m.dialog = frame.NewDialog(
			i18n.T("dialog.delete_title"),
			i18n.T("dialog.delete_question", title),
			i18n.T("dialog.no"),
			i18n.T("dialog.yes"),
		)
		m.dialog.SetWidth(m.width / 2)
		return m, nil

	case noteDeletedMsg:
		switch {
		case msg.err != nil:
			logging.Errorf("tui: delete note: %v", msg.err)
			m = m.setStatus(i18n.T("note.delete_failed"), true)
		case !msg.ok:
			m = m.setStatus(i18n.T("note.delete_failed"), true)
		default:
			m = m.setStatus(i18n.T("note.deleted"), false)
		}
		m.state = listView
		return m, m.list.load()

	case backToListMsg:
		m.state = listView
		return m, m.list.load()

	case statusMsg:
		return m.setStatus(msg.text, msg.isErr), nil

	case notesLoadedMsg:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.state {
	case listView:
		m.list, cmd = m.list.Update(msg)
	case noteView:
		m.view, cmd = m.view.Update(msg)
	case editView:
		m.edit, cmd = m.edit.Update(msg)
	}
	return m, cmd
}

func (m mainModel) View() string {
	var body, help string
	switch m.state {
	case noteView:
		body, help = m.view.View(), i18n.T("view.help")
	case editView:
		body, help = m.edit.View(), i18n.T("edit.help")
	default:
		body, help = m.list.View(), i18n.T("list.help")
	}

	if m.dialog != nil {
		body = lipgloss.Place(m.width-4, m.height-6, lipgloss.Center, lipgloss.Center, m.dialog.Render())
	}

	bodyHeight := m.height - 4
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body = lipgloss.NewStyle().Height(bodyHeight).Render(body)
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		body,
		footer(help, m.status, m.statusIsErr, m.width-4),
	))
}

// Run starts the TUI on store and blocks until the user quits. Log output is
// kept off the terminal while the UI owns it: it goes to the file named by
// NOTES_TUI_LOG, or is discarded.
func Run(store db.Store) error {
	var out io.Writer = io.Discard
	if path := os.Getenv("NOTES_TUI_LOG"); path != "" {
		f, err := tea.LogToFile(path, "notes")
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	logging.SetOutput(out)
	defer logging.SetOutput(os.Stderr)

	p := tea.NewProgram(newMainModel(store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logging.Errorf("tui: %v", err)
		return err
	}
	return nil
}
