// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

// Package editor holds the state of a note being edited. A Session is loaded
// when an edit screen opens or resumes and saved when the user saves or
// leaves it; the note id travels with the session instead of living in
// global state.
package editor

import (
	"context"
	"fmt"

	"github.com/rymate/notes/internal/model"
)

// NoteStore is the subset of db.Store a Session needs.
type NoteStore interface {
	CreateNote(ctx context.Context, title, body string, categoryID int64) (int64, error)
	FetchNote(ctx context.Context, id int64) (*model.Note, error)
	UpdateNote(ctx context.Context, id int64, title, body string, categoryID int64) (bool, error)
}

// Session edits one note. The zero id means the note has not been stored yet.
type Session struct {
	store NoteStore
	id    int64

	Title      string
	Body       string
	CategoryID int64

	saved model.Note
}

// New returns a session for note id, or for a new note when id is 0.
func New(store NoteStore, id int64) *Session {
	return &Session{store: store, id: id}
}

// ID returns the note id, 0 until a new note is saved for the first time.
func (s *Session) ID() int64 { return s.id }

// IsNew reports whether the note has never been stored.
func (s *Session) IsNew() bool { return s.id == 0 }

// Dirty reports whether the editable fields differ from the last load or save.
func (s *Session) Dirty() bool {
	return s.Title != s.saved.Title || s.Body != s.saved.Body || s.CategoryID != s.saved.CategoryID
}

// Load populates the fields from the store. New notes are left untouched.
func (s *Session) Load(ctx context.Context) error {
	if s.IsNew() {
		return nil
	}
	n, err := s.store.FetchNote(ctx, s.id)
	if err != nil {
		return fmt.Errorf("load note %d: %w", s.id, err)
	}
	s.Title, s.Body, s.CategoryID = n.Title, n.Body, n.CategoryID
	s.saved = *n
	return nil
}

// Save creates the note on first save and updates it afterwards. It reports
// whether the store accepted the write. A new session with empty title and
// body is not persisted.
func (s *Session) Save(ctx context.Context) (bool, error) {
	if s.IsNew() {
		if s.Title == "" && s.Body == "" {
			return false, nil
		}
		id, err := s.store.CreateNote(ctx, s.Title, s.Body, s.CategoryID)
		if err != nil {
			return false, err
		}
		s.id = id
		s.markSaved()
		return true, nil
	}
	ok, err := s.store.UpdateNote(ctx, s.id, s.Title, s.Body, s.CategoryID)
	if err != nil {
		return false, err
	}
	if ok {
		s.markSaved()
	}
	return ok, nil
}

func (s *Session) markSaved() {
	s.saved = model.Note{ID: s.id, Title: s.Title, Body: s.Body, CategoryID: s.CategoryID}
}
