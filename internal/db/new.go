// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package db

// New initializes and returns a bun-backed Store for the given dbType and dsn.
// It also sets the package-level store returned by DefaultStore.
func New(dbType, dsn string) (Store, error) {
	s, err := NewStoreFromDSN(dbType, dsn)
	if err != nil {
		return nil, err
	}
	store = s
	return s, nil
}

// CloseDefaultStore closes the package-level store and clears it. It is a
// no-op when no store is initialized.
func CloseDefaultStore() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

// ResetStoreForTests clears the package-level store so a later New or InitDB
// starts from scratch. The previous store is not closed.
func ResetStoreForTests() {
	store = nil
}
