// Package repository provides typed get-all/set-all access to each named
// collection, hiding the key-value store and the codec. There are no
// partial updates: callers read a whole collection, transform it in
// memory, and write the whole collection back.
package repository

import (
	"esulat/pkg/codec"
	"esulat/pkg/kv"
	"esulat/pkg/models"

	"go.uber.org/zap"
)

// Repository is the single source of truth for persisted state.
type Repository struct {
	store  kv.Store
	logger *zap.Logger
}

// New creates a repository over the given store.
func New(store kv.Store, logger *zap.Logger) *Repository {
	return &Repository{store: store, logger: logger}
}

// Store exposes the underlying key-value store (for backup and tooling).
func (r *Repository) Store() kv.Store {
	return r.store
}

// collection reads and decodes one collection. Read or decode failures
// degrade to an empty collection, never an error.
func collection[T any](r *Repository, key string) []T {
	raw, ok, err := r.store.Get(key)
	if err != nil {
		r.logger.Warn("storage read failed, treating collection as empty",
			zap.String("key", key), zap.Error(err))
		return []T{}
	}
	if !ok {
		return []T{}
	}
	return codec.DecodeCollection[T](raw)
}

// saveCollection encodes and writes one collection, overwriting the
// previous value.
func saveCollection[T any](r *Repository, key string, items []T) error {
	raw, err := codec.EncodeCollection(items)
	if err != nil {
		return err
	}
	return r.store.Set(key, raw)
}

func (r *Repository) Folders() []models.Folder {
	return collection[models.Folder](r, KeyFolders)
}

func (r *Repository) SetFolders(folders []models.Folder) error {
	return saveCollection(r, KeyFolders, folders)
}

func (r *Repository) Notes() []models.Note {
	return collection[models.Note](r, KeyNotes)
}

func (r *Repository) SetNotes(notes []models.Note) error {
	return saveCollection(r, KeyNotes, notes)
}

func (r *Repository) ArchivedNotes() []models.Note {
	return collection[models.Note](r, KeyArchivedNotes)
}

func (r *Repository) SetArchivedNotes(notes []models.Note) error {
	return saveCollection(r, KeyArchivedNotes, notes)
}

func (r *Repository) TrashedItems() []models.TrashedItem {
	return collection[models.TrashedItem](r, KeyTrashedItems)
}

func (r *Repository) SetTrashedItems(items []models.TrashedItem) error {
	return saveCollection(r, KeyTrashedItems, items)
}

func (r *Repository) Reminders() []models.Reminder {
	return collection[models.Reminder](r, KeyReminders)
}

func (r *Repository) SetReminders(reminders []models.Reminder) error {
	return saveCollection(r, KeyReminders, reminders)
}

// HideWelcome reports whether the first-run welcome screen is suppressed.
func (r *Repository) HideWelcome() bool {
	raw, ok, err := r.store.Get(KeyHideWelcome)
	if err != nil {
		r.logger.Warn("storage read failed", zap.String("key", KeyHideWelcome), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	return codec.DecodeBool(raw)
}

func (r *Repository) SetHideWelcome(hide bool) error {
	return r.store.Set(KeyHideWelcome, codec.EncodeBool(hide))
}

// Language returns the persisted UI language, defaulting to English when
// absent or unknown.
func (r *Repository) Language() models.Language {
	raw, ok, err := r.store.Get(KeyLanguage)
	if err != nil {
		r.logger.Warn("storage read failed", zap.String("key", KeyLanguage), zap.Error(err))
		return models.DefaultLanguage
	}
	if !ok {
		return models.DefaultLanguage
	}
	lang := models.Language(raw)
	if !lang.Valid() {
		return models.DefaultLanguage
	}
	return lang
}

func (r *Repository) SetLanguage(lang models.Language) error {
	return r.store.Set(KeyLanguage, string(lang))
}
