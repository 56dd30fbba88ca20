package services

import (
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"
	"golang.org/x/text/collate"

	"esulat/pkg/errors"
	"esulat/pkg/models"
	"esulat/pkg/repository"
	"esulat/pkg/utils"
)

// StatusFilter narrows note listings by completion status.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterPending   StatusFilter = "pending"
	FilterCompleted StatusFilter = "completed"
)

// ParseFilter maps a request token to a filter, defaulting to all.
func ParseFilter(s string) StatusFilter {
	switch StatusFilter(s) {
	case FilterPending:
		return FilterPending
	case FilterCompleted:
		return FilterCompleted
	}
	return FilterAll
}

// NoteUpdate carries the editable note fields; nil means leave unchanged.
// Unlike creation, an edit may clear the title.
type NoteUpdate struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Theme   *string `json:"theme"`
	Font    *string `json:"font"`
}

// Notes handles note business logic for the active collection.
type Notes struct {
	repo      *repository.Repository
	collator  *collate.Collator
	validator *errors.Validator
	logger    *zap.Logger
}

// NewNotes creates a new note service.
func NewNotes(repo *repository.Repository, logger *zap.Logger) *Notes {
	return &Notes{
		repo:      repo,
		collator:  newCollator(),
		validator: errors.NewValidator(),
		logger:    logger,
	}
}

// Create adds a note to a folder. The title is required at creation time
// and the folder must exist.
func (s *Notes) Create(folderID, title, content string) (models.Note, error) {
	if err := s.validator.ValidateNoteTitle(title); err != nil {
		return models.Note{}, err
	}

	folderExists := false
	for _, folder := range s.repo.Folders() {
		if folder.ID == folderID {
			folderExists = true
			break
		}
	}
	if !folderExists {
		return models.Note{}, errors.ErrFolderNotFound.WithContext("folderId", folderID)
	}

	note := models.Note{
		ID:        utils.NewID(),
		Title:     strings.TrimSpace(title),
		Content:   content,
		FolderID:  folderID,
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
	}

	notes := append(s.repo.Notes(), note)
	sortNotes(s.collator, notes)
	if err := s.repo.SetNotes(notes); err != nil {
		s.logger.Error("failed to persist notes", zap.Error(err))
		return models.Note{}, errors.Wrap(err, errors.ErrTypeStorage, "NOTES_WRITE_FAILED", "failed to save notes")
	}

	s.logger.Info("note created", zap.String("noteId", note.ID), zap.String("folderId", folderID))
	return note, nil
}

// Get returns an active note by ID.
func (s *Notes) Get(id string) (models.Note, error) {
	for _, note := range s.repo.Notes() {
		if note.ID == id {
			return note, nil
		}
	}
	return models.Note{}, errors.ErrNoteNotFound.WithContext("noteId", id)
}

// Update applies an edit to an active note.
func (s *Notes) Update(id string, upd NoteUpdate) (models.Note, error) {
	return s.mutate(id, func(note *models.Note) error {
		if upd.Title != nil {
			note.Title = strings.TrimSpace(*upd.Title)
		}
		if upd.Content != nil {
			note.Content = *upd.Content
		}
		if upd.Theme != nil {
			note.Theme = *upd.Theme
		}
		if upd.Font != nil {
			note.Font = *upd.Font
		}
		return nil
	})
}

// ToggleStatus flips a note between pending and completed.
func (s *Notes) ToggleStatus(id string) (models.Note, error) {
	return s.mutate(id, func(note *models.Note) error {
		if note.Status == models.StatusCompleted {
			note.Status = models.StatusPending
		} else {
			note.Status = models.StatusCompleted
		}
		return nil
	})
}

// AddPhoto appends an inline photo payload to a note.
func (s *Notes) AddPhoto(id, payload string) (models.Note, error) {
	if err := s.validator.ValidatePhoto(payload); err != nil {
		return models.Note{}, err
	}
	return s.mutate(id, func(note *models.Note) error {
		note.Photos = append(note.Photos, payload)
		return nil
	})
}

// mutate reads the active collection, applies fn to the matching note and
// writes the whole collection back.
func (s *Notes) mutate(id string, fn func(*models.Note) error) (models.Note, error) {
	notes := s.repo.Notes()
	for i := range notes {
		if notes[i].ID != id {
			continue
		}
		if err := fn(&notes[i]); err != nil {
			return models.Note{}, err
		}
		updated := notes[i]
		sortNotes(s.collator, notes)
		if err := s.repo.SetNotes(notes); err != nil {
			s.logger.Error("failed to persist notes", zap.Error(err))
			return models.Note{}, errors.Wrap(err, errors.ErrTypeStorage, "NOTES_WRITE_FAILED", "failed to save notes")
		}
		return updated, nil
	}
	return models.Note{}, errors.ErrNoteNotFound.WithContext("noteId", id)
}

// ListByFolder returns a folder's active notes in display order, narrowed
// by the status filter. The filter also determines what "select all"
// means for batch operations in the clients.
func (s *Notes) ListByFolder(folderID string, filter StatusFilter) []models.Note {
	filtered := make([]models.Note, 0)
	for _, note := range s.repo.Notes() {
		if note.FolderID != folderID {
			continue
		}
		switch filter {
		case FilterPending:
			if note.Status != models.StatusPending {
				continue
			}
		case FilterCompleted:
			if note.Status != models.StatusCompleted {
				continue
			}
		}
		filtered = append(filtered, note)
	}
	sortNotes(s.collator, filtered)
	return filtered
}

// ListArchived returns the archived notes collection.
func (s *Notes) ListArchived() []models.Note {
	return s.repo.ArchivedNotes()
}

// Search ranks active notes against the query by fuzzy-matching titles
// and content.
func (s *Notes) Search(query string) []models.Note {
	notes := s.repo.Notes()

	targets := make([]string, len(notes))
	for i, note := range notes {
		targets[i] = note.Title + " " + note.Content
	}

	matches := fuzzy.Find(query, targets)
	results := make([]models.Note, 0, len(matches))
	for _, match := range matches {
		results = append(results, notes[match.Index])
	}
	return results
}
