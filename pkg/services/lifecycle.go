package services

import (
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"

	"esulat/pkg/errors"
	"esulat/pkg/models"
	"esulat/pkg/repository"
)

// RetentionDays is the trash retention window. An item survives while
// fewer than this many whole days have passed since deletion.
const RetentionDays = 30

// Lifecycle moves notes and folders between the Active, Archived and
// Trashed sets and evicts expired trashed items. Every operation reads
// the full backing collections, transforms them in memory and writes them
// back; moves touching two collections are not atomic.
type Lifecycle struct {
	repo     *repository.Repository
	collator *collate.Collator
	logger   *zap.Logger
	now      func() time.Time
}

// NewLifecycle creates a lifecycle manager.
func NewLifecycle(repo *repository.Repository, logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		repo:     repo,
		collator: newCollator(),
		logger:   logger,
		now:      time.Now,
	}
}

// Archive moves the selected active notes to the archived collection,
// unmodified. Unknown IDs are ignored.
func (s *Lifecycle) Archive(ids []string) error {
	selected := idSet(ids)

	remaining, moved := splitNotes(s.repo.Notes(), selected)
	if len(moved) == 0 {
		return nil
	}

	if err := s.repo.SetNotes(remaining); err != nil {
		s.logger.Error("failed to persist active notes", zap.Error(err))
		return errors.Wrap(err, errors.ErrTypeStorage, "NOTES_WRITE_FAILED", "failed to save notes")
	}
	if err := s.repo.SetArchivedNotes(append(s.repo.ArchivedNotes(), moved...)); err != nil {
		s.logger.Error("failed to persist archived notes", zap.Error(err))
		return errors.Wrap(err, errors.ErrTypeStorage, "ARCHIVE_WRITE_FAILED", "failed to save archived notes")
	}

	s.logger.Info("notes archived", zap.Int("count", len(moved)))
	return nil
}

// Unarchive moves the selected archived notes back to the active
// collection, the exact inverse of Archive.
func (s *Lifecycle) Unarchive(ids []string) error {
	selected := idSet(ids)

	remaining, moved := splitNotes(s.repo.ArchivedNotes(), selected)
	if len(moved) == 0 {
		return nil
	}

	if err := s.repo.SetArchivedNotes(remaining); err != nil {
		s.logger.Error("failed to persist archived notes", zap.Error(err))
		return errors.Wrap(err, errors.ErrTypeStorage, "ARCHIVE_WRITE_FAILED", "failed to save archived notes")
	}

	active := append(s.repo.Notes(), moved...)
	sortNotes(s.collator, active)
	if err := s.repo.SetNotes(active); err != nil {
		s.logger.Error("failed to persist active notes", zap.Error(err))
		return errors.Wrap(err, errors.ErrTypeStorage, "NOTES_WRITE_FAILED", "failed to save notes")
	}

	s.logger.Info("notes unarchived", zap.Int("count", len(moved)))
	return nil
}

// TrashNotes moves the selected active notes to the trash, wrapping each
// as a trashed item stamped with the current time.
func (s *Lifecycle) TrashNotes(ids []string) error {
	selected := idSet(ids)
	now := s.now()

	remaining, moved := splitNotes(s.repo.Notes(), selected)
	if len(moved) == 0 {
		return nil
	}

	trashed := s.repo.TrashedItems()
	for _, note := range moved {
		trashed = append(trashed, models.TrashNote(note, now))
	}

	if err := s.repo.SetTrashedItems(trashed); err != nil {
		s.logger.Error("failed to persist trash", zap.Error(err))
		return errors.Wrap(err, errors.ErrTypeStorage, "TRASH_WRITE_FAILED", "failed to save trash")
	}
	if err := s.repo.SetNotes(remaining); err != nil {
		s.logger.Error("failed to persist active notes", zap.Error(err))
		return errors.Wrap(err, errors.ErrTypeStorage, "NOTES_WRITE_FAILED", "failed to save notes")
	}

	s.logger.Info("notes trashed", zap.Int("count", len(moved)))
	return nil
}

// TrashFolder moves a folder to the trash and cascades: every active note
// in the folder is trashed in the same logical operation, each as its own
// trashed item.
func (s *Lifecycle) TrashFolder(id string) error {
	folders := s.repo.Folders()
	now := s.now()

	var folder *models.Folder
	remaining := make([]models.Folder, 0, len(folders))
	for _, f := range folders {
		if f.ID == id {
			f := f
			folder = &f
			continue
		}
		remaining = append(remaining, f)
	}
	if folder == nil {
		return errors.ErrFolderNotFound.WithContext("folderId", id)
	}

	trashed := append(s.repo.TrashedItems(), models.TrashFolder(*folder, now))

	notes := s.repo.Notes()
	keptNotes := make([]models.Note, 0, len(notes))
	cascaded := 0
	for _, note := range notes {
		if note.FolderID == id {
			trashed = append(trashed, models.TrashNote(note, now))
			cascaded++
			continue
		}
		keptNotes = append(keptNotes, note)
	}

	if err := s.repo.SetTrashedItems(trashed); err != nil {
		s.logger.Error("failed to persist trash", zap.Error(err))
		return errors.Wrap(err, errors.ErrTypeStorage, "TRASH_WRITE_FAILED", "failed to save trash")
	}
	if err := s.repo.SetFolders(remaining); err != nil {
		s.logger.Error("failed to persist folders", zap.Error(err))
		return errors.Wrap(err, errors.ErrTypeStorage, "FOLDERS_WRITE_FAILED", "failed to save folders")
	}
	if err := s.repo.SetNotes(keptNotes); err != nil {
		s.logger.Error("failed to persist active notes", zap.Error(err))
		return errors.Wrap(err, errors.ErrTypeStorage, "NOTES_WRITE_FAILED", "failed to save notes")
	}

	s.logger.Info("folder trashed",
		zap.String("folderId", id), zap.Int("cascadedNotes", cascaded))
	return nil
}

// Restore moves the selected trashed items back to their active
// collections. Restoring a folder does NOT restore its previously
// cascaded notes; those stay in the trash as independent items. Unknown
// keys are ignored.
func (s *Lifecycle) Restore(keys []models.ItemKey) error {
	selected := keySet(keys)

	trashed := s.repo.TrashedItems()
	remaining := make([]models.TrashedItem, 0, len(trashed))
	var notes []models.Note
	var folders []models.Folder
	for _, item := range trashed {
		if !selected[item.Key()] {
			remaining = append(remaining, item)
			continue
		}
		switch item.Type {
		case models.ItemTypeNote:
			notes = append(notes, *item.Note)
		case models.ItemTypeFolder:
			folders = append(folders, *item.Folder)
		}
	}
	if len(notes) == 0 && len(folders) == 0 {
		return nil
	}

	if len(notes) > 0 {
		active := append(s.repo.Notes(), notes...)
		sortNotes(s.collator, active)
		if err := s.repo.SetNotes(active); err != nil {
			s.logger.Error("failed to persist active notes", zap.Error(err))
			return errors.Wrap(err, errors.ErrTypeStorage, "NOTES_WRITE_FAILED", "failed to save notes")
		}
	}
	if len(folders) > 0 {
		activeFolders := append(s.repo.Folders(), folders...)
		sortFolders(s.collator, activeFolders)
		if err := s.repo.SetFolders(activeFolders); err != nil {
			s.logger.Error("failed to persist folders", zap.Error(err))
			return errors.Wrap(err, errors.ErrTypeStorage, "FOLDERS_WRITE_FAILED", "failed to save folders")
		}
	}
	if err := s.repo.SetTrashedItems(remaining); err != nil {
		s.logger.Error("failed to persist trash", zap.Error(err))
		return errors.Wrap(err, errors.ErrTypeStorage, "TRASH_WRITE_FAILED", "failed to save trash")
	}

	s.logger.Info("items restored",
		zap.Int("notes", len(notes)), zap.Int("folders", len(folders)))
	return nil
}

// DeleteForever removes the selected items from the trash with no
// further trace. Irreversible.
func (s *Lifecycle) DeleteForever(keys []models.ItemKey) error {
	selected := keySet(keys)

	trashed := s.repo.TrashedItems()
	remaining := make([]models.TrashedItem, 0, len(trashed))
	for _, item := range trashed {
		if selected[item.Key()] {
			continue
		}
		remaining = append(remaining, item)
	}
	if len(remaining) == len(trashed) {
		return nil
	}

	if err := s.repo.SetTrashedItems(remaining); err != nil {
		s.logger.Error("failed to persist trash", zap.Error(err))
		return errors.Wrap(err, errors.ErrTypeStorage, "TRASH_WRITE_FAILED", "failed to save trash")
	}

	s.logger.Info("items permanently deleted", zap.Int("count", len(trashed)-len(remaining)))
	return nil
}

// ListTrash sweeps expired items, persists the result and returns the
// surviving items, most recently deleted first. The sweep is a side
// effect of reading, not a scheduled job.
func (s *Lifecycle) ListTrash() ([]models.TrashedItem, error) {
	if err := s.Sweep(); err != nil {
		return nil, err
	}

	items := s.repo.TrashedItems()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DeletedAt.After(items[j].DeletedAt)
	})
	return items, nil
}

// Sweep drops every trashed item past the retention window. Running it
// twice without a time change yields the same collection as running it
// once.
func (s *Lifecycle) Sweep() error {
	now := s.now()

	items := s.repo.TrashedItems()
	kept := make([]models.TrashedItem, 0, len(items))
	for _, item := range items {
		if daysPassed(now, item.DeletedAt) < RetentionDays {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}

	if err := s.repo.SetTrashedItems(kept); err != nil {
		s.logger.Error("failed to persist trash after sweep", zap.Error(err))
		return errors.Wrap(err, errors.ErrTypeStorage, "TRASH_WRITE_FAILED", "failed to save trash")
	}

	s.logger.Info("trash swept", zap.Int("evicted", len(items)-len(kept)))
	return nil
}

// DaysRemaining reports how many whole days a trashed item has left
// before eviction. Never negative.
func (s *Lifecycle) DaysRemaining(deletedAt time.Time) int {
	remaining := RetentionDays - daysPassed(s.now(), deletedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// daysPassed is the whole-day difference between two instants, floored,
// never negative.
func daysPassed(now, deletedAt time.Time) int {
	diff := now.Sub(deletedAt)
	if diff < 0 {
		return 0
	}
	return int(diff.Hours() / 24)
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func keySet(keys []models.ItemKey) map[models.ItemKey]bool {
	set := make(map[models.ItemKey]bool, len(keys))
	for _, key := range keys {
		set[key] = true
	}
	return set
}

// splitNotes partitions notes into those not selected and those selected,
// preserving order.
func splitNotes(notes []models.Note, selected map[string]bool) (remaining, moved []models.Note) {
	remaining = make([]models.Note, 0, len(notes))
	for _, note := range notes {
		if selected[note.ID] {
			moved = append(moved, note)
			continue
		}
		remaining = append(remaining, note)
	}
	return remaining, moved
}
