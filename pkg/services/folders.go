package services

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"

	"esulat/pkg/errors"
	"esulat/pkg/models"
	"esulat/pkg/repository"
	"esulat/pkg/utils"
)

// Folders handles folder business logic: creation, renaming and listing.
// Name uniqueness (case-insensitive among active folders) is enforced
// here, not at storage time.
type Folders struct {
	repo      *repository.Repository
	collator  *collate.Collator
	validator *errors.Validator
	logger    *zap.Logger
}

// NewFolders creates a new folder service.
func NewFolders(repo *repository.Repository, logger *zap.Logger) *Folders {
	return &Folders{
		repo:      repo,
		collator:  newCollator(),
		validator: errors.NewValidator(),
		logger:    logger,
	}
}

// List returns all active folders in display order.
func (s *Folders) List() []models.Folder {
	folders := s.repo.Folders()
	sortFolders(s.collator, folders)
	return folders
}

// Get returns a folder by ID.
func (s *Folders) Get(id string) (models.Folder, error) {
	for _, folder := range s.repo.Folders() {
		if folder.ID == id {
			return folder, nil
		}
	}
	return models.Folder{}, errors.ErrFolderNotFound.WithContext("folderId", id)
}

// Create validates the candidate name and adds a new folder. A duplicate
// name (case-insensitive) rejects the operation and leaves state unchanged.
func (s *Folders) Create(name string) (models.Folder, error) {
	folders := s.repo.Folders()

	if err := s.validator.ValidateFolderName(name, folderNames(folders, "")); err != nil {
		return models.Folder{}, err
	}

	folder := models.Folder{
		ID:        utils.NewID(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now(),
	}

	folders = append(folders, folder)
	sortFolders(s.collator, folders)
	if err := s.repo.SetFolders(folders); err != nil {
		s.logger.Error("failed to persist folders", zap.Error(err))
		return models.Folder{}, errors.Wrap(err, errors.ErrTypeStorage, "FOLDERS_WRITE_FAILED", "failed to save folders")
	}

	s.logger.Info("folder created", zap.String("folderId", folder.ID), zap.String("name", folder.Name))
	return folder, nil
}

// Rename changes a folder's name under the same uniqueness rule.
func (s *Folders) Rename(id, name string) (models.Folder, error) {
	folders := s.repo.Folders()

	if err := s.validator.ValidateFolderName(name, folderNames(folders, id)); err != nil {
		return models.Folder{}, err
	}

	renamed := models.Folder{}
	found := false
	for i := range folders {
		if folders[i].ID == id {
			folders[i].Name = strings.TrimSpace(name)
			renamed = folders[i]
			found = true
			break
		}
	}
	if !found {
		return models.Folder{}, errors.ErrFolderNotFound.WithContext("folderId", id)
	}

	sortFolders(s.collator, folders)
	if err := s.repo.SetFolders(folders); err != nil {
		s.logger.Error("failed to persist folders", zap.Error(err))
		return models.Folder{}, errors.Wrap(err, errors.ErrTypeStorage, "FOLDERS_WRITE_FAILED", "failed to save folders")
	}

	s.logger.Info("folder renamed", zap.String("folderId", id), zap.String("name", renamed.Name))
	return renamed, nil
}

// folderNames collects the names of all folders except the one being
// renamed, for the duplicate check.
func folderNames(folders []models.Folder, excludeID string) []string {
	names := make([]string, 0, len(folders))
	for _, folder := range folders {
		if folder.ID == excludeID {
			continue
		}
		names = append(names, folder.Name)
	}
	return names
}
