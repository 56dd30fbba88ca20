package services

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"esulat/pkg/errors"
	"esulat/pkg/models"
	"esulat/pkg/repository"
	"esulat/pkg/utils"
)

// ReminderInput carries the user-editable reminder fields.
type ReminderInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	DueTime     string `json:"dueTime"`
}

// Reminders handles reminder CRUD. Reminders are independent of the
// note/folder lifecycle.
type Reminders struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReminders creates a new reminder service.
func NewReminders(repo *repository.Repository, logger *zap.Logger) *Reminders {
	return &Reminders{repo: repo, logger: logger}
}

// List returns all reminders ordered by due instant, soonest first.
func (s *Reminders) List() []models.Reminder {
	reminders := s.repo.Reminders()
	sort.SliceStable(reminders, func(i, j int) bool {
		di, erri := reminders[i].DueAt()
		dj, errj := reminders[j].DueAt()
		if erri != nil || errj != nil {
			return reminders[i].CreatedAt.Before(reminders[j].CreatedAt)
		}
		return di.Before(dj)
	})
	return reminders
}

// Create validates and adds a reminder.
func (s *Reminders) Create(input ReminderInput) (models.Reminder, error) {
	reminder := models.Reminder{
		ID:          utils.NewID(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		DueDate:     input.DueDate,
		DueTime:     input.DueTime,
		CreatedAt:   time.Now(),
	}
	if err := validateReminder(reminder); err != nil {
		return models.Reminder{}, err
	}

	reminders := append(s.repo.Reminders(), reminder)
	if err := s.repo.SetReminders(reminders); err != nil {
		s.logger.Error("failed to persist reminders", zap.Error(err))
		return models.Reminder{}, errors.Wrap(err, errors.ErrTypeStorage, "REMINDERS_WRITE_FAILED", "failed to save reminders")
	}

	s.logger.Info("reminder created", zap.String("reminderId", reminder.ID))
	return reminder, nil
}

// Update replaces a reminder's editable fields.
func (s *Reminders) Update(id string, input ReminderInput) (models.Reminder, error) {
	return s.mutate(id, func(reminder *models.Reminder) error {
		reminder.Title = strings.TrimSpace(input.Title)
		reminder.Description = input.Description
		reminder.DueDate = input.DueDate
		reminder.DueTime = input.DueTime
		return validateReminder(*reminder)
	})
}

// ToggleCompleted flips a reminder's completed flag.
func (s *Reminders) ToggleCompleted(id string) (models.Reminder, error) {
	return s.mutate(id, func(reminder *models.Reminder) error {
		reminder.Completed = !reminder.Completed
		return nil
	})
}

// Delete removes a reminder.
func (s *Reminders) Delete(id string) error {
	reminders := s.repo.Reminders()
	remaining := make([]models.Reminder, 0, len(reminders))
	for _, reminder := range reminders {
		if reminder.ID == id {
			continue
		}
		remaining = append(remaining, reminder)
	}
	if len(remaining) == len(reminders) {
		return errors.ErrReminderNotFound.WithContext("reminderId", id)
	}

	if err := s.repo.SetReminders(remaining); err != nil {
		s.logger.Error("failed to persist reminders", zap.Error(err))
		return errors.Wrap(err, errors.ErrTypeStorage, "REMINDERS_WRITE_FAILED", "failed to save reminders")
	}

	s.logger.Info("reminder deleted", zap.String("reminderId", id))
	return nil
}

func (s *Reminders) mutate(id string, fn func(*models.Reminder) error) (models.Reminder, error) {
	reminders := s.repo.Reminders()
	for i := range reminders {
		if reminders[i].ID != id {
			continue
		}
		if err := fn(&reminders[i]); err != nil {
			return models.Reminder{}, err
		}
		updated := reminders[i]
		if err := s.repo.SetReminders(reminders); err != nil {
			s.logger.Error("failed to persist reminders", zap.Error(err))
			return models.Reminder{}, errors.Wrap(err, errors.ErrTypeStorage, "REMINDERS_WRITE_FAILED", "failed to save reminders")
		}
		return updated, nil
	}
	return models.Reminder{}, errors.ErrReminderNotFound.WithContext("reminderId", id)
}

func validateReminder(reminder models.Reminder) error {
	if reminder.Title == "" {
		return errors.ErrReminderTitleEmpty
	}
	if _, err := reminder.DueAt(); err != nil {
		return errors.ErrInvalidDueDate.WithContext("dueDate", reminder.DueDate+" "+reminder.DueTime)
	}
	return nil
}
