package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "esulat/pkg/errors"
	"esulat/pkg/models"
	"esulat/pkg/services"
)

// APIHandlers contains API endpoint handlers
type APIHandlers struct {
	folders   *services.Folders
	notes     *services.Notes
	lifecycle *services.Lifecycle
	reminders *services.Reminders
	settings  *services.Settings
	dataDir   string
	logger    *zap.Logger
}

// NewAPIHandlers creates a new API handlers instance. dataDir may be
// empty when the storage backend has no backing directory (backup is
// then unavailable).
func NewAPIHandlers(
	folders *services.Folders,
	notes *services.Notes,
	lifecycle *services.Lifecycle,
	reminders *services.Reminders,
	settings *services.Settings,
	dataDir string,
	logger *zap.Logger,
) *APIHandlers {
	return &APIHandlers{
		folders:   folders,
		notes:     notes,
		lifecycle: lifecycle,
		reminders: reminders,
		settings:  settings,
		dataDir:   dataDir,
		logger:    logger,
	}
}

// Routes builds the API route table.
func (h *APIHandlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/folders", h.GetFoldersHandler)
	r.Post("/folders", h.CreateFolderHandler)
	r.Put("/folders/{id}", h.RenameFolderHandler)
	r.Delete("/folders/{id}", h.TrashFolderHandler)
	r.Get("/folders/{id}/notes", h.GetFolderNotesHandler)

	r.Post("/notes", h.CreateNoteHandler)
	r.Get("/notes/{id}", h.GetNoteHandler)
	r.Put("/notes/{id}", h.UpdateNoteHandler)
	r.Post("/notes/{id}/status", h.ToggleNoteStatusHandler)
	r.Post("/notes/{id}/photos", h.AddNotePhotoHandler)
	r.Post("/notes/archive", h.ArchiveNotesHandler)
	r.Post("/notes/unarchive", h.UnarchiveNotesHandler)
	r.Post("/notes/trash", h.TrashNotesHandler)

	r.Get("/archive", h.GetArchiveHandler)

	r.Get("/trash", h.GetTrashHandler)
	r.Post("/trash/restore", h.RestoreTrashHandler)
	r.Post("/trash/delete", h.DeleteTrashHandler)

	r.Get("/search", h.SearchHandler)

	r.Get("/settings", h.GetSettingsHandler)
	r.Put("/settings", h.UpdateSettingsHandler)
	r.Get("/themes", h.GetThemesHandler)
	r.Get("/fonts", h.GetFontsHandler)

	r.Get("/reminders", h.GetRemindersHandler)
	r.Post("/reminders", h.CreateReminderHandler)
	r.Put("/reminders/{id}", h.UpdateReminderHandler)
	r.Post("/reminders/{id}/toggle", h.ToggleReminderHandler)
	r.Delete("/reminders/{id}", h.DeleteReminderHandler)

	r.Post("/backup", h.BackupHandler)

	return r
}

func (h *APIHandlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to write response", zap.Error(err))
	}
}

// writeError maps application errors to HTTP statuses: validation → 400,
// not found → 404, everything else → 500.
func (h *APIHandlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"
	code := ""

	if appErr, ok := err.(*apperrors.AppError); ok {
		message = appErr.GetUserMessage()
		code = appErr.Code
		switch appErr.Type {
		case apperrors.ErrTypeValidation:
			status = http.StatusBadRequest
		case apperrors.ErrTypeNotFound:
			status = http.StatusNotFound
		}
	}

	h.writeJSON(w, status, map[string]string{"error": message, "code": code})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

// GetFoldersHandler returns all active folders
func (h *APIHandlers) GetFoldersHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.folders.List())
}

// CreateFolderHandler creates a new folder
func (h *APIHandlers) CreateFolderHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	folder, err := h.folders.Create(req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, folder)
}

// RenameFolderHandler renames an existing folder
func (h *APIHandlers) RenameFolderHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	folder, err := h.folders.Rename(id, req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, folder)
}

// TrashFolderHandler moves a folder and its notes to the trash
func (h *APIHandlers) TrashFolderHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.lifecycle.TrashFolder(id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetFolderNotesHandler returns a folder's active notes, optionally
// filtered by status
func (h *APIHandlers) GetFolderNotesHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.folders.Get(id); err != nil {
		h.writeError(w, err)
		return
	}

	filter := services.ParseFilter(r.URL.Query().Get("filter"))
	h.writeJSON(w, http.StatusOK, h.notes.ListByFolder(id, filter))
}

// CreateNoteHandler creates a new note
func (h *APIHandlers) CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FolderID string `json:"folderId"`
		Title    string `json:"title"`
		Content  string `json:"content"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	note, err := h.notes.Create(req.FolderID, req.Title, req.Content)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, note)
}

// GetNoteHandler returns a specific note by ID
func (h *APIHandlers) GetNoteHandler(w http.ResponseWriter, r *http.Request) {
	note, err := h.notes.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, note)
}

// UpdateNoteHandler edits a note's title, content, theme or font
func (h *APIHandlers) UpdateNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req services.NoteUpdate
	if !decodeBody(w, r, &req) {
		return
	}

	note, err := h.notes.Update(chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, note)
}

// ToggleNoteStatusHandler flips a note between pending and completed
func (h *APIHandlers) ToggleNoteStatusHandler(w http.ResponseWriter, r *http.Request) {
	note, err := h.notes.ToggleStatus(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, note)
}

// AddNotePhotoHandler appends an inline photo payload to a note
func (h *APIHandlers) AddNotePhotoHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Photo string `json:"photo"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	note, err := h.notes.AddPhoto(chi.URLParam(r, "id"), req.Photo)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, note)
}

// ArchiveNotesHandler moves the selected active notes to the archive
func (h *APIHandlers) ArchiveNotesHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.lifecycle.Archive(req.IDs); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnarchiveNotesHandler moves the selected archived notes back to active
func (h *APIHandlers) UnarchiveNotesHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.lifecycle.Unarchive(req.IDs); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TrashNotesHandler moves the selected active notes to the trash
func (h *APIHandlers) TrashNotesHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.lifecycle.TrashNotes(req.IDs); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetArchiveHandler returns the archived notes collection
func (h *APIHandlers) GetArchiveHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.notes.ListArchived())
}

// trashEntry is a trashed item decorated with its remaining retention days.
type trashEntry struct {
	Item          models.TrashedItem `json:"item"`
	DaysRemaining int                `json:"daysRemaining"`
}

// GetTrashHandler sweeps expired items and returns the surviving trash,
// most recently deleted first
func (h *APIHandlers) GetTrashHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.lifecycle.ListTrash()
	if err != nil {
		h.writeError(w, err)
		return
	}

	entries := make([]trashEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, trashEntry{
			Item:          item,
			DaysRemaining: h.lifecycle.DaysRemaining(item.DeletedAt),
		})
	}
	h.writeJSON(w, http.StatusOK, entries)
}

// RestoreTrashHandler restores the selected trashed items
func (h *APIHandlers) RestoreTrashHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []models.ItemKey `json:"items"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.lifecycle.Restore(req.Items); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTrashHandler permanently deletes the selected trashed items
func (h *APIHandlers) DeleteTrashHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []models.ItemKey `json:"items"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.lifecycle.DeleteForever(req.Items); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchHandler searches active notes by query
func (h *APIHandlers) SearchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "Missing query parameter", http.StatusBadRequest)
		return
	}
	h.writeJSON(w, http.StatusOK, h.notes.Search(query))
}

// GetSettingsHandler returns current settings
func (h *APIHandlers) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.settings.Get())
}

// UpdateSettingsHandler updates the welcome flag and/or language
func (h *APIHandlers) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HideWelcome *bool            `json:"hideWelcome"`
		Language    *models.Language `json:"language"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if req.HideWelcome != nil {
		if err := h.settings.SetHideWelcome(*req.HideWelcome); err != nil {
			h.writeError(w, err)
			return
		}
	}
	if req.Language != nil {
		if err := h.settings.SetLanguage(*req.Language); err != nil {
			h.writeError(w, err)
			return
		}
	}
	h.writeJSON(w, http.StatusOK, h.settings.Get())
}

// GetThemesHandler returns the selectable theme tokens
func (h *APIHandlers) GetThemesHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, models.Themes)
}

// GetFontsHandler returns the selectable font tokens
func (h *APIHandlers) GetFontsHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, models.Fonts)
}

// GetRemindersHandler returns all reminders
func (h *APIHandlers) GetRemindersHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.reminders.List())
}

// CreateReminderHandler creates a new reminder
func (h *APIHandlers) CreateReminderHandler(w http.ResponseWriter, r *http.Request) {
	var req services.ReminderInput
	if !decodeBody(w, r, &req) {
		return
	}

	reminder, err := h.reminders.Create(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, reminder)
}

// UpdateReminderHandler edits a reminder
func (h *APIHandlers) UpdateReminderHandler(w http.ResponseWriter, r *http.Request) {
	var req services.ReminderInput
	if !decodeBody(w, r, &req) {
		return
	}

	reminder, err := h.reminders.Update(chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, reminder)
}

// ToggleReminderHandler flips a reminder's completed flag
func (h *APIHandlers) ToggleReminderHandler(w http.ResponseWriter, r *http.Request) {
	reminder, err := h.reminders.ToggleCompleted(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, reminder)
}

// DeleteReminderHandler removes a reminder
func (h *APIHandlers) DeleteReminderHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.reminders.Delete(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BackupHandler creates a zip archive of the data directory
func (h *APIHandlers) BackupHandler(w http.ResponseWriter, r *http.Request) {
	if h.dataDir == "" {
		http.Error(w, "Backup not available for this storage backend", http.StatusConflict)
		return
	}

	zipPath, err := services.BackupData(h.dataDir)
	if err != nil {
		h.logger.Error("backup failed", zap.Error(err))
		http.Error(w, "Backup failed", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"path": zipPath})
}

// HealthHandler reports liveness
func (h *APIHandlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
