package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"esulat/pkg/kv"
	"esulat/pkg/models"
	"esulat/pkg/repository"
	"esulat/pkg/services"
)

func newTestServer(t *testing.T, dataDir string) *httptest.Server {
	t.Helper()
	logger := zap.NewNop()
	repo := repository.New(kv.NewMemoryStore(), logger)

	h := NewAPIHandlers(
		services.NewFolders(repo, logger),
		services.NewNotes(repo, logger),
		services.NewLifecycle(repo, logger),
		services.NewReminders(repo, logger),
		services.NewSettings(repo, logger),
		dataDir,
		logger,
	)

	server := httptest.NewServer(h.Routes())
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestFolderEndpoints(t *testing.T) {
	server := newTestServer(t, "")

	resp := doJSON(t, http.MethodPost, server.URL+"/folders", map[string]string{"name": "Work"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var folder models.Folder
	decodeInto(t, resp, &folder)
	assert.Equal(t, "Work", folder.Name)

	// Duplicate name, different case.
	resp = doJSON(t, http.MethodPost, server.URL+"/folders", map[string]string{"name": "work"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody map[string]string
	decodeInto(t, resp, &errBody)
	assert.Equal(t, "FOLDER_NAME_TAKEN", errBody["code"])

	resp = doJSON(t, http.MethodPut, server.URL+"/folders/"+folder.ID, map[string]string{"name": "Projects"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &folder)
	assert.Equal(t, "Projects", folder.Name)

	resp = doJSON(t, http.MethodPut, server.URL+"/folders/missing", map[string]string{"name": "X"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/folders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var folders []models.Folder
	decodeInto(t, resp, &folders)
	assert.Len(t, folders, 1)
}

func TestNoteEndpoints(t *testing.T) {
	server := newTestServer(t, "")

	resp := doJSON(t, http.MethodPost, server.URL+"/folders", map[string]string{"name": "Work"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var folder models.Folder
	decodeInto(t, resp, &folder)

	resp = doJSON(t, http.MethodPost, server.URL+"/notes", map[string]string{
		"folderId": folder.ID, "title": "Plan", "content": "body",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var note models.Note
	decodeInto(t, resp, &note)
	assert.Equal(t, models.StatusPending, note.Status)

	// Missing title is rejected.
	resp = doJSON(t, http.MethodPost, server.URL+"/notes", map[string]string{"folderId": folder.ID})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, server.URL+"/notes/"+note.ID, map[string]string{"theme": "#f28b82"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &note)
	assert.Equal(t, "#f28b82", note.Theme)
	assert.Equal(t, "body", note.Content)

	resp = doJSON(t, http.MethodPost, server.URL+"/notes/"+note.ID+"/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &note)
	assert.Equal(t, models.StatusCompleted, note.Status)

	resp = doJSON(t, http.MethodGet, server.URL+"/folders/"+folder.ID+"/notes?filter=completed", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var notes []models.Note
	decodeInto(t, resp, &notes)
	require.Len(t, notes, 1)
	assert.Equal(t, note.ID, notes[0].ID)

	resp = doJSON(t, http.MethodGet, server.URL+"/folders/"+folder.ID+"/notes?filter=pending", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &notes)
	assert.Empty(t, notes)

	// Listing notes for a missing folder is a 404, not an empty list.
	resp = doJSON(t, http.MethodGet, server.URL+"/folders/missing/notes", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestTrashEndpoints(t *testing.T) {
	server := newTestServer(t, "")

	resp := doJSON(t, http.MethodPost, server.URL+"/folders", map[string]string{"name": "Work"})
	var folder models.Folder
	decodeInto(t, resp, &folder)
	resp = doJSON(t, http.MethodPost, server.URL+"/notes", map[string]string{
		"folderId": folder.ID, "title": "Plan",
	})
	var note models.Note
	decodeInto(t, resp, &note)

	resp = doJSON(t, http.MethodDelete, server.URL+"/folders/"+folder.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/trash", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []struct {
		Item          models.TrashedItem `json:"item"`
		DaysRemaining int                `json:"daysRemaining"`
	}
	decodeInto(t, resp, &entries)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, 30, entry.DaysRemaining)
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/trash/restore", map[string]any{
		"items": []models.ItemKey{{ID: note.ID, Type: models.ItemTypeNote}},
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, server.URL+"/trash/delete", map[string]any{
		"items": []models.ItemKey{{ID: folder.ID, Type: models.ItemTypeFolder}},
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/trash", nil)
	decodeInto(t, resp, &entries)
	assert.Empty(t, entries)
}

func TestArchiveEndpoints(t *testing.T) {
	server := newTestServer(t, "")

	resp := doJSON(t, http.MethodPost, server.URL+"/folders", map[string]string{"name": "Work"})
	var folder models.Folder
	decodeInto(t, resp, &folder)
	resp = doJSON(t, http.MethodPost, server.URL+"/notes", map[string]string{
		"folderId": folder.ID, "title": "Plan",
	})
	var note models.Note
	decodeInto(t, resp, &note)

	resp = doJSON(t, http.MethodPost, server.URL+"/notes/archive", map[string]any{"ids": []string{note.ID}})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/archive", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var archived []models.Note
	decodeInto(t, resp, &archived)
	require.Len(t, archived, 1)

	resp = doJSON(t, http.MethodPost, server.URL+"/notes/unarchive", map[string]any{"ids": []string{note.ID}})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/notes/"+note.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestSearchEndpoint(t *testing.T) {
	server := newTestServer(t, "")

	resp := doJSON(t, http.MethodPost, server.URL+"/folders", map[string]string{"name": "Work"})
	var folder models.Folder
	decodeInto(t, resp, &folder)
	resp = doJSON(t, http.MethodPost, server.URL+"/notes", map[string]string{
		"folderId": folder.ID, "title": "Shopping list", "content": "milk",
	})
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/search?q=shopping", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var results []models.Note
	decodeInto(t, resp, &results)
	assert.Len(t, results, 1)

	resp = doJSON(t, http.MethodGet, server.URL+"/search", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSettingsEndpoints(t *testing.T) {
	server := newTestServer(t, "")

	resp := doJSON(t, http.MethodGet, server.URL+"/settings", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view services.SettingsView
	decodeInto(t, resp, &view)
	assert.False(t, view.HideWelcome)
	assert.Equal(t, models.LanguageEnglish, view.Language)

	// Partial update: only the welcome flag.
	resp = doJSON(t, http.MethodPut, server.URL+"/settings", map[string]any{"hideWelcome": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &view)
	assert.True(t, view.HideWelcome)
	assert.Equal(t, models.LanguageEnglish, view.Language)

	resp = doJSON(t, http.MethodPut, server.URL+"/settings", map[string]any{"language": "TAGALOG"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &view)
	assert.True(t, view.HideWelcome)
	assert.Equal(t, models.LanguageTagalog, view.Language)

	resp = doJSON(t, http.MethodPut, server.URL+"/settings", map[string]any{"language": "KLINGON"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestThemeAndFontEndpoints(t *testing.T) {
	server := newTestServer(t, "")

	resp := doJSON(t, http.MethodGet, server.URL+"/themes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var themes []models.Theme
	decodeInto(t, resp, &themes)
	assert.Equal(t, models.Themes, themes)

	resp = doJSON(t, http.MethodGet, server.URL+"/fonts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fonts []models.Font
	decodeInto(t, resp, &fonts)
	assert.Equal(t, models.Fonts, fonts)
}

func TestReminderEndpoints(t *testing.T) {
	server := newTestServer(t, "")

	resp := doJSON(t, http.MethodPost, server.URL+"/reminders", services.ReminderInput{
		Title: "Dentist", DueDate: "2026-09-15", DueTime: "14:30",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var reminder models.Reminder
	decodeInto(t, resp, &reminder)

	resp = doJSON(t, http.MethodPost, server.URL+"/reminders", services.ReminderInput{
		Title: "Bad date", DueDate: "not-a-date",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, server.URL+"/reminders/"+reminder.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &reminder)
	assert.True(t, reminder.Completed)

	resp = doJSON(t, http.MethodDelete, server.URL+"/reminders/"+reminder.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/reminders", nil)
	var reminders []models.Reminder
	decodeInto(t, resp, &reminders)
	assert.Empty(t, reminders)
}

func TestBackupEndpoint(t *testing.T) {
	t.Run("unavailable without data directory", func(t *testing.T) {
		server := newTestServer(t, "")
		resp := doJSON(t, http.MethodPost, server.URL+"/backup", nil)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("zips the data directory", func(t *testing.T) {
		server := newTestServer(t, t.TempDir())
		resp := doJSON(t, http.MethodPost, server.URL+"/backup", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		decodeInto(t, resp, &body)
		assert.Contains(t, body["path"], "backup-")
	})
}

func TestInvalidJSONBody(t *testing.T) {
	server := newTestServer(t, "")

	resp, err := http.Post(server.URL+"/folders", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestErrorBodyShape(t *testing.T) {
	server := newTestServer(t, "")

	resp := doJSON(t, http.MethodGet, server.URL+"/notes/missing", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]string
	decodeInto(t, resp, &body)
	assert.Equal(t, "NOTE_NOT_FOUND", body["code"])
	assert.NotEmpty(t, body["error"])
}

func TestTrashWireFormat(t *testing.T) {
	server := newTestServer(t, "")

	resp := doJSON(t, http.MethodPost, server.URL+"/folders", map[string]string{"name": "Work"})
	var folder models.Folder
	decodeInto(t, resp, &folder)
	resp = doJSON(t, http.MethodDelete, server.URL+"/folders/"+folder.ID, nil)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/trash", nil)
	var raw []map[string]json.RawMessage
	decodeInto(t, resp, &raw)
	require.Len(t, raw, 1)

	var item map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw[0]["item"], &item))
	for _, key := range []string{"id", "type", "data", "deletedAt"} {
		assert.Contains(t, item, key, fmt.Sprintf("trashed item must carry %q", key))
	}
}
