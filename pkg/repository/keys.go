package repository

// Persisted collection keys. Every consumer goes through the typed
// accessors on Repository instead of touching these directly.
const (
	KeyFolders       = "folders"
	KeyNotes         = "notes"
	KeyArchivedNotes = "archivedNotes"
	KeyTrashedItems  = "trashedItems"
	KeyHideWelcome   = "hideWelcome"
	KeyLanguage      = "language"
	KeyReminders     = "e-sulat-reminders"
)
