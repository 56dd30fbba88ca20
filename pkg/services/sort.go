package services

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"esulat/pkg/models"
)

// newCollator builds the collator used for display ordering of folder
// names and note titles. Loose comparison ignores case and width, the
// closest match to the clients' localeCompare ordering.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.Loose)
}

// sortFolders orders folders ascending by name.
func sortFolders(c *collate.Collator, folders []models.Folder) {
	sort.SliceStable(folders, func(i, j int) bool {
		return c.CompareString(folders[i].Name, folders[j].Name) < 0
	})
}

// sortNotes orders notes by title within each folder.
func sortNotes(c *collate.Collator, notes []models.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].FolderID != notes[j].FolderID {
			return notes[i].FolderID < notes[j].FolderID
		}
		return c.CompareString(notes[i].Title, notes[j].Title) < 0
	})
}
