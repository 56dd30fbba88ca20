package errors

import "strings"

// allowed MIME prefixes for inline photo payloads
var photoPrefixes = []string{
	"data:image/png;base64,",
	"data:image/jpeg;base64,",
	"data:image/gif;base64,",
	"data:image/webp;base64,",
}

// Validator provides validation utilities
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateFolderName checks that a candidate folder name is non-empty and
// not already taken, case-insensitively, among the given names.
func (v *Validator) ValidateFolderName(name string, existing []string) *AppError {
	if strings.TrimSpace(name) == "" {
		return ErrFolderNameEmpty
	}
	for _, other := range existing {
		if strings.EqualFold(strings.TrimSpace(name), other) {
			return ErrFolderNameTaken.WithContext("name", name)
		}
	}
	return nil
}

// ValidateNoteTitle checks that a note title is present at creation time.
func (v *Validator) ValidateNoteTitle(title string) *AppError {
	if strings.TrimSpace(title) == "" {
		return ErrNoteTitleEmpty
	}
	return nil
}

// ValidatePhoto checks that a photo payload is an inline image data URL.
func (v *Validator) ValidatePhoto(payload string) *AppError {
	for _, prefix := range photoPrefixes {
		if strings.HasPrefix(payload, prefix) && len(payload) > len(prefix) {
			return nil
		}
	}
	return ErrInvalidPhoto
}
