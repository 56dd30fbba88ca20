package models

import "time"

// NoteStatus marks a note as pending or completed.
type NoteStatus string

const (
	StatusPending   NoteStatus = "pending"
	StatusCompleted NoteStatus = "completed"
)

// Note represents a note inside a folder. Theme and Font are optional
// appearance tokens; when absent the system defaults apply. Photos holds
// inline data-URL payloads in insertion order.
type Note struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	FolderID  string     `json:"folderId"`
	Status    NoteStatus `json:"status"`
	Theme     string     `json:"theme,omitempty"`
	Font      string     `json:"font,omitempty"`
	Photos    []string   `json:"photos,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Default appearance tokens, applied when a note carries none.
const (
	DefaultTheme = "#ffffff"
	DefaultFont  = "Arial, sans-serif"
)

// Theme is a selectable background color token.
type Theme struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Font is a selectable font-family token.
type Font struct {
	Name   string `json:"name"`
	Family string `json:"family"`
}

// Themes lists the selectable note background themes.
var Themes = []Theme{
	{Name: "Default", Color: "#ffffff"},
	{Name: "Light Blue", Color: "#e0f2fe"},
	{Name: "Light Green", Color: "#f0fdf4"},
	{Name: "Light Pink", Color: "#fdf2f8"},
	{Name: "Light Yellow", Color: "#fffbeb"},
	{Name: "Light Purple", Color: "#f3e8ff"},
}

// Fonts lists the selectable note font families.
var Fonts = []Font{
	{Name: "Arial", Family: "Arial, sans-serif"},
	{Name: "Georgia", Family: "Georgia, serif"},
	{Name: "Times New Roman", Family: `"Times New Roman", serif`},
	{Name: "Courier New", Family: `"Courier New", monospace`},
	{Name: "Helvetica", Family: "Helvetica, sans-serif"},
	{Name: "Verdana", Family: "Verdana, sans-serif"},
}

// EffectiveTheme returns the note's theme token or the system default.
func (n *Note) EffectiveTheme() string {
	if n.Theme == "" {
		return DefaultTheme
	}
	return n.Theme
}

// EffectiveFont returns the note's font token or the system default.
func (n *Note) EffectiveFont() string {
	if n.Font == "" {
		return DefaultFont
	}
	return n.Font
}
