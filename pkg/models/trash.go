package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ItemType discriminates what a TrashedItem wraps.
type ItemType string

const (
	ItemTypeNote   ItemType = "note"
	ItemTypeFolder ItemType = "folder"
)

// ItemKey identifies a trashed item. IDs are not unique across types
// (a trashed note and a trashed folder may collide), so the composite
// (ID, Type) is the key.
type ItemKey struct {
	ID   string   `json:"id"`
	Type ItemType `json:"type"`
}

// TrashedItem wraps a full snapshot of a note or folder at deletion time.
// Exactly one of Note or Folder is set, matching Type. DeletedAt drives
// the 30-day retention window.
type TrashedItem struct {
	ID        string
	Type      ItemType
	Note      *Note
	Folder    *Folder
	DeletedAt time.Time
}

// TrashNote wraps a note for the trash collection.
func TrashNote(n Note, now time.Time) TrashedItem {
	return TrashedItem{ID: n.ID, Type: ItemTypeNote, Note: &n, DeletedAt: now}
}

// TrashFolder wraps a folder for the trash collection.
func TrashFolder(f Folder, now time.Time) TrashedItem {
	return TrashedItem{ID: f.ID, Type: ItemTypeFolder, Folder: &f, DeletedAt: now}
}

// Key returns the composite identity of the item.
func (t TrashedItem) Key() ItemKey {
	return ItemKey{ID: t.ID, Type: t.Type}
}

// DisplayName returns the wrapped note's title or folder's name.
func (t TrashedItem) DisplayName() string {
	switch t.Type {
	case ItemTypeNote:
		if t.Note != nil {
			return t.Note.Title
		}
	case ItemTypeFolder:
		if t.Folder != nil {
			return t.Folder.Name
		}
	}
	return ""
}

// trashedItemJSON is the persisted wire shape: the snapshot travels in an
// untagged "data" field dispatched on "type".
type trashedItemJSON struct {
	ID        string          `json:"id"`
	Type      ItemType        `json:"type"`
	Data      json.RawMessage `json:"data"`
	DeletedAt time.Time       `json:"deletedAt"`
}

func (t TrashedItem) MarshalJSON() ([]byte, error) {
	var data any
	switch t.Type {
	case ItemTypeNote:
		data = t.Note
	case ItemTypeFolder:
		data = t.Folder
	default:
		return nil, fmt.Errorf("unknown trashed item type %q", t.Type)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(trashedItemJSON{
		ID:        t.ID,
		Type:      t.Type,
		Data:      raw,
		DeletedAt: t.DeletedAt,
	})
}

func (t *TrashedItem) UnmarshalJSON(b []byte) error {
	var wire trashedItemJSON
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	item := TrashedItem{ID: wire.ID, Type: wire.Type, DeletedAt: wire.DeletedAt}
	switch wire.Type {
	case ItemTypeNote:
		var n Note
		if err := json.Unmarshal(wire.Data, &n); err != nil {
			return err
		}
		item.Note = &n
	case ItemTypeFolder:
		var f Folder
		if err := json.Unmarshal(wire.Data, &f); err != nil {
			return err
		}
		item.Folder = &f
	default:
		return fmt.Errorf("unknown trashed item type %q", wire.Type)
	}
	*t = item
	return nil
}
