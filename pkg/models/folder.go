package models

import "time"

// Folder groups notes together. Folder names are unique among active
// folders under case-insensitive comparison; the services layer enforces
// this at create/rename time.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
