package models

import "time"

// Reminder is a standalone dated entry, independent of the note/folder
// lifecycle. DueDate and DueTime are stored as separate display parts and
// combined into a single instant by DueAt.
type Reminder struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     string    `json:"dueDate"`
	DueTime     string    `json:"dueTime"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Layouts for the reminder due parts.
const (
	DueDateLayout = "2006-01-02"
	DueTimeLayout = "15:04"
)

// DueAt combines DueDate and DueTime into one local-time instant. A missing
// time part means the start of the day.
func (r Reminder) DueAt() (time.Time, error) {
	if r.DueTime == "" {
		return time.ParseInLocation(DueDateLayout, r.DueDate, time.Local)
	}
	return time.ParseInLocation(DueDateLayout+" "+DueTimeLayout, r.DueDate+" "+r.DueTime, time.Local)
}
