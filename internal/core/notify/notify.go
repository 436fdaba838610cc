// Package notify defines the user-facing notifications raised while loading
// analyzer reports and rendering diffs.
package notify

import "time"

// Level is how loudly a notification is shown.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is one published message. ID and CreatedAt are filled in by
// the bus when left empty.
type Notification struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
}
