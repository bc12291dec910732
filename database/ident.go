package database

import (
	"time"

	"github.com/gofrs/uuid"
)

// Timestamps are stored as text; this layout sorts lexicographically in
// chronological order, so ORDER BY createdAt works on the raw column.
const timeLayout = "2006-01-02T15:04:05.000Z"

// NewID returns a fresh globally unique identifier for a row.
func NewID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// Now returns the current UTC time in the stored textual form.
func Now() string {
	return time.Now().UTC().Format(timeLayout)
}
