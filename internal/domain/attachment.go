package domain

import "time"

// Attachment stores metadata for an uploaded evidence or ticket file. Bytes
// live in the attachment store under StorageKey; rows are never mutated.
type Attachment struct {
	ID             string
	TicketID       string
	HistoryEntryID *string
	StorageKey     string
	OriginalName   string
	MimeType       string
	SizeBytes      int64
	UploaderID     string
	CreatedAt      time.Time
}
