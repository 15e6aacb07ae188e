package domain

import "time"

// EntryKind discriminates what a history entry records. Comment entries and
// status changes share the same audit trail but are distinct variants.
type EntryKind string

const (
	EntryKindCreation     EntryKind = "creation"
	EntryKindStatusChange EntryKind = "status_change"
	EntryKindTransfer     EntryKind = "transfer"
	EntryKindComment      EntryKind = "comment"
)

// HistoryEntry is an immutable audit record owned by a ticket. One entry is
// written on creation and one per successful transition; entries are never
// edited or removed.
type HistoryEntry struct {
	ID          string
	TicketID    string
	Kind        EntryKind
	FromStatus  *TicketStatus
	ToStatus    *TicketStatus
	FromAreaID  *string
	ToAreaID    *string
	AgentID     *string
	AgentName   string
	Notes       *string
	Attachments []Attachment
	CreatedAt   time.Time
}
