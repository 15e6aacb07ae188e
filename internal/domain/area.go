package domain

import "time"

// Area is an organizational queue that owns a ticket at a point in time.
type Area struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Client is the organization a ticket is opened for. VIP clients are
// highlighted on the board overview.
type Client struct {
	ID        string
	Name      string
	Document  string
	IsVIP     bool
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is an optional catalog item a ticket can reference.
type Product struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
