package domain

import "time"

// FieldType enumerates supported custom field data types.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeTextarea FieldType = "textarea"
)

// IsValidFieldType reports whether the value is a supported field type.
func IsValidFieldType(t FieldType) bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeSelect, FieldTypeTextarea:
		return true
	default:
		return false
	}
}

// FieldScope identifies which entity kind a custom field is attached to.
type FieldScope string

const (
	FieldScopeCategory FieldScope = "category"
	FieldScopeArea     FieldScope = "area"
)

// IsValidFieldScope reports whether the value is a supported scope.
func IsValidFieldScope(s FieldScope) bool {
	return s == FieldScopeCategory || s == FieldScopeArea
}

// CustomFieldDefinition is an organization-configured extra field scoped to a
// category (validated at ticket creation) or an area (validated at transfer).
// Select fields must declare a non-empty option list.
type CustomFieldDefinition struct {
	ID          string
	Label       string
	Type        FieldType
	Required    bool
	Scope       FieldScope
	ScopeID     string
	Options     []string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasOption reports whether value is one of the declared select options.
func (d *CustomFieldDefinition) HasOption(value string) bool {
	for _, opt := range d.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// CustomFieldValue is a submitted value persisted against a ticket.
type CustomFieldValue struct {
	ID        string
	TicketID  string
	FieldID   string
	Value     string
	CreatedAt time.Time
}
