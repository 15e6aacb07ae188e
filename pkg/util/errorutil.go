package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewTicketClosed signals an attempted mutation of a terminal ticket.
func NewTicketClosed(ticketID string) error {
	return NewDomainError("TICKET_CLOSED", "ticket is closed and cannot be mutated",
		http.StatusConflict, map[string]any{"ticket_id": ticketID})
}

// NewInvalidTransition signals a target status unreachable from the current one.
func NewInvalidTransition(from, to string) error {
	return NewDomainError("INVALID_TRANSITION",
		fmt.Sprintf("cannot transition from %s to %s", from, to),
		http.StatusUnprocessableEntity, map[string]any{"from": from, "to": to})
}

// NewEvidenceRejected signals a failed evidence gate check; reason is one of
// notes_too_short, file_type_rejected, file_too_large.
func NewEvidenceRejected(reason string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	details["reason"] = reason
	return NewDomainError("EVIDENCE_REJECTED", "transition evidence rejected",
		http.StatusUnprocessableEntity, details)
}

// NewMissingRequiredFields carries the unmet custom-field ids.
func NewMissingRequiredFields(fieldIDs []string) error {
	return NewDomainError("MISSING_REQUIRED_FIELDS", "required custom fields missing",
		http.StatusUnprocessableEntity, map[string]any{"field_ids": fieldIDs})
}

// NewSameArea rejects a no-op transfer.
func NewSameArea(areaID string) error {
	return NewDomainError("SAME_AREA", "ticket is already in the target area",
		http.StatusUnprocessableEntity, map[string]any{"area_id": areaID})
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

// NewConflict signals a stale-version concurrent write; callers must reload
// and retry.
func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

// NewDependencyUnavailable wraps a collaborator store/service failure. This is
// the only class a caller may reasonably retry.
func NewDependencyUnavailable(dependency string, err error) error {
	return &DomainError{
		Code:       "DEPENDENCY_UNAVAILABLE",
		Message:    fmt.Sprintf("%s unavailable", dependency),
		HTTPStatus: http.StatusServiceUnavailable,
		Details:    map[string]any{"dependency": dependency},
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
