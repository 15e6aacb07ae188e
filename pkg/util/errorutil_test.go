package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorCodesAndStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"not found", NewNotFound("ticket", nil), "NOT_FOUND", http.StatusNotFound},
		{"ticket closed", NewTicketClosed("t1"), "TICKET_CLOSED", http.StatusConflict},
		{"invalid transition", NewInvalidTransition("novo", "encerrado"), "INVALID_TRANSITION", http.StatusUnprocessableEntity},
		{"evidence rejected", NewEvidenceRejected("notes_too_short", nil), "EVIDENCE_REJECTED", http.StatusUnprocessableEntity},
		{"missing fields", NewMissingRequiredFields([]string{"f1"}), "MISSING_REQUIRED_FIELDS", http.StatusUnprocessableEntity},
		{"same area", NewSameArea("a1"), "SAME_AREA", http.StatusUnprocessableEntity},
		{"conflict", NewConflict("stale", nil), "CONFLICT", http.StatusConflict},
		{"dependency unavailable", NewDependencyUnavailable("redis", errors.New("down")), "DEPENDENCY_UNAVAILABLE", http.StatusServiceUnavailable},
		{"validation", NewValidationError("bad", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{"unauthorized", NewUnauthorized("no token"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", NewForbidden("no role"), "FORBIDDEN", http.StatusForbidden},
		{"internal", NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var de *DomainError
			require.ErrorAs(t, tc.err, &de)
			assert.Equal(t, tc.code, de.Code)
			assert.Equal(t, tc.status, de.HTTPStatus)
		})
	}
}

func TestEvidenceRejectedCarriesReason(t *testing.T) {
	err := NewEvidenceRejected("file_too_large", map[string]any{"files": []string{"big.pdf"}})
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "file_too_large", de.Details["reason"])
	assert.Equal(t, []string{"big.pdf"}, de.Details["files"])
}

func TestMissingRequiredFieldsDetails(t *testing.T) {
	err := NewMissingRequiredFields([]string{"serial", "ambiente"})
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []string{"serial", "ambiente"}, de.Details["field_ids"])
}

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewConflict("stale", nil)
	de := ToDomainError(original)
	assert.Equal(t, "CONFLICT", de.Code)
}

func TestToDomainErrorNoRows(t *testing.T) {
	de := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestToDomainErrorGeneric(t *testing.T) {
	de := ToDomainError(errors.New("something broke"))
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestDomainErrorUnwrap(t *testing.T) {
	inner := errors.New("pool exhausted")
	err := NewDependencyUnavailable("postgres", inner)
	assert.ErrorIs(t, err, inner)
}
