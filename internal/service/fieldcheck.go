package service

import (
	"sort"
	"strings"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
)

// FieldCheckResult is the outcome of validating submitted custom field values
// against a scope's definitions.
type FieldCheckResult struct {
	OK            bool
	MissingFields []string
	UnknownFields []string
	InvalidFields []string
}

// ValidateFieldValues enforces organization-defined required fields for a
// scope. Every required definition must have a non-empty trimmed value;
// unknown field ids are rejected rather than silently accepted; select values
// must be one of the declared options. Field ids are scope-unique, so values
// from a previous context never carry over.
func ValidateFieldValues(definitions []domain.CustomFieldDefinition, values map[string]string) FieldCheckResult {
	result := FieldCheckResult{OK: true}

	known := make(map[string]*domain.CustomFieldDefinition, len(definitions))
	for i := range definitions {
		known[definitions[i].ID] = &definitions[i]
	}

	for fieldID := range values {
		if _, ok := known[fieldID]; !ok {
			result.UnknownFields = append(result.UnknownFields, fieldID)
		}
	}

	for i := range definitions {
		def := &definitions[i]
		value, present := values[def.ID]
		trimmed := strings.TrimSpace(value)

		if def.Required && (!present || trimmed == "") {
			result.MissingFields = append(result.MissingFields, def.ID)
			continue
		}
		if !present || trimmed == "" {
			continue
		}
		if def.Type == domain.FieldTypeSelect && len(def.Options) > 0 && !def.HasOption(trimmed) {
			result.InvalidFields = append(result.InvalidFields, def.ID)
		}
	}

	sort.Strings(result.MissingFields)
	sort.Strings(result.UnknownFields)
	sort.Strings(result.InvalidFields)

	result.OK = len(result.MissingFields) == 0 &&
		len(result.UnknownFields) == 0 &&
		len(result.InvalidFields) == 0
	return result
}

// UnmetFieldIDs flattens the failure into the id list reported to callers.
func (r FieldCheckResult) UnmetFieldIDs() []string {
	ids := make([]string, 0, len(r.MissingFields)+len(r.UnknownFields)+len(r.InvalidFields))
	ids = append(ids, r.MissingFields...)
	ids = append(ids, r.InvalidFields...)
	ids = append(ids, r.UnknownFields...)
	return ids
}
