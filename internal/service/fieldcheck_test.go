package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
)

func fieldDef(id string, required bool) domain.CustomFieldDefinition {
	return domain.CustomFieldDefinition{
		ID:       id,
		Label:    id,
		Type:     domain.FieldTypeText,
		Required: required,
		IsActive: true,
	}
}

func TestValidateFieldValuesAllSatisfied(t *testing.T) {
	defs := []domain.CustomFieldDefinition{
		fieldDef("serial", true),
		fieldDef("observacao", false),
	}
	result := ValidateFieldValues(defs, map[string]string{"serial": "AB-1234"})
	assert.True(t, result.OK)
	assert.Empty(t, result.UnmetFieldIDs())
}

func TestValidateFieldValuesMissingRequired(t *testing.T) {
	defs := []domain.CustomFieldDefinition{
		fieldDef("serial", true),
		fieldDef("contrato", true),
	}
	result := ValidateFieldValues(defs, map[string]string{"serial": "AB-1234"})
	assert.False(t, result.OK)
	assert.Equal(t, []string{"contrato"}, result.MissingFields)
}

func TestValidateFieldValuesWhitespaceIsMissing(t *testing.T) {
	defs := []domain.CustomFieldDefinition{fieldDef("serial", true)}
	result := ValidateFieldValues(defs, map[string]string{"serial": "   "})
	assert.False(t, result.OK)
	assert.Equal(t, []string{"serial"}, result.MissingFields)
}

func TestValidateFieldValuesUnknownField(t *testing.T) {
	defs := []domain.CustomFieldDefinition{fieldDef("serial", true)}
	result := ValidateFieldValues(defs, map[string]string{
		"serial":   "AB-1234",
		"stray-id": "value",
	})
	assert.False(t, result.OK)
	assert.Equal(t, []string{"stray-id"}, result.UnknownFields)
}

func TestValidateFieldValuesSelectOptions(t *testing.T) {
	def := domain.CustomFieldDefinition{
		ID:       "ambiente",
		Type:     domain.FieldTypeSelect,
		Required: true,
		Options:  []string{"producao", "homologacao"},
	}

	result := ValidateFieldValues([]domain.CustomFieldDefinition{def}, map[string]string{"ambiente": "producao"})
	assert.True(t, result.OK)

	result = ValidateFieldValues([]domain.CustomFieldDefinition{def}, map[string]string{"ambiente": "staging"})
	assert.False(t, result.OK)
	assert.Equal(t, []string{"ambiente"}, result.InvalidFields)
}

func TestValidateFieldValuesOptionalSkipped(t *testing.T) {
	defs := []domain.CustomFieldDefinition{fieldDef("observacao", false)}
	result := ValidateFieldValues(defs, nil)
	assert.True(t, result.OK)
}

func TestValidateFieldValuesNoDefinitions(t *testing.T) {
	result := ValidateFieldValues(nil, map[string]string{"anything": "value"})
	assert.False(t, result.OK)
	assert.Equal(t, []string{"anything"}, result.UnknownFields)

	result = ValidateFieldValues(nil, nil)
	assert.True(t, result.OK)
}

func TestUnmetFieldIDsMergesAllFailures(t *testing.T) {
	defs := []domain.CustomFieldDefinition{
		fieldDef("serial", true),
		{ID: "ambiente", Type: domain.FieldTypeSelect, Options: []string{"producao"}},
	}
	result := ValidateFieldValues(defs, map[string]string{
		"ambiente": "staging",
		"stray":    "x",
	})
	assert.False(t, result.OK)
	assert.Equal(t, []string{"serial", "ambiente", "stray"}, result.UnmetFieldIDs())
}
