package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvidenceGateNotes(t *testing.T) {
	gate := NewEvidenceGate()

	cases := []struct {
		name  string
		notes string
		ok    bool
	}{
		{"empty", "", false},
		{"whitespace only", "         \t  ", false},
		{"nine chars", "123456789", false},
		{"padded nine chars", "  123456789  ", false},
		{"exactly ten chars", "1234567890", true},
		{"long notes", "reproduzido em homologacao, ajustado o job de sincronizacao", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := gate.Check(tc.notes, nil)
			assert.Equal(t, tc.ok, result.OK)
			if !tc.ok {
				assert.Equal(t, ReasonNotesTooShort, result.Reason)
			}
		})
	}
}

func TestEvidenceGateFiles(t *testing.T) {
	gate := NewEvidenceGate()
	notes := "validated with the client over the phone"

	t.Run("accepted types", func(t *testing.T) {
		files := []CandidateFile{
			{Name: "shot.png", MimeType: "image/png", Size: 1024},
			{Name: "scan.pdf", MimeType: "application/pdf", Size: MaxEvidenceFileSize},
			{Name: "upper.jpg", MimeType: "IMAGE/JPEG", Size: 1},
		}
		result := gate.Check(notes, files)
		assert.True(t, result.OK)
		assert.Empty(t, result.Rejected)
	})

	t.Run("rejected type", func(t *testing.T) {
		result := gate.Check(notes, []CandidateFile{
			{Name: "script.sh", MimeType: "application/x-sh", Size: 10},
		})
		assert.False(t, result.OK)
		assert.Equal(t, ReasonFileTypeInvalid, result.Reason)
		require.Len(t, result.Rejected, 1)
		assert.Equal(t, "script.sh", result.Rejected[0].Name)
	})

	t.Run("office formats are not evidence", func(t *testing.T) {
		result := gate.Check(notes, []CandidateFile{
			{Name: "report.docx", MimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Size: 10},
		})
		assert.False(t, result.OK)
		assert.Equal(t, ReasonFileTypeInvalid, result.Reason)
	})

	t.Run("oversized file", func(t *testing.T) {
		result := gate.Check(notes, []CandidateFile{
			{Name: "video-frames.png", MimeType: "image/png", Size: MaxEvidenceFileSize + 1},
		})
		assert.False(t, result.OK)
		assert.Equal(t, ReasonFileTooLarge, result.Reason)
	})

	t.Run("each bad file reported individually", func(t *testing.T) {
		result := gate.Check(notes, []CandidateFile{
			{Name: "ok.png", MimeType: "image/png", Size: 100},
			{Name: "huge.pdf", MimeType: "application/pdf", Size: MaxEvidenceFileSize * 2},
			{Name: "macro.xlsm", MimeType: "application/vnd.ms-excel.sheet.macroEnabled.12", Size: 100},
		})
		assert.False(t, result.OK)
		require.Len(t, result.Rejected, 2)
		assert.Equal(t, ReasonFileTooLarge, result.Reason)
	})
}

func TestEvidenceGateNotesFailureWinsReason(t *testing.T) {
	gate := NewEvidenceGate()
	result := gate.Check("short", []CandidateFile{
		{Name: "huge.png", MimeType: "image/png", Size: MaxEvidenceFileSize + 1},
	})
	assert.False(t, result.OK)
	assert.Equal(t, ReasonNotesTooShort, result.Reason)
	assert.Len(t, result.Rejected, 1)
}

func TestCheckGeneralFile(t *testing.T) {
	t.Run("office formats allowed", func(t *testing.T) {
		assert.Nil(t, CheckGeneralFile(CandidateFile{
			Name:     "planilha.xlsx",
			MimeType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Size:     MaxGeneralFileSize,
		}))
		assert.Nil(t, CheckGeneralFile(CandidateFile{Name: "doc.doc", MimeType: "application/msword", Size: 100}))
	})

	t.Run("ten megabyte cap", func(t *testing.T) {
		rejection := CheckGeneralFile(CandidateFile{Name: "big.pdf", MimeType: "application/pdf", Size: MaxGeneralFileSize + 1})
		require.NotNil(t, rejection)
		assert.Equal(t, ReasonFileTooLarge, rejection.Reason)
	})

	t.Run("unknown type", func(t *testing.T) {
		rejection := CheckGeneralFile(CandidateFile{Name: "bin.exe", MimeType: "application/octet-stream", Size: 10})
		require.NotNil(t, rejection)
		assert.Equal(t, ReasonFileTypeInvalid, rejection.Reason)
	})
}

func TestMinNotesLengthBoundary(t *testing.T) {
	// Trailing whitespace never counts toward the minimum.
	gate := NewEvidenceGate()
	assert.True(t, gate.Check(strings.Repeat("a", MinNotesLength), nil).OK)
	assert.False(t, gate.Check(strings.Repeat("a", MinNotesLength-1)+"   ", nil).OK)
}

func TestMinNotesLengthCountsCharacters(t *testing.T) {
	// Accented text is measured in characters, not bytes: 5 characters of
	// two-byte runes must still fail the minimum.
	gate := NewEvidenceGate()

	result := gate.Check("ééééé", nil)
	assert.False(t, result.OK)
	assert.Equal(t, ReasonNotesTooShort, result.Reason)

	// "ação móvel" is exactly 10 characters.
	assert.True(t, gate.Check("ação móvel", nil).OK)
	assert.True(t, gate.Check(strings.Repeat("é", MinNotesLength), nil).OK)
}
