package service

import (
	"strings"
	"unicode/utf8"
)

// Evidence gate rules. Every status change and transfer must carry a
// justification of at least MinNotesLength characters; there is no exemption
// list. Files are optional and validated individually.
const (
	MinNotesLength        = 10
	MaxEvidenceFileSize   = 5 * 1024 * 1024
	MaxGeneralFileSize    = 10 * 1024 * 1024
	ReasonNotesTooShort   = "notes_too_short"
	ReasonFileTypeInvalid = "file_type_rejected"
	ReasonFileTooLarge    = "file_too_large"
)

var evidenceMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// Office formats are additionally accepted for general ticket attachments.
var generalMimeTypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"image/gif":          true,
	"image/webp":         true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

// CandidateFile describes a file submitted for validation.
type CandidateFile struct {
	Name     string
	MimeType string
	Size     int64
}

// FileRejection reports why a single file failed validation.
type FileRejection struct {
	Name   string
	Reason string
}

// EvidenceResult is the outcome of a gate check.
type EvidenceResult struct {
	OK       bool
	Reason   string
	Rejected []FileRejection
}

// EvidenceGate validates transition notes and optional file evidence. Pure;
// it never touches storage.
type EvidenceGate struct{}

// NewEvidenceGate constructs the gate.
func NewEvidenceGate() *EvidenceGate {
	return &EvidenceGate{}
}

// Check validates a proposed transition's notes and candidate files. Files
// failing a rule are reported individually; any failure makes the overall
// result fail with the first violation as Reason.
func (g *EvidenceGate) Check(notes string, files []CandidateFile) EvidenceResult {
	result := EvidenceResult{OK: true}

	if utf8.RuneCountInString(strings.TrimSpace(notes)) < MinNotesLength {
		result.OK = false
		result.Reason = ReasonNotesTooShort
	}

	for _, file := range files {
		if rejection := CheckEvidenceFile(file); rejection != nil {
			result.Rejected = append(result.Rejected, *rejection)
			if result.OK {
				result.OK = false
				result.Reason = rejection.Reason
			}
		}
	}
	return result
}

// CheckEvidenceFile validates a single file against the evidence rules
// (image/PDF only, 5MB cap). Returns nil when the file is acceptable.
func CheckEvidenceFile(file CandidateFile) *FileRejection {
	if !evidenceMimeTypes[strings.ToLower(file.MimeType)] {
		return &FileRejection{Name: file.Name, Reason: ReasonFileTypeInvalid}
	}
	if file.Size > MaxEvidenceFileSize {
		return &FileRejection{Name: file.Name, Reason: ReasonFileTooLarge}
	}
	return nil
}

// CheckGeneralFile validates a single file against the general attachment
// rules (Office formats allowed, 10MB cap).
func CheckGeneralFile(file CandidateFile) *FileRejection {
	if !generalMimeTypes[strings.ToLower(file.MimeType)] {
		return &FileRejection{Name: file.Name, Reason: ReasonFileTypeInvalid}
	}
	if file.Size > MaxGeneralFileSize {
		return &FileRejection{Name: file.Name, Reason: ReasonFileTooLarge}
	}
	return nil
}
