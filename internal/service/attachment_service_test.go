package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
	apperrors "github.com/rolfmarquardtjr/clickticket/pkg/util"
)

type memFileStore struct {
	blobs map[string]string
}

func newMemFileStore() *memFileStore {
	return &memFileStore{blobs: make(map[string]string)}
}

func (m *memFileStore) Save(key string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	m.blobs[key] = string(data)
	return nil
}

func (m *memFileStore) Open(key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(m.blobs[key])), nil
}

func (m *memFileStore) Remove(key string) error {
	delete(m.blobs, key)
	return nil
}

func newAttachmentFixture(t *testing.T) (*AttachmentService, *workflowFixture, *memFileStore) {
	t.Helper()
	f := newWorkflowFixture(t)
	store := newMemFileStore()
	svc := NewAttachmentService(f.tickets, f.attachments, store)
	return svc, f, store
}

func TestUploadGeneralBatch(t *testing.T) {
	svc, f, store := newAttachmentFixture(t)
	view := f.createTicket(t, domain.ImpactMedio)

	result, err := svc.Upload(context.Background(), f.agent, view.Ticket.ID, []UploadFile{
		{Name: "foto.png", MimeType: "image/png", Size: 2048, Content: strings.NewReader("png-bytes")},
		{Name: "contrato.docx", MimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Size: 4096, Content: strings.NewReader("doc-bytes")},
	}, false)
	require.NoError(t, err)
	require.Len(t, result.Accepted, 2)
	assert.Empty(t, result.Rejected)
	assert.Len(t, store.blobs, 2)

	first := result.Accepted[0]
	assert.Equal(t, view.Ticket.ID, first.TicketID)
	assert.Equal(t, f.agent.ID, first.UploaderID)
	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, first.StorageKey)
}

func TestUploadEvidenceRejectsOffice(t *testing.T) {
	svc, f, _ := newAttachmentFixture(t)
	view := f.createTicket(t, domain.ImpactMedio)

	result, err := svc.Upload(context.Background(), f.agent, view.Ticket.ID, []UploadFile{
		{Name: "contrato.docx", MimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Size: 4096, Content: strings.NewReader("doc")},
		{Name: "foto.png", MimeType: "image/png", Size: 100, Content: strings.NewReader("png")},
	}, true)
	require.NoError(t, err)
	require.Len(t, result.Accepted, 1)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "contrato.docx", result.Rejected[0].Name)
	assert.Equal(t, ReasonFileTypeInvalid, result.Rejected[0].Reason)
}

func TestUploadOversizedRejectedIndividually(t *testing.T) {
	svc, f, store := newAttachmentFixture(t)
	view := f.createTicket(t, domain.ImpactMedio)

	result, err := svc.Upload(context.Background(), f.agent, view.Ticket.ID, []UploadFile{
		{Name: "grande.pdf", MimeType: "application/pdf", Size: MaxEvidenceFileSize + 1, Content: strings.NewReader("pdf")},
	}, true)
	require.NoError(t, err)
	assert.Empty(t, result.Accepted)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, ReasonFileTooLarge, result.Rejected[0].Reason)
	assert.Empty(t, store.blobs)
}

func TestUploadUnknownTicket(t *testing.T) {
	svc, f, _ := newAttachmentFixture(t)
	_, err := svc.Upload(context.Background(), f.agent, "missing", nil, false)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestUploadRequiresAgent(t *testing.T) {
	svc, f, _ := newAttachmentFixture(t)
	view := f.createTicket(t, domain.ImpactMedio)
	_, err := svc.Upload(context.Background(), nil, view.Ticket.ID, nil, false)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "UNAUTHORIZED", de.Code)
}

func TestDeleteAttachmentRemovesBytes(t *testing.T) {
	svc, f, store := newAttachmentFixture(t)
	view := f.createTicket(t, domain.ImpactMedio)

	result, err := svc.Upload(context.Background(), f.agent, view.Ticket.ID, []UploadFile{
		{Name: "foto.png", MimeType: "image/png", Size: 100, Content: strings.NewReader("png")},
	}, false)
	require.NoError(t, err)
	att := result.Accepted[0]

	require.NoError(t, svc.Delete(context.Background(), f.agent, att.ID))
	assert.Empty(t, store.blobs)

	err = svc.Delete(context.Background(), f.agent, att.ID)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "NOT_FOUND", de.Code)
}
