package services

import (
	"cataconta-webhook/internal/domain/dto"
	"cataconta-webhook/internal/domain/entities"
	"cataconta-webhook/internal/domain/interfaces/repository"
	memrepo "cataconta-webhook/internal/infra/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatusService() *MessageStatusService {
	svc := NewMessageStatusService(memrepo.NewMemoryRepository[entities.MessageStatus](), newTestLogger())
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestMessageStatusService_Record(t *testing.T) {
	ctx := context.Background()
	svc := newStatusService()

	saved, err := svc.Record(ctx, dto.StatusCallback{MessageSid: "SM1", MessageStatus: "sent", To: "whatsapp:+5511912345678"})
	require.NoError(t, err)
	assert.Equal(t, "sent", saved.Status)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), saved.UpdatedAt)

	found, err := svc.Find(ctx, "SM1")
	require.NoError(t, err)
	assert.Equal(t, saved, found)
}

func TestMessageStatusService_List(t *testing.T) {
	ctx := context.Background()
	svc := newStatusService()

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	require.NoError(t, svc.Track(ctx, "SM2", "whatsapp:+5511912345678", "queued"))
	require.NoError(t, svc.Track(ctx, "SM1", "whatsapp:+5511912345678", "sent"))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "SM1", all[0].MessageSid)
	assert.Equal(t, "SM2", all[1].MessageSid)
}

func TestMessageStatusService_RecordRequiresFields(t *testing.T) {
	svc := newStatusService()

	_, err := svc.Record(context.Background(), dto.StatusCallback{MessageSid: "SM1"})
	assert.Error(t, err)
}

func TestMessageStatusService_OutOfOrderCallbacks(t *testing.T) {
	ctx := context.Background()
	svc := newStatusService()

	require.NoError(t, svc.Track(ctx, "SM1", "whatsapp:+5511912345678", "queued"))

	_, err := svc.Record(ctx, dto.StatusCallback{MessageSid: "SM1", MessageStatus: "delivered"})
	require.NoError(t, err)
	saved, err := svc.Record(ctx, dto.StatusCallback{MessageSid: "SM1", MessageStatus: "sent"})
	require.NoError(t, err)

	assert.Equal(t, "delivered", saved.Status)
	assert.Equal(t, "whatsapp:+5511912345678", saved.To)
}

func TestMessageStatusService_FailureKeepsError(t *testing.T) {
	ctx := context.Background()
	svc := newStatusService()

	_, err := svc.Record(ctx, dto.StatusCallback{MessageSid: "SM1", MessageStatus: "undelivered", ErrorCode: "63016", ErrorMessage: "outside window"})
	require.NoError(t, err)
	saved, err := svc.Record(ctx, dto.StatusCallback{MessageSid: "SM1", MessageStatus: "sent"})
	require.NoError(t, err)

	assert.Equal(t, "undelivered", saved.Status)
	assert.Equal(t, "63016", saved.ErrorCode)
	assert.Equal(t, "outside window", saved.ErrorMessage)
}

func TestMessageStatusService_FindUnknown(t *testing.T) {
	_, err := newStatusService().Find(context.Background(), "SM404")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMessageStatusService_TrackRequiresSid(t *testing.T) {
	assert.Error(t, newStatusService().Track(context.Background(), "", "to", "queued"))
}
