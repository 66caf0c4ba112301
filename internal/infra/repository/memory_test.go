package repository

import (
	"cataconta-webhook/internal/domain/entities"
	domainrepo "cataconta-webhook/internal/domain/interfaces/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_UpsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository[entities.MessageStatus]()

	_, err := repo.Upsert(ctx, "MessageStatus", "SM1", entities.MessageStatus{MessageSid: "SM1", Status: "queued"})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, "MessageStatus", "SM1", entities.MessageStatus{MessageSid: "SM1", Status: "delivered"})
	require.NoError(t, err)

	found, err := repo.FindByMessageSid(ctx, "MessageStatus", "SM1")
	require.NoError(t, err)
	assert.Equal(t, "delivered", found.Status)
}

func TestMemoryRepository_NotFound(t *testing.T) {
	repo := NewMemoryRepository[entities.MessageStatus]()

	_, err := repo.FindByMessageSid(context.Background(), "MessageStatus", "SM404")
	assert.ErrorIs(t, err, domainrepo.ErrNotFound)
}

func TestMemoryRepository_FindAllSortedPerCollection(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository[entities.MessageStatus]()

	for _, sid := range []string{"SM3", "SM1", "SM2"} {
		_, err := repo.Upsert(ctx, "MessageStatus", sid, entities.MessageStatus{MessageSid: sid})
		require.NoError(t, err)
	}
	_, err := repo.Upsert(ctx, "Other", "SM9", entities.MessageStatus{MessageSid: "SM9"})
	require.NoError(t, err)

	all, err := repo.FindAll(ctx, "MessageStatus")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "SM1", all[0].MessageSid)
	assert.Equal(t, "SM3", all[2].MessageSid)

	empty, err := repo.FindAll(ctx, "Missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
