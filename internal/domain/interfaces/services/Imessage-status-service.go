package Iservices

import (
	"cataconta-webhook/internal/domain/dto"
	"cataconta-webhook/internal/domain/entities"
	"context"
)

type IMessageStatusService interface {
	Record(ctx context.Context, callback dto.StatusCallback) (entities.MessageStatus, error)
	Track(ctx context.Context, messageSid, to, status string) error
	Find(ctx context.Context, messageSid string) (entities.MessageStatus, error)
	List(ctx context.Context) ([]entities.MessageStatus, error)
}
