package repository

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("record not found")

type Repository[T any] interface {
	Upsert(ctx context.Context, collectionName string, messageSid string, entity T) (T, error)
	FindByMessageSid(ctx context.Context, collectionName string, messageSid string) (T, error)
	FindAll(ctx context.Context, collectionName string) ([]T, error)
}
