package services

import (
	"cataconta-webhook/internal/domain/dto"
	"cataconta-webhook/internal/domain/entities"
	"cataconta-webhook/internal/infra/logger"
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type mockProvider struct{ mock.Mock }

func (m *mockProvider) SendTextMessage(ctx context.Context, to, message string) (*dto.SendResult, error) {
	args := m.Called(ctx, to, message)
	result, _ := args.Get(0).(*dto.SendResult)
	return result, args.Error(1)
}

type mockOutbox struct{ mock.Mock }

func (m *mockOutbox) Enqueue(job dto.OutboxJob) bool {
	return m.Called(job).Bool(0)
}

type mockStatusService struct{ mock.Mock }

func (m *mockStatusService) Record(ctx context.Context, callback dto.StatusCallback) (entities.MessageStatus, error) {
	args := m.Called(ctx, callback)
	return args.Get(0).(entities.MessageStatus), args.Error(1)
}

func (m *mockStatusService) Track(ctx context.Context, messageSid, to, status string) error {
	return m.Called(ctx, messageSid, to, status).Error(0)
}

func (m *mockStatusService) Find(ctx context.Context, messageSid string) (entities.MessageStatus, error) {
	args := m.Called(ctx, messageSid)
	return args.Get(0).(entities.MessageStatus), args.Error(1)
}

func (m *mockStatusService) List(ctx context.Context) ([]entities.MessageStatus, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).([]entities.MessageStatus)
	return result, args.Error(1)
}

func newTestLogger() *logger.Logger {
	return logger.NewLoggerWithOutput(context.Background(), io.Discard, "debug", true)
}
