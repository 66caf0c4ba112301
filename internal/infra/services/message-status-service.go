package services

import (
	"cataconta-webhook/internal/domain/dto"
	"cataconta-webhook/internal/domain/entities"
	"cataconta-webhook/internal/domain/interfaces/repository"
	repocontants "cataconta-webhook/internal/domain/interfaces/repository/contants"
	"cataconta-webhook/internal/infra/logger"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// statusRank orders Twilio's message lifecycle. Callbacks can arrive out of order,
// a lower rank never overwrites a higher one.
var statusRank = map[string]int{
	"accepted":    1,
	"scheduled":   1,
	"queued":      2,
	"sending":     3,
	"sent":        4,
	"delivered":   5,
	"read":        6,
	"undelivered": 7,
	"failed":      7,
	"canceled":    7,
}

// MessageStatusService records delivery state of outbound messages.
type MessageStatusService struct {
	Repository repository.Repository[entities.MessageStatus]
	Logger     *logger.Logger
	now        func() time.Time
}

func NewMessageStatusService(repo repository.Repository[entities.MessageStatus], logger *logger.Logger) *MessageStatusService {
	return &MessageStatusService{
		Repository: repo,
		Logger:     logger,
		now:        time.Now,
	}
}

// Record stores a status callback, keeping fields a previous record already knew.
func (ms *MessageStatusService) Record(ctx context.Context, callback dto.StatusCallback) (entities.MessageStatus, error) {
	if callback.MessageSid == "" || callback.MessageStatus == "" {
		return entities.MessageStatus{}, errors.New("status callback without MessageSid or MessageStatus")
	}

	incoming := entities.MessageStatus{
		MessageSid:   callback.MessageSid,
		Status:       callback.MessageStatus,
		To:           callback.To,
		From:         callback.From,
		ErrorCode:    callback.ErrorCode,
		ErrorMessage: callback.ErrorMessage,
	}
	return ms.save(ctx, incoming)
}

// Track records a status observed by this service itself, e.g. the answer to a send.
func (ms *MessageStatusService) Track(ctx context.Context, messageSid, to, status string) error {
	if messageSid == "" {
		return errors.New("track status without message sid")
	}
	_, err := ms.save(ctx, entities.MessageStatus{MessageSid: messageSid, To: to, Status: status})
	return err
}

func (ms *MessageStatusService) Find(ctx context.Context, messageSid string) (entities.MessageStatus, error) {
	result, err := ms.Repository.FindByMessageSid(ctx, repocontants.MESSAGE_STATUS_COLLECTION, messageSid)
	if err != nil {
		return entities.MessageStatus{}, err
	}
	return result, nil
}

// List returns every recorded status.
func (ms *MessageStatusService) List(ctx context.Context) ([]entities.MessageStatus, error) {
	result, err := ms.Repository.FindAll(ctx, repocontants.MESSAGE_STATUS_COLLECTION)
	if err != nil {
		ms.Logger.Error("Failed to list message statuses", logrus.Fields{"error": err.Error()})
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	if result == nil {
		result = []entities.MessageStatus{}
	}
	return result, nil
}

func (ms *MessageStatusService) save(ctx context.Context, incoming entities.MessageStatus) (entities.MessageStatus, error) {
	existing, err := ms.Find(ctx, incoming.MessageSid)
	switch {
	case err == nil:
		incoming = merge(existing, incoming)
	case !errors.Is(err, repository.ErrNotFound):
		ms.Logger.Error("Failed to load message status", logrus.Fields{"sid": incoming.MessageSid, "error": err.Error()})
		return entities.MessageStatus{}, fmt.Errorf("load status %s: %w", incoming.MessageSid, err)
	}

	incoming.UpdatedAt = ms.now().UTC()

	result, err := ms.Repository.Upsert(ctx, repocontants.MESSAGE_STATUS_COLLECTION, incoming.MessageSid, incoming)
	if err != nil {
		ms.Logger.Error("Failed to save message status", logrus.Fields{"sid": incoming.MessageSid, "error": err.Error()})
		return entities.MessageStatus{}, fmt.Errorf("save status %s: %w", incoming.MessageSid, err)
	}

	ms.Logger.Info("Message status updated", logrus.Fields{"sid": result.MessageSid, "status": result.Status})
	return result, nil
}

func merge(existing, incoming entities.MessageStatus) entities.MessageStatus {
	if statusRank[incoming.Status] < statusRank[existing.Status] {
		incoming.Status = existing.Status
	}
	if incoming.To == "" {
		incoming.To = existing.To
	}
	if incoming.From == "" {
		incoming.From = existing.From
	}
	if incoming.ErrorCode == "" {
		incoming.ErrorCode = existing.ErrorCode
		incoming.ErrorMessage = existing.ErrorMessage
	}
	return incoming
}
