package provider

import (
	"cataconta-webhook/internal/domain/dto"
	"context"
	"errors"
)

// ErrPermanent marks a send failure that retrying will not fix, e.g. an invalid destination.
var ErrPermanent = errors.New("permanent send failure")

type IWhatsAppProvider interface {
	SendTextMessage(ctx context.Context, to, message string) (*dto.SendResult, error)
}
