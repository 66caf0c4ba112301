package Iservices

import (
	"cataconta-webhook/internal/domain/dto"
	"context"
)

type IChannelService interface {
	HandleInbound(ctx context.Context, message dto.InboundMessage) dto.ReplyDecision
}

// IOutbox accepts replies for background delivery. Enqueue never blocks.
type IOutbox interface {
	Enqueue(job dto.OutboxJob) bool
}

// IQueueDepth reports how many replies wait for a worker.
type IQueueDepth interface {
	Len() int
}
