package services

import (
	"cataconta-webhook/internal/config"
	"cataconta-webhook/internal/domain/dto"
	Iservices "cataconta-webhook/internal/domain/interfaces/services"
	"cataconta-webhook/internal/infra/logger"
	"cataconta-webhook/internal/infra/provider"
	"cataconta-webhook/internal/util"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

type ChannelService struct {
	Logger           *logger.Logger
	Mode             string
	SendTimeout      time.Duration
	WhatsAppProvider provider.IWhatsAppProvider
	Outbox           Iservices.IOutbox
	StatusService    Iservices.IMessageStatusService
	seen             *cache.Cache
}

// NewChannelService wires the reply flow. whatsAppProvider is only used in sync mode and
// outbox only in async mode, either may be nil otherwise.
func NewChannelService(logger *logger.Logger, mode string, sendTimeout, dedupTTL time.Duration, whatsAppProvider provider.IWhatsAppProvider, outbox Iservices.IOutbox, statusService Iservices.IMessageStatusService) *ChannelService {
	if dedupTTL <= 0 {
		dedupTTL = 10 * time.Minute
	}
	return &ChannelService{
		Logger:           logger,
		Mode:             mode,
		SendTimeout:      sendTimeout,
		WhatsAppProvider: whatsAppProvider,
		Outbox:           outbox,
		StatusService:    statusService,
		seen:             cache.New(dedupTTL, 2*dedupTTL),
	}
}

// HandleInbound decides the auto-reply and either returns it for inline TwiML or hands it
// to Twilio's API. The reply is computed from the request values before any handoff.
func (th *ChannelService) HandleInbound(ctx context.Context, message dto.InboundMessage) dto.ReplyDecision {
	reply := util.BuildReply(message.Body, message.NumMedia)

	if th.Mode != config.ReplyModeSync && th.Mode != config.ReplyModeAsync {
		return dto.ReplyDecision{Reply: reply, Inline: true}
	}

	// The sid stays reserved while the reply is dispatched and is released if dispatch fails,
	// so Twilio's retry of the same message gets another attempt.
	if !th.reserve(message.MessageSid) {
		th.Logger.Warn("Duplicate webhook delivery, reply already dispatched", logrus.Fields{"sid": message.MessageSid})
		return dto.ReplyDecision{}
	}

	to := util.AddNineToPhoneNumber(message.From)
	if th.Mode == config.ReplyModeSync {
		if !th.sendNow(ctx, to, reply) {
			th.release(message.MessageSid)
		}
		return dto.ReplyDecision{}
	}

	job := dto.OutboxJob{
		ID:         uuid.NewString(),
		InboundSid: message.MessageSid,
		To:         to,
		Body:       reply,
	}
	if !th.Outbox.Enqueue(job) {
		th.release(message.MessageSid)
		th.Logger.Error("Outbox full, dropping reply", logrus.Fields{"to": to, "job": job.ID})
		return dto.ReplyDecision{}
	}

	th.Logger.Info("Reply queued", logrus.Fields{"to": to, "job": job.ID})
	return dto.ReplyDecision{}
}

// sendNow reports whether the vendor accepted the reply.
func (th *ChannelService) sendNow(ctx context.Context, to, reply string) bool {
	if th.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, th.SendTimeout)
		defer cancel()
	}

	result, err := th.WhatsAppProvider.SendTextMessage(ctx, to, reply)
	if err != nil {
		th.Logger.Error("Failed to send WhatsApp reply", logrus.Fields{"to": to, "error": err.Error()})
		return false
	}

	status := result.Status
	if status == "" {
		status = "queued"
	}
	if result.Sid == "" {
		return true
	}
	if err := th.StatusService.Track(ctx, result.Sid, to, status); err != nil {
		th.Logger.Warn("Could not track sent reply", logrus.Fields{"sid": result.Sid, "error": err.Error()})
	}
	return true
}

// reserve reports false when sid was already dispatched within the dedup window.
func (th *ChannelService) reserve(sid string) bool {
	if sid == "" {
		return true
	}
	return th.seen.Add(sid, struct{}{}, cache.DefaultExpiration) == nil
}

func (th *ChannelService) release(sid string) {
	if sid != "" {
		th.seen.Delete(sid)
	}
}
