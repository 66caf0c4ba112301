package handlers

import (
	"cataconta-webhook/internal/domain/dto"
	"cataconta-webhook/internal/domain/entities"
	"cataconta-webhook/internal/domain/interfaces/repository"
	Iservices "cataconta-webhook/internal/domain/interfaces/services"
	"cataconta-webhook/internal/infra/logger"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const homeBanner = "CataConta WhatsApp Webhook ativo!"

type WhatsAppHandlers struct {
	Logger         *logger.Logger
	ChannelService Iservices.IChannelService
	StatusService  Iservices.IMessageStatusService
	// Outbox is set in async mode so the health check can report the queue depth.
	Outbox Iservices.IQueueDepth
}

func NewWhatsAppHandlers(logger *logger.Logger, channelService Iservices.IChannelService, statusService Iservices.IMessageStatusService) *WhatsAppHandlers {
	return &WhatsAppHandlers{Logger: logger, ChannelService: channelService, StatusService: statusService}
}

// Webhook receives an inbound WhatsApp message from Twilio.
//
// It always answers 200 with text/xml. Twilio reports error 12300 for any other
// content type and 11200 when the webhook is slow, so dispatch that talks to the API
// does not change the response beyond leaving the <Response> empty.
func (th *WhatsAppHandlers) Webhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		th.Logger.Error("Invalid form payload", logrus.Fields{"error": err.Error()})
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	message := dto.NewInboundMessage(r.PostForm)
	th.Logger.Info("Message received", logrus.Fields{
		"sid":       message.MessageSid,
		"from":      message.From,
		"body":      message.Body,
		"num_media": message.NumMedia,
		"media_url": message.MediaURL,
	})

	decision := th.ChannelService.HandleInbound(r.Context(), message)

	reply := ""
	if decision.Inline {
		reply = decision.Reply
	}
	th.writeTwiML(w, reply)
}

// Status receives Twilio's delivery callbacks for messages we sent.
func (th *WhatsAppHandlers) Status(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	callback := dto.NewStatusCallback(r.PostForm)
	if callback.MessageSid == "" || callback.MessageStatus == "" {
		th.Logger.Warn("Status callback without MessageSid or MessageStatus")
		http.Error(w, "MessageSid and MessageStatus are required", http.StatusBadRequest)
		return
	}

	th.Logger.Info("Status callback received", logrus.Fields{
		"sid":        callback.MessageSid,
		"status":     callback.MessageStatus,
		"error_code": callback.ErrorCode,
	})

	if _, err := th.StatusService.Record(r.Context(), callback); err != nil {
		http.Error(w, "Failed to record status", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// StatusLookup returns the last known state of a message sid.
func (th *WhatsAppHandlers) StatusLookup(w http.ResponseWriter, r *http.Request) {
	sid := mux.Vars(r)["sid"]

	status, err := th.StatusService.Find(r.Context(), sid)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Message not found", http.StatusNotFound)
		return
	}
	if err != nil {
		th.Logger.Error("Failed to load message status", logrus.Fields{"sid": sid, "error": err.Error()})
		http.Error(w, "Failed to load status", http.StatusInternalServerError)
		return
	}

	th.writeJSON(w, redact(status))
}

// StatusList returns every recorded status.
func (th *WhatsAppHandlers) StatusList(w http.ResponseWriter, r *http.Request) {
	statuses, err := th.StatusService.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to load statuses", http.StatusInternalServerError)
		return
	}

	for i := range statuses {
		statuses[i] = redact(statuses[i])
	}
	th.writeJSON(w, statuses)
}

func (th *WhatsAppHandlers) Health(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{"status": "healthy"}
	if th.Outbox != nil {
		response["outbox_pending"] = th.Outbox.Len()
	}
	th.writeJSON(w, response)
}

func (th *WhatsAppHandlers) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(homeBanner))
}

// redact drops the phone numbers, the lookup routes are not behind the signature guard.
func redact(status entities.MessageStatus) entities.MessageStatus {
	status.To = ""
	status.From = ""
	return status
}

func (th *WhatsAppHandlers) writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(value); err != nil {
		th.Logger.Error("Failed to encode response", logrus.Fields{"error": err.Error()})
	}
}

func (th *WhatsAppHandlers) writeTwiML(w http.ResponseWriter, reply string) {
	body, err := dto.NewTwiML(reply).Render()
	if err != nil {
		th.Logger.Error("Failed to render TwiML", logrus.Fields{"error": err.Error()})
		body = []byte("<Response></Response>")
	}

	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
