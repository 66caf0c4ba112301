package routes

import (
	"cataconta-webhook/internal/infra/handlers"
	"net/http"

	"github.com/gorilla/mux"
)

type Routes struct {
	Mux             *mux.Router
	WhatsAppHandler *handlers.WhatsAppHandlers
	// WebhookMiddleware guards the endpoints Twilio posts to. Nil means unguarded.
	WebhookMiddleware mux.MiddlewareFunc
}

func NewRoutes(mux *mux.Router, whatsAppHandler *handlers.WhatsAppHandlers, webhookMiddleware mux.MiddlewareFunc) *Routes {
	return &Routes{mux, whatsAppHandler, webhookMiddleware}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/", r.WhatsAppHandler.Home).Methods(http.MethodGet)

	r.Mux.HandleFunc("/healthCheck", r.WhatsAppHandler.Health).Methods(http.MethodGet)

	whatsapp := r.Mux.PathPrefix("/whatsapp").Subrouter()
	whatsapp.HandleFunc("/status", r.WhatsAppHandler.StatusList).Methods(http.MethodGet)
	whatsapp.HandleFunc("/status/{sid}", r.WhatsAppHandler.StatusLookup).Methods(http.MethodGet)

	callbacks := whatsapp.Methods(http.MethodPost).Subrouter()
	if r.WebhookMiddleware != nil {
		callbacks.Use(r.WebhookMiddleware)
	}
	callbacks.HandleFunc("/webhook", r.WhatsAppHandler.Webhook)
	callbacks.HandleFunc("/status", r.WhatsAppHandler.Status)
}
