package dto

import (
	"net/url"
	"strconv"
	"strings"
)

// InboundMessage is the subset of Twilio's incoming-message webhook the service acts on.
type InboundMessage struct {
	MessageSid  string
	From        string
	To          string
	Body        string
	NumMedia    int
	MediaURL    string
	ProfileName string
}

// NewInboundMessage reads a Twilio webhook form. A NumMedia that is missing, negative or
// not a number counts as zero attachments.
func NewInboundMessage(form url.Values) InboundMessage {
	numMedia, err := strconv.Atoi(strings.TrimSpace(form.Get("NumMedia")))
	if err != nil || numMedia < 0 {
		numMedia = 0
	}

	return InboundMessage{
		MessageSid:  form.Get("MessageSid"),
		From:        strings.TrimSpace(form.Get("From")),
		To:          strings.TrimSpace(form.Get("To")),
		Body:        form.Get("Body"),
		NumMedia:    numMedia,
		MediaURL:    form.Get("MediaUrl0"),
		ProfileName: form.Get("ProfileName"),
	}
}

// StatusCallback is the delivery report Twilio posts for a message we sent.
type StatusCallback struct {
	MessageSid    string
	MessageStatus string
	To            string
	From          string
	ErrorCode     string
	ErrorMessage  string
}

func NewStatusCallback(form url.Values) StatusCallback {
	return StatusCallback{
		MessageSid:    strings.TrimSpace(form.Get("MessageSid")),
		MessageStatus: strings.ToLower(strings.TrimSpace(form.Get("MessageStatus"))),
		To:            form.Get("To"),
		From:          form.Get("From"),
		ErrorCode:     form.Get("ErrorCode"),
		ErrorMessage:  form.Get("ErrorMessage"),
	}
}
