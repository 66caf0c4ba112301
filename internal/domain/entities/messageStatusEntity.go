package entities

import "time"

type MessageStatus struct {
	MessageSid   string    `json:"message_sid" bson:"message_sid"`
	Status       string    `json:"status" bson:"status"`
	To           string    `json:"to,omitempty" bson:"to,omitempty"`
	From         string    `json:"from,omitempty" bson:"from,omitempty"`
	ErrorCode    string    `json:"error_code,omitempty" bson:"error_code,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty" bson:"error_message,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}
