package dto

// ReplyDecision tells the webhook handler what to answer Twilio with.
// Inline replies are embedded in the TwiML response, the rest were already
// handed to the vendor API or the outbox.
type ReplyDecision struct {
	Reply  string
	Inline bool
}

// OutboxJob is a reply waiting for a worker to send it.
type OutboxJob struct {
	ID         string
	InboundSid string
	To         string
	Body       string
}

// SendResult is what the vendor returns for an accepted message.
type SendResult struct {
	Sid    string
	Status string
}
