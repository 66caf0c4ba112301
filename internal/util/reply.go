package util

import "strings"

const (
	ReplyTextPrefix = "✅ Recebi sua mensagem: "
	ReplyMedia      = "📎 Recebi sua mídia! Vou processar e já te respondo."
	ReplyGeneric    = "✅ Recebi sua mensagem!"

	// MaxEchoRunes bounds how much of the inbound text is echoed back.
	MaxEchoRunes = 120
)

// BuildReply picks the auto-reply for an inbound message. Text wins over media,
// media wins over the generic acknowledgment. Whitespace only decides emptiness,
// the body is echoed as received.
func BuildReply(body string, attachmentCount int) string {
	if strings.TrimSpace(body) != "" {
		return ReplyTextPrefix + truncateRunes(body, MaxEchoRunes)
	}
	if attachmentCount > 0 {
		return ReplyMedia
	}
	return ReplyGeneric
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
