package dto

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInboundMessage(t *testing.T) {
	form := url.Values{
		"MessageSid":  {"SM123"},
		"From":        {" whatsapp:+551112345678 "},
		"To":          {"whatsapp:+14155238886"},
		"Body":        {"Oi"},
		"NumMedia":    {"2"},
		"MediaUrl0":   {"https://api.twilio.com/media/ME1"},
		"ProfileName": {"Ana"},
	}

	msg := NewInboundMessage(form)

	assert.Equal(t, InboundMessage{
		MessageSid:  "SM123",
		From:        "whatsapp:+551112345678",
		To:          "whatsapp:+14155238886",
		Body:        "Oi",
		NumMedia:    2,
		MediaURL:    "https://api.twilio.com/media/ME1",
		ProfileName: "Ana",
	}, msg)
}

func TestNewInboundMessage_NumMedia(t *testing.T) {
	for raw, want := range map[string]int{"": 0, "abc": 0, "-4": 0, " 1 ": 1, "0": 0} {
		msg := NewInboundMessage(url.Values{"NumMedia": {raw}})
		assert.Equal(t, want, msg.NumMedia, "NumMedia=%q", raw)
	}
}

func TestNewStatusCallback(t *testing.T) {
	cb := NewStatusCallback(url.Values{
		"MessageSid":    {"SM9"},
		"MessageStatus": {"Delivered"},
		"ErrorCode":     {"63016"},
	})

	assert.Equal(t, "SM9", cb.MessageSid)
	assert.Equal(t, "delivered", cb.MessageStatus)
	assert.Equal(t, "63016", cb.ErrorCode)
}

func TestTwiML_Render(t *testing.T) {
	body, err := NewTwiML("✅ Recebi sua mensagem: <b>&</b>").Render()
	require.NoError(t, err)

	assert.Equal(t,
		`<?xml version="1.0" encoding="UTF-8"?>`+"\n"+
			`<Response><Message>✅ Recebi sua mensagem: &lt;b&gt;&amp;&lt;/b&gt;</Message></Response>`,
		string(body))
}

func TestTwiML_RenderEmpty(t *testing.T) {
	body, err := NewTwiML("").Render()
	require.NoError(t, err)

	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"+`<Response></Response>`, string(body))
}
