package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddNineToPhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
	}{
		{"eight digit local number", "prefix:+551112345678", "prefix:+5511912345678"},
		{"whatsapp channel", "whatsapp:+552187654321", "whatsapp:+5521987654321"},
		{"already nine digits", "prefix:+5511987654321", "prefix:+5511987654321"},
		{"other country", "prefix:+1234567890", "prefix:+1234567890"},
		{"missing prefix", "+551112345678", "+551112345678"},
		{"missing plus", "whatsapp:551112345678", "whatsapp:551112345678"},
		{"trailing garbage", "whatsapp:+551112345678 ", "whatsapp:+551112345678 "},
		{"letters in number", "whatsapp:+5511abcd5678", "whatsapp:+5511abcd5678"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddNineToPhoneNumber(tt.address))
		})
	}
}

func TestAddNineToPhoneNumber_AppliedTwice(t *testing.T) {
	once := AddNineToPhoneNumber("whatsapp:+551112345678")
	assert.Equal(t, once, AddNineToPhoneNumber(once))
}
