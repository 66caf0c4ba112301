package provider

import (
	"cataconta-webhook/internal/domain/dto"
	"cataconta-webhook/internal/infra/logger"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// MessageCreator is the part of the Twilio REST API the provider calls.
type MessageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type TwilioWhatsAppProvider struct {
	Logger            *logger.Logger
	Messages          MessageCreator
	From              string
	StatusCallbackURL string
}

// NewTwilioRestClient builds the vendor client once, for injection into the provider.
func NewTwilioRestClient(accountSID, authToken string) *twilio.RestClient {
	return twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
}

func NewTwilioWhatsAppProvider(logger *logger.Logger, messages MessageCreator, from, statusCallbackURL string) *TwilioWhatsAppProvider {
	return &TwilioWhatsAppProvider{
		Logger:            logger,
		Messages:          messages,
		From:              from,
		StatusCallbackURL: statusCallbackURL,
	}
}

type createResult struct {
	message *twilioApi.ApiV2010Message
	err     error
}

// SendTextMessage sends a WhatsApp text through the Twilio Messages API.
//
// The SDK call has no context parameter, so the call runs in its own goroutine and
// the caller stops waiting once ctx is done. Twilio 4xx answers are wrapped in ErrPermanent.
func (th *TwilioWhatsAppProvider) SendTextMessage(ctx context.Context, to, message string) (*dto.SendResult, error) {
	if to == "" || message == "" {
		return nil, fmt.Errorf("%w: recipient (to) and message cannot be empty", ErrPermanent)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(th.From)
	params.SetTo(to)
	params.SetBody(message)
	if th.StatusCallbackURL != "" {
		params.SetStatusCallback(th.StatusCallbackURL)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan createResult, 1)
	go func() {
		msg, err := th.Messages.CreateMessage(params)
		done <- createResult{message: msg, err: err}
	}()

	var res createResult
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("send to %s: %w", to, ctx.Err())
	case res = <-done:
	}

	if res.err != nil {
		var restErr *twilioclient.TwilioRestError
		if errors.As(res.err, &restErr) && restErr.Status < http.StatusInternalServerError && restErr.Status != http.StatusTooManyRequests {
			th.Logger.Error("Twilio rejected message", logrus.Fields{"to": to, "code": restErr.Code, "status": restErr.Status})
			return nil, fmt.Errorf("%w: twilio code %d: %s", ErrPermanent, restErr.Code, restErr.Message)
		}
		return nil, fmt.Errorf("twilio create message: %w", res.err)
	}

	result := &dto.SendResult{}
	if res.message != nil {
		if res.message.Sid != nil {
			result.Sid = *res.message.Sid
		}
		if res.message.Status != nil {
			result.Status = *res.message.Status
		}
	}

	th.Logger.Info("Message sent successfully", logrus.Fields{"to": to, "sid": result.Sid, "status": result.Status})
	return result, nil
}
