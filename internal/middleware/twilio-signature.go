package middleware

import (
	"cataconta-webhook/internal/infra/logger"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	twilioclient "github.com/twilio/twilio-go/client"
)

const twilioSignatureHeader = "X-Twilio-Signature"

// TwilioSignatureMiddleware rejects POSTs whose X-Twilio-Signature does not match the
// public URL Twilio called and the form it sent. publicBaseURL is the scheme and host
// Twilio sees, which differs from r.Host behind a proxy.
func TwilioSignatureMiddleware(log *logger.Logger, authToken, publicBaseURL string) func(http.Handler) http.Handler {
	validator := twilioclient.NewRequestValidator(authToken)
	base := strings.TrimRight(publicBaseURL, "/")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid request body", http.StatusBadRequest)
				return
			}

			params := make(map[string]string, len(r.PostForm))
			for key, values := range r.PostForm {
				if len(values) > 0 {
					params[key] = values[0]
				}
			}

			url := base + r.URL.RequestURI()
			if !validator.Validate(url, params, r.Header.Get(twilioSignatureHeader)) {
				log.Warn("Rejected request with invalid Twilio signature", logrus.Fields{"path": r.URL.Path, "remote_addr": r.RemoteAddr})
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
