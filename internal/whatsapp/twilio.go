package whatsapp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sender delivers outbound WhatsApp messages.
type Sender interface {
	Send(ctx context.Context, to, text string) error
	// SendChunked delivers chunks sequentially, in order, with the
	// configured delay between parts. The first failure aborts the rest.
	SendChunked(ctx context.Context, to string, chunks []string) error
}

// TwilioSender posts to Twilio's Messages API. Twilio's REST surface is
// plain form-encoded HTTP, so no SDK is involved.
type TwilioSender struct {
	baseURL    string
	accountSID string
	authToken  string
	from       string
	chunkDelay time.Duration
	client     *http.Client
}

func NewTwilioSender(accountSID, authToken, from string, chunkDelay time.Duration) *TwilioSender {
	return &TwilioSender{
		baseURL:    "https://api.twilio.com",
		accountSID: accountSID,
		authToken:  authToken,
		from:       asWhatsApp(from),
		chunkDelay: chunkDelay,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL overrides the API host (used by tests).
func (s *TwilioSender) WithBaseURL(base string) *TwilioSender {
	s.baseURL = strings.TrimRight(base, "/")
	return s
}

func (s *TwilioSender) Send(ctx context.Context, to, text string) error {
	form := url.Values{}
	form.Set("To", asWhatsApp(to))
	form.Set("From", s.from)
	form.Set("Body", text)

	endpoint := s.baseURL + "/2010-04-01/Accounts/" + s.accountSID + "/Messages.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.accountSID, s.authToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errors.New("twilio api error: " + resp.Status + " body=" + string(respBody))
	}
	return nil
}

func (s *TwilioSender) SendChunked(ctx context.Context, to string, chunks []string) error {
	for i, chunk := range chunks {
		if i > 0 && s.chunkDelay > 0 {
			select {
			case <-time.After(s.chunkDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := s.Send(ctx, to, chunk); err != nil {
			return err
		}
	}
	return nil
}

func asWhatsApp(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
