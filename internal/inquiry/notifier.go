package inquiry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"onepercent-backend/internal/config"
)

const emailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Notifier sends the admin a notification email for each new inquiry via the
// EmailJS REST API. Delivery is best-effort: callers fire it on a goroutine
// and only log failures, inquiry creation never depends on it.
type Notifier struct {
	cfg      config.EmailConfig
	endpoint string
	client   *http.Client
}

func NewNotifier(cfg config.EmailConfig) *Notifier {
	return &Notifier{
		cfg:      cfg,
		endpoint: emailJSEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// SetEndpoint overrides the EmailJS URL, mainly for tests.
func (n *Notifier) SetEndpoint(url string) {
	n.endpoint = url
}

// Enabled reports whether the notifier has usable credentials.
func (n *Notifier) Enabled() bool {
	return n.cfg.ServiceID != "" && (n.cfg.PrivateKey != "" || n.cfg.PublicKey != "")
}

type emailJSRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id,omitempty"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams map[string]any `json:"template_params"`
}

// NotifyNewInquiry delivers the notification for one inquiry.
func (n *Notifier) NotifyNewInquiry(name, email, goal, message string) error {
	if !n.Enabled() {
		return nil
	}

	title := goal
	if title == "" {
		title = message
	}
	if title == "" {
		title = "New Inquiry"
	}
	if message == "" {
		message = "No message provided"
	}
	if goal == "" {
		goal = "Not specified"
	}

	payload := emailJSRequest{
		ServiceID:   n.cfg.ServiceID,
		TemplateID:  n.cfg.TemplateID,
		UserID:      n.cfg.PublicKey,
		AccessToken: n.cfg.PrivateKey,
		TemplateParams: map[string]any{
			"name":    name,
			"title":   title,
			"email":   email,
			"message": message,
			"goal":    goal,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	resp, err := n.client.Post(n.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("notification rejected: status %d: %s", resp.StatusCode, respBody)
	}
	return nil
}
