package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dovoc/backend/internal/domain/order"
)

const emailJSSendPath = "/api/v1.0/email/send"

// emailJSRequest is the EmailJS REST send payload
type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken"`
	TemplateParams map[string]string `json:"template_params"`
}

// EmailJSAdapter implements notification.Dispatcher against the EmailJS
// REST API. One template carries all message kinds; the template params
// select the recipient, subject and body.
type EmailJSAdapter struct {
	config     *EmailJSConfig
	httpClient *http.Client
}

// NewEmailJSAdapter creates a new EmailJS adapter
func NewEmailJSAdapter(config *EmailJSConfig) (*EmailJSAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &EmailJSAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.timeout(),
		},
	}, nil
}

// NotifyNewOrder alerts the shop admin that a checkout completed
func (a *EmailJSAdapter) NotifyNewOrder(ctx context.Context, o *order.Order) error {
	return a.send(ctx, map[string]string{
		"to_email":    a.config.AdminEmail,
		"subject":     fmt.Sprintf("New Order #%d", o.Number),
		"message":     fmt.Sprintf("Order #%d from %s (%s)\nTotal: ₹%s\n\n%s", o.Number, o.Customer.Name, o.Customer.Email, o.Total.StringFixed(2), formatItems(o)),
		"admin_email": a.config.AdminEmail,
	})
}

// NotifyOrderApproved sends the customer their order confirmation
func (a *EmailJSAdapter) NotifyOrderApproved(ctx context.Context, o *order.Order) error {
	return a.send(ctx, map[string]string{
		"customer_name":  o.Customer.Name,
		"customer_email": o.Customer.Email,
		"order_id":       fmt.Sprintf("%d", o.Number),
		"order_total":    o.Total.StringFixed(2),
		"order_items":    formatItems(o),
		"order_status":   o.Status.String(),
		"admin_email":    a.config.AdminEmail,
	})
}

// NotifyNewSubscriber alerts the shop admin about a new subscriber
func (a *EmailJSAdapter) NotifyNewSubscriber(ctx context.Context, email string) error {
	return a.send(ctx, map[string]string{
		"to_email":    a.config.AdminEmail,
		"subject":     "New Newsletter Subscriber 🌟",
		"message":     fmt.Sprintf("A new user has just subscribed to the newsletter:\n\nEmail: %s\n\nDate: %s", email, time.Now().Format(time.RFC1123)),
		"admin_email": a.config.AdminEmail,
	})
}

// SendWelcome greets a new newsletter subscriber
func (a *EmailJSAdapter) SendWelcome(ctx context.Context, email string) error {
	return a.send(ctx, map[string]string{
		"to_email":    email,
		"subject":     "Welcome to Dovoc Eco Life! 🌿",
		"message":     "Thank you for subscribing! We're thrilled to have you with us.\n\nWe'll keep you updated on our latest eco-friendly products, exclusive discounts, and when our next sale starts.\n\nStay tuned!",
		"admin_email": a.config.AdminEmail,
	})
}

// SendBroadcast delivers one newsletter issue to one recipient
func (a *EmailJSAdapter) SendBroadcast(ctx context.Context, email, subject, message string) error {
	if subject == "" {
		subject = "Update from Dovoc Eco Life"
	}
	return a.send(ctx, map[string]string{
		"to_email":    email,
		"subject":     subject,
		"message":     message,
		"admin_email": a.config.AdminEmail,
	})
}

// SendContactMessage forwards a contact-form submission to the admin
func (a *EmailJSAdapter) SendContactMessage(ctx context.Context, name, email, message string) error {
	return a.send(ctx, map[string]string{
		"to_email":    a.config.AdminEmail,
		"subject":     fmt.Sprintf("Contact form message from %s", name),
		"message":     fmt.Sprintf("From: %s <%s>\n\n%s", name, email, message),
		"admin_email": a.config.AdminEmail,
	})
}

// send posts one templated email to the EmailJS REST endpoint
func (a *EmailJSAdapter) send(ctx context.Context, params map[string]string) error {
	payload := emailJSRequest{
		ServiceID:      a.config.ServiceID,
		TemplateID:     a.config.TemplateID,
		UserID:         a.config.PublicKey,
		AccessToken:    a.config.PrivateKey,
		TemplateParams: params,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("emailjs: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.baseURL()+emailJSSendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("emailjs: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("emailjs: send failed with status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// formatItems renders order line items one per line, storefront style
func formatItems(o *order.Order) string {
	lines := make([]string, len(o.Items))
	for i, item := range o.Items {
		lines[i] = fmt.Sprintf("%s (x%d) - ₹%s", item.Name, item.Quantity, item.Amount().StringFixed(2))
	}
	return strings.Join(lines, "\n")
}
