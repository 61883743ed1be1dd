package notification

import (
	"errors"
	"time"
)

const defaultEmailJSBaseURL = "https://api.emailjs.com"

// EmailJSConfig holds EmailJS API credentials and delivery settings
type EmailJSConfig struct {
	// ServiceID is the EmailJS service identifier
	ServiceID string

	// TemplateID is the EmailJS template identifier
	TemplateID string

	// PublicKey is the EmailJS account public key (user_id)
	PublicKey string

	// PrivateKey is the EmailJS access token for server-side sends
	PrivateKey string

	// AdminEmail receives shop-side notifications
	AdminEmail string

	// Timeout bounds each send request
	Timeout time.Duration

	// BaseURL overrides the EmailJS endpoint, used in tests
	BaseURL string
}

// Validate checks that required fields are present
func (c *EmailJSConfig) Validate() error {
	if c.ServiceID == "" {
		return errors.New("emailjs: service ID is required")
	}
	if c.TemplateID == "" {
		return errors.New("emailjs: template ID is required")
	}
	if c.PublicKey == "" {
		return errors.New("emailjs: public key is required")
	}
	if c.PrivateKey == "" {
		return errors.New("emailjs: private key is required")
	}
	if c.AdminEmail == "" {
		return errors.New("emailjs: admin email is required")
	}
	return nil
}

func (c *EmailJSConfig) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultEmailJSBaseURL
}

func (c *EmailJSConfig) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 5 * time.Second
}
