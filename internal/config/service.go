package config

import "strings"

type ServiceConfig struct {
	Name          string         `yaml:"name"`
	Environment   string         `yaml:"environment"`
	Version       string         `yaml:"version"`
	ClientURL     string         `yaml:"client_url"`
	ContactEmail  string         `yaml:"contact_email"`
	SessionSecret string         `yaml:"session_secret"`
	Owner         OwnerConfig    `yaml:"owner"`
	Razorpay      RazorpayConfig `yaml:"razorpay"`
	PayPal        PayPalConfig   `yaml:"paypal"`
}

// OwnerConfig identifies the site owner who receives new-booking alerts.
type OwnerConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type RazorpayConfig struct {
	KeyID     string `yaml:"key_id"`
	KeySecret string `yaml:"key_secret"`
}

// Configured reports whether real Razorpay credentials are present. A
// missing or placeholder key disables the whole Razorpay payment path
// rather than letting it partially function.
func (c RazorpayConfig) Configured() bool {
	return credentialSet(c.KeyID) && credentialSet(c.KeySecret)
}

type PayPalConfig struct {
	ClientID string `yaml:"client_id"`
	Secret   string `yaml:"secret"`
	BaseURL  string `yaml:"base_url"` // sandbox or live API base
}

// Configured reports whether real PayPal credentials are present.
func (c PayPalConfig) Configured() bool {
	return credentialSet(c.ClientID) && credentialSet(c.Secret) && c.BaseURL != ""
}

// credentialSet rejects empty values and the placeholder forms that ship in
// example config files.
func credentialSet(v string) bool {
	if v == "" {
		return false
	}
	lower := strings.ToLower(v)
	return !strings.HasPrefix(lower, "your_") && !strings.HasPrefix(lower, "changeme")
}
