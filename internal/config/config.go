// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config carries everything the binary needs from the environment.
type Config struct {
	HTTPAddr string

	// BackendURL and BackendAPIKey point at the hosted data backend's
	// REST surface.
	BackendURL    string
	BackendAPIKey string

	// SessionSecret verifies the identity provider's signed session token.
	SessionSecret string

	// AuthBaseURL is the identity provider's hosted sign-in surface.
	AuthBaseURL string

	// ContactRelayURL and ContactAccessKey configure the third-party
	// contact-form relay.
	ContactRelayURL  string
	ContactAccessKey string

	// AdminEmails is the allowlist for the admin console.
	AdminEmails map[string]bool
}

// FromEnv reads configuration from environment variables, applying defaults
// for optional values and failing on missing required ones.
func FromEnv() (Config, error) {
	var c Config

	c.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}

	c.BackendURL = strings.TrimRight(strings.TrimSpace(os.Getenv("BACKEND_URL")), "/")
	c.BackendAPIKey = strings.TrimSpace(os.Getenv("BACKEND_API_KEY"))
	c.SessionSecret = strings.TrimSpace(os.Getenv("SESSION_JWT_SECRET"))

	c.AuthBaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("AUTH_BASE_URL")), "/")
	if c.AuthBaseURL == "" {
		c.AuthBaseURL = "https://accounts.techfluence.dev"
	}

	c.ContactRelayURL = strings.TrimSpace(os.Getenv("CONTACT_RELAY_URL"))
	if c.ContactRelayURL == "" {
		c.ContactRelayURL = "https://api.web3forms.com/submit"
	}
	c.ContactAccessKey = strings.TrimSpace(os.Getenv("CONTACT_ACCESS_KEY"))

	if c.BackendURL == "" {
		return c, fmt.Errorf("BACKEND_URL is empty")
	}
	if c.BackendAPIKey == "" {
		return c, fmt.Errorf("BACKEND_API_KEY is empty")
	}
	if c.SessionSecret == "" {
		return c, fmt.Errorf("SESSION_JWT_SECRET is empty")
	}

	c.AdminEmails = parseAdminEmails(os.Getenv("ADMIN_EMAILS"))

	return c, nil
}

func parseAdminEmails(raw string) map[string]bool {
	m := map[string]bool{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return m
	}
	for _, p := range strings.Split(raw, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		m[p] = true
	}
	return m
}
