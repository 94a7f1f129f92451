package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"techfluence/internal/models"
)

// ErrRelayRejected is returned when the relay answers but reports failure.
var ErrRelayRejected = errors.New("contact relay rejected the message")

type relayRequest struct {
	AccessKey string `json:"access_key"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

type relayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ContactService forwards contact-form messages to the third-party relay.
type ContactService struct {
	http      *resty.Client
	relayURL  string
	accessKey string
}

// NewContactService creates a ContactService for the given relay endpoint.
func NewContactService(relayURL, accessKey string) *ContactService {
	return &ContactService{
		http:      resty.New(),
		relayURL:  relayURL,
		accessKey: accessKey,
	}
}

// Send relays one message. A single POST, no retries.
func (s *ContactService) Send(ctx context.Context, msg models.ContactMessage) error {
	var out relayResponse
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(relayRequest{
			AccessKey: s.accessKey,
			Name:      msg.Name,
			Email:     msg.Email,
			Subject:   msg.Subject,
			Message:   msg.Message,
		}).
		SetResult(&out).
		SetError(&out).
		Post(s.relayURL)
	if err != nil {
		return fmt.Errorf("contact relay: %w", err)
	}
	if resp.IsError() || !out.Success {
		if out.Message != "" {
			return fmt.Errorf("%w: %s", ErrRelayRejected, out.Message)
		}
		return ErrRelayRejected
	}
	return nil
}
