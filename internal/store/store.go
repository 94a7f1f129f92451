// Package store wraps the backend client with typed access to the
// profiles, registrations, team_members and team_join_requests resources.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"techfluence/internal/backend"
	"techfluence/internal/models"
)

// ErrNotFound is returned by point lookups that match nothing.
var ErrNotFound = errors.New("store: not found")

const (
	tableProfiles     = "profiles"
	tableRegistration = "registrations"
	tableTeamMembers  = "team_members"
	tableJoinRequests = "team_join_requests"
)

// Store issues individual select/insert calls against the hosted backend.
type Store struct {
	client *backend.Client
}

// New creates a Store over a backend client.
func New(client *backend.Client) *Store {
	return &Store{client: client}
}

// ProfileByExternalID looks up a registrant profile by the identity
// provider's user id.
func (s *Store) ProfileByExternalID(ctx context.Context, externalID string) (*models.RegistrantProfile, error) {
	var p models.RegistrantProfile
	err := s.client.From(tableProfiles).Select("*").Eq("external_user_id", externalID).Single(ctx, &p)
	if errors.Is(err, backend.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	return &p, nil
}

// CreateProfile inserts a new registrant profile.
func (s *Store) CreateProfile(ctx context.Context, p models.RegistrantProfile) (*models.RegistrantProfile, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	var rows []models.RegistrantProfile
	if err := s.client.From(tableProfiles).Insert(ctx, []models.RegistrantProfile{p}, &rows); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	if len(rows) > 0 {
		return &rows[0], nil
	}
	return &p, nil
}

// CreateRegistration inserts one registration record.
func (s *Store) CreateRegistration(ctx context.Context, r models.RegistrationRecord) (*models.RegistrationRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	var rows []models.RegistrationRecord
	if err := s.client.From(tableRegistration).Insert(ctx, []models.RegistrationRecord{r}, &rows); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}
	if len(rows) > 0 {
		return &rows[0], nil
	}
	return &r, nil
}

// CreateTeamMembers inserts a roster as a single batched call.
func (s *Store) CreateTeamMembers(ctx context.Context, members []models.TeamMember) error {
	for i := range members {
		if members[i].ID == "" {
			members[i].ID = uuid.NewString()
		}
	}
	if err := s.client.From(tableTeamMembers).Insert(ctx, members, nil); err != nil {
		return fmt.Errorf("create team members: %w", err)
	}
	return nil
}

// RegistrationByCheckInCode looks up one registration by its check-in code.
// The caller is expected to normalize the code first.
func (s *Store) RegistrationByCheckInCode(ctx context.Context, code string) (*models.RegistrationRecord, error) {
	var r models.RegistrationRecord
	err := s.client.From(tableRegistration).Select("*").Eq("check_in_code", code).Single(ctx, &r)
	if errors.Is(err, backend.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup registration by code: %w", err)
	}
	return &r, nil
}

// RegistrationByNumber looks up one registration by the registrant's
// university registration number.
func (s *Store) RegistrationByNumber(ctx context.Context, regNo string) (*models.RegistrationRecord, error) {
	var r models.RegistrationRecord
	err := s.client.From(tableRegistration).Select("*").Eq("registration_number", regNo).Single(ctx, &r)
	if errors.Is(err, backend.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup registration by number: %w", err)
	}
	return &r, nil
}

// RegistrationsByProfile returns a registrant's registrations, newest first.
func (s *Store) RegistrationsByProfile(ctx context.Context, profileID string) ([]models.RegistrationRecord, error) {
	var rows []models.RegistrationRecord
	err := s.client.From(tableRegistration).Select("*").Eq("profile_id", profileID).Order("created_at", true).Get(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("list registrations by profile: %w", err)
	}
	return rows, nil
}

// ListRegistrations returns every registration for the admin export.
func (s *Store) ListRegistrations(ctx context.Context) ([]models.RegistrationRecord, error) {
	var rows []models.RegistrationRecord
	if err := s.client.From(tableRegistration).Select("*").Order("created_at", false).Get(ctx, &rows); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return rows, nil
}

// TeamMembersByRegistration returns the roster tied to one registration.
func (s *Store) TeamMembersByRegistration(ctx context.Context, registrationID string) ([]models.TeamMember, error) {
	var rows []models.TeamMember
	err := s.client.From(tableTeamMembers).Select("*").Eq("registration_id", registrationID).Get(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	return rows, nil
}

// ListTeamMembers returns every roster row for the admin export.
func (s *Store) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	var rows []models.TeamMember
	if err := s.client.From(tableTeamMembers).Select("*").Get(ctx, &rows); err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	return rows, nil
}

// CreateJoinRequest inserts a pending team join request.
func (s *Store) CreateJoinRequest(ctx context.Context, req models.TeamJoinRequest) (*models.TeamJoinRequest, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Status == "" {
		req.Status = "pending"
	}
	var rows []models.TeamJoinRequest
	if err := s.client.From(tableJoinRequests).Insert(ctx, []models.TeamJoinRequest{req}, &rows); err != nil {
		return nil, fmt.Errorf("create join request: %w", err)
	}
	if len(rows) > 0 {
		return &rows[0], nil
	}
	return &req, nil
}

// ListJoinRequests returns every join request for the admin console.
func (s *Store) ListJoinRequests(ctx context.Context) ([]models.TeamJoinRequest, error) {
	var rows []models.TeamJoinRequest
	if err := s.client.From(tableJoinRequests).Select("*").Order("created_at", true).Get(ctx, &rows); err != nil {
		return nil, fmt.Errorf("list join requests: %w", err)
	}
	return rows, nil
}
