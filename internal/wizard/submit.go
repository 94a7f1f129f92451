package wizard

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"techfluence/internal/models"
	"techfluence/internal/store"
)

var (
	// ErrNotVerified rejects submission before any network call when the
	// verification gate was not passed.
	ErrNotVerified = errors.New("wizard: verification not passed")
	// ErrNotSignedIn rejects submission when no authenticated user is present.
	ErrNotSignedIn = errors.New("wizard: no signed-in user")
	// ErrIncomplete rejects submission when a required step was never committed.
	ErrIncomplete = errors.New("wizard: steps incomplete")
)

// PartialFailureError reports a registration that was created before the
// roster insert failed. The record exists remotely with no team members;
// nothing is rolled back.
type PartialFailureError struct {
	RegistrationID string
	Err            error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("registration %s saved without team members: %v", e.RegistrationID, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

// Store is the slice of persistence the pipeline needs.
type Store interface {
	ProfileByExternalID(ctx context.Context, externalID string) (*models.RegistrantProfile, error)
	CreateProfile(ctx context.Context, p models.RegistrantProfile) (*models.RegistrantProfile, error)
	CreateRegistration(ctx context.Context, r models.RegistrationRecord) (*models.RegistrationRecord, error)
	CreateTeamMembers(ctx context.Context, members []models.TeamMember) error
}

// Pipeline performs the ordered submission sequence. No retries, no
// rollback: a failed step aborts the remaining ones and leaves the wizard
// at the verify step.
type Pipeline struct {
	store Store
}

// NewPipeline creates a Pipeline over a store.
func NewPipeline(s Store) *Pipeline {
	return &Pipeline{store: s}
}

// Submit merges the collected steps into one record and writes it out:
// profile lookup-or-create, registration insert, then the conditional
// four-row roster batch. On full success the wizard transitions to Done.
func (p *Pipeline) Submit(ctx context.Context, externalUserID, email string, w *Wizard) (*models.RegistrationRecord, error) {
	if !w.Verified {
		return nil, ErrNotVerified
	}
	if externalUserID == "" {
		return nil, ErrNotSignedIn
	}
	c := w.Collected
	if c.PersonalInfo == nil || c.EventChoice == nil || c.Address == nil {
		return nil, ErrIncomplete
	}
	needsTeam := c.EventChoice.Type.NeedsTeam()
	if needsTeam && c.TeamRoster == nil {
		return nil, ErrIncomplete
	}

	profile, err := p.store.ProfileByExternalID(ctx, externalUserID)
	if errors.Is(err, store.ErrNotFound) {
		profile, err = p.store.CreateProfile(ctx, models.RegistrantProfile{
			ExternalUserID: externalUserID,
			Email:          email,
			FullName:       c.PersonalInfo.FullName,
		})
	}
	if err != nil {
		return nil, err
	}

	record := models.RegistrationRecord{
		ProfileID:          profile.ID,
		CheckInCode:        NewCheckInCode(),
		EventType:          c.EventChoice.Type,
		FullName:           c.PersonalInfo.FullName,
		RegistrationNumber: c.PersonalInfo.RegistrationNumber,
		UniversityName:     c.PersonalInfo.UniversityName,
		Email:              c.PersonalInfo.Email,
		ContactNumber:      c.PersonalInfo.ContactNumber,
		Course:             c.PersonalInfo.Course,
		YearOfStudy:        c.PersonalInfo.YearOfStudy,
		Address:            c.Address.Address,
		City:               c.Address.City,
		Pincode:            c.Address.Pincode,
		Skills:             c.Address.Skills,
	}
	if needsTeam {
		record.TeamName = c.TeamRoster.TeamName
	}

	created, err := p.store.CreateRegistration(ctx, record)
	if err != nil {
		return nil, err
	}

	if needsTeam {
		if err := p.store.CreateTeamMembers(ctx, c.TeamRoster.TeamMembers(created.ID)); err != nil {
			return created, &PartialFailureError{RegistrationID: created.ID, Err: err}
		}
	}

	w.markDone()
	return created, nil
}

// checkInAlphabet avoids ambiguous characters (0/O, 1/I/L).
const checkInAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// NewCheckInCode issues the short code used for venue check-in and
// team lookup.
func NewCheckInCode() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = checkInAlphabet[rand.Intn(len(checkInAlphabet))]
	}
	return string(b)
}
