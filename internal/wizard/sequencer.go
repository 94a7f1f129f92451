// Package wizard implements the registration wizard: the step sequencer,
// per-step form validation, the arithmetic verification gate, and the
// submission pipeline.
package wizard

import (
	"errors"

	"techfluence/internal/models"
)

// StepID identifies one wizard step.
type StepID string

const (
	StepPersonalInfo StepID = "personal-info"
	StepEventChoice  StepID = "event-choice"
	StepTeamRoster   StepID = "team-roster"
	StepAddress      StepID = "address"
	StepVerify       StepID = "verify"
	StepDone         StepID = "done"
)

// ErrStepMismatch is returned when a payload does not belong to the
// current step.
var ErrStepMismatch = errors.New("wizard: payload does not match the current step")

// Collected accumulates committed step payloads. Re-committing a step
// overwrites only that step's slice.
type Collected struct {
	PersonalInfo *models.PersonalInfo
	EventChoice  *models.EventChoice
	TeamRoster   *models.TeamRoster
	Address      *models.AddressInfo
}

// Wizard is the registration state machine for one browsing session.
// It is not safe for concurrent use; the session service serializes access.
type Wizard struct {
	steps     []StepID
	index     int
	done      bool
	Collected Collected
	Challenge Challenge
	Verified  bool
}

// New starts a wizard at the personal-info step. The team-roster step is
// spliced in once the event choice commits.
func New() *Wizard {
	return &Wizard{
		steps:     stepsFor(models.EventOnly),
		Challenge: NewChallenge(),
	}
}

// stepsFor is the transition table: four steps for the plain event track,
// five when the track needs a team.
func stepsFor(t models.EventType) []StepID {
	if t.NeedsTeam() {
		return []StepID{StepPersonalInfo, StepEventChoice, StepTeamRoster, StepAddress, StepVerify}
	}
	return []StepID{StepPersonalInfo, StepEventChoice, StepAddress, StepVerify}
}

// Current returns the step the wizard is waiting on.
func (w *Wizard) Current() StepID {
	if w.done {
		return StepDone
	}
	return w.steps[w.index]
}

// Steps returns the ordered step list as currently decided.
func (w *Wizard) Steps() []StepID {
	out := make([]StepID, len(w.steps))
	copy(out, w.steps)
	return out
}

// StepNumber is the 1-based position of the current step.
func (w *Wizard) StepNumber() int { return w.index + 1 }

// TotalSteps is the decided step count (4 or 5).
func (w *Wizard) TotalSteps() int { return len(w.steps) }

// Done reports whether the wizard reached its terminal state.
func (w *Wizard) Done() bool { return w.done }

// Advance validates the current step's payload, merges it into the
// collected state, and moves forward by exactly one step. Validation
// failures are returned as field-scoped messages, not errors.
func (w *Wizard) Advance(payload any) (FieldErrors, error) {
	if w.done {
		return nil, ErrStepMismatch
	}
	switch w.steps[w.index] {
	case StepPersonalInfo:
		in, ok := payload.(models.PersonalInfo)
		if !ok {
			return nil, ErrStepMismatch
		}
		if errs := ValidateStep(in); len(errs) > 0 {
			return errs, nil
		}
		w.Collected.PersonalInfo = &in
	case StepEventChoice:
		in, ok := payload.(models.EventChoice)
		if !ok {
			return nil, ErrStepMismatch
		}
		if errs := ValidateStep(in); len(errs) > 0 {
			return errs, nil
		}
		w.Collected.EventChoice = &in
		// The step count is finalized here, once the choice commits.
		w.steps = stepsFor(in.Type)
	case StepTeamRoster:
		in, ok := payload.(models.TeamRoster)
		if !ok {
			return nil, ErrStepMismatch
		}
		if errs := ValidateStep(in); len(errs) > 0 {
			return errs, nil
		}
		w.Collected.TeamRoster = &in
	case StepAddress:
		in, ok := payload.(models.AddressInfo)
		if !ok {
			return nil, ErrStepMismatch
		}
		if errs := ValidateStep(in); len(errs) > 0 {
			return errs, nil
		}
		w.Collected.Address = &in
	default:
		// The verify step commits through CheckAnswer and Submit.
		return nil, ErrStepMismatch
	}
	if w.index < len(w.steps)-1 {
		w.index++
	}
	return nil, nil
}

// Retreat moves back exactly one step. Committed data is kept so earlier
// steps render pre-filled.
func (w *Wizard) Retreat() {
	if w.done {
		return
	}
	if w.index > 0 {
		w.index--
	}
}

func (w *Wizard) markDone() { w.done = true }
