package services

import (
	"sync"
	"time"

	"github.com/google/logger"

	"techfluence/internal/wizard"
)

// wizardSession holds the per-session wizard state and session-scoped flags.
type wizardSession struct {
	Wizard       *wizard.Wizard
	Flags        map[string]bool
	LastActivity time.Time
}

// WizardService manages one wizard per browsing session. Sessions are
// in-memory only and expire after an hour of inactivity.
type WizardService struct {
	mu       sync.RWMutex
	sessions map[string]*wizardSession // key: session id cookie
}

// NewWizardService creates and initializes a new WizardService.
func NewWizardService() *WizardService {
	return &WizardService{
		sessions: make(map[string]*wizardSession),
	}
}

// getSession returns a session, creating one if it doesn't exist.
func (s *WizardService) getSession(sessionID string) *wizardSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		session = &wizardSession{
			Wizard: wizard.New(),
			Flags:  make(map[string]bool),
		}
		s.sessions[sessionID] = session
	}
	session.LastActivity = time.Now()
	return session
}

// Wizard returns the session's wizard, creating a fresh one on first use.
func (s *WizardService) Wizard(sessionID string) *wizard.Wizard {
	return s.getSession(sessionID).Wizard
}

// Reset discards the session's wizard state and starts over. Used after a
// successful submission and when the user restarts the flow.
func (s *WizardService) Reset(sessionID string) *wizard.Wizard {
	session := s.getSession(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	session.Wizard = wizard.New()
	return session.Wizard
}

// FlagOnce reports whether key was already set for the session, setting it
// as a side effect. Used for show-once UI like the intro story.
func (s *WizardService) FlagOnce(sessionID, key string) bool {
	session := s.getSession(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := session.Flags[key]
	session.Flags[key] = true
	return seen
}

// CleanUpInactiveSessions removes sessions that have been inactive for over
// an hour.
func (s *WizardService) CleanUpInactiveSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for sessionID, session := range s.sessions {
		if time.Since(session.LastActivity) > time.Hour {
			delete(s.sessions, sessionID)
		}
	}
}

// ClearSession removes all state associated with a session.
func (s *WizardService) ClearSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	logger.Infof("Cleared wizard session: %s", sessionID)
}
