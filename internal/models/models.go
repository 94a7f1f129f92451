// Package models defines the core domain types for the TechFluence
// registration site.
package models

import "time"

// EventType is the participation track a registrant selects.
type EventType string

const (
	// EventOnly covers talks and workshops without the hackathon.
	EventOnly EventType = "event"
	// EventHackathon is the hackathon-only track.
	EventHackathon EventType = "hackathon"
	// EventBoth combines the event and the hackathon.
	EventBoth EventType = "both"
)

// NeedsTeam reports whether the track requires a team roster.
func (t EventType) NeedsTeam() bool {
	return t == EventHackathon || t == EventBoth
}

// Valid reports whether the value is one of the known tracks.
func (t EventType) Valid() bool {
	switch t {
	case EventOnly, EventHackathon, EventBoth:
		return true
	}
	return false
}

// Courses is the closed list of degree programs offered in the wizard.
var Courses = []string{
	"BTech", "MTech", "BCA", "MCA", "BSc", "MSc", "BBA", "MBA", "BPharm", "Other",
}

// Years is the closed list of study years offered in the wizard.
var Years = []string{
	"1st Year", "2nd Year", "3rd Year", "4th Year", "5th Year",
}

// PersonalInfo is the first wizard step's payload.
type PersonalInfo struct {
	FullName           string `form:"fullName" validate:"required,min=2"`
	RegistrationNumber string `form:"registrationNumber" validate:"required"`
	UniversityName     string `form:"universityName" validate:"required,min=2"`
	Email              string `form:"email" validate:"required,email"`
	ContactNumber      string `form:"contactNumber" validate:"required,min=10"`
	Course             string `form:"course" validate:"required,oneof=BTech MTech BCA MCA BSc MSc BBA MBA BPharm Other"`
	YearOfStudy        string `form:"yearOfStudy" validate:"required,oneof='1st Year' '2nd Year' '3rd Year' '4th Year' '5th Year'"`
}

// EventChoice is the second wizard step's payload.
type EventChoice struct {
	Type EventType `form:"type" validate:"required,oneof=event hackathon both"`
}

// TeamRoster is collected only for hackathon-eligible registrations:
// a team name, the leader, and exactly three members.
type TeamRoster struct {
	TeamName                  string `form:"teamName" validate:"required,min=2"`
	LeaderName                string `form:"leaderName" validate:"required"`
	LeaderRegistrationNumber  string `form:"leaderRegistrationNumber" validate:"required"`
	Member1Name               string `form:"member1Name" validate:"required"`
	Member1RegistrationNumber string `form:"member1RegistrationNumber" validate:"required"`
	Member2Name               string `form:"member2Name" validate:"required"`
	Member2RegistrationNumber string `form:"member2RegistrationNumber" validate:"required"`
	Member3Name               string `form:"member3Name" validate:"required"`
	Member3RegistrationNumber string `form:"member3RegistrationNumber" validate:"required"`
}

// AddressInfo is the final data-entry step's payload.
type AddressInfo struct {
	Address string `form:"address" validate:"required,min=5"`
	City    string `form:"city" validate:"required,min=2"`
	Pincode string `form:"pincode" validate:"required,min=5"`
	Skills  string `form:"skills"`
}

// RegistrantProfile is the identity-linked record in the hosted backend.
// Created lazily on first submission; looked up by the external user id.
type RegistrantProfile struct {
	ID             string `json:"id,omitempty"`
	ExternalUserID string `json:"external_user_id"`
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
}

// RegistrationRecord is the persisted registration: the union of all step
// payloads plus the check-in code issued at submission time. Immutable once
// created; no edit flow exists.
type RegistrationRecord struct {
	ID                 string    `json:"id,omitempty"`
	ProfileID          string    `json:"profile_id"`
	CheckInCode        string    `json:"check_in_code"`
	EventType          EventType `json:"event_type"`
	TeamName           string    `json:"team_name,omitempty"`
	FullName           string    `json:"full_name"`
	RegistrationNumber string    `json:"registration_number"`
	UniversityName     string    `json:"university_name"`
	Email              string    `json:"email"`
	ContactNumber      string    `json:"contact_number"`
	Course             string    `json:"course"`
	YearOfStudy        string    `json:"year_of_study"`
	Address            string    `json:"address"`
	City               string    `json:"city"`
	Pincode            string    `json:"pincode"`
	Skills             string    `json:"skills,omitempty"`
	CreatedAt          time.Time `json:"created_at,omitzero"`
}

// TeamRole identifies a slot on a four-person roster.
type TeamRole string

const (
	RoleLeader  TeamRole = "leader"
	RoleMember1 TeamRole = "member1"
	RoleMember2 TeamRole = "member2"
	RoleMember3 TeamRole = "member3"
)

// TeamMember is one roster row tied to a registration. Rosters are always
// inserted as a batch of four.
type TeamMember struct {
	ID                 string   `json:"id,omitempty"`
	RegistrationID     string   `json:"registration_id"`
	Role               TeamRole `json:"role"`
	Name               string   `json:"name"`
	RegistrationNumber string   `json:"registration_number"`
}

// TeamMembers expands a roster into the four rows for a registration.
func (r TeamRoster) TeamMembers(registrationID string) []TeamMember {
	return []TeamMember{
		{RegistrationID: registrationID, Role: RoleLeader, Name: r.LeaderName, RegistrationNumber: r.LeaderRegistrationNumber},
		{RegistrationID: registrationID, Role: RoleMember1, Name: r.Member1Name, RegistrationNumber: r.Member1RegistrationNumber},
		{RegistrationID: registrationID, Role: RoleMember2, Name: r.Member2Name, RegistrationNumber: r.Member2RegistrationNumber},
		{RegistrationID: registrationID, Role: RoleMember3, Name: r.Member3Name, RegistrationNumber: r.Member3RegistrationNumber},
	}
}

// TeamJoinRequest is a request to join an existing team, submitted with the
// team's check-in code from the activity page.
type TeamJoinRequest struct {
	ID                 string    `json:"id,omitempty"`
	RegistrationID     string    `json:"registration_id"`
	ProfileID          string    `json:"profile_id"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registration_number"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at,omitzero"`
}

// ContactMessage is the contact form payload relayed to the third-party
// form endpoint.
type ContactMessage struct {
	Name    string `form:"name" json:"name" binding:"required"`
	Email   string `form:"email" json:"email" binding:"required,email"`
	Subject string `form:"subject" json:"subject" binding:"required"`
	Message string `form:"message" json:"message" binding:"required"`
}
