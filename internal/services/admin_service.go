package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"techfluence/internal/models"
)

// AdminStore is the read surface the admin console needs.
type AdminStore interface {
	RegistrationByCheckInCode(ctx context.Context, code string) (*models.RegistrationRecord, error)
	RegistrationByNumber(ctx context.Context, regNo string) (*models.RegistrationRecord, error)
	ListRegistrations(ctx context.Context) ([]models.RegistrationRecord, error)
	ListTeamMembers(ctx context.Context) ([]models.TeamMember, error)
	TeamMembersByRegistration(ctx context.Context, registrationID string) ([]models.TeamMember, error)
	ListJoinRequests(ctx context.Context) ([]models.TeamJoinRequest, error)
}

// ExportLayout selects one of the two spreadsheet shapes.
type ExportLayout string

const (
	// ExportFull is the full registration sheet.
	ExportFull ExportLayout = "full"
	// ExportTeams is the team-details-only sheet.
	ExportTeams ExportLayout = "teams"
)

// AdminService backs the admin search/export console with direct equality
// lookups and a full-table export. No aggregation or paging.
type AdminService struct {
	store AdminStore
}

// NewAdminService creates an AdminService over a store.
func NewAdminService(store AdminStore) *AdminService {
	return &AdminService{store: store}
}

// SearchByTeamCode finds a registration by check-in code, case-insensitively,
// along with its roster.
func (s *AdminService) SearchByTeamCode(ctx context.Context, code string) (*models.RegistrationRecord, []models.TeamMember, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	reg, err := s.store.RegistrationByCheckInCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.store.TeamMembersByRegistration(ctx, reg.ID)
	if err != nil {
		return nil, nil, err
	}
	return reg, members, nil
}

// SearchByRegistrationNumber finds a registration by the registrant's
// university registration number.
func (s *AdminService) SearchByRegistrationNumber(ctx context.Context, regNo string) (*models.RegistrationRecord, error) {
	return s.store.RegistrationByNumber(ctx, strings.TrimSpace(regNo))
}

// JoinRequests lists every team join request.
func (s *AdminService) JoinRequests(ctx context.Context) ([]models.TeamJoinRequest, error) {
	return s.store.ListJoinRequests(ctx)
}

// ExportWorkbook builds the requested spreadsheet layout and returns it with
// a date-stamped filename.
func (s *AdminService) ExportWorkbook(ctx context.Context, layout ExportLayout) (*excelize.File, string, error) {
	switch layout {
	case ExportFull:
		f, err := s.buildFullSheet(ctx)
		return f, fmt.Sprintf("techfluence-registrations-%s.xlsx", time.Now().Format("2006-01-02")), err
	case ExportTeams:
		f, err := s.buildTeamSheet(ctx)
		return f, fmt.Sprintf("techfluence-teams-%s.xlsx", time.Now().Format("2006-01-02")), err
	}
	return nil, "", fmt.Errorf("unknown export layout %q", layout)
}

func (s *AdminService) buildFullSheet(ctx context.Context) (*excelize.File, error) {
	regs, err := s.store.ListRegistrations(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Registrations"
	f.SetSheetName("Sheet1", sheet)

	headers := []any{
		"Check-In Code", "Full Name", "Registration No", "University", "Email",
		"Contact", "Course", "Year", "Track", "Team Name", "Address", "City",
		"Pincode", "Skills", "Registered At",
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	for i, r := range regs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			r.CheckInCode, r.FullName, r.RegistrationNumber, r.UniversityName,
			r.Email, r.ContactNumber, r.Course, r.YearOfStudy, string(r.EventType),
			r.TeamName, r.Address, r.City, r.Pincode, r.Skills,
			formatTimestamp(r.CreatedAt),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (s *AdminService) buildTeamSheet(ctx context.Context) (*excelize.File, error) {
	regs, err := s.store.ListRegistrations(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.store.ListTeamMembers(ctx)
	if err != nil {
		return nil, err
	}

	regByID := make(map[string]models.RegistrationRecord, len(regs))
	for _, r := range regs {
		regByID[r.ID] = r
	}

	f := excelize.NewFile()
	const sheet = "Teams"
	f.SetSheetName("Sheet1", sheet)

	headers := []any{"Team Name", "Check-In Code", "Role", "Member Name", "Member Registration No"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	for i, m := range members {
		reg := regByID[m.RegistrationID]
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{reg.TeamName, reg.CheckInCode, string(m.Role), m.Name, m.RegistrationNumber}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
