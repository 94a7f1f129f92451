package services

import (
	"context"
	"testing"
	"time"

	"techfluence/internal/models"
	"techfluence/internal/store"
)

type fakeAdminStore struct {
	regs    []models.RegistrationRecord
	members []models.TeamMember

	lastCodeQuery string
}

func (f *fakeAdminStore) RegistrationByCheckInCode(_ context.Context, code string) (*models.RegistrationRecord, error) {
	f.lastCodeQuery = code
	for _, r := range f.regs {
		if r.CheckInCode == code {
			reg := r
			return &reg, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeAdminStore) RegistrationByNumber(_ context.Context, regNo string) (*models.RegistrationRecord, error) {
	for _, r := range f.regs {
		if r.RegistrationNumber == regNo {
			reg := r
			return &reg, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeAdminStore) ListRegistrations(_ context.Context) ([]models.RegistrationRecord, error) {
	return f.regs, nil
}

func (f *fakeAdminStore) ListTeamMembers(_ context.Context) ([]models.TeamMember, error) {
	return f.members, nil
}

func (f *fakeAdminStore) TeamMembersByRegistration(_ context.Context, registrationID string) ([]models.TeamMember, error) {
	var out []models.TeamMember
	for _, m := range f.members {
		if m.RegistrationID == registrationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeAdminStore) ListJoinRequests(_ context.Context) ([]models.TeamJoinRequest, error) {
	return nil, nil
}

func testRegistration() models.RegistrationRecord {
	return models.RegistrationRecord{
		ID:                 "reg-1",
		CheckInCode:        "AB12CD",
		EventType:          models.EventHackathon,
		TeamName:           "Bit Benders",
		FullName:           "Asha Rao",
		RegistrationNumber: "2024BTCS001",
		UniversityName:     "LPU",
		Email:              "asha@x.com",
		ContactNumber:      "9876543210",
		Course:             "BTech",
		YearOfStudy:        "2nd Year",
		Address:            "12 Main St",
		City:               "Jalandhar",
		Pincode:            "144411",
		CreatedAt:          time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC),
	}
}

func TestAdminSearch(t *testing.T) {
	ctx := context.Background()
	fs := &fakeAdminStore{
		regs: []models.RegistrationRecord{testRegistration()},
		members: []models.TeamMember{
			{RegistrationID: "reg-1", Role: models.RoleLeader, Name: "Asha Rao", RegistrationNumber: "2024BTCS001"},
			{RegistrationID: "reg-1", Role: models.RoleMember1, Name: "Ben", RegistrationNumber: "2024BTCS002"},
		},
	}
	service := NewAdminService(fs)

	t.Run("Test team code lookup is case-normalized", func(t *testing.T) {
		reg, members, err := service.SearchByTeamCode(ctx, "  ab12cd ")
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if fs.lastCodeQuery != "AB12CD" {
			t.Errorf("Expected the code to be uppercased before lookup, but got %q", fs.lastCodeQuery)
		}
		if reg.ID != "reg-1" {
			t.Errorf("Expected reg-1, but got %q", reg.ID)
		}
		if len(members) != 2 {
			t.Errorf("Expected 2 roster rows, but got %d", len(members))
		}
	})

	t.Run("Test registration number lookup", func(t *testing.T) {
		reg, err := service.SearchByRegistrationNumber(ctx, " 2024BTCS001 ")
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if reg.FullName != "Asha Rao" {
			t.Errorf("Expected Asha Rao, but got %q", reg.FullName)
		}
	})

	t.Run("Test unknown code", func(t *testing.T) {
		if _, _, err := service.SearchByTeamCode(ctx, "ZZZZZZ"); err == nil {
			t.Fatal("Expected an error for an unknown code, but got nil")
		}
	})
}

func TestAdminExport(t *testing.T) {
	ctx := context.Background()
	fs := &fakeAdminStore{
		regs: []models.RegistrationRecord{testRegistration()},
		members: []models.TeamMember{
			{RegistrationID: "reg-1", Role: models.RoleLeader, Name: "Asha Rao", RegistrationNumber: "2024BTCS001"},
		},
	}
	service := NewAdminService(fs)

	t.Run("Test full sheet", func(t *testing.T) {
		f, name, err := service.ExportWorkbook(ctx, ExportFull)
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		wantName := "techfluence-registrations-" + time.Now().Format("2006-01-02") + ".xlsx"
		if name != wantName {
			t.Errorf("Expected date-stamped filename %q, but got %q", wantName, name)
		}
		code, err := f.GetCellValue("Registrations", "A2")
		if err != nil {
			t.Fatalf("Expected no error reading cell, but got %v", err)
		}
		if code != "AB12CD" {
			t.Errorf("Expected the check-in code in A2, but got %q", code)
		}
		track, _ := f.GetCellValue("Registrations", "I2")
		if track != "hackathon" {
			t.Errorf("Expected the track in I2, but got %q", track)
		}
	})

	t.Run("Test team sheet", func(t *testing.T) {
		f, name, err := service.ExportWorkbook(ctx, ExportTeams)
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if name != "techfluence-teams-"+time.Now().Format("2006-01-02")+".xlsx" {
			t.Errorf("Expected date-stamped team filename, but got %q", name)
		}
		team, _ := f.GetCellValue("Teams", "A2")
		if team != "Bit Benders" {
			t.Errorf("Expected the team name in A2, but got %q", team)
		}
		role, _ := f.GetCellValue("Teams", "C2")
		if role != "leader" {
			t.Errorf("Expected the role in C2, but got %q", role)
		}
	})

	t.Run("Test unknown layout", func(t *testing.T) {
		if _, _, err := service.ExportWorkbook(ctx, ExportLayout("csv")); err == nil {
			t.Fatal("Expected an error for an unknown layout, but got nil")
		}
	})
}
