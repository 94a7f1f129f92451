package wizard

import (
	"testing"

	"techfluence/internal/models"
)

func validPersonal() models.PersonalInfo {
	return models.PersonalInfo{
		FullName:           "Asha Rao",
		RegistrationNumber: "2024BTCS001",
		UniversityName:     "LPU",
		Email:              "asha@x.com",
		ContactNumber:      "9876543210",
		Course:             "BTech",
		YearOfStudy:        "2nd Year",
	}
}

func validRoster() models.TeamRoster {
	return models.TeamRoster{
		TeamName:   "Bit Benders",
		LeaderName: "Asha Rao", LeaderRegistrationNumber: "2024BTCS001",
		Member1Name: "Ben", Member1RegistrationNumber: "2024BTCS002",
		Member2Name: "Cam", Member2RegistrationNumber: "2024BTCS003",
		Member3Name: "Dee", Member3RegistrationNumber: "2024BTCS004",
	}
}

func validAddress() models.AddressInfo {
	return models.AddressInfo{
		Address: "12 Main St",
		City:    "Jalandhar",
		Pincode: "144411",
	}
}

func mustAdvance(t *testing.T, w *Wizard, payload any) {
	t.Helper()
	errs, err := w.Advance(payload)
	if err != nil {
		t.Fatalf("Expected no error advancing past %s, but got %v", w.Current(), err)
	}
	if len(errs) > 0 {
		t.Fatalf("Expected no field errors advancing past %s, but got %v", w.Current(), errs)
	}
}

func TestWizardStepCount(t *testing.T) {
	cases := []struct {
		choice models.EventType
		want   int
	}{
		{models.EventOnly, 4},
		{models.EventHackathon, 5},
		{models.EventBoth, 5},
	}
	for _, tc := range cases {
		t.Run(string(tc.choice), func(t *testing.T) {
			w := New()
			mustAdvance(t, w, validPersonal())
			mustAdvance(t, w, models.EventChoice{Type: tc.choice})
			if got := w.TotalSteps(); got != tc.want {
				t.Errorf("Expected %d total steps for %s, but got %d", tc.want, tc.choice, got)
			}
		})
	}
}

func TestWizardAdvanceAndRetreat(t *testing.T) {
	t.Run("Test index moves by one per action", func(t *testing.T) {
		w := New()
		if w.StepNumber() != 1 || w.Current() != StepPersonalInfo {
			t.Fatalf("Expected to start at step 1 (personal info), but got step %d (%s)", w.StepNumber(), w.Current())
		}
		mustAdvance(t, w, validPersonal())
		if w.StepNumber() != 2 || w.Current() != StepEventChoice {
			t.Errorf("Expected step 2 (event choice), but got step %d (%s)", w.StepNumber(), w.Current())
		}
		mustAdvance(t, w, models.EventChoice{Type: models.EventHackathon})
		if w.Current() != StepTeamRoster {
			t.Errorf("Expected team roster step after hackathon choice, but got %s", w.Current())
		}
		w.Retreat()
		if w.Current() != StepEventChoice {
			t.Errorf("Expected retreat to return to event choice, but got %s", w.Current())
		}
	})

	t.Run("Test retreat keeps committed data", func(t *testing.T) {
		w := New()
		mustAdvance(t, w, validPersonal())
		w.Retreat()
		if w.Collected.PersonalInfo == nil {
			t.Fatal("Expected personal info to survive a retreat")
		}
		if w.Collected.PersonalInfo.FullName != "Asha Rao" {
			t.Errorf("Expected pre-fill data to be intact, but got %q", w.Collected.PersonalInfo.FullName)
		}
	})

	t.Run("Test retreat does not go below the first step", func(t *testing.T) {
		w := New()
		w.Retreat()
		if w.StepNumber() != 1 {
			t.Errorf("Expected to stay at step 1, but got %d", w.StepNumber())
		}
	})

	t.Run("Test resubmitting a step overwrites only its slice", func(t *testing.T) {
		w := New()
		mustAdvance(t, w, validPersonal())
		mustAdvance(t, w, models.EventChoice{Type: models.EventOnly})
		w.Retreat()
		w.Retreat()

		updated := validPersonal()
		updated.FullName = "Asha R."
		mustAdvance(t, w, updated)

		if w.Collected.PersonalInfo.FullName != "Asha R." {
			t.Errorf("Expected personal info to be overwritten, but got %q", w.Collected.PersonalInfo.FullName)
		}
		if w.Collected.EventChoice == nil || w.Collected.EventChoice.Type != models.EventOnly {
			t.Error("Expected the event choice slice to be untouched")
		}
	})

	t.Run("Test mismatched payload is rejected", func(t *testing.T) {
		w := New()
		if _, err := w.Advance(models.AddressInfo{}); err == nil {
			t.Fatal("Expected an error for an out-of-order payload, but got nil")
		}
	})

	t.Run("Test validation failure blocks advancement", func(t *testing.T) {
		w := New()
		in := validPersonal()
		in.Email = "not-an-email"
		errs, err := w.Advance(in)
		if err != nil {
			t.Fatalf("Expected field errors, not an error, but got %v", err)
		}
		if errs["email"] == "" {
			t.Errorf("Expected a field-scoped email message, but got %v", errs)
		}
		if w.StepNumber() != 1 {
			t.Errorf("Expected the wizard to stay at step 1, but got %d", w.StepNumber())
		}
		if w.Collected.PersonalInfo != nil {
			t.Error("Expected invalid data not to be merged")
		}
	})

	t.Run("Test changing track resizes the step list", func(t *testing.T) {
		w := New()
		mustAdvance(t, w, validPersonal())
		mustAdvance(t, w, models.EventChoice{Type: models.EventHackathon})
		mustAdvance(t, w, validRoster())
		w.Retreat()
		w.Retreat()
		mustAdvance(t, w, models.EventChoice{Type: models.EventOnly})
		if w.TotalSteps() != 4 {
			t.Errorf("Expected 4 steps after switching to the event track, but got %d", w.TotalSteps())
		}
		if w.Collected.TeamRoster == nil {
			t.Error("Expected previously entered roster data to be kept")
		}
	})
}
