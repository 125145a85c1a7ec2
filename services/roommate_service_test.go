package services

import (
	"encoding/json"
	"testing"

	"homefind-server/models"

	"gorm.io/datatypes"
)

func studentWithRoutine(t *testing.T, routine models.DailyRoutine) models.StudentDetail {
	t.Helper()
	payload, err := json.Marshal(routine)
	if err != nil {
		t.Fatalf("marshal routine: %v", err)
	}
	return models.StudentDetail{DailyRoutine: datatypes.JSON(payload)}
}

func TestCompatibilityScoreNeutralWithoutRoutine(t *testing.T) {
	withRoutine := studentWithRoutine(t, models.DailyRoutine{SleepTime: "23:00", WakeUpTime: "7:00"})
	withoutRoutine := models.StudentDetail{}

	if got := CompatibilityScore(withoutRoutine, withRoutine); got != 50 {
		t.Fatalf("expected 50 when current has no routine, got %d", got)
	}
	if got := CompatibilityScore(withRoutine, withoutRoutine); got != 50 {
		t.Fatalf("expected 50 when other has no routine, got %d", got)
	}
	if got := CompatibilityScore(models.StudentDetail{}, models.StudentDetail{}); got != 50 {
		t.Fatalf("expected 50 when neither has a routine, got %d", got)
	}
}

func TestCompatibilityScoreSleepProximity(t *testing.T) {
	tests := []struct {
		name       string
		otherSleep string
		want       int
	}{
		{"same hour", "23:00", 80},
		{"one hour apart", "22:00", 80},
		{"two hours apart", "21:00", 70},
		{"three hours apart", "20:00", 60},
		{"four hours apart", "19:00", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := studentWithRoutine(t, models.DailyRoutine{SleepTime: "23:00"})
			other := studentWithRoutine(t, models.DailyRoutine{SleepTime: tt.otherSleep})
			if got := CompatibilityScore(current, other); got != tt.want {
				t.Fatalf("sleep %q vs 23:00: expected %d, got %d", tt.otherSleep, tt.want, got)
			}
		})
	}
}

func TestCompatibilityScoreWakeProximity(t *testing.T) {
	tests := []struct {
		otherWake string
		want      int
	}{
		{"7:00", 70},
		{"8:00", 70},
		{"9:00", 65},
		{"10:00", 60},
		{"11:00", 50},
	}

	for _, tt := range tests {
		current := studentWithRoutine(t, models.DailyRoutine{WakeUpTime: "7:00"})
		other := studentWithRoutine(t, models.DailyRoutine{WakeUpTime: tt.otherWake})
		if got := CompatibilityScore(current, other); got != tt.want {
			t.Fatalf("wake %q vs 7:00: expected %d, got %d", tt.otherWake, tt.want, got)
		}
	}
}

func TestCompatibilityScoreStudyHoursExactMatchOnly(t *testing.T) {
	current := studentWithRoutine(t, models.DailyRoutine{StudyHours: "4-6 hours"})
	same := studentWithRoutine(t, models.DailyRoutine{StudyHours: "4-6 hours"})
	different := studentWithRoutine(t, models.DailyRoutine{StudyHours: "2-4 hours"})

	if got := CompatibilityScore(current, same); got != 60 {
		t.Fatalf("expected 60 for identical study label, got %d", got)
	}
	if got := CompatibilityScore(current, different); got != 50 {
		t.Fatalf("expected 50 for differing study label, got %d", got)
	}
}

func TestCompatibilityScoreCombined(t *testing.T) {
	// Sleep within an hour (+30), wake two hours apart (+15), study labels
	// differ: 50 + 30 + 15 = 95.
	current := studentWithRoutine(t, models.DailyRoutine{
		SleepTime:  "23:00",
		WakeUpTime: "6:00",
		StudyHours: "4-6 hours",
	})
	other := studentWithRoutine(t, models.DailyRoutine{
		SleepTime:  "23:30",
		WakeUpTime: "8:00",
		StudyHours: "2-4 hours",
	})

	if got := CompatibilityScore(current, other); got != 95 {
		t.Fatalf("expected 95, got %d", got)
	}
}

func TestCompatibilityScoreCappedAt100(t *testing.T) {
	current := studentWithRoutine(t, models.DailyRoutine{
		SleepTime:  "23:00",
		WakeUpTime: "7:00",
		StudyHours: "4-6 hours",
	})
	twin := studentWithRoutine(t, models.DailyRoutine{
		SleepTime:  "23:00",
		WakeUpTime: "7:00",
		StudyHours: "4-6 hours",
	})

	// 50 + 30 + 20 + 10 = 110, clamped.
	if got := CompatibilityScore(current, twin); got != 100 {
		t.Fatalf("expected 100 for identical routines, got %d", got)
	}
}

func TestCompatibilityScoreUnparseableTimesSkipped(t *testing.T) {
	current := studentWithRoutine(t, models.DailyRoutine{SleepTime: "around midnight"})
	other := studentWithRoutine(t, models.DailyRoutine{SleepTime: "23:00"})

	if got := CompatibilityScore(current, other); got != 50 {
		t.Fatalf("expected 50 when a sleep label cannot be parsed, got %d", got)
	}
}

func TestCompatibilityScoreAMPMNotNormalized(t *testing.T) {
	// "11:00 PM" reads as hour 11, twelve hours off from "23:00".
	current := studentWithRoutine(t, models.DailyRoutine{SleepTime: "11:00 PM"})
	other := studentWithRoutine(t, models.DailyRoutine{SleepTime: "23:00"})

	if got := CompatibilityScore(current, other); got != 50 {
		t.Fatalf("expected no sleep bonus across AM/PM notation, got %d", got)
	}
}

func TestFilterStudentsAnyReturnsAll(t *testing.T) {
	students := []models.StudentDetail{
		studentWithRoutine(t, models.DailyRoutine{SleepTime: "21:00"}),
		studentWithRoutine(t, models.DailyRoutine{SleepTime: "23:00"}),
		{},
	}

	got := FilterStudents(students, FilterOptions{SleepSchedule: "any", StudyHabits: "any"})
	if len(got) != len(students) {
		t.Fatalf("expected all %d students with any/any filters, got %d", len(students), len(got))
	}

	got = FilterStudents(students, FilterOptions{})
	if len(got) != len(students) {
		t.Fatalf("expected all %d students with empty filters, got %d", len(students), len(got))
	}
}

func TestFilterStudentsSleepSchedule(t *testing.T) {
	early := studentWithRoutine(t, models.DailyRoutine{SleepTime: "21:00"})
	normal := studentWithRoutine(t, models.DailyRoutine{SleepTime: "23:00"})
	postMidnight := studentWithRoutine(t, models.DailyRoutine{SleepTime: "01:00"})
	noRoutine := models.StudentDetail{}

	students := []models.StudentDetail{early, normal, postMidnight, noRoutine}

	got := FilterStudents(students, FilterOptions{SleepSchedule: "early"})
	// 21:00 and 01:00 both have an hour <= 22; no-routine students always pass.
	if len(got) != 3 {
		t.Fatalf("early filter: expected 3 students, got %d", len(got))
	}

	got = FilterStudents(students, FilterOptions{SleepSchedule: "normal"})
	if len(got) != 2 {
		t.Fatalf("normal filter: expected 2 students, got %d", len(got))
	}

	// The late bucket needs an hour above 24, which no clock label produces,
	// so only the routine-less student passes.
	got = FilterStudents(students, FilterOptions{SleepSchedule: "late"})
	if len(got) != 1 {
		t.Fatalf("late filter: expected only the routine-less student, got %d", len(got))
	}
}

func TestFilterStudentsStudyHabits(t *testing.T) {
	morning := studentWithRoutine(t, models.DailyRoutine{StudyHours: "Morning study, 6-7 AM"})
	evening := studentWithRoutine(t, models.DailyRoutine{StudyHours: "evening sessions"})
	flexible := studentWithRoutine(t, models.DailyRoutine{StudyHours: "flexible"})
	intense := studentWithRoutine(t, models.DailyRoutine{StudyHours: "8+ hours"})

	students := []models.StudentDetail{morning, evening, flexible, intense}

	tests := []struct {
		filter string
		want   int
	}{
		{"morning", 1},
		{"evening", 1},
		{"flexible", 1},
		{"intense", 1},
	}
	for _, tt := range tests {
		got := FilterStudents(students, FilterOptions{StudyHabits: tt.filter})
		if len(got) != tt.want {
			t.Fatalf("study filter %q: expected %d students, got %d", tt.filter, tt.want, len(got))
		}
	}
}

func TestResolveProfileLoaded(t *testing.T) {
	identity := ResolveProfile(LoadedRelation(models.Profile{
		FullName: "Asha",
		Email:    "a@x.com",
		Phone:    "+91 98765 43210",
	}))

	if identity.Name != "Asha" || identity.Email != "a@x.com" || identity.Phone != "+91 98765 43210" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestResolveProfileLoadedWithEmptyFields(t *testing.T) {
	identity := ResolveProfile(LoadedRelation(models.Profile{FullName: "Asha"}))

	if identity.Name != "Asha" {
		t.Fatalf("expected name preserved, got %q", identity.Name)
	}
	if identity.Email != "Not provided" || identity.Phone != "Not provided" {
		t.Fatalf("expected Not provided sentinels, got %+v", identity)
	}

	identity = ResolveProfile(LoadedRelation(models.Profile{}))
	if identity.Name != "Unknown User" {
		t.Fatalf("expected Unknown User for empty name, got %q", identity.Name)
	}
}

func TestResolveProfileMissingAndError(t *testing.T) {
	missing := ResolveProfile(MissingRelation())
	if missing.Name != "Unknown User" || missing.Email != "" || missing.Phone != "" {
		t.Fatalf("unexpected identity for missing relation: %+v", missing)
	}

	// An error marker in the joined row must not leak anything either.
	errored := ResolveProfile(ErrorRelation())
	if errored.Name != "Unknown User" || errored.Email != "" {
		t.Fatalf("unexpected identity for error relation: %+v", errored)
	}
}
