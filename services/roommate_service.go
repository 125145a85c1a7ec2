package services

import (
	"errors"
	"strconv"
	"strings"

	"homefind-server/models"
	"homefind-server/storage"

	"gorm.io/gorm"
)

// FilterOptions narrows booked students by sleep schedule and study habits.
// "any" (or empty) disables a criterion.
type FilterOptions struct {
	SleepSchedule string `json:"sleepSchedule"` // any, early, normal, late
	StudyHabits   string `json:"studyHabits"`   // any, morning, evening, flexible, intense
}

// hourOf extracts the hour component from a time label like "23:00" or
// "7:00 AM": the integer before the first colon. Labels without a leading
// numeric token don't parse and are skipped by the callers. AM/PM suffixes
// are not normalized, so "11:00 PM" reads as hour 11, not 23.
func hourOf(label string) (int, bool) {
	head, _, _ := strings.Cut(label, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, false
	}
	return hour, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// CompatibilityScore estimates roommate fit between two students as an
// integer in [0,100]. Scoring starts from a neutral 50 and adds points for
// routine-time proximity:
//
//	sleep-hour diff <=1/<=2/<=3  ->  +30/+20/+10
//	wake-hour diff  <=1/<=2/<=3  ->  +20/+15/+10
//	identical study-hours label  ->  +10
//
// If either student has no recorded daily routine the neutral 50 stands.
func CompatibilityScore(current, other models.StudentDetail) int {
	score := 50

	currentRoutine, currentOK := current.Routine()
	otherRoutine, otherOK := other.Routine()
	if !currentOK || !otherOK {
		return score
	}

	if currentRoutine.SleepTime != "" && otherRoutine.SleepTime != "" {
		currentSleep, ok1 := hourOf(currentRoutine.SleepTime)
		otherSleep, ok2 := hourOf(otherRoutine.SleepTime)
		if ok1 && ok2 {
			switch diff := abs(currentSleep - otherSleep); {
			case diff <= 1:
				score += 30
			case diff <= 2:
				score += 20
			case diff <= 3:
				score += 10
			}
		}
	}

	if currentRoutine.WakeUpTime != "" && otherRoutine.WakeUpTime != "" {
		currentWake, ok1 := hourOf(currentRoutine.WakeUpTime)
		otherWake, ok2 := hourOf(otherRoutine.WakeUpTime)
		if ok1 && ok2 {
			switch diff := abs(currentWake - otherWake); {
			case diff <= 1:
				score += 20
			case diff <= 2:
				score += 15
			case diff <= 3:
				score += 10
			}
		}
	}

	if currentRoutine.StudyHours != "" && otherRoutine.StudyHours != "" &&
		currentRoutine.StudyHours == otherRoutine.StudyHours {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// FilterStudents returns the subset of students matching both filter
// criteria. Students without routine data always pass.
//
// The "late" sleep bucket requires hour > 24, which no label on a 24-hour
// clock produces; post-midnight sleepers ("01:00") therefore never match it.
// Kept as-is to stay consistent with stored data produced under this rule.
func FilterStudents(students []models.StudentDetail, filters FilterOptions) []models.StudentDetail {
	filtered := make([]models.StudentDetail, 0, len(students))

	for _, student := range students {
		if matchesFilters(student, filters) {
			filtered = append(filtered, student)
		}
	}

	return filtered
}

func matchesFilters(student models.StudentDetail, filters FilterOptions) bool {
	routine, ok := student.Routine()
	if !ok {
		return true
	}

	if filters.SleepSchedule != "" && filters.SleepSchedule != "any" && routine.SleepTime != "" {
		if sleepHour, parsed := hourOf(routine.SleepTime); parsed {
			switch filters.SleepSchedule {
			case "early":
				if sleepHour > 22 {
					return false
				}
			case "normal":
				if sleepHour < 22 || sleepHour > 24 {
					return false
				}
			case "late":
				if sleepHour <= 24 {
					return false
				}
			}
		}
	}

	if filters.StudyHabits != "" && filters.StudyHabits != "any" && routine.StudyHours != "" {
		studyHours := strings.ToLower(routine.StudyHours)

		switch filters.StudyHabits {
		case "morning":
			if !strings.Contains(studyHours, "morning") && !strings.Contains(studyHours, "am") {
				return false
			}
		case "evening":
			if !strings.Contains(studyHours, "evening") && !strings.Contains(studyHours, "pm") {
				return false
			}
		case "flexible":
			if !strings.Contains(studyHours, "flexible") && !strings.Contains(studyHours, "any") {
				return false
			}
		case "intense":
			if !strings.Contains(studyHours, "8") && !strings.Contains(studyHours, "intensive") {
				return false
			}
		}
	}

	return true
}

// RelationKind tags the three shapes a joined profile relation can take:
// a loaded row, an explicit error marker where the row should have been,
// or no relation at all.
type RelationKind int

const (
	RelationLoaded RelationKind = iota
	RelationMissing
	RelationError
)

// ProfileRelation is the joined profiles row for a student record, tagged
// with how the join turned out.
type ProfileRelation struct {
	Kind    RelationKind
	Profile models.Profile
}

func LoadedRelation(p models.Profile) ProfileRelation {
	return ProfileRelation{Kind: RelationLoaded, Profile: p}
}

func MissingRelation() ProfileRelation {
	return ProfileRelation{Kind: RelationMissing}
}

func ErrorRelation() ProfileRelation {
	return ProfileRelation{Kind: RelationError}
}

// DisplayIdentity is the resolved, always-renderable identity for a student.
type DisplayIdentity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

const (
	unknownUser = "Unknown User"
	notProvided = "Not provided"
)

// ResolveProfile maps a profile relation to display values. Only a loaded
// relation contributes real identity fields; error markers and absent
// relations degrade to sentinels rather than propagating a failure.
func ResolveProfile(rel ProfileRelation) DisplayIdentity {
	switch rel.Kind {
	case RelationLoaded:
		identity := DisplayIdentity{
			Name:  rel.Profile.FullName,
			Email: rel.Profile.Email,
			Phone: rel.Profile.Phone,
		}
		if identity.Name == "" {
			identity.Name = unknownUser
		}
		if identity.Email == "" {
			identity.Email = notProvided
		}
		if identity.Phone == "" {
			identity.Phone = notProvided
		}
		return identity
	case RelationMissing, RelationError:
		return DisplayIdentity{Name: unknownUser}
	default:
		return DisplayIdentity{Name: unknownUser}
	}
}

// FetchProfileRelation looks up the profile row for a user, classifying the
// outcome instead of returning an error: the caller renders whatever shape
// came back.
func FetchProfileRelation(userID uint) ProfileRelation {
	var profile models.Profile
	err := storage.DB.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MissingRelation()
		}
		return ErrorRelation()
	}
	return LoadedRelation(profile)
}
