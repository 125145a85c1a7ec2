package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DailyRoutine is the free-form routine block stored on a student record.
// Times are the labels the student picked ("23:00", "7:00 AM"); they are
// compared by hour component only, so the raw strings are kept as-is.
type DailyRoutine struct {
	WakeUpTime                string `json:"wake_up_time,omitempty"`
	SleepTime                 string `json:"sleep_time,omitempty"`
	StudyHours                string `json:"study_hours,omitempty"`
	WorkSchedule              string `json:"work_schedule,omitempty"`
	ExtracurricularActivities string `json:"extracurricular_activities,omitempty"`
}

// StayPreferences is the preference block stored on a student record.
type StayPreferences struct {
	RoomType        string `json:"room_type,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
	Cleanliness     int    `json:"cleanliness,omitempty"`     // 1-5
	NoiseTolerance  int    `json:"noise_tolerance,omitempty"` // 1-5
	SleepSchedule   string `json:"sleep_schedule,omitempty"`  // early, normal, late
	GuestFrequency  string `json:"guest_frequency,omitempty"` // never, rarely, sometimes, often
}

// StudentDetail is a student's PG booking record for one property. At most
// one row exists per (user, property); repeated submissions upsert on that
// pair rather than creating duplicates.
type StudentDetail struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	UserID     uint `json:"userID" gorm:"not null;uniqueIndex:idx_student_details_user_property"`
	PropertyID uint `json:"propertyID" gorm:"not null;uniqueIndex:idx_student_details_user_property"`

	CollegeName string `json:"collegeName" gorm:"size:200"`
	Degree      string `json:"degree" gorm:"size:100"`
	Branch      string `json:"branch" gorm:"size:100"`
	Course      string `json:"course" gorm:"size:100"`
	YearOfStudy string `json:"yearOfStudy" gorm:"size:20"`

	MoveInDate  *time.Time `json:"moveInDate"`
	MoveOutDate *time.Time `json:"moveOutDate"`

	DailyRoutine datatypes.JSON `json:"dailyRoutine"`
	Preferences  datatypes.JSON `json:"preferences"`

	HasBookedPG bool `json:"hasBookedPG" gorm:"default:false;index"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"deletedAt" gorm:"index"`

	Property Property `json:"property,omitempty" gorm:"foreignKey:PropertyID;references:ID"`
}

// Routine decodes the stored routine block. The second return is false when
// no routine data has been recorded for the student.
func (sd *StudentDetail) Routine() (DailyRoutine, bool) {
	if len(sd.DailyRoutine) == 0 {
		return DailyRoutine{}, false
	}
	var routine DailyRoutine
	if err := json.Unmarshal(sd.DailyRoutine, &routine); err != nil {
		return DailyRoutine{}, false
	}
	if routine == (DailyRoutine{}) {
		return DailyRoutine{}, false
	}
	return routine, true
}

// Prefs decodes the stored preference block, empty when absent.
func (sd *StudentDetail) Prefs() StayPreferences {
	var prefs StayPreferences
	if len(sd.Preferences) > 0 {
		json.Unmarshal(sd.Preferences, &prefs)
	}
	return prefs
}
