package models

import (
	"strconv"
	"time"
)

// KeyPrefix namespaces submission keys in the shared store.
const KeyPrefix = "submission:"

// Attendance is a guest's planned participation.
type Attendance string

const (
	AttendanceYes   Attendance = "yes"   // attending alone
	AttendanceMaybe Attendance = "maybe" // attending with spouse/plus-one
	AttendanceNo    Attendance = "no"    // declining
)

// Valid reports whether a is one of the three known values.
func (a Attendance) Valid() bool {
	switch a {
	case AttendanceYes, AttendanceMaybe, AttendanceNo:
		return true
	}
	return false
}

// Submission is one guest's recorded RSVP. It is never modified after creation.
type Submission struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Message    string     `json:"message"`
	Attendance Attendance `json:"attendance"`
	Date       string     `json:"date"`
}

// Key returns the store key for s.
func (s Submission) Key() string {
	return KeyPrefix + strconv.FormatInt(s.ID, 10)
}

// Form holds the values a guest typed into the response form.
type Form struct {
	Name       string     `json:"name" validate:"notblank"`
	Message    string     `json:"message" validate:"notblank"`
	Attendance Attendance `json:"attendance" validate:"required,oneof=yes maybe no"`
}

// EmptyForm is the form as first shown and as reset after a successful submit.
func EmptyForm() Form {
	return Form{Attendance: AttendanceYes}
}

// SubmissionEvent is the Kafka payload published for every stored submission.
type SubmissionEvent struct {
	Submission Submission `json:"submission"`
	RecordedAt time.Time  `json:"recorded_at"`
}
