// Package page models the invitation page as a serializable view state.
// Every change is a pure transition Reduce(state, event); the controller
// runs the side effects and feeds their outcome back in as events.
package page

import (
	"golang.org/x/text/language"

	"wedding-rsvp/internal/countdown"
	"wedding-rsvp/internal/i18n"
	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/repository"
)

// NoticeKind tells the UI how to present a notice.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeRetry   NoticeKind = "retry"
	NoticeInvalid NoticeKind = "invalid"
)

// Notice is the one message shown to the guest after a submit.
type Notice struct {
	Kind NoticeKind `json:"kind"`
	Text string     `json:"text"`
}

// State is everything the page displays.
type State struct {
	Locale      string              `json:"locale"`
	Form        models.Form         `json:"form"`
	Submissions []models.Submission `json:"submissions"`
	Loading     bool                `json:"loading"`
	Submitting  bool                `json:"submitting"`
	Notice      *Notice             `json:"notice,omitempty"`
	Countdown   countdown.Remaining `json:"countdown"`
}

// Initial is the state before anything has loaded.
func Initial(tag language.Tag) State {
	return State{
		Locale:      i18n.Match(tag).String(),
		Form:        models.EmptyForm(),
		Submissions: []models.Submission{},
		Loading:     true,
	}
}

func (s State) tag() language.Tag {
	if tag, ok := i18n.Parse(s.Locale); ok {
		return tag
	}
	return i18n.Kazakh
}

// Event is one input to Reduce.
type Event interface {
	isEvent()
}

// LoadFinished carries the loaded list; only the first one is applied.
type LoadFinished struct{ Submissions []models.Submission }

// Field names accepted by FieldEdited.
const (
	FieldName       = "name"
	FieldMessage    = "message"
	FieldAttendance = "attendance"
)

// FieldEdited is one keystroke or choice in the form.
type FieldEdited struct {
	Field string
	Value string
}

// SubmitStarted marks a submit in flight.
type SubmitStarted struct{}

// SubmitSucceeded is a submit whose host alert went out.
type SubmitSucceeded struct{ Submission models.Submission }

// SubmitFailed is a submit that was not stored or whose alert failed.
type SubmitFailed struct{}

// SubmitRejected is a form that did not pass validation.
type SubmitRejected struct{}

// Ticked is a countdown recomputation.
type Ticked struct{ Remaining countdown.Remaining }

// NoticeDismissed clears the notice.
type NoticeDismissed struct{}

func (LoadFinished) isEvent()    {}
func (FieldEdited) isEvent()     {}
func (SubmitStarted) isEvent()   {}
func (SubmitSucceeded) isEvent() {}
func (SubmitFailed) isEvent()    {}
func (SubmitRejected) isEvent()  {}
func (Ticked) isEvent()          {}
func (NoticeDismissed) isEvent() {}

// Reduce returns the state after e. It never mutates s.
func Reduce(s State, e Event) State {
	next := s
	switch ev := e.(type) {
	case LoadFinished:
		if !s.Loading {
			return s
		}
		next.Loading = false
		next.Submissions = merge(nil, ev.Submissions)
	case FieldEdited:
		switch ev.Field {
		case FieldName:
			next.Form.Name = ev.Value
		case FieldMessage:
			next.Form.Message = ev.Value
		case FieldAttendance:
			if a := models.Attendance(ev.Value); a.Valid() {
				next.Form.Attendance = a
			}
		}
	case SubmitStarted:
		next.Submitting = true
		next.Notice = nil
	case SubmitSucceeded:
		p := i18n.Printer(s.tag())
		next.Submitting = false
		next.Form = models.EmptyForm()
		next.Submissions = merge(s.Submissions, []models.Submission{ev.Submission})
		next.Notice = &Notice{Kind: NoticeSuccess, Text: p.Sprintf(i18n.GuestAck, ev.Submission.Name)}
	case SubmitFailed:
		next.Submitting = false
		next.Notice = &Notice{Kind: NoticeRetry, Text: i18n.Printer(s.tag()).Sprintf(i18n.GuestRetry)}
	case SubmitRejected:
		next.Submitting = false
		next.Notice = &Notice{Kind: NoticeInvalid, Text: i18n.Printer(s.tag()).Sprintf(i18n.GuestInvalid)}
	case Ticked:
		next.Countdown = ev.Remaining
	case NoticeDismissed:
		next.Notice = nil
	}
	return next
}

// merge returns a new newest-first slice holding both inputs.
func merge(a, b []models.Submission) []models.Submission {
	out := make([]models.Submission, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	repository.SortNewestFirst(out)
	return out
}
