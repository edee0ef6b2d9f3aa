package relay

import (
	"bytes"
	"html/template"

	"wedding-rsvp/internal/i18n"
	"wedding-rsvp/internal/models"
)

// Email is a rendered host alert.
type Email struct {
	Subject string
	HTML    string
}

var bodyTemplate = template.Must(template.New("body").Parse(`<h2>{{.Heading}}</h2>
<p><strong>{{.NameLabel}}:</strong> {{.Name}}</p>
<p><strong>{{.AttendanceLabel}}:</strong> {{.Attendance}}</p>
<p><strong>{{.MessageLabel}}:</strong> {{.Message}}</p>
<p><strong>{{.DateLabel}}:</strong> {{.Date}}</p>
`))

// AttendancePhrase maps the three-way choice to its localized phrase.
// Unknown values read as declining.
func AttendancePhrase(loc i18n.Localizer, a models.Attendance) string {
	switch a {
	case models.AttendanceYes:
		return loc.Sprintf(i18n.AttendanceYes)
	case models.AttendanceMaybe:
		return loc.Sprintf(i18n.AttendanceMaybe)
	default:
		return loc.Sprintf(i18n.AttendanceNo)
	}
}

// Render builds the host alert for s. Guest-typed text is HTML-escaped.
func Render(loc i18n.Localizer, s models.Submission) (Email, error) {
	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, map[string]string{
		"Heading":         loc.Sprintf(i18n.EmailHeading),
		"NameLabel":       loc.Sprintf(i18n.EmailLabelName),
		"Name":            s.Name,
		"AttendanceLabel": loc.Sprintf(i18n.EmailLabelAttendance),
		"Attendance":      AttendancePhrase(loc, s.Attendance),
		"MessageLabel":    loc.Sprintf(i18n.EmailLabelMessage),
		"Message":         s.Message,
		"DateLabel":       loc.Sprintf(i18n.EmailLabelDate),
		"Date":            s.Date,
	})
	if err != nil {
		return Email{}, err
	}
	return Email{
		Subject: loc.Sprintf(i18n.EmailSubject, s.Name),
		HTML:    buf.String(),
	}, nil
}
