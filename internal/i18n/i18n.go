// Package i18n resolves the guest's language and holds every translated
// string the service produces. Kazakh is the page's own language; Russian
// and English are offered as alternatives.
package i18n

import (
	"context"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	GuestAck     = "guest.ack"
	GuestRetry   = "guest.retry"
	GuestInvalid = "guest.invalid"

	EmailSubject         = "email.subject"
	EmailHeading         = "email.heading"
	EmailLabelName       = "email.label.name"
	EmailLabelAttendance = "email.label.attendance"
	EmailLabelMessage    = "email.label.message"
	EmailLabelDate       = "email.label.date"

	AttendanceYes   = "attendance.yes"
	AttendanceMaybe = "attendance.maybe"
	AttendanceNo    = "attendance.no"
)

var (
	Kazakh  = language.MustParse("kk")
	Russian = language.Russian
	English = language.English

	supported = []language.Tag{Kazakh, Russian, English}
	matcher   = language.NewMatcher(supported)
)

// Localizer is the message-printer contract renderers depend on.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Supported returns the supported tags, default first.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Printer returns a printer for one of the supported tags.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(Match(tag))
}

// Match maps any tag to the closest supported one, falling back to Kazakh.
func Match(tags ...language.Tag) language.Tag {
	if len(tags) == 0 {
		return Kazakh
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Kazakh
	}
	return supported[idx]
}

// Parse resolves a raw value such as "ru-RU" or "en"; ok is false when
// the value is empty or not a language tag.
func Parse(raw string) (language.Tag, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return language.Und, false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Und, false
	}
	return Match(tag), true
}

// Resolve picks the language from an explicit choice, then Accept-Language,
// then def.
func Resolve(explicit, acceptLanguage string, def language.Tag) language.Tag {
	if tag, ok := Parse(explicit); ok {
		return tag
	}
	if accept := strings.TrimSpace(acceptLanguage); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				return supported[idx]
			}
		}
	}
	return Match(def)
}

type ctxKey struct{}

// WithTag stores the resolved tag in ctx.
func WithTag(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, tag)
}

// FromContext returns the tag stored by WithTag, Kazakh when absent.
func FromContext(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(ctxKey{}).(language.Tag); ok {
		return tag
	}
	return Kazakh
}
