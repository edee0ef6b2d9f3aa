package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	register(Kazakh, map[string]string{
		GuestAck:             "Рақмет! %s, сіздің тілегіңіз қабылданды!",
		GuestRetry:           "Қате! Қайталап көріңіз.",
		GuestInvalid:         "Аты-жөніңіз бен тілегіңізді толтырыңыз.",
		EmailSubject:         "Жаңа қонақ: %s",
		EmailHeading:         "Тойдан жаңа хабар",
		EmailLabelName:       "Аты-жөні",
		EmailLabelAttendance: "Келу жағдайы",
		EmailLabelMessage:    "Тілегі",
		EmailLabelDate:       "Жіберілген уақыты",
		AttendanceYes:        "Иә, барамын",
		AttendanceMaybe:      "Жұбайыммен барамын",
		AttendanceNo:         "Келе алмаймын",
	})
	register(Russian, map[string]string{
		GuestAck:             "Спасибо, %s! Ваше пожелание принято!",
		GuestRetry:           "Ошибка! Попробуйте ещё раз.",
		GuestInvalid:         "Заполните имя и пожелание.",
		EmailSubject:         "Новый гость: %s",
		EmailHeading:         "Новое сообщение со свадьбы",
		EmailLabelName:       "Имя",
		EmailLabelAttendance: "Присутствие",
		EmailLabelMessage:    "Пожелание",
		EmailLabelDate:       "Время отправки",
		AttendanceYes:        "Да, приду",
		AttendanceMaybe:      "Приду с супругом/супругой",
		AttendanceNo:         "Не смогу прийти",
	})
	register(English, map[string]string{
		GuestAck:             "Thank you, %s! Your wishes have been received!",
		GuestRetry:           "Something went wrong. Please try again.",
		GuestInvalid:         "Please fill in your name and message.",
		EmailSubject:         "New guest: %s",
		EmailHeading:         "New wedding RSVP",
		EmailLabelName:       "Name",
		EmailLabelAttendance: "Attendance",
		EmailLabelMessage:    "Message",
		EmailLabelDate:       "Sent at",
		AttendanceYes:        "attending",
		AttendanceMaybe:      "attending with spouse/plus-one",
		AttendanceNo:         "declining",
	})
}

func register(tag language.Tag, msgs map[string]string) {
	for key, msg := range msgs {
		if err := message.SetString(tag, key, msg); err != nil {
			panic(err)
		}
	}
}
