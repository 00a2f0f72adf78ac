package domain

import "strings"

type UserID int64

// GuestUserID выдаётся, когда хост не прислал пользователя
const (
	GuestUserID UserID = 999
	GuestName          = "Гость"
)

type Theme string

const ThemeDefault Theme = "default"

// Profile - профиль пользователя в рамках сессии
type Profile struct {
	UserID     UserID
	FullName   string
	BirthDate  *string // YYYY-MM-DD
	BirthTime  *string // HH:MM
	BirthPlace *string
	Theme      Theme
}

// ProfileEnvelope - ответ get_profile, nil означает "поля нет в ответе"
type ProfileEnvelope struct {
	FullName         *string
	BirthDate        *string
	BirthTime        *string
	BirthPlace       *string
	Theme            *string
	NatalAnalysis    *string
	Numerology       *string
	DailyAdvice      *string
	DailyAffirmation *string
}

// ProfileForm - значения формы настроек, пустая строка = поле не заполнено
type ProfileForm struct {
	FullName   string `json:"full_name"`
	BirthDate  string `json:"birth_date"`
	BirthTime  string `json:"birth_time"`
	BirthPlace string `json:"birth_place"`
	Theme      string `json:"theme"`
}

// ApplyForm переносит форму в профиль и сообщает, изменились ли данные рождения
func (p *Profile) ApplyForm(form ProfileForm) (birthDataChanged bool) {
	birthDate := optional(form.BirthDate)
	birthTime := optional(form.BirthTime)
	birthPlace := optional(form.BirthPlace)

	birthDataChanged = !sameOptional(p.BirthDate, birthDate) ||
		!sameOptional(p.BirthTime, birthTime) ||
		!sameOptional(p.BirthPlace, birthPlace)

	p.FullName = form.FullName
	p.BirthDate = birthDate
	p.BirthTime = birthTime
	p.BirthPlace = birthPlace
	p.Theme = Theme(form.Theme)
	if p.Theme == "" {
		p.Theme = ThemeDefault
	}

	return birthDataChanged
}

// Initial первая буква имени для аватара-заглушки
func Initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(name)[:1]))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func sameOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
