package view

import "github.com/admin/tg-bots/astro-miniapp/internal/domain"

// IDocument - модель разметки мини-приложения. Вызывается только из цикла событий сессии.
type IDocument interface {
	SetText(id domain.ElementID, text string)
	SetHTML(id domain.ElementID, html string)
	SetValue(id domain.ElementID, value string)
	SetDimmed(id domain.ElementID, dimmed bool)
	SetDisabled(id domain.ElementID, disabled bool)
	SetTone(id domain.ElementID, tone domain.Tone)
	SetActive(id domain.ElementID, active bool)
	SetTheme(theme domain.Theme)
}

// IHaptics - тактильная обратная связь хоста, может молча ничего не делать
type IHaptics interface {
	Signal(signal domain.HapticSignal)
}
