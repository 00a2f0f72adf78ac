package domain

// ElementID - id элемента разметки мини-приложения
type ElementID string

const (
	ElDisplayName     ElementID = "display-name"
	ElAvatar          ElementID = "avatar-container"
	ElNameInput       ElementID = "name-input"
	ElBirthDateInput  ElementID = "birth-date-input"
	ElBirthTimeInput  ElementID = "birth-time-input"
	ElBirthPlaceInput ElementID = "birth-place-input"
	ElThemeSelect     ElementID = "theme-select"
	ElWidgetPlace     ElementID = "widget-place"
	ElWidgetSign      ElementID = "widget-sign"

	ElSettingsModal ElementID = "settings-modal"
	ElSaveStatus    ElementID = "save-status"

	ElDailyAdviceText ElementID = "daily-advice-text"
	ElBtnDailyAdvice  ElementID = "btn-daily-advice"

	ElAstroAnalysisText ElementID = "astro-analysis-text"
	ElBtnAnalyzeAstro   ElementID = "btn-analyze-astro"
	ElAstroList         ElementID = "astro-list"

	ElNumeroContent ElementID = "numero-content"
	ElNumeroResult  ElementID = "numero-result"
	ElBtnNumero     ElementID = "btn-numero"

	ElAffirmationText ElementID = "affirmation-text"
	ElBtnAffirmation  ElementID = "btn-affirmation"

	ElBreathCircle ElementID = "breath-circle"
	ElBreathText   ElementID = "breath-text"
	ElBtnBreath    ElementID = "btn-breath"
)

// PageElement контейнер экрана
func PageElement(s Screen) ElementID {
	return ElementID("page-" + string(s))
}

// NavElement пункт нижней навигации
func NavElement(s Screen) ElementID {
	return ElementID("nav-" + string(s))
}

// Tone - цветовая подсветка текста
type Tone string

const (
	ToneNone    Tone = ""
	ToneMain    Tone = "main"
	TonePending Tone = "pending"
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
)

type PatchOp string

const (
	PatchText    PatchOp = "text"
	PatchHTML    PatchOp = "html"
	PatchValue   PatchOp = "value"
	PatchDim     PatchOp = "dim"
	PatchDisable PatchOp = "disable"
	PatchTone    PatchOp = "tone"
	PatchActive  PatchOp = "active"
	PatchTheme   PatchOp = "theme"
	PatchHaptic  PatchOp = "haptic"
)

// Patch - одна мутация документа, отправляется клиенту как есть
type Patch struct {
	Op      PatchOp   `json:"op"`
	Element ElementID `json:"id,omitempty"`
	Value   string    `json:"value,omitempty"`
	Flag    bool      `json:"flag,omitempty"`
}
