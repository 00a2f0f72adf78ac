package domain

// SectionID - независимо кэшируемый и перегенерируемый блок дашборда
type SectionID string

const (
	SectionNatalAnalysis SectionID = "natal_analysis"
	SectionNumerology    SectionID = "numerology"
	SectionDailyAdvice   SectionID = "daily_advice"
	SectionAffirmation   SectionID = "affirmation"
	SectionNatalChart    SectionID = "natal_chart"
)

func (s SectionID) String() string {
	return string(s)
}

func (s SectionID) IsValid() bool {
	switch s {
	case SectionNatalAnalysis, SectionNumerology, SectionDailyAdvice, SectionAffirmation, SectionNatalChart:
		return true
	default:
		return false
	}
}

// Sections в порядке отрисовки
func Sections() []SectionID {
	return []SectionID{
		SectionNatalAnalysis,
		SectionNumerology,
		SectionDailyAdvice,
		SectionAffirmation,
		SectionNatalChart,
	}
}

// SectionEntry - состояние кэша одной секции в текущей сессии
type SectionEntry struct {
	ID           SectionID
	Present      bool
	Raw          string
	NeedsRefresh bool
}

// Fill запоминает новое содержимое секции
func (e *SectionEntry) Fill(raw string) {
	e.Present = true
	e.Raw = raw
	e.NeedsRefresh = false
}

// Invalidate помечает секцию устаревшей, содержимое остаётся на экране
func (e *SectionEntry) Invalidate() {
	e.NeedsRefresh = true
}

// Loaded - есть актуальные данные, повторная загрузка не нужна
func (e SectionEntry) Loaded() bool {
	return e.Present && !e.NeedsRefresh
}

// Planet - строка натальной карты
type Planet struct {
	Icon string `json:"icon"`
	Name string `json:"name"`
	Sign string `json:"sign"`
	Deg  string `json:"deg"`
}

type NatalChart []Planet

// Numerology - разобранный ответ нумерологии
type Numerology struct {
	Number string
	Body   string
}
