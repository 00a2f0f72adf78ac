package domain

// Screen - экран из взаимоисключающего набора вкладок
type Screen string

const (
	ScreenHome       Screen = "home"
	ScreenAstro      Screen = "astro"
	ScreenNumerology Screen = "numero"
	ScreenPractices  Screen = "practices"
)

func (s Screen) String() string {
	return string(s)
}

func (s Screen) IsValid() bool {
	switch s {
	case ScreenHome, ScreenAstro, ScreenNumerology, ScreenPractices:
		return true
	default:
		return false
	}
}

func Screens() []Screen {
	return []Screen{ScreenHome, ScreenAstro, ScreenNumerology, ScreenPractices}
}

// Phase - стадия дыхательного цикла
type Phase string

const (
	PhaseInhale Phase = "inhale"
	PhaseHold   Phase = "hold"
	PhaseExhale Phase = "exhale"
)
