package texts

import (
	"fmt"
	"html"
	"strings"

	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
)

const (
	avatarPhotoTemplate   = `<img src="%s" style="width:100%%;height:100%%;">`
	avatarInitialTemplate = `<span>%s</span>`
	chartStatusTemplate   = `<div class="astro-status">%s</div>`
	chartErrorTemplate    = `<div class="astro-status astro-error">%s</div>`
	planetRowTemplate     = `<div class="planet-row"><div class="planet-name"><span class="planet-icon">%s</span><span>%s</span></div><div class="planet-pos"><div class="planet-sign">%s</div><div class="planet-deg">%s</div></div></div>`
	numerologyTemplate    = `<div class="numero-number">%s</div><div class="numero-body">%s</div>`
)

// FormatError "Ошибка: <detail>"
func FormatError(detail string) string {
	return ErrorPrefix + detail
}

// FormatAvatarPhoto ссылка экранируется, она приходит от клиента
func FormatAvatarPhoto(url string) string {
	return fmt.Sprintf(avatarPhotoTemplate, html.EscapeString(url))
}

func FormatAvatarInitial(initial string) string {
	return fmt.Sprintf(avatarInitialTemplate, html.EscapeString(initial))
}

func FormatChartLoading() string {
	return fmt.Sprintf(chartStatusTemplate, ChartLoading)
}

func FormatChartError(message string) string {
	return fmt.Sprintf(chartErrorTemplate, html.EscapeString(message))
}

// FormatNatalChart строки планет в порядке ответа
func FormatNatalChart(chart domain.NatalChart) string {
	var b strings.Builder
	for _, p := range chart {
		fmt.Fprintf(&b, planetRowTemplate,
			html.EscapeString(p.Icon),
			html.EscapeString(p.Name),
			html.EscapeString(p.Sign),
			html.EscapeString(p.Deg),
		)
	}
	return b.String()
}

// FormatNumerology body уже прогнан через разметку
func FormatNumerology(number, body string) string {
	return fmt.Sprintf(numerologyTemplate, html.EscapeString(number), body)
}
