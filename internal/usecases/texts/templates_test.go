package texts

import (
	"testing"

	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatAvatarPhotoEscapesURL(t *testing.T) {
	got := FormatAvatarPhoto(`https://t.me/a.jpg"><script>`)
	assert.Equal(t, `<img src="https://t.me/a.jpg&#34;&gt;&lt;script&gt;" style="width:100%;height:100%;">`, got)
}

func TestFormatNatalChartEscapesFields(t *testing.T) {
	got := FormatNatalChart(domain.NatalChart{{Icon: "☉", Name: "<b>Солнце</b>", Sign: "Лев", Deg: "5°"}})
	assert.Contains(t, got, "&lt;b&gt;Солнце&lt;/b&gt;")
	assert.Contains(t, got, `<div class="planet-sign">Лев</div>`)
}

func TestFormatNumerologyKeepsBodyMarkup(t *testing.T) {
	assert.Equal(t,
		`<div class="numero-number">7</div><div class="numero-body"><b>Путь</b></div>`,
		FormatNumerology("7", "<b>Путь</b>"),
	)
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "Ошибка: Нет данных", FormatError(ChartNoData))
}
