package webview

import (
	"testing"

	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDocumentEmitsPatches(t *testing.T) {
	var patches []domain.Patch
	doc := New(func(p domain.Patch) { patches = append(patches, p) })

	doc.SetText(domain.ElDisplayName, "Анна")
	doc.SetDisabled(domain.ElBtnNumero, true)
	doc.Signal(domain.Impact(domain.ImpactLight))
	doc.SetTheme("gold")

	assert.Equal(t, []domain.Patch{
		{Op: domain.PatchText, Element: domain.ElDisplayName, Value: "Анна"},
		{Op: domain.PatchDisable, Element: domain.ElBtnNumero, Flag: true},
		{Op: domain.PatchHaptic, Value: "impact:light"},
		{Op: domain.PatchTheme, Value: "gold"},
	}, patches)
}

func TestDocumentTextReplacesHTML(t *testing.T) {
	doc := New(nil)

	doc.SetHTML(domain.ElAstroAnalysisText, "<b>A</b>")
	assert.Equal(t, Element{Content: "<b>A</b>", IsHTML: true}, doc.Element(domain.ElAstroAnalysisText))

	doc.SetText(domain.ElAstroAnalysisText, "Ошибка")
	assert.Equal(t, Element{Content: "Ошибка"}, doc.Element(domain.ElAstroAnalysisText))
}

func TestDocumentEmptyThemeIsDefault(t *testing.T) {
	doc := New(nil)
	doc.SetTheme("gold")
	doc.SetTheme("")
	assert.Equal(t, domain.ThemeDefault, doc.Theme())
}

func TestDocumentSnapshot(t *testing.T) {
	doc := New(nil)

	doc.SetValue(domain.ElNameInput, "Анна")
	doc.SetText(domain.ElDailyAdviceText, "Совет")
	doc.SetTone(domain.ElDailyAdviceText, domain.ToneMain)
	doc.SetActive(domain.PageElement(domain.ScreenHome), true)
	doc.SetDimmed(domain.ElNumeroContent, true)
	doc.SetDimmed(domain.ElNumeroContent, false)

	assert.Equal(t, []domain.Patch{
		{Op: domain.PatchTheme, Value: "default"},
		{Op: domain.PatchText, Element: domain.ElDailyAdviceText, Value: "Совет"},
		{Op: domain.PatchTone, Element: domain.ElDailyAdviceText, Value: "main"},
		{Op: domain.PatchValue, Element: domain.ElNameInput, Value: "Анна"},
		{Op: domain.PatchActive, Element: domain.PageElement(domain.ScreenHome), Flag: true},
	}, doc.Snapshot())
}
