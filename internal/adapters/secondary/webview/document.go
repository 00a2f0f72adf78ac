package webview

import (
	"maps"
	"slices"
	"sync"

	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
)

// Element - состояние одного элемента разметки
type Element struct {
	Content  string
	IsHTML   bool
	Value    string
	Dimmed   bool
	Disabled bool
	Tone     domain.Tone
	Active   bool
}

// Document серверная копия DOM мини-приложения.
// Каждая мутация превращается в патч и уходит в emit; Snapshot восстанавливает
// полное состояние для переподключившегося клиента.
type Document struct {
	mu       sync.RWMutex
	elements map[domain.ElementID]*Element
	theme    domain.Theme
	emit     func(domain.Patch)
}

// New создаёт документ, emit может быть nil
func New(emit func(domain.Patch)) *Document {
	return &Document{
		elements: make(map[domain.ElementID]*Element),
		theme:    domain.ThemeDefault,
		emit:     emit,
	}
}

func (d *Document) SetText(id domain.ElementID, text string) {
	d.mutate(id, domain.Patch{Op: domain.PatchText, Element: id, Value: text}, func(el *Element) {
		el.Content = text
		el.IsHTML = false
	})
}

func (d *Document) SetHTML(id domain.ElementID, html string) {
	d.mutate(id, domain.Patch{Op: domain.PatchHTML, Element: id, Value: html}, func(el *Element) {
		el.Content = html
		el.IsHTML = true
	})
}

func (d *Document) SetValue(id domain.ElementID, value string) {
	d.mutate(id, domain.Patch{Op: domain.PatchValue, Element: id, Value: value}, func(el *Element) {
		el.Value = value
	})
}

func (d *Document) SetDimmed(id domain.ElementID, dimmed bool) {
	d.mutate(id, domain.Patch{Op: domain.PatchDim, Element: id, Flag: dimmed}, func(el *Element) {
		el.Dimmed = dimmed
	})
}

func (d *Document) SetDisabled(id domain.ElementID, disabled bool) {
	d.mutate(id, domain.Patch{Op: domain.PatchDisable, Element: id, Flag: disabled}, func(el *Element) {
		el.Disabled = disabled
	})
}

func (d *Document) SetTone(id domain.ElementID, tone domain.Tone) {
	d.mutate(id, domain.Patch{Op: domain.PatchTone, Element: id, Value: string(tone)}, func(el *Element) {
		el.Tone = tone
	})
}

func (d *Document) SetActive(id domain.ElementID, active bool) {
	d.mutate(id, domain.Patch{Op: domain.PatchActive, Element: id, Flag: active}, func(el *Element) {
		el.Active = active
	})
}

// SetTheme тема вешается на body, default снимает атрибут
func (d *Document) SetTheme(theme domain.Theme) {
	if theme == "" {
		theme = domain.ThemeDefault
	}

	d.mu.Lock()
	d.theme = theme
	d.mu.Unlock()

	d.send(domain.Patch{Op: domain.PatchTheme, Value: string(theme)})
}

// Signal реализует IHaptics: сигнал уходит клиенту, в состоянии не хранится
func (d *Document) Signal(signal domain.HapticSignal) {
	d.send(domain.Patch{Op: domain.PatchHaptic, Value: signal.String()})
}

// Element копия состояния элемента
func (d *Document) Element(id domain.ElementID) Element {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if el, ok := d.elements[id]; ok {
		return *el
	}
	return Element{}
}

func (d *Document) Theme() domain.Theme {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.theme
}

// Snapshot полный набор патчей, воспроизводящий текущее состояние
func (d *Document) Snapshot() []domain.Patch {
	d.mu.RLock()
	defer d.mu.RUnlock()

	patches := make([]domain.Patch, 0, len(d.elements)*2+1)
	patches = append(patches, domain.Patch{Op: domain.PatchTheme, Value: string(d.theme)})

	for _, id := range slices.Sorted(maps.Keys(d.elements)) {
		el := d.elements[id]

		contentOp := domain.PatchText
		if el.IsHTML {
			contentOp = domain.PatchHTML
		}
		if el.Content != "" {
			patches = append(patches, domain.Patch{Op: contentOp, Element: id, Value: el.Content})
		}
		if el.Value != "" {
			patches = append(patches, domain.Patch{Op: domain.PatchValue, Element: id, Value: el.Value})
		}
		if el.Tone != domain.ToneNone {
			patches = append(patches, domain.Patch{Op: domain.PatchTone, Element: id, Value: string(el.Tone)})
		}
		if el.Dimmed {
			patches = append(patches, domain.Patch{Op: domain.PatchDim, Element: id, Flag: true})
		}
		if el.Disabled {
			patches = append(patches, domain.Patch{Op: domain.PatchDisable, Element: id, Flag: true})
		}
		if el.Active {
			patches = append(patches, domain.Patch{Op: domain.PatchActive, Element: id, Flag: true})
		}
	}

	return patches
}

func (d *Document) mutate(id domain.ElementID, patch domain.Patch, apply func(el *Element)) {
	d.mu.Lock()
	el, ok := d.elements[id]
	if !ok {
		el = &Element{}
		d.elements[id] = el
	}
	apply(el)
	d.mu.Unlock()

	d.send(patch)
}

func (d *Document) send(patch domain.Patch) {
	if d.emit != nil {
		d.emit(patch)
	}
}
