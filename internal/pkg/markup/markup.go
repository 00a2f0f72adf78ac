// Package markup превращает упрощённую разметку ответов бэкенда (**жирный**, *курсив*,
// переводы строк) в HTML для вставки в документ.
//
// Преобразование намеренно не экранирует исходный текст: символы HTML проходят как есть.
package markup

import (
	"regexp"
	"strings"
)

// Rule - одна подстановка конвейера
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Replace string
}

func (r Rule) apply(text string) string {
	return r.Pattern.ReplaceAllString(text, r.Replace)
}

var (
	// Bold должен идти раньше Italic, иначе `*(.*?)*` съест половину пары `**`
	Bold      = Rule{Name: "bold", Pattern: regexp.MustCompile(`\*\*(.*?)\*\*`), Replace: "<b>$1</b>"}
	Italic    = Rule{Name: "italic", Pattern: regexp.MustCompile(`\*(.*?)\*`), Replace: "<i>$1</i>"}
	LineBreak = Rule{Name: "line_break", Pattern: regexp.MustCompile(`\n`), Replace: "<br>"}
)

// Pipeline - упорядоченный список правил, применяется строго по порядку
type Pipeline []Rule

var (
	// Full - разбор натальной карты, совет дня
	Full   = Pipeline{Bold, Italic, LineBreak}
	// Inline - текст отображается с white-space: pre-wrap, переводы строк не трогаем
	Inline = Pipeline{Bold, Italic}
)

func (p Pipeline) Render(text string) string {
	for _, rule := range p {
		text = rule.apply(text)
	}
	return text
}

// Names порядок правил, удобно для логов и тестов
func (p Pipeline) Names() []string {
	names := make([]string, 0, len(p))
	for _, rule := range p {
		names = append(names, rule.Name)
	}
	return names
}

// Render применяет Full
func Render(text string) string {
	return Full.Render(text)
}

const (
	NumberSentinel = "YOUR_NUMBER:"
	UnknownNumber  = "?"
	paragraphBreak = "\n\n"
)

// ParseNumerology выделяет число жизненного пути из ответа вида "YOUR_NUMBER:7\n\nтекст"
func ParseNumerology(text string) (number, body string) {
	if !strings.Contains(text, NumberSentinel) {
		return UnknownNumber, text
	}

	head, rest, _ := strings.Cut(text, paragraphBreak)

	number = UnknownNumber
	if _, value, ok := strings.Cut(head, ":"); ok {
		// "YOUR_NUMBER:7:лишнее" -> "7"
		value, _, _ = strings.Cut(value, ":")
		if value = strings.TrimSpace(value); value != "" {
			number = value
		}
	}

	return number, rest
}
