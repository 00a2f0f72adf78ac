package backend

import "github.com/admin/tg-bots/astro-miniapp/internal/domain"

// ChatRequest тело генерирующих эндпоинтов (daily_advice, analyze_natal_chart, ...)
type ChatRequest struct {
	UserID  domain.UserID `json:"user_id"`
	Message string        `json:"message"`
}

// Значения поля message, которые ждёт бэкенд
const (
	MessageAdvice      = "advice"
	MessageAnalyze     = "analyze"
	MessageNumerology  = "numero"
	MessageAffirmation = "affirmation"
)

// UpdateProfileRequest пустые поля рождения уходят как null
type UpdateProfileRequest struct {
	UserID     domain.UserID `json:"user_id"`
	FullName   string        `json:"full_name"`
	BirthDate  *string       `json:"birth_date"`
	BirthTime  *string       `json:"birth_time"`
	BirthPlace *string       `json:"birth_place"`
	Theme      string        `json:"theme"`
}

// Response сырой ответ бэкенда, статус проверяет вызывающий
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
