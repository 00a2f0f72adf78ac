package backend

import (
	"context"
	"fmt"
	"net/http"

	backendAdapter "github.com/admin/tg-bots/astro-miniapp/internal/adapters/secondary/backend"
	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/service"
	"github.com/tidwall/gjson"
)

const (
	natalChartStatusOK = "ok"
	detailPreviewLen   = 300
)

// Service реализует IBackendService поверх Client.Request
type Service struct {
	client *backendAdapter.Client
}

// New создаёт сервис бэкенда мини-приложения
func New(client *backendAdapter.Client) service.IBackendService {
	return &Service{
		client: client,
	}
}

// GetProfile профиль вместе с закэшированными на сервере прогнозами
func (s *Service) GetProfile(ctx context.Context, userID domain.UserID) (*domain.ProfileEnvelope, error) {
	endpoint := fmt.Sprintf(backendAdapter.GetProfile, userID)

	body, err := s.call(ctx, endpoint, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	data := gjson.ParseBytes(body)
	return &domain.ProfileEnvelope{
		FullName:         optionalString(data, "full_name"),
		BirthDate:        optionalString(data, "birth_date"),
		BirthTime:        optionalString(data, "birth_time"),
		BirthPlace:       optionalString(data, "birth_place"),
		Theme:            optionalString(data, "theme"),
		NatalAnalysis:    optionalString(data, "natal_analysis"),
		Numerology:       optionalString(data, "numerology_analysis"),
		DailyAdvice:      optionalString(data, "daily_advice"),
		DailyAffirmation: optionalString(data, "daily_affirmation"),
	}, nil
}

// UpdateProfile сохраняет форму настроек
func (s *Service) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	req := backendAdapter.UpdateProfileRequest{
		UserID:     profile.UserID,
		FullName:   profile.FullName,
		BirthDate:  profile.BirthDate,
		BirthTime:  profile.BirthTime,
		BirthPlace: profile.BirthPlace,
		Theme:      string(profile.Theme),
	}

	resp, err := s.client.Request(ctx, backendAdapter.UpdateProfile, http.MethodPost, req)
	if err != nil {
		return domain.WrapTransportError(backendAdapter.UpdateProfile, err)
	}
	if !resp.OK() {
		return serverError(backendAdapter.UpdateProfile, resp)
	}
	return nil
}

func (s *Service) DailyAdvice(ctx context.Context, userID domain.UserID) (string, error) {
	return s.reply(ctx, backendAdapter.DailyAdvice, userID, backendAdapter.MessageAdvice)
}

func (s *Service) AnalyzeNatalChart(ctx context.Context, userID domain.UserID) (string, error) {
	return s.reply(ctx, backendAdapter.AnalyzeNatalChart, userID, backendAdapter.MessageAnalyze)
}

func (s *Service) Numerology(ctx context.Context, userID domain.UserID) (string, error) {
	return s.reply(ctx, backendAdapter.GetNumerology, userID, backendAdapter.MessageNumerology)
}

func (s *Service) Affirmation(ctx context.Context, userID domain.UserID) (string, error) {
	return s.reply(ctx, backendAdapter.GetAffirmation, userID, backendAdapter.MessageAffirmation)
}

// NatalChart список планет. Успех определяется полем status, а не HTTP-кодом.
func (s *Service) NatalChart(ctx context.Context, userID domain.UserID) (domain.NatalChart, error) {
	endpoint := fmt.Sprintf(backendAdapter.GetNatalChart, userID)

	resp, err := s.client.Request(ctx, endpoint, http.MethodGet, nil)
	if err != nil {
		return nil, domain.WrapTransportError(endpoint, err)
	}
	if !gjson.ValidBytes(resp.Body) {
		return nil, &domain.ServerError{Endpoint: endpoint, Status: resp.StatusCode}
	}

	data := gjson.ParseBytes(resp.Body)
	if data.Get("status").String() != natalChartStatusOK {
		return nil, &domain.ServerError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Detail:   data.Get("error").String(),
		}
	}

	planets := data.Get("planets").Array()
	chart := make(domain.NatalChart, 0, len(planets))
	for _, p := range planets {
		chart = append(chart, domain.Planet{
			Icon: p.Get("icon").String(),
			Name: p.Get("name").String(),
			Sign: p.Get("sign").String(),
			Deg:  p.Get("deg").String(),
		})
	}

	return chart, nil
}

// Ping проверка доступности бэкенда для /ready
func (s *Service) Ping(ctx context.Context) error {
	resp, err := s.client.Request(ctx, backendAdapter.Health, http.MethodGet, nil)
	if err != nil {
		return domain.WrapTransportError(backendAdapter.Health, err)
	}
	if !resp.OK() {
		return serverError(backendAdapter.Health, resp)
	}
	return nil
}

func (s *Service) reply(ctx context.Context, endpoint string, userID domain.UserID, message string) (string, error) {
	body, err := s.call(ctx, endpoint, http.MethodPost, backendAdapter.ChatRequest{
		UserID:  userID,
		Message: message,
	})
	if err != nil {
		return "", err
	}

	reply := gjson.GetBytes(body, "reply")
	if reply.Type != gjson.String {
		return "", &domain.ServerError{Endpoint: endpoint, Status: http.StatusOK, Detail: "пустой ответ"}
	}
	return reply.Str, nil
}

// call выполняет запрос и возвращает тело успешного JSON-ответа
func (s *Service) call(ctx context.Context, endpoint, method string, body any) ([]byte, error) {
	resp, err := s.client.Request(ctx, endpoint, method, body)
	if err != nil {
		return nil, domain.WrapTransportError(endpoint, err)
	}
	if !resp.OK() {
		return nil, serverError(endpoint, resp)
	}
	if !gjson.ValidBytes(resp.Body) {
		return nil, &domain.ServerError{Endpoint: endpoint, Status: resp.StatusCode, Detail: "некорректный ответ"}
	}
	return resp.Body, nil
}

// serverError достаёт detail из ответа FastAPI: строку или список ошибок валидации
func serverError(endpoint string, resp *backendAdapter.Response) error {
	detail := gjson.GetBytes(resp.Body, "detail")

	var text string
	switch {
	case detail.Type == gjson.String:
		text = detail.Str
	case detail.Exists():
		text = detail.Raw
	}
	if len(text) > detailPreviewLen {
		text = text[:detailPreviewLen] + "..."
	}

	return &domain.ServerError{
		Endpoint: endpoint,
		Status:   resp.StatusCode,
		Detail:   text,
	}
}

// optionalString поле есть и это непустая строка; всё остальное - "данных пока нет"
func optionalString(data gjson.Result, path string) *string {
	value := data.Get(path)
	if value.Type != gjson.String || value.Str == "" {
		return nil
	}
	s := value.Str
	return &s
}
