package backend

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/metrics"
)

const (
	GetProfile        = "/api/get_profile/%d"
	UpdateProfile     = "/api/update_profile"
	DailyAdvice       = "/api/daily_advice"
	GetNatalChart     = "/api/get_natal_chart/%d"
	AnalyzeNatalChart = "/api/analyze_natal_chart"
	GetNumerology     = "/api/get_numerology"
	GetAffirmation    = "/api/get_affirmation"
	Health            = "/api/health"
)

// truncateString обрезает строку до указанной длины
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Client - обёртка над запросами к бэкенду мини-приложения
type Client struct {
	cfg        *Config
	HTTPClient *http.Client
	Log        *slog.Logger
}

// NewClient создаёт клиент бэкенда. Таймаута нет: запрос либо завершается, либо падает на транспорте.
func NewClient(cfg *Config, log *slog.Logger) *Client {
	transport := &http.Transport{}

	if cfg.ShouldSkipSSL() {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &Client{
		cfg: cfg,
		HTTPClient: &http.Client{
			Transport: transport,
		},
		Log: log,
	}
}

// buildURL собирает полный URL из BaseURL и endpoint
func (c *Client) buildURL(endpoint string) string {
	return strings.TrimSuffix(c.cfg.BaseURL, "/") + endpoint
}

// Request выполняет запрос к бэкенду.
//
// Запрос отвязан от отмены ctx (keepalive): закрытие сессии не обрывает уже ушедший запрос.
// body сериализуется в JSON, но Content-Type не выставляется - браузерный клиент шлёт
// такие запросы как simple request без preflight, бэкенд парсит тело вручную.
// Не-2xx ответ ошибкой не считается, ошибка возвращается только при сбое транспорта.
func (c *Client) Request(ctx context.Context, endpoint, method string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка сериализации запроса: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(context.WithoutCancel(ctx), method, c.buildURL(endpoint), reader)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	route := routeLabel(endpoint)
	start := time.Now()

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		metrics.ObserveBackendRequest(route, method, 0, time.Since(start))
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	metrics.ObserveBackendRequest(route, method, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}

	if !result.OK() {
		c.Log.Debug("backend returned non-2xx status",
			"endpoint", route,
			"status_code", resp.StatusCode,
			"body_preview", truncateString(string(respBody), 200),
		)
	}

	return result, nil
}

// routeLabel убирает user_id из пути, чтобы не раздувать метки метрик
func routeLabel(endpoint string) string {
	idx := strings.LastIndex(endpoint, "/")
	if idx < 0 {
		return endpoint
	}
	if _, err := strconv.ParseInt(endpoint[idx+1:], 10, 64); err != nil {
		return endpoint
	}
	return endpoint[:idx] + "/:user_id"
}
