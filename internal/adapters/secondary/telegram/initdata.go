package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
)

// дока - https://core.telegram.org/bots/webapps#validating-data-received-via-the-mini-app

const webAppDataKey = "WebAppData"

// InitData разобранная строка Telegram.WebApp.initData
type InitData struct {
	QueryID  string
	User     *domain.TelegramUser
	AuthDate time.Time
}

// Validator разбирает и проверяет initData
type Validator struct {
	cfg *Config
	now func() time.Time
}

func NewValidator(cfg *Config) *Validator {
	return &Validator{
		cfg: cfg,
		now: time.Now,
	}
}

// Parse возвращает пустой InitData для пустой строки: клиент открыт вне Telegram, работаем как гость.
// При заданном токене бота неподписанные и просроченные данные отклоняются.
func (v *Validator) Parse(raw string) (*InitData, error) {
	if raw == "" {
		return &InitData{}, nil
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInitData, err)
	}

	if v.cfg.ShouldVerify() {
		if !verify(values, v.cfg.BotToken) {
			return nil, fmt.Errorf("%w: hash mismatch", domain.ErrInvalidInitData)
		}
	}

	data := &InitData{
		QueryID: values.Get("query_id"),
	}

	if authDate := values.Get("auth_date"); authDate != "" {
		sec, err := strconv.ParseInt(authDate, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: auth_date: %v", domain.ErrInvalidInitData, err)
		}
		data.AuthDate = time.Unix(sec, 0)
	}

	if v.cfg.ShouldVerify() && v.cfg.MaxAge > 0 {
		if data.AuthDate.IsZero() || v.now().Sub(data.AuthDate) > v.cfg.MaxAge {
			return nil, fmt.Errorf("%w: expired", domain.ErrInvalidInitData)
		}
	}

	if rawUser := values.Get("user"); rawUser != "" {
		var user domain.TelegramUser
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
			return nil, fmt.Errorf("%w: user: %v", domain.ErrInvalidInitData, err)
		}
		if user.ID != 0 {
			data.User = &user
		}
	}

	return data, nil
}

// Sign подписывает набор полей так же, как это делает Telegram. Нужен для локальной отладки и тестов.
func Sign(values url.Values, botToken string) string {
	signed := url.Values{}
	for k, v := range values {
		signed[k] = v
	}
	signed.Set("hash", hex.EncodeToString(checkHash(values, botToken)))
	return signed.Encode()
}

func verify(values url.Values, botToken string) bool {
	got, err := hex.DecodeString(values.Get("hash"))
	if err != nil || len(got) == 0 {
		return false
	}
	return hmac.Equal(got, checkHash(values, botToken))
}

// checkHash HMAC от data-check-string ключом HMAC_SHA256("WebAppData", token)
func checkHash(values url.Values, botToken string) []byte {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k != "hash" {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}

	secret := hmac.New(sha256.New, []byte(webAppDataKey))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))
	return mac.Sum(nil)
}
