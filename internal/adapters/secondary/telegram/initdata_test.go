package telegram

import (
	"errors"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "123456:TEST-TOKEN"

func signedInitData(t *testing.T, authDate time.Time) string {
	t.Helper()
	values := url.Values{}
	values.Set("query_id", "AAF")
	values.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))
	values.Set("user", `{"id":42,"first_name":"Анна","photo_url":"https://t.me/i/userpic/1.jpg"}`)
	return Sign(values, testToken)
}

func newTestValidator(cfg *Config, now time.Time) *Validator {
	v := NewValidator(cfg)
	v.now = func() time.Time { return now }
	return v
}

func TestParseEmptyIsGuest(t *testing.T) {
	v := NewValidator(&Config{BotToken: testToken})

	data, err := v.Parse("")
	require.NoError(t, err)
	assert.Nil(t, data.User)
}

func TestParseSigned(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	v := newTestValidator(&Config{BotToken: testToken, MaxAge: time.Hour}, now)

	data, err := v.Parse(signedInitData(t, now.Add(-time.Minute)))
	require.NoError(t, err)

	require.NotNil(t, data.User)
	assert.Equal(t, int64(42), data.User.ID)
	assert.Equal(t, "Анна", data.User.FirstName)
	assert.True(t, data.User.HasPhoto())
	assert.Equal(t, "AAF", data.QueryID)
	assert.Equal(t, now.Add(-time.Minute), data.AuthDate)
}

func TestParseRejectsTampered(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	v := newTestValidator(&Config{BotToken: testToken}, now)

	values, err := url.ParseQuery(signedInitData(t, now))
	require.NoError(t, err)
	values.Set("user", `{"id":1,"first_name":"Злоумышленник"}`)

	_, err = v.Parse(values.Encode())
	assert.True(t, errors.Is(err, domain.ErrInvalidInitData))
}

func TestParseRejectsWrongToken(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	v := newTestValidator(&Config{BotToken: "other:token"}, now)

	_, err := v.Parse(signedInitData(t, now))
	assert.ErrorIs(t, err, domain.ErrInvalidInitData)
}

func TestParseRejectsExpired(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	v := newTestValidator(&Config{BotToken: testToken, MaxAge: time.Hour}, now)

	_, err := v.Parse(signedInitData(t, now.Add(-2*time.Hour)))
	assert.ErrorIs(t, err, domain.ErrInvalidInitData)
}

func TestParseUnsignedAllowed(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "no token", cfg: &Config{}},
		{name: "explicitly allowed", cfg: &Config{BotToken: testToken, AllowUnsigned: "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(tt.cfg)
			data, err := v.Parse(`user=%7B%22id%22%3A7%2C%22first_name%22%3A%22Bob%22%7D`)
			require.NoError(t, err)
			require.NotNil(t, data.User)
			assert.Equal(t, int64(7), data.User.ID)
			assert.False(t, data.User.HasPhoto())
		})
	}
}

func TestParseBrokenUserJSON(t *testing.T) {
	v := NewValidator(&Config{})
	_, err := v.Parse("user=%7Bnot-json")
	assert.ErrorIs(t, err, domain.ErrInvalidInitData)
}
