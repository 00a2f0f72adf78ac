package miniapp

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	server "github.com/admin/tg-bots/astro-miniapp/internal/adapters/primary/http"
	"github.com/admin/tg-bots/astro-miniapp/internal/adapters/secondary/telegram"
	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/logger"
	"github.com/admin/tg-bots/astro-miniapp/internal/usecases/practice"
	"github.com/admin/tg-bots/astro-miniapp/internal/usecases/session"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const botToken = "123456:test-token"

type backend struct {
	charts atomic.Int32
}

func (b *backend) GetProfile(ctx context.Context, userID domain.UserID) (*domain.ProfileEnvelope, error) {
	advice := "совет"
	return &domain.ProfileEnvelope{DailyAdvice: &advice}, nil
}

func (b *backend) UpdateProfile(ctx context.Context, profile domain.Profile) error { return nil }

func (b *backend) DailyAdvice(ctx context.Context, userID domain.UserID) (string, error) {
	return "совет", nil
}

func (b *backend) NatalChart(ctx context.Context, userID domain.UserID) (domain.NatalChart, error) {
	b.charts.Add(1)
	return domain.NatalChart{{Icon: "☉", Name: "Солнце", Sign: "Овен", Deg: "1°"}}, nil
}

func (b *backend) AnalyzeNatalChart(ctx context.Context, userID domain.UserID) (string, error) {
	return "разбор", nil
}

func (b *backend) Numerology(ctx context.Context, userID domain.UserID) (string, error) {
	return "YOUR_NUMBER:7\n\nтекст", nil
}

func (b *backend) Affirmation(ctx context.Context, userID domain.UserID) (string, error) {
	return "аффирмация", nil
}

func (b *backend) Ping(ctx context.Context) error { return nil }

func newServer(t *testing.T, tgCfg *telegram.Config) (*httptest.Server, *backend) {
	t.Helper()
	b := &backend{}
	controller := New(
		b,
		telegram.NewValidator(tgCfg),
		nil,
		session.Config{
			RacePolicy:     "last_response",
			OutboundBuffer: 64,
			SaveCloseDelay: time.Second,
			Practice:       practice.DefaultConfig(),
		},
		logger.NewNop(),
	)
	srv := httptest.NewServer(server.NewRouter(&server.Config{}, logger.NewNop(), controller))
	t.Cleanup(srv.Close)
	return srv, b
}

func dial(t *testing.T, srv *httptest.Server, initData string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?init_data=" + url.QueryEscape(initData)
	conn, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil читает кадры, пока match не вернёт true
func readUntil(t *testing.T, conn *websocket.Conn, match func(OutboundMessage) bool) OutboundMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var msg OutboundMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if match(msg) {
			return msg
		}
	}
}

func findPatch(patches []domain.Patch, op domain.PatchOp, id domain.ElementID) (domain.Patch, bool) {
	for _, p := range patches {
		if p.Op == op && p.Element == id {
			return p, true
		}
	}
	return domain.Patch{}, false
}

func hasPatch(op domain.PatchOp, id domain.ElementID, pred func(domain.Patch) bool) func(OutboundMessage) bool {
	return func(msg OutboundMessage) bool {
		p, ok := findPatch(msg.Patches, op, id)
		return ok && pred(p)
	}
}

func sendAction(t *testing.T, conn *websocket.Conn, action domain.Action) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(InboundMessage{Type: MessageAction, Action: &action}))
}

func TestIndex(t *testing.T) {
	srv, _ := newServer(t, &telegram.Config{})

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	for _, id := range []string{"page-home", "page-astro", "settings-modal", "btn-breath", "astro-list"} {
		assert.Contains(t, string(body), `id="`+id+`"`)
	}
}

func TestGuestSession(t *testing.T) {
	srv, b := newServer(t, &telegram.Config{})
	conn := dial(t, srv, "")

	snapshot := readUntil(t, conn, func(m OutboundMessage) bool { return m.Type == MessageSnapshot })
	name, ok := findPatch(snapshot.Patches, domain.PatchText, domain.ElDisplayName)
	require.True(t, ok)
	assert.Equal(t, domain.GuestName, name.Value)

	home, ok := findPatch(snapshot.Patches, domain.PatchActive, domain.PageElement(domain.ScreenHome))
	require.True(t, ok)
	assert.True(t, home.Flag)

	sendAction(t, conn, domain.Action{Type: domain.ActionSwitchTab, Screen: domain.ScreenAstro})
	readUntil(t, conn, hasPatch(domain.PatchActive, domain.PageElement(domain.ScreenAstro), func(p domain.Patch) bool { return p.Flag }))
	readUntil(t, conn, hasPatch(domain.PatchHTML, domain.ElAstroList, func(p domain.Patch) bool {
		return strings.Contains(p.Value, "Солнце")
	}))
	assert.Equal(t, int32(1), b.charts.Load())
}

func TestRejectedActionReply(t *testing.T) {
	srv, _ := newServer(t, &telegram.Config{})
	conn := dial(t, srv, "")
	readUntil(t, conn, func(m OutboundMessage) bool { return m.Type == MessageSnapshot })

	sendAction(t, conn, domain.Action{Type: domain.ActionSwitchTab, Screen: "profile"})
	msg := readUntil(t, conn, func(m OutboundMessage) bool { return m.Type == MessageError })
	assert.Contains(t, msg.Error, "unknown screen")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	msg = readUntil(t, conn, func(m OutboundMessage) bool { return m.Type == MessageError })
	assert.Contains(t, msg.Error, "malformed message")
}

func TestSignedInitData(t *testing.T) {
	srv, _ := newServer(t, &telegram.Config{BotToken: botToken, MaxAge: time.Hour})

	values := url.Values{}
	values.Set("user", `{"id":42,"first_name":"Анна"}`)
	values.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))
	conn := dial(t, srv, telegram.Sign(values, botToken))

	snapshot := readUntil(t, conn, func(m OutboundMessage) bool { return m.Type == MessageSnapshot })
	name, ok := findPatch(snapshot.Patches, domain.PatchText, domain.ElDisplayName)
	require.True(t, ok)
	assert.Equal(t, "Анна", name.Value)
}

func TestRejectsForgedInitData(t *testing.T) {
	srv, _ := newServer(t, &telegram.Config{BotToken: botToken, MaxAge: time.Hour})

	values := url.Values{}
	values.Set("user", `{"id":42,"first_name":"Анна"}`)
	values.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))
	values.Set("hash", strings.Repeat("0", 64))

	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?init_data=" + url.QueryEscape(values.Encode())
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTabSwitchArrivesInOneFrame(t *testing.T) {
	srv, _ := newServer(t, &telegram.Config{})
	conn := dial(t, srv, "")
	readUntil(t, conn, func(m OutboundMessage) bool { return m.Type == MessageSnapshot })

	sendAction(t, conn, domain.Action{Type: domain.ActionSwitchTab, Screen: domain.ScreenPractices})

	// первый кадр, затронувший прежний экран, обязан нести всё переключение
	frame := readUntil(t, conn, func(m OutboundMessage) bool {
		_, ok := findPatch(m.Patches, domain.PatchActive, domain.PageElement(domain.ScreenHome))
		return ok
	})

	assert.Equal(t, MessagePatch, frame.Type)
	for _, screen := range domain.Screens() {
		want := screen == domain.ScreenPractices

		page, ok := findPatch(frame.Patches, domain.PatchActive, domain.PageElement(screen))
		require.True(t, ok, screen)
		assert.Equal(t, want, page.Flag, screen)

		nav, ok := findPatch(frame.Patches, domain.PatchActive, domain.NavElement(screen))
		require.True(t, ok, screen)
		assert.Equal(t, want, nav.Flag, screen)
	}
	haptic, ok := findPatch(frame.Patches, domain.PatchHaptic, "")
	require.True(t, ok)
	assert.Equal(t, "impact:light", haptic.Value)
}
