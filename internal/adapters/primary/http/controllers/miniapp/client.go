package miniapp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/admin/tg-bots/astro-miniapp/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/tg-bots/astro-miniapp/internal/adapters/secondary/webview"
	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/eventloop"
	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/logger"
	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/metrics"
	"github.com/admin/tg-bots/astro-miniapp/internal/usecases/session"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 16 << 10
)

// client - одно WebSocket-подключение и его исходящая очередь
type client struct {
	ws       *websocket.Conn
	outbound chan OutboundMessage
	live     atomic.Bool // до снапшота патчи не отправляются, они войдут в него
	cancel   context.CancelFunc
	log      *slog.Logger

	// патчи текущей задачи цикла, трогается только из горутины цикла
	batch []domain.Patch
}

// serve держит сессию до закрытия соединения или отмены ctx
func (c *Controller) serve(parent context.Context, conn *websocket.Conn, identity domain.Identity) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	cl := &client{
		ws:       conn,
		outbound: make(chan OutboundMessage, max(c.Cfg.OutboundBuffer, 1)),
		cancel:   cancel,
		log:      c.Log,
	}

	loop := eventloop.New(c.Log)
	doc := webview.New(cl.collect)
	// одна задача цикла - один кадр: переключение вкладки или блокировка секции
	// приходят в браузер целиком, без промежуточных состояний
	loop.AfterTask(cl.flush)

	sess, err := session.New(c.Cfg, identity, session.Deps{
		Backend:   c.Backend,
		Document:  doc,
		Haptics:   doc,
		Loop:      loop,
		Requests:  inmemory.NewRequestCache(),
		Analytics: c.Analytics,
		Log:       c.Log,
	})
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}
	cl.log = logger.ForSession(c.Log, sess.ID, int64(identity.UserID))

	metrics.SessionOpened()
	defer metrics.SessionClosed()

	loop.Post(func() {
		sess.Start(ctx)
		cl.push(snapshotMessage(doc.Snapshot()))
		cl.live.Store(true)
	})

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(gCtx)
	})
	g.Go(func() error {
		defer cancel()
		return cl.read(gCtx, func(action domain.Action) {
			loop.Post(func() {
				if err := sess.Dispatch(gCtx, action); err != nil {
					cl.log.Debug("action rejected", "type", action.Type, "error", err)
					cl.reply(errorMessage(err))
				}
			})
		})
	})
	g.Go(func() error {
		defer cancel()
		return cl.write(gCtx)
	})

	err = g.Wait()

	// цикл уже остановлен, Close выполняется без конкурентов.
	// Запросы в полёте не ждём: их завершения отбросит закрытый цикл.
	sess.Close()

	return err
}

func (cl *client) collect(patch domain.Patch) {
	if cl.live.Load() {
		cl.batch = append(cl.batch, patch)
	}
}

func (cl *client) flush() {
	if len(cl.batch) == 0 {
		return
	}
	cl.push(patchMessage(cl.batch))
	cl.batch = nil
}

// push отправляет состояние документа. Переполнение очереди означает, что клиент
// не успевает читать, а потерянный патч рассинхронизирует документ: рвём сессию.
func (cl *client) push(msg OutboundMessage) {
	select {
	case cl.outbound <- msg:
	default:
		cl.log.Warn("outbound queue overflow, closing session", "buffer", cap(cl.outbound))
		cl.cancel()
	}
}

// reply ответ на конкретное действие, его можно потерять
func (cl *client) reply(msg OutboundMessage) {
	select {
	case cl.outbound <- msg:
	default:
	}
}

func (cl *client) read(ctx context.Context, dispatch func(domain.Action)) error {
	cl.ws.SetReadLimit(maxMessageSize)
	_ = cl.ws.SetReadDeadline(time.Now().Add(pongWait))
	cl.ws.SetPongHandler(func(string) error {
		return cl.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := cl.ws.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				cl.log.Warn("websocket read failed", "error", err)
			}
			return nil
		}
		_ = cl.ws.SetReadDeadline(time.Now().Add(pongWait))

		var msg InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			cl.reply(errorMessage(fmt.Errorf("malformed message: %w", err)))
			continue
		}
		if msg.Type != MessageAction || msg.Action == nil {
			cl.log.Debug("unexpected message", "type", msg.Type)
			continue
		}

		dispatch(*msg.Action)
	}
}

func (cl *client) write(ctx context.Context) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	// закрытие соединения разблокирует read
	defer cl.ws.Close()

	for {
		select {
		case <-ctx.Done():
			_ = cl.ws.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait),
			)
			return nil

		case msg := <-cl.outbound:
			_ = cl.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.ws.WriteJSON(msg); err != nil {
				return fmt.Errorf("write %s: %w", msg.Type, err)
			}

		case <-ticker.C:
			if err := cl.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
		}
	}
}
