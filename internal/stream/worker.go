package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dorive/FiggieMachine/internal/event"
	"github.com/dorive/FiggieMachine/internal/infra"
)

// Worker handles the venue websocket connection using BaseWSWorker. Each
// decoded frame is stamped with a sequence number and pushed to the
// session controller's inbox.
type Worker struct {
	base     *infra.BaseWSWorker
	url      string
	playerID string
	inbox    chan<- event.Event
	seq      atomic.Uint64
}

// NewWorker creates a stream worker for one player subscription.
func NewWorker(url, playerID string, inbox chan<- event.Event) *Worker {
	w := &Worker{
		url:      url,
		playerID: playerID,
		inbox:    inbox,
	}
	w.base = infra.NewBaseWSWorker(w)
	return w
}

// ID returns the worker identifier.
func (w *Worker) ID() string { return "FIGGIE" }

// GetURL returns the venue websocket endpoint.
func (w *Worker) GetURL() string { return w.url }

// Connect starts the connection loop.
func (w *Worker) Connect(ctx context.Context) {
	w.base.Start(ctx)
}

// Disconnect terminates the connection.
func (w *Worker) Disconnect() {
	w.base.Stop()
}

// OnConnect subscribes the player to the feed. The venue answers with a
// status frame handled in OnMessage.
func (w *Worker) OnConnect(ctx context.Context, conn *websocket.Conn) error {
	sub := map[string]any{
		"action":   "subscribe",
		"playerid": w.playerID,
	}
	b, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	slog.Info("Subscribing to stream", "player", w.playerID)
	return w.base.Write(websocket.TextMessage, b)
}

// OnMessage decodes one frame and forwards the event. Malformed frames
// are dropped: one bad message must not take the feed down.
func (w *Worker) OnMessage(ctx context.Context, msg []byte) {
	ev, status, err := decodeFrame(msg)
	if err != nil {
		slog.Warn("Dropping malformed frame", "error", err)
		return
	}
	if status != "" {
		w.handleStatus(status)
		return
	}

	stamp(ev, w.seq.Add(1), time.Now().UnixMicro())

	select {
	case w.inbox <- ev:
	default:
		slog.Error("Inbox full, dropping event",
			"kind", ev.GetKind(), "seq", ev.GetSeq())
	}
}

// OnPing keeps the connection alive with a protocol-level ping.
func (w *Worker) OnPing(ctx context.Context, conn *websocket.Conn) error {
	return w.base.Write(websocket.PingMessage, nil)
}

func (w *Worker) handleStatus(status string) {
	switch status {
	case statusSuccess:
		slog.Info("Subscribed to the stream")
	case statusUnknown:
		slog.Error("Unknown player, register to the testnet first")
	case statusUnauthorized:
		slog.Error("Unauthorized action, subscription failed")
	case statusParseError:
		slog.Error("Subscription request was malformed")
	default:
		slog.Warn("Unrecognized stream status", "status", status)
	}
}

func stamp(ev event.Event, seq uint64, ts int64) {
	switch e := ev.(type) {
	case *event.DealtEvent:
		e.Seq, e.Ts = seq, ts
	case *event.UpdateEvent:
		e.Seq, e.Ts = seq, ts
	case *event.EndRoundEvent:
		e.Seq, e.Ts = seq, ts
	case *event.EndGameEvent:
		e.Seq, e.Ts = seq, ts
	}
}
