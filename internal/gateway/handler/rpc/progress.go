package rpc

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"readiness/internal/progress"
)

const (
	progressWSWriteWait = 10 * time.Second
	progressWSPongWait  = 60 * time.Second
	progressWSPingEvery = (progressWSPongWait * 9) / 10
)

var progressWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// ProgressHandler streams run progress events over a websocket, one
// subscription per fingerprint.
type ProgressHandler struct {
	hub *progress.Hub
	log *zap.Logger
}

func NewProgressHandler(hub *progress.Hub, log *zap.Logger) *ProgressHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProgressHandler{hub: hub, log: log}
}

func (h *ProgressHandler) HandleProgressWS(w http.ResponseWriter, r *http.Request) {
	fingerprint := strings.TrimSpace(r.URL.Query().Get("fingerprint"))
	if fingerprint == "" {
		http.Error(w, "fingerprint is required", http.StatusBadRequest)
		return
	}

	conn, err := progressWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(progressWSPongWait)); err != nil {
		h.log.Warn("progress ws set read deadline failed", zap.Error(err))
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(progressWSPongWait))
	})

	events, cancel := h.hub.Subscribe(fingerprint)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Reads are discarded; the read loop only notices disconnects and
		// keeps the pong handler running.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(progressWSPingEvery)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.SetWriteDeadline(time.Now().Add(progressWSWriteWait)); err != nil {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(progressWSWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
