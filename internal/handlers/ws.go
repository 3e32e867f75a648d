package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aaronzipp/banker-and-robber/internal/game"
	"github.com/aaronzipp/banker-and-robber/internal/hub"
)

const (
	pingInterval = 15 * time.Second
	writeTimeout = 5 * time.Second
	readLimit    = 64 << 10
)

// HandleWS upgrades the request and runs the connection until it closes
func (ctx *Context) HandleWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: ctx.Config.OriginAllowlist,
	})
	if err != nil {
		ctx.Log.Warn("websocket accept failed", zap.Error(err))
		return
	}
	conn.SetReadLimit(readLimit)

	client := hub.NewClient()
	connCtx, cancel := context.WithCancel(r.Context())
	defer func() {
		cancel()
		ctx.disconnect(client)
		_ = conn.Close(websocket.StatusNormalClosure, "bye")
	}()

	ctx.Log.Debug("client connected", zap.String("remote", r.RemoteAddr))
	go ctx.writeLoop(connCtx, conn, client)

	for {
		_, data, err := conn.Read(connCtx)
		if err != nil {
			if status := websocket.CloseStatus(err); status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				ctx.Log.Debug("client read ended", zap.Error(err))
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil || env.Type == "" {
			ctx.reportError(client, "", game.NewValidationError("Invalid data format"))
			continue
		}
		ctx.Dispatch(client, env)
	}
}

// writeLoop drains the client's queue onto the socket and keeps it alive
func (ctx *Context) writeLoop(connCtx context.Context, conn *websocket.Conn, client *hub.Client) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	for {
		select {
		case <-connCtx.Done():
			return
		case msg := <-client.Send:
			wctx, cancel := context.WithTimeout(connCtx, writeTimeout)
			err := wsjson.Write(wctx, conn, msg)
			cancel()
			if err != nil {
				ctx.Log.Debug("write failed", zap.String("event", msg.Event), zap.Error(err))
				_ = conn.Close(websocket.StatusInternalError, "write failed")
				return
			}
		case <-ping.C:
			pctx, cancel := context.WithTimeout(connCtx, writeTimeout)
			err := conn.Ping(pctx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
