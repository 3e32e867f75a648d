package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aaronzipp/banker-and-robber/internal/hub"
	"github.com/aaronzipp/banker-and-robber/internal/models"
)

type wireMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func dialWS(t *testing.T, ctx context.Context, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func readUntil(t *testing.T, ctx context.Context, conn *websocket.Conn, event string) wireMessage {
	t.Helper()
	for {
		var msg wireMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			t.Fatalf("read waiting for %s: %v", event, err)
		}
		if msg.Type == event {
			return msg
		}
	}
}

func TestWebSocketRoundTrip(t *testing.T) {
	appCtx := newQuietContext(t)
	srv := httptest.NewServer(appCtx.Router())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	host := dialWS(t, ctx, srv)
	if err := wsjson.Write(ctx, host, map[string]any{
		"type": CmdCreateGame,
		"data": CreateGameRequest{HostName: "Alice"},
	}); err != nil {
		t.Fatal(err)
	}

	var created struct {
		RoomCode string          `json:"roomCode"`
		PlayerID string          `json:"playerId"`
		Game     models.GameView `json:"game"`
	}
	msg := readUntil(t, ctx, host, hub.EventGameCreated)
	if err := json.Unmarshal(msg.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.Game.Status != models.StatusLobby || created.PlayerID == "" {
		t.Fatalf("created = %+v", created)
	}

	guest := dialWS(t, ctx, srv)
	if err := wsjson.Write(ctx, guest, map[string]any{
		"type": CmdJoinGame,
		"data": JoinGameRequest{RoomCode: created.RoomCode, PlayerName: "Bob"},
	}); err != nil {
		t.Fatal(err)
	}
	readUntil(t, ctx, guest, hub.EventGameJoined)

	var update models.GameView
	msg = readUntil(t, ctx, host, hub.EventGameUpdated)
	if err := json.Unmarshal(msg.Data, &update); err != nil {
		t.Fatal(err)
	}
	if len(update.Players) != 2 {
		t.Fatalf("players = %+v", update.Players)
	}

	// garbage is answered, not fatal to the connection
	if err := guest.Write(ctx, websocket.MessageText, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	msg = readUntil(t, ctx, guest, hub.EventErrorMessage)
	var text string
	if err := json.Unmarshal(msg.Data, &text); err != nil || text != "Invalid data format" {
		t.Fatalf("error = %s", msg.Data)
	}

	// closing the guest's socket marks them disconnected for the host
	_ = guest.Close(websocket.StatusNormalClosure, "")
	msg = readUntil(t, ctx, host, hub.EventPlayerPresence)
	var presence struct {
		PlayerID  string `json:"playerId"`
		Connected bool   `json:"connected"`
	}
	if err := json.Unmarshal(msg.Data, &presence); err != nil || presence.Connected {
		t.Fatalf("presence = %s", msg.Data)
	}
}
