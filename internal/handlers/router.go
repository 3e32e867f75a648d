package handlers

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Router registers every route:
//   - /health                   → liveness
//   - /ws                       → WebSocket command channel
//   - /api/games                → create a room
//   - /api/games/:code          → public room info
//   - /api/games/:code/join     → join a lobby
//   - /api/games/:code/start    → host starts the game
//   - /api/games/:code/qr       → PNG QR code of the join link
//   - /api/games/:code/role/:playerId → secret role card
func (ctx *Context) Router() http.Handler {
	mux := httprouter.New()

	mux.GET("/health", ctx.HandleHealth)
	mux.GET("/ws", ctx.HandleWS)

	mux.POST("/api/games", ctx.HandleCreateGame)
	mux.GET("/api/games/:code", ctx.HandleGetGame)
	mux.POST("/api/games/:code/join", ctx.HandleJoinGame)
	mux.POST("/api/games/:code/start", ctx.HandleStartGame)
	mux.GET("/api/games/:code/qr", ctx.HandleQR)
	mux.GET("/api/games/:code/role/:playerId", ctx.HandleRole)

	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		ctx.Log.Error("handler panic", zap.String("path", r.URL.Path), zap.Any("panic", v))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}

	return ctx.logRequests(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Unwrap exposes the underlying writer to http.ResponseController
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// logRequests logs one line per HTTP request
func (ctx *Context) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ws" {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		ctx.Log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}
