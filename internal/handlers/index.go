package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/aaronzipp/banker-and-robber/internal/config"
	"github.com/aaronzipp/banker-and-robber/internal/hub"
	"github.com/aaronzipp/banker-and-robber/internal/store"
)

// Context holds shared application dependencies
type Context struct {
	Registry *store.RoomRegistry
	Hub      *hub.Hub
	Log      *zap.Logger
	Config   config.Config

	// Now and NewID are replaceable in tests
	Now   func() time.Time
	NewID func() string
}

// NewContext wires the handler dependencies
func NewContext(cfg config.Config, registry *store.RoomRegistry, h *hub.Hub, log *zap.Logger) *Context {
	return &Context{
		Registry: registry,
		Hub:      h,
		Log:      log,
		Config:   cfg,
		Now:      time.Now,
		NewID:    func() string { return uuid.New().String() },
	}
}

// HandleHealth reports liveness
func (ctx *Context) HandleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
