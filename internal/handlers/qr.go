package handlers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/aaronzipp/banker-and-robber/internal/game"
	"github.com/aaronzipp/banker-and-robber/internal/render"
)

// HandleQR renders a PNG QR code linking to the room's join page
func (ctx *Context) HandleQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	code := normalizeCode(ps.ByName("code"))
	if !ctx.Registry.Exists(code) {
		ctx.writeError(w, game.ErrRoomNotFound)
		return
	}

	url := render.JoinURL(render.BaseURL(r, ctx.Config.PublicURL), code)
	png, err := render.QRCode(url)
	if err != nil {
		ctx.Log.Error("qr generation failed", zap.String("room", code), zap.Error(err))
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}
