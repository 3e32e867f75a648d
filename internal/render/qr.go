package render

import (
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// QRSize is the edge length in pixels of generated QR codes (mobile-friendly)
const QRSize = 320

// QRCode encodes content as a PNG QR code
func QRCode(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, QRSize)
}

// BaseURL derives the public base URL of a request, respecting TLS and
// X-Forwarded-Proto. A configured public URL wins
func BaseURL(r *http.Request, configured string) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

// JoinURL is the link encoded in a room's QR code
func JoinURL(base, roomCode string) string {
	return base + "/lobby/" + roomCode
}
