package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator renders PNG QR codes at Size pixels (256 when unset).
type DefaultQRGenerator struct {
	Size int
}

func (g DefaultQRGenerator) Generate(content string) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}

func tableOrderURL(baseURL, token string) string {
	return fmt.Sprintf("%s/order?token=%s", strings.TrimRight(baseURL, "/"), url.QueryEscape(token))
}

func waitlistURL(baseURL string, restaurantID uuid.UUID, token string) string {
	return fmt.Sprintf("%s/waitlist?restaurant=%s&token=%s",
		strings.TrimRight(baseURL, "/"), restaurantID, url.QueryEscape(token))
}
