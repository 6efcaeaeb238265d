package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClientIP identifies the caller for rate limiting: the first X-Forwarded-For
// entry when present, otherwise the connection's remote address.
func ClientIP(c *fiber.Ctx) string {
	for _, ip := range c.IPs() {
		if ip = strings.TrimSpace(ip); ip != "" {
			return ip
		}
	}
	return c.IP()
}
