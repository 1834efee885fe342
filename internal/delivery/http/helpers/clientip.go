package helpers

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the caller's address. With trustedProxies > 0 it reads the
// X-Forwarded-For entry appended by the outermost trusted proxy, so entries a
// client prepends itself are ignored. Otherwise it uses the connection address.
func ClientIP(r *http.Request, trustedProxies int) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && trustedProxies > 0 {
		parts := strings.Split(xff, ",")
		idx := max(len(parts)-trustedProxies, 0)
		if ip := strings.TrimSpace(parts[idx]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
