package metadata

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/requestcontext"
)

// ClientMetadata extracts client IP address and User-Agent from the request
// and adds them to the context for use by handlers and services.
// This middleware should be applied early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientMetadata(r.Context(), ClientIPFromRequest(r), SummarizeUserAgent(r.Header.Get("User-Agent")))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SummarizeUserAgent reduces a raw User-Agent to "browser version (os)" for
// audit records. Bots keep their name; an empty header stays empty.
func SummarizeUserAgent(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if ua.Bot() {
		return "bot: " + name
	}
	var b strings.Builder
	b.WriteString(name)
	if version != "" {
		b.WriteString(" " + version)
	}
	if osName := ua.OS(); osName != "" {
		b.WriteString(" (" + osName + ")")
	}
	if ua.Mobile() {
		b.WriteString(" mobile")
	}
	if b.Len() == 0 {
		return raw
	}
	return b.String()
}

// ClientIPFromRequest extracts the real client IP from the request, handling proxies and load balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs (client, proxy1, proxy2, ...)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "ip:port", or "[::1]:port" for IPv6
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}

	return "unknown"
}
