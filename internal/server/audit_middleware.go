package server

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"
)

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := AuditLogEntry{
			Timestamp: time.Now().UTC(),
			Method:    r.Method,
			Path:      r.URL.Path,
		}

		if token := bearerToken(r); token != "" {
			if user, ok := s.identity.Authenticate(token); ok {
				entry.UserID = user.ID
			}
		}

		if strings.Contains(r.URL.Path, "/orders/") {
			parts := strings.Split(r.URL.Path, "/")
			for i, part := range parts {
				if part == "orders" && i+1 < len(parts) {
					entry.OrderID = parts[i+1]
					break
				}
			}
		}

		if r.Body != nil {
			requestBody, _ := io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = string(requestBody)
		}

		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r)

		entry.StatusCode = wrw.GetStatusCode()
		entry.Response = string(wrw.GetBody())
		entry.ResponseBytes = wrw.GetBytesWritten()

		s.AuditManager.LogEntry(r.Context(), entry)
	})
}
