package access

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskhive/taskhive/internal/platform/httpx"
)

// Middleware wires bearer-token authentication and role gating for
// HTTP handlers.
type Middleware struct {
	Codec  *Codec
	Gate   Gate
	Logger *slog.Logger
}

// NewMiddleware constructs the middleware around a codec.
func NewMiddleware(codec *Codec, logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return Middleware{Codec: codec, Gate: NewGate(), Logger: logger}
}

// Authenticate extracts the Authorization bearer token, decodes it and
// stores the resulting claims in the request context. A missing header
// is rejected before any decode is attempted. Decode failures are
// reported uniformly; the client never learns whether the token was
// forged, malformed or expired.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "Requires authentication")
			return
		}
		claims, err := m.Codec.Decode(token)
		if err != nil {
			m.Logger.Debug("token rejected", slog.String("path", r.URL.Path))
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "Bad credentials")
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

// RequireAtLeast gates a subtree behind a minimum role. It must be
// mounted after Authenticate.
func (m Middleware) RequireAtLeast(level Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "Requires authentication")
				return
			}
			if err := m.Gate.RequireAtLeast(claims, level); err != nil {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "Permission denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
