package httpx

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/ariefcatur/go-storefront-checkout.git/internal/auth"
)

type ctxKey int

const identityKey ctxKey = iota

// WithIdentity resolves the bearer token (if any) and stores the verdict in
// the request context. No token means anonymous, not an error.
func WithIdentity(v auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := v.Verify(r.Context(), bearerToken(r))
			if err != nil {
				log.Printf("verify token: %v", err)
				writeError(w, http.StatusInternalServerError, "authentication unavailable")
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identity returns the caller identity set by WithIdentity; zero value means
// anonymous.
func Identity(r *http.Request) auth.Identity {
	id, _ := r.Context().Value(identityKey).(auth.Identity)
	return id
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

// requireUser writes a 401 and returns "" when the caller is anonymous.
func requireUser(w http.ResponseWriter, r *http.Request) string {
	id := Identity(r)
	if id.Anonymous() {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return ""
	}
	return id.UserID
}
