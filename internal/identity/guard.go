package identity

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"IdentStore/pkg/kit"
)

// HeaderName is the request header carrying the caller's identifier.
const HeaderName = "uuid"

const (
	msgMissing = "Please pass your identifier"
	msgInvalid = "Invalid identifier"
)

type ctxKey string

const ownerKey ctxKey = "owner"

// OwnerFromContext returns the identifier the guard validated for this request.
func OwnerFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ownerKey).(uuid.UUID)
	return id, ok
}

// RequireOwner rejects requests whose uuid header is absent, malformed, or
// was never issued by the registry. On success the parsed identifier is
// placed in the request context for the handler.
func RequireOwner(reg *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(HeaderName)
			if raw == "" {
				kit.WriteError(w, r, http.StatusForbidden, msgMissing, nil)
				return
			}

			id, err := uuid.Parse(raw)
			if err != nil {
				kit.WriteError(w, r, http.StatusForbidden, msgInvalid, nil)
				return
			}

			if _, ok := reg.Lookup(id); !ok {
				kit.WriteError(w, r, http.StatusForbidden, msgInvalid, nil)
				return
			}

			ctx := context.WithValue(r.Context(), ownerKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
