package httpapi

import (
	"context"
	"net/http"
	"strings"
)

const HeaderUserID = "X-User-Id"

// DefaultUserID stands in for authentication, which is delegated to an
// external collaborator. Callers that do identify themselves use X-User-Id.
const DefaultUserID = "1"

type ctxKey string

const ctxUserID ctxKey = "user_id"

// WithUser resolves the caller identity and stores it in the request context.
func WithUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if uid == "" {
			uid = DefaultUserID
		}
		ctx := context.WithValue(r.Context(), ctxUserID, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserID(ctx context.Context) string {
	if v := ctx.Value(ctxUserID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return DefaultUserID
}
