package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/stackr/internal/common"
	"github.com/dmitrijs2005/stackr/internal/server/models"
)

type contextKey string

const principalKey contextKey = "principal"

// principalFrom returns the authenticated principal attached by requireAuth.
func principalFrom(ctx context.Context) *models.Principal {
	p, _ := ctx.Value(principalKey).(*models.Principal)
	return p
}

// requireAuth verifies the bearer access token and attaches the resolved
// principal to the request context. Requests without a valid token get 401.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, common.ErrInvalidToken)
			return
		}

		principal, err := s.auth.Authenticate(r.Context(), token)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, principal)
		next(w, r.WithContext(ctx))
	}
}
