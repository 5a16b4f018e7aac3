package auth

import (
	"net/http"
	"strings"

	apperrors "hotelbook/pkg/errors"
	httputil "hotelbook/pkg/http"
	"hotelbook/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// Authenticator resolves the caller identity of every request.
type Authenticator struct {
	verifier    *TokenVerifier
	adminEmails map[string]struct{}
	log         *logger.Logger
}

// NewAuthenticator trusts the gateway identity headers. With a non-empty
// secret, a bearer token is verified and its claims take precedence.
func NewAuthenticator(jwtSecret string, adminEmails []string, log *logger.Logger) *Authenticator {
	a := &Authenticator{
		adminEmails: make(map[string]struct{}, len(adminEmails)),
		log:         log,
	}
	if jwtSecret != "" {
		a.verifier = NewTokenVerifier(jwtSecret)
	}
	for _, email := range adminEmails {
		a.adminEmails[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}
	return a
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := Identity{
			UserID: strings.TrimSpace(r.Header.Get(HeaderUserID)),
			Email:  strings.TrimSpace(r.Header.Get(HeaderUserEmail)),
			Role:   normalizeRole(r.Header.Get(HeaderUserRole)),
		}

		if a.verifier != nil {
			if header := r.Header.Get("Authorization"); header != "" {
				verified, err := a.verifier.Verify(header)
				if err != nil {
					a.log.Warn("Rejected bearer token", "path", r.URL.Path, "error", err)
					httputil.WriteError(w, apperrors.Unauthorized("Invalid or expired token"))
					return
				}
				id = verified
			}
		}

		if _, ok := a.adminEmails[strings.ToLower(id.Email)]; ok && id.Email != "" {
			id.Role = RoleAdmin
		}
		if !id.Authenticated() {
			id.Role = ""
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// RequireUser rejects anonymous callers with 401.
func RequireUser(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if !FromContext(r.Context()).Authenticated() {
			httputil.WriteError(w, apperrors.Unauthorized("Authentication required"))
			return
		}
		next(w, r, ps)
	}
}

// RequireAdmin rejects anonymous callers with 401 and non-admins with 403.
func RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return RequireUser(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if !FromContext(r.Context()).IsAdmin() {
			httputil.WriteError(w, apperrors.Forbidden("Admin access required"))
			return
		}
		next(w, r, ps)
	})
}
