package chi

import (
	"errors"
	"net/http"
	"strings"
)

// Machine-readable authorization error codes.
const (
	CodeMissingCredentials = "missing_credentials"
	CodeInvalidHeader      = "invalid_header"
	CodeInvalidToken       = "invalid_token"
	CodeNotAuthenticated   = "not_authenticated"
)

// AuthError is a client authorization failure with a machine-readable code.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// ParseToken extracts the bearer token from the Authorization header.
// A missing header or a different scheme passes through: empty token, no
// error. A matching scheme with no credentials, or with credentials
// containing spaces, is a client error. Scheme comparison is
// case-insensitive.
func ParseToken(r *http.Request, scheme string) (string, error) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 0 || !strings.EqualFold(parts[0], scheme) {
		return "", nil
	}
	if len(parts) == 1 {
		return "", &AuthError{
			Code:    CodeMissingCredentials,
			Message: "invalid authorization header: no credentials provided",
		}
	}
	if len(parts) > 2 {
		return "", &AuthError{
			Code:    CodeInvalidHeader,
			Message: "invalid authorization header: credentials string should not contain spaces",
		}
	}
	return parts[1], nil
}

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// BearerAuthMiddleware returns a middleware that validates Bearer tokens.
// If apiKeys is empty, authentication is disabled (pass-through).
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	validKeys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			validKeys[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		// Auth disabled — pass everything through
		if len(validKeys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Exempt paths
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			token, err := ParseToken(r, "Bearer")
			if err != nil {
				var authErr *AuthError
				if errors.As(err, &authErr) {
					writeError(w, http.StatusUnauthorized, authErr.Code, authErr.Message)
					return
				}
				writeError(w, http.StatusUnauthorized, CodeInvalidHeader, "invalid authorization header")
				return
			}
			if token == "" {
				writeError(w, http.StatusUnauthorized, CodeNotAuthenticated, "missing authorization header")
				return
			}
			if _, ok := validKeys[token]; !ok {
				writeError(w, http.StatusUnauthorized, CodeInvalidToken, "invalid api key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
