package wfs

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// bearerTokenHint inspects the configured Authorization header after an
// authorization failure. When it carries a JWT, the token's validity
// window usually explains the failure better than the status code does.
// The token is decoded without verification and never influences the
// request itself.
func bearerTokenHint(authorization string, now time.Time) string {
	raw := strings.TrimPrefix(authorization, "Bearer ")
	if raw == authorization || raw == "" {
		return ""
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return ""
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(now) {
		return fmt.Sprintf("bearer token expired at %s", claims.ExpiresAt.Format(time.RFC3339))
	}

	if claims.NotBefore != nil && claims.NotBefore.After(now) {
		return fmt.Sprintf("bearer token not valid before %s", claims.NotBefore.Format(time.RFC3339))
	}

	return ""
}
