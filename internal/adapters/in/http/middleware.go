package http

import (
	"strings"

	"dispatch/internal/pkg/auth"

	"github.com/labstack/echo/v4"
)

// principalContextKey is where the auth middleware stores the parsed
// principal on the echo context.
const principalContextKey = "principal"

// authMiddleware parses the bearer token into a Principal and stores it on
// the request context. Requests without a valid token are rejected before
// any handler runs.
func authMiddleware(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return writeError(ctx, auth.ErrUnauthenticated)
			}

			principal, err := tokens.Parse(token)
			if err != nil {
				return writeError(ctx, err)
			}

			ctx.Set(principalContextKey, principal)
			return next(ctx)
		}
	}
}

// principalFrom extracts the authenticated principal set by authMiddleware.
func principalFrom(ctx echo.Context) (auth.Principal, bool) {
	principal, ok := ctx.Get(principalContextKey).(auth.Principal)
	return principal, ok
}
