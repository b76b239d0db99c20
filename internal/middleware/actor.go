package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// actorHeader carries the operator's display name supplied by the
// presentation layer. It is a free-text name for the audit trail, not an
// authenticated identity.
const actorHeader = "X-Actor"

// ActorMiddleware creates a Gin middleware handler that resolves the acting
// operator for the request. The header wins; otherwise the configured
// default operator name is used, mirroring the single-operator front desk
// this system replaces.
func ActorMiddleware(defaultActor string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(actorHeader)
		if actor == "" {
			actor = defaultActor
		}

		ctx := context.WithValue(c.Request.Context(), actorKey, actor)

		// Enrich the request logger so audit-relevant lines carry the actor
		enrichedLogger := GetLoggerFromCtx(ctx).With(slog.String("actor", actor))
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
