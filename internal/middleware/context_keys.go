package middleware

import "github.com/gin-gonic/gin"

// actorKey is the key used to store the acting operator's display name in
// the request context. Using a custom type prevents collisions.
const actorKey = contextKey("actor")

// GetActorFromContext retrieves the acting operator's display name from the
// Gin context. It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (string, bool) {
	actorVal := c.Request.Context().Value(actorKey)
	if actorVal == nil {
		return "", false
	}

	actor, ok := actorVal.(string)
	if !ok || actor == "" {
		return "", false
	}
	return actor, true
}
