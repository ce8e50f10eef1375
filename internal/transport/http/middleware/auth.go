package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/logger"
)

// ActorResolver turns a bearer token into the user it belongs to.
type ActorResolver interface {
	Authenticate(ctx context.Context, token string) (domain.User, error)
}

// ErrorResponse is the JSON error payload returned by auth middleware.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

func newErrorResponse(c *gin.Context, message string) ErrorResponse {
	return ErrorResponse{
		Error:   message,
		TraceID: GetTraceID(c),
	}
}

// ResolveActor resolves the Authorization header into an authenticated user.
// Requests without a token, or with a token that fails verification, continue
// anonymously; route guards decide whether anonymous access is acceptable.
// Rejected tokens are logged so repeated failures can be diagnosed.
func ResolveActor(resolver ActorResolver, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			log.Debug("malformed authorization header, continuing anonymously",
				zap.String("trace_id", GetTraceID(c)),
				zap.String("client_ip", logger.MaskIP(c.ClientIP())),
			)
			c.Next()
			return
		}

		actor, err := resolver.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			log.Warn("bearer token rejected, continuing anonymously",
				zap.String("trace_id", GetTraceID(c)),
				zap.String("client_ip", logger.MaskIP(c.ClientIP())),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Set(ActorKey, actor)
		c.Next()
	}
}

// RequireActor rejects requests that did not resolve to an authenticated user.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetActor(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, newErrorResponse(c, "authentication required"))
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests from anyone below SYSTEM_ADMIN.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, newErrorResponse(c, "authentication required"))
			return
		}
		if !actor.Role.CanAdminister() {
			c.AbortWithStatusJSON(http.StatusForbidden, newErrorResponse(c, "admin privileges required"))
			return
		}
		c.Next()
	}
}

// GetActor retrieves the authenticated user stored by ResolveActor.
func GetActor(c *gin.Context) (domain.User, bool) {
	value, exists := c.Get(ActorKey)
	if !exists {
		return domain.User{}, false
	}
	actor, ok := value.(domain.User)
	return actor, ok
}
