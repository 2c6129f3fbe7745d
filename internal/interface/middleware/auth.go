package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bookmarks-api/internal/application"
	"github.com/oksasatya/go-bookmarks-api/internal/domain/entity"
	"github.com/oksasatya/go-bookmarks-api/pkg/helpers"
	"github.com/oksasatya/go-bookmarks-api/pkg/response"
)

const currentUserKey = "current_user"

// Authenticator resolves a bearer token to the user it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (entity.PublicUser, error)
}

// Auth requires "Authorization: Bearer <access token>". Any failure aborts
// with 401 before the handler runs. On success the user is available via
// CurrentUser and its id via UserIDFromContext.
func Auth(auth Authenticator, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}
		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, application.ErrUnauthenticated) {
				response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
				return
			}
			if logger != nil {
				helpers.LogError(logger, "authenticate request failed", err, logrus.Fields{
					"request_id": c.GetString(response.RequestIDKey),
				})
			}
			response.Error(c, http.StatusInternalServerError, "internal server error", nil)
			return
		}

		SetCurrentUser(c, user)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// SetCurrentUser attaches u to both the gin context and the request context.
func SetCurrentUser(c *gin.Context, u entity.PublicUser) {
	c.Set(currentUserKey, u)
	c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), u.ID))
}

// CurrentUser returns the user attached by Auth.
func CurrentUser(c *gin.Context) (entity.PublicUser, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return entity.PublicUser{}, false
	}
	u, ok := v.(entity.PublicUser)
	return u, ok
}

type userIDKey struct{}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}
