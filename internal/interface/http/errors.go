package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bookmarks-api/internal/application"
	"github.com/oksasatya/go-bookmarks-api/pkg/helpers"
	"github.com/oksasatya/go-bookmarks-api/pkg/response"
)

var errorStatus = []struct {
	err     error
	status  int
	message string
}{
	{application.ErrCredentialsTaken, http.StatusForbidden, "Credentials taken"},
	{application.ErrCredentialsIncorrect, http.StatusForbidden, "Credentials incorrect"},
	{application.ErrAccessDenied, http.StatusForbidden, "Access to resources denied"},
	{application.ErrUnauthenticated, http.StatusUnauthorized, "Unauthorized"},
	{application.ErrEmailTaken, http.StatusConflict, "Email already in use"},
	{application.ErrUserNotFound, http.StatusNotFound, "User not found"},
}

// writeError maps application errors to their status. Anything unknown is
// logged and answered with an opaque 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			response.Error(c, e.status, e.message, nil)
			return
		}
	}
	if logger != nil {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString(response.RequestIDKey),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
		})
	}
	response.Error(c, http.StatusInternalServerError, "internal server error", nil)
}
