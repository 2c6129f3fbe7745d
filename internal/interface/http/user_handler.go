package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bookmarks-api/internal/application"
	"github.com/oksasatya/go-bookmarks-api/internal/domain/entity"
	"github.com/oksasatya/go-bookmarks-api/internal/interface/middleware"
	"github.com/oksasatya/go-bookmarks-api/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Me returns the caller's profile as currently stored.
func (h *UserHandler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		writeError(c, h.Logger, application.ErrUnauthenticated)
		return
	}
	profile, err := h.Svc.GetProfile(c.Request.Context(), u.ID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toUserResponse(profile))
}

func (h *UserHandler) Edit(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		writeError(c, h.Logger, application.ErrUnauthenticated)
		return
	}
	req := middleware.Body[EditUserRequest](c)
	updated, err := h.Svc.EditUser(c.Request.Context(), u.ID, entity.UserPatch{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toUserResponse(updated))
}
