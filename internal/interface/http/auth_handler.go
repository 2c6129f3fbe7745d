package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bookmarks-api/internal/application"
	"github.com/oksasatya/go-bookmarks-api/internal/interface/middleware"
	"github.com/oksasatya/go-bookmarks-api/pkg/response"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

// SignUp expects a body bound by middleware.BindJSON[SignUpRequest].
func (h *AuthHandler) SignUp(c *gin.Context) {
	req := middleware.Body[SignUpRequest](c)
	pair, err := h.Svc.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, pair)
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	req := middleware.Body[SignInRequest](c)
	pair, err := h.Svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, pair)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	req := middleware.Body[RefreshRequest](c)
	pair, err := h.Svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, pair)
}
