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

type BookmarkHandler struct {
	Svc    *application.BookmarkService
	Logger *logrus.Logger
}

func NewBookmarkHandler(svc *application.BookmarkService, logger *logrus.Logger) *BookmarkHandler {
	return &BookmarkHandler{Svc: svc, Logger: logger}
}

// ownerID returns the caller's id; handlers only run behind the auth guard.
func (h *BookmarkHandler) ownerID(c *gin.Context) (string, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		writeError(c, h.Logger, application.ErrUnauthenticated)
		return "", false
	}
	return u.ID, true
}

func (h *BookmarkHandler) Create(c *gin.Context) {
	owner, ok := h.ownerID(c)
	if !ok {
		return
	}
	req := middleware.Body[CreateBookmarkRequest](c)
	b, err := h.Svc.Create(c.Request.Context(), owner, entity.BookmarkInput{
		Title:       req.Title,
		Link:        req.Link,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, toBookmarkResponse(b))
}

func (h *BookmarkHandler) List(c *gin.Context) {
	owner, ok := h.ownerID(c)
	if !ok {
		return
	}
	list, err := h.Svc.List(c.Request.Context(), owner)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toBookmarkList(list))
}

// Get answers 200 with a null body when the bookmark is missing or foreign.
func (h *BookmarkHandler) Get(c *gin.Context) {
	owner, ok := h.ownerID(c)
	if !ok {
		return
	}
	b, err := h.Svc.GetByID(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toBookmarkResponse(b))
}

func (h *BookmarkHandler) Edit(c *gin.Context) {
	owner, ok := h.ownerID(c)
	if !ok {
		return
	}
	req := middleware.Body[EditBookmarkRequest](c)
	b, err := h.Svc.EditByID(c.Request.Context(), owner, c.Param("id"), entity.BookmarkPatch{
		Title:       req.Title,
		Link:        req.Link,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toBookmarkResponse(b))
}

func (h *BookmarkHandler) Delete(c *gin.Context) {
	owner, ok := h.ownerID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteByID(c.Request.Context(), owner, c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
