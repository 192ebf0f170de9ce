package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/service"
	"go-gin-blog/internal/transport/http/ez"
)

type BookmarkHandler struct {
	svc *service.BookmarkService
}

func NewBookmarkHandler(svc *service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{svc: svc}
}

type bookmarkIn struct {
	BlogID string `json:"blogId" binding:"notblank" msg:"Blog ID is required"`
}

type bookmarksOut struct {
	Bookmarks []string `json:"bookmarks"`
}

func (h *BookmarkHandler) Mount(e ez.EZ) {
	g := e.Group("/bookmarks")

	ez.RegisterAction(g, ez.Action[struct{}, []domain.BlogPost]{
		Method:  http.MethodGet,
		Path:    "",
		Binder:  ez.BindNone,
		Guard:   ez.User,
		Message: "Bookmarks retrieved successfully",
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.BlogPost, error) {
			a, err := actor(c)
			if err != nil {
				return nil, err
			}
			return h.svc.GetUserBookmarks(c.Request.Context(), a)
		},
	})

	ez.RegisterAction(g, ez.Action[bookmarkIn, bookmarksOut]{
		Method:  http.MethodPost,
		Path:    "",
		Binder:  ez.BindJSON,
		Guard:   ez.User,
		Message: "Blog bookmarked successfully",
		Handler: func(c *gin.Context, in *bookmarkIn) (bookmarksOut, error) {
			a, err := actor(c)
			if err != nil {
				return bookmarksOut{}, err
			}
			ids, err := h.svc.AddBookmark(c.Request.Context(), a, in.BlogID)
			return bookmarksOut{Bookmarks: ids}, err
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, bookmarksOut]{
		Method:  http.MethodDelete,
		Path:    "/:blogId",
		Binder:  ez.BindNone,
		Guard:   ez.User,
		Message: "Bookmark removed successfully",
		Handler: func(c *gin.Context, _ *struct{}) (bookmarksOut, error) {
			a, err := actor(c)
			if err != nil {
				return bookmarksOut{}, err
			}
			ids, err := h.svc.RemoveBookmark(c.Request.Context(), a, c.Param("blogId"))
			return bookmarksOut{Bookmarks: ids}, err
		},
	})
}
