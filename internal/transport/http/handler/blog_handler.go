package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/repo"
	"go-gin-blog/internal/service"
	"go-gin-blog/internal/transport/http/ez"
)

type BlogHandler struct {
	svc *service.BlogService
}

func NewBlogHandler(svc *service.BlogService) *BlogHandler { return &BlogHandler{svc: svc} }

func (h *BlogHandler) Priority() int { return 20 }

type listBlogsQ struct {
	pageQ
	Category string `form:"category"`
	Tags     string `form:"tags"` // 逗号分隔，任一命中
	Search   string `form:"search"`
}

type searchQ struct {
	pageQ
	Q string `form:"q"`
}

type createBlogIn struct {
	Title      string   `json:"title"    binding:"notblank" msg:"Title is required"`
	Content    string   `json:"content"  binding:"notblank" msg:"Content is required"`
	CoverImage string   `json:"coverImage"`
	Category   string   `json:"category" binding:"notblank" msg:"Category is required"`
	Tags       []string `json:"tags"`
}

type updateBlogIn struct {
	Title      *string   `json:"title"    binding:"omitempty,notblank" msg:"Title cannot be empty"`
	Content    *string   `json:"content"  binding:"omitempty,notblank" msg:"Content cannot be empty"`
	CoverImage *string   `json:"coverImage"`
	Category   *string   `json:"category" binding:"omitempty,notblank" msg:"Category cannot be empty"`
	Tags       *[]string `json:"tags"`
}

type blogPage = *service.Page[domain.BlogPost]

func (h *BlogHandler) Mount(e ez.EZ) {
	g := e.Group("/blogs")

	ez.RegisterAction(g, ez.Action[listBlogsQ, blogPage]{
		Method:  http.MethodGet,
		Path:    "",
		Binder:  ez.BindQuery,
		Message: "Blogs retrieved successfully",
		Handler: func(c *gin.Context, in *listBlogsQ) (blogPage, error) {
			f := repo.BlogFilter{Category: in.Category, Tags: splitCSV(in.Tags), Search: in.Search}
			return h.svc.GetAllBlogs(c.Request.Context(), f, in.Page, in.Limit)
		},
	})

	ez.RegisterAction(g, ez.Action[searchQ, blogPage]{
		Method:  http.MethodGet,
		Path:    "/search",
		Binder:  ez.BindQuery,
		Message: "Search results retrieved successfully",
		Handler: func(c *gin.Context, in *searchQ) (blogPage, error) {
			return h.svc.SearchBlogs(c.Request.Context(), in.Q, in.Page, in.Limit)
		},
	})

	ez.RegisterAction(g, ez.Action[pageQ, blogPage]{
		Method:  http.MethodGet,
		Path:    "/category/:category",
		Binder:  ez.BindQuery,
		Message: "Blogs retrieved successfully",
		Handler: func(c *gin.Context, in *pageQ) (blogPage, error) {
			return h.svc.GetBlogsByCategory(c.Request.Context(), c.Param("category"), in.Page, in.Limit)
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, *service.BlogDetail]{
		Method:  http.MethodGet,
		Path:    "/slug/:slug",
		Binder:  ez.BindNone,
		Message: "Blog retrieved successfully",
		ETag:    true,
		Handler: func(c *gin.Context, _ *struct{}) (*service.BlogDetail, error) {
			return h.svc.GetBlogBySlug(c.Request.Context(), c.Param("slug"))
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, *service.BlogDetail]{
		Method:  http.MethodGet,
		Path:    "/:id",
		Binder:  ez.BindNone,
		Message: "Blog retrieved successfully",
		ETag:    true,
		Handler: func(c *gin.Context, _ *struct{}) (*service.BlogDetail, error) {
			return h.svc.GetBlogByID(c.Request.Context(), c.Param("id"))
		},
	})

	ez.RegisterAction(g, ez.Action[createBlogIn, *domain.BlogPost]{
		Method:  http.MethodPost,
		Path:    "",
		Binder:  ez.BindJSON,
		Guard:   ez.Admin,
		Status:  http.StatusCreated,
		Message: "Blog created successfully",
		Handler: func(c *gin.Context, in *createBlogIn) (*domain.BlogPost, error) {
			a, err := actor(c)
			if err != nil {
				return nil, err
			}
			return h.svc.CreateBlog(c.Request.Context(), a, service.CreateBlogInput{
				Title: in.Title, Content: in.Content, CoverImage: in.CoverImage,
				Category: in.Category, Tags: in.Tags,
			})
		},
	})

	ez.RegisterAction(g, ez.Action[updateBlogIn, *domain.BlogPost]{
		Method:  http.MethodPut,
		Path:    "/:id",
		Binder:  ez.BindJSON,
		Guard:   ez.Admin,
		Message: "Blog updated successfully",
		Handler: func(c *gin.Context, in *updateBlogIn) (*domain.BlogPost, error) {
			return h.svc.UpdateBlog(c.Request.Context(), c.Param("id"), service.UpdateBlogInput{
				Title: in.Title, Content: in.Content, CoverImage: in.CoverImage,
				Category: in.Category, Tags: in.Tags,
			})
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, any]{
		Method:  http.MethodDelete,
		Path:    "/:id",
		Binder:  ez.BindNone,
		Guard:   ez.Admin,
		Message: "Blog deleted successfully",
		Handler: func(c *gin.Context, _ *struct{}) (any, error) {
			_, err := h.svc.DeleteBlog(c.Request.Context(), c.Param("id"))
			return nil, err
		},
	})
}
