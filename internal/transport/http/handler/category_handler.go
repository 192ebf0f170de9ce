package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/service"
	"go-gin-blog/internal/transport/http/ez"
)

type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

type categoryIn struct {
	Name        string `json:"name" binding:"notblank" msg:"Category name is required"`
	Description string `json:"description"`
}

type categoryPatchIn struct {
	Name        *string `json:"name" binding:"omitempty,notblank" msg:"Category name cannot be empty"`
	Description *string `json:"description"`
}

func (h *CategoryHandler) Mount(e ez.EZ) {
	g := e.Group("/categories")

	ez.RegisterAction(g, ez.Action[struct{}, []domain.Category]{
		Method:  http.MethodGet,
		Path:    "",
		Binder:  ez.BindNone,
		Message: "Categories retrieved successfully",
		ETag:    true,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Category, error) {
			return h.svc.List(c.Request.Context())
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, *domain.Category]{
		Method:  http.MethodGet,
		Path:    "/:id",
		Binder:  ez.BindNone,
		Message: "Category retrieved successfully",
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Category, error) {
			return h.svc.Get(c.Request.Context(), c.Param("id"))
		},
	})

	ez.RegisterAction(g, ez.Action[categoryIn, *domain.Category]{
		Method:  http.MethodPost,
		Path:    "",
		Binder:  ez.BindJSON,
		Guard:   ez.Admin,
		Status:  http.StatusCreated,
		Message: "Category created successfully",
		Handler: func(c *gin.Context, in *categoryIn) (*domain.Category, error) {
			return h.svc.Create(c.Request.Context(), service.CategoryInput{Name: in.Name, Description: in.Description})
		},
	})

	ez.RegisterAction(g, ez.Action[categoryPatchIn, *domain.Category]{
		Method:  http.MethodPut,
		Path:    "/:id",
		Binder:  ez.BindJSON,
		Guard:   ez.Admin,
		Message: "Category updated successfully",
		Handler: func(c *gin.Context, in *categoryPatchIn) (*domain.Category, error) {
			return h.svc.Update(c.Request.Context(), c.Param("id"), service.CategoryPatch{Name: in.Name, Description: in.Description})
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, any]{
		Method:  http.MethodDelete,
		Path:    "/:id",
		Binder:  ez.BindNone,
		Guard:   ez.Admin,
		Message: "Category deleted successfully",
		Handler: func(c *gin.Context, _ *struct{}) (any, error) {
			_, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
			return nil, err
		},
	})
}
