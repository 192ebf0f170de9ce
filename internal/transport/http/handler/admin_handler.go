package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/service"
	"go-gin-blog/internal/transport/http/ez"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler { return &AdminHandler{svc: svc} }

func (h *AdminHandler) Priority() int { return 90 }

type roleIn struct {
	Role string `json:"role" binding:"required,oneof=user admin" msg:"Role must be user or admin"`
}

// Mount /admin 下全部要求管理员
func (h *AdminHandler) Mount(e ez.EZ) {
	g := e.Group("/admin")

	ez.RegisterAction(g, ez.Action[struct{}, *service.Dashboard]{
		Method:  http.MethodGet,
		Path:    "/dashboard",
		Binder:  ez.BindNone,
		Guard:   ez.Admin,
		Message: "Dashboard data retrieved successfully",
		Handler: func(c *gin.Context, _ *struct{}) (*service.Dashboard, error) {
			return h.svc.Dashboard(c.Request.Context())
		},
	})

	ez.RegisterAction(g, ez.Action[pageQ, *service.Page[service.AdminUserView]]{
		Method:  http.MethodGet,
		Path:    "/users",
		Binder:  ez.BindQuery,
		Guard:   ez.Admin,
		Message: "Users retrieved successfully",
		Handler: func(c *gin.Context, in *pageQ) (*service.Page[service.AdminUserView], error) {
			return h.svc.ListUsers(c.Request.Context(), in.Page, in.Limit)
		},
	})

	ez.RegisterAction(g, ez.Action[roleIn, *domain.User]{
		Method:  http.MethodPut,
		Path:    "/users/:userId/role",
		Binder:  ez.BindJSON,
		Guard:   ez.Admin,
		Message: "User role updated successfully",
		Handler: func(c *gin.Context, in *roleIn) (*domain.User, error) {
			return h.svc.UpdateUserRole(c.Request.Context(), c.Param("userId"), in.Role)
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, any]{
		Method:  http.MethodDelete,
		Path:    "/users/:userId",
		Binder:  ez.BindNone,
		Guard:   ez.Admin,
		Message: "User deleted successfully",
		Handler: func(c *gin.Context, _ *struct{}) (any, error) {
			_, err := h.svc.DeleteUser(c.Request.Context(), c.Param("userId"))
			return nil, err
		},
	})

	ez.RegisterAction(g, ez.Action[pageQ, *service.Page[domain.BlogPost]]{
		Method:  http.MethodGet,
		Path:    "/blogs",
		Binder:  ez.BindQuery,
		Guard:   ez.Admin,
		Message: "Blogs retrieved successfully",
		Handler: func(c *gin.Context, in *pageQ) (*service.Page[domain.BlogPost], error) {
			return h.svc.ListBlogs(c.Request.Context(), in.Page, in.Limit)
		},
	})
}
