package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-blog/internal/service"
	"go-gin-blog/internal/transport/http/ez"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Priority() int { return 10 }

type registerIn struct {
	Name     string `json:"name"     binding:"notblank"           msg:"Name is required"`
	Email    string `json:"email"    binding:"required,email"     msg:"Valid email is required"`
	Password string `json:"password" binding:"required,min=6,maxbytes=72" msg:"Password must be at least 6 characters" msg_maxbytes:"Password must be at most 72 bytes"`
}

type loginIn struct {
	Email    string `json:"email"    binding:"required,email" msg:"Valid email is required"`
	Password string `json:"password" binding:"required"       msg:"Password is required"`
}

func (h *AuthHandler) Mount(e ez.EZ) {
	g := e.Group("/auth")

	ez.RegisterAction(g, ez.Action[registerIn, *service.AuthResult]{
		Method:  http.MethodPost,
		Path:    "/register",
		Binder:  ez.BindJSON,
		Status:  http.StatusCreated,
		Message: "User registered successfully",
		Handler: func(c *gin.Context, in *registerIn) (*service.AuthResult, error) {
			return h.svc.Register(c.Request.Context(), service.RegisterInput{
				Name: in.Name, Email: in.Email, Password: in.Password,
			})
		},
	})

	ez.RegisterAction(g, ez.Action[loginIn, *service.AuthResult]{
		Method:  http.MethodPost,
		Path:    "/login",
		Binder:  ez.BindJSON,
		Message: "Login successful",
		Handler: func(c *gin.Context, in *loginIn) (*service.AuthResult, error) {
			return h.svc.Login(c.Request.Context(), in.Email, in.Password)
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, *service.Profile]{
		Method:  http.MethodGet,
		Path:    "/me",
		Binder:  ez.BindNone,
		Guard:   ez.User,
		Message: "Profile retrieved successfully",
		Handler: func(c *gin.Context, _ *struct{}) (*service.Profile, error) {
			a, err := actor(c)
			if err != nil {
				return nil, err
			}
			return h.svc.Me(c.Request.Context(), a)
		},
	})
}
