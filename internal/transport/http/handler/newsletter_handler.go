package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/service"
	"go-gin-blog/internal/transport/http/ez"
)

type NewsletterHandler struct {
	svc *service.NewsletterService
}

func NewNewsletterHandler(svc *service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{svc: svc}
}

type emailIn struct {
	Email string `json:"email" binding:"required,email" msg:"Valid email is required"`
}

func (h *NewsletterHandler) Mount(e ez.EZ) {
	g := e.Group("/newsletter")

	ez.RegisterAction(g, ez.Action[emailIn, *domain.Subscriber]{
		Method:  http.MethodPost,
		Path:    "/subscribe",
		Binder:  ez.BindJSON,
		Status:  http.StatusCreated,
		Message: "Successfully subscribed to newsletter",
		Handler: func(c *gin.Context, in *emailIn) (*domain.Subscriber, error) {
			return h.svc.Subscribe(c.Request.Context(), in.Email)
		},
	})

	ez.RegisterAction(g, ez.Action[emailIn, any]{
		Method:  http.MethodPost,
		Path:    "/unsubscribe",
		Binder:  ez.BindJSON,
		Message: service.MsgUnsubscribed,
		Handler: func(c *gin.Context, in *emailIn) (any, error) {
			return nil, h.svc.Unsubscribe(c.Request.Context(), in.Email)
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, []domain.Subscriber]{
		Method:  http.MethodGet,
		Path:    "/subscribers",
		Binder:  ez.BindNone,
		Guard:   ez.Admin,
		Message: "Subscribers retrieved successfully",
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Subscriber, error) {
			return h.svc.ListSubscribers(c.Request.Context())
		},
	})
}
