package auth

import (
	"github.com/gin-gonic/gin"

	"go-gin-blog/internal/domain"
)

const ctxKey = "auth"

func SetGin(c *gin.Context, a domain.AuthContext) { c.Set(ctxKey, a) }

// FromGin 未经过鉴权中间件时 ok=false
func FromGin(c *gin.Context) (domain.AuthContext, bool) {
	v, ok := c.Get(ctxKey)
	if !ok {
		return domain.AuthContext{}, false
	}
	a, ok := v.(domain.AuthContext)
	return a, ok
}
