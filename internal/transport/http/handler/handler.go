// Package handler 参数绑定 + 调用 service；错误映射统一在 ez 中完成
package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-blog/internal/core/auth"
	"go-gin-blog/internal/core/errs"
	"go-gin-blog/internal/domain"
)

// actor 读取鉴权中间件放入的身份；路由未挂 guard 时视为未登录
func actor(c *gin.Context) (domain.AuthContext, error) {
	a, ok := auth.FromGin(c)
	if !ok || a.UserID == "" {
		return domain.AuthContext{}, errs.Unauthorized("Access token required")
	}
	return a, nil
}

type pageQ struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}
