package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-blog/internal/core/auth"
	"go-gin-blog/internal/domain"
	resp "go-gin-blog/internal/transport/http/response"
)

const (
	MsgTokenRequired = "Access token required"
	MsgTokenInvalid  = "Invalid or expired token"
	MsgAdminRequired = "Admin access required"
)

// AuthJWT 解析 Bearer token；requireRole 非空时校验角色
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := bearer(c.GetHeader("Authorization"))
		if tok == "" {
			resp.Abort(c, http.StatusUnauthorized, MsgTokenRequired, "")
			return
		}
		claims, err := j.Parse(tok)
		if err != nil {
			resp.Abort(c, http.StatusUnauthorized, MsgTokenInvalid, "")
			return
		}
		a := claims.AuthContext()
		if requireRole != "" && a.Role != requireRole {
			msg := "Forbidden"
			if requireRole == domain.RoleAdmin {
				msg = MsgAdminRequired
			}
			resp.Abort(c, http.StatusForbidden, msg, "")
			return
		}
		auth.SetGin(c, a)
		c.Next()
	}
}

func bearer(h string) string {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}
