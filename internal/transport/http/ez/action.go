package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-blog/internal/core/errs"
	resp "go-gin-blog/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindURI   Binder = "uri"   // 只绑定路径参数
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// Guard 路由访问级别
type Guard int

const (
	Public Guard = iota
	User
	Admin
)

// Guards 由路由层注入的鉴权中间件
type Guards struct {
	User  gin.HandlerFunc
	Admin gin.HandlerFunc
}

type EZ struct {
	g      *gin.RouterGroup
	guards Guards
	log    *zap.Logger
	hide   bool // 生产环境隐藏 500 的原始错误
}

func New(g *gin.RouterGroup, guards Guards, l *zap.Logger, hideInternal bool) EZ {
	setupValidator()
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, guards: guards, log: l, hide: hideInternal}
}

// Group 子路径共享同一套 guards/logger
func (e EZ) Group(path string) EZ {
	e.g = e.g.Group(path)
	return e
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string // 例："/auth/login"、"/blogs/:id"
	Binder  Binder // 绑定方式
	Guard   Guard
	Status  int    // 成功状态码，默认 200
	Message string // 成功文案
	ETag    bool   // 是否生成 ETag（只用于 GET）
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		case BindURI:
			bindErr = c.ShouldBindUri(&in)
		default: // BindNone: 不绑定
		}
		if bindErr != nil {
			e.fail(c, bindError(&in, bindErr))
			return
		}

		// 2) 执行
		out, err := a.Handler(c, &in)

		// 3) 统一错误映射
		if err != nil {
			e.fail(c, err)
			return
		}
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		if a.ETag {
			resp.JSONWithETag(c, status, a.Message, out)
			return
		}
		resp.JSON(c, status, a.Message, out)
	}

	chain := make([]gin.HandlerFunc, 0, 2)
	switch a.Guard {
	case User:
		chain = append(chain, e.guards.User)
	case Admin:
		chain = append(chain, e.guards.Admin)
	}
	chain = append(chain, h)

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, chain...)
	case http.MethodPut:
		e.g.PUT(a.Path, chain...)
	case http.MethodPatch:
		e.g.PATCH(a.Path, chain...)
	case http.MethodDelete:
		e.g.DELETE(a.Path, chain...)
	default: // 默认 POST
		e.g.POST(a.Path, chain...)
	}
}

// fail 唯一的错误 → HTTP 映射点
func (e EZ) fail(c *gin.Context, err error) {
	var be *bindErr
	if errors.As(err, &be) {
		resp.Abort(c, be.status, be.message, be.detail)
		return
	}

	k := errs.KindOf(err)
	status := k.Status()
	switch k {
	case errs.KindValidation:
		resp.Abort(c, status, resp.MsgValidationFailed, errs.Message(err))
	case errs.KindInternal:
		_ = c.Error(err)
		e.log.Error("request failed",
			zap.String("rid", c.GetString("rid")),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		detail := err.Error()
		if e.hide {
			detail = ""
		}
		resp.Abort(c, status, resp.MsgInternal, detail)
	default:
		resp.Abort(c, status, errs.Message(err), "")
	}
}
