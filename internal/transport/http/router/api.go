package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"go-gin-blog/internal/core/auth"
	"go-gin-blog/internal/core/cache"
	"go-gin-blog/internal/core/config"
	"go-gin-blog/internal/core/server"
	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/repo"
	"go-gin-blog/internal/service"
	"go-gin-blog/internal/transport/http/ez"
	"go-gin-blog/internal/transport/http/handler"
	mdw "go-gin-blog/internal/transport/http/middleware"
	resp "go-gin-blog/internal/transport/http/response"
)

// Deps 构建 API 引擎所需的全部依赖
type Deps struct {
	Log    *zap.Logger
	Config *config.Config
	DB     *gorm.DB
	JWT    *auth.JWTer
	Cache  *cache.Cache         // 可为 nil：不启用缓存
	Reg    *prometheus.Registry // 可为 nil：使用默认 registry
}

func NewAPIEngine(d Deps) *gin.Engine {
	cfg := d.Config.App
	r := server.NewRouter(d.Log, cfg.CORSOrigins)

	var (
		reg      prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Reg != nil {
		reg, gatherer = d.Reg, d.Reg
	}

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.NewMetrics(reg).Handler(),
		mdw.AccessLog(d.Log),
		mdw.Timeout(time.Duration(cfg.TimeoutSec)*time.Second),
		mdw.ConcurrencyLimit(cfg.MaxConcurrency),
		mdw.MaxBodyBytes(cfg.BodyLimitMB<<20),
	)

	// 健康检查
	r.GET("/health", health(d.DB, cfg.Env))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.Use(mdw.RateLimitPerIP(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))
	api.GET("", index)

	e := ez.New(api, ez.Guards{
		User:  mdw.AuthJWT(d.JWT, ""),
		Admin: mdw.AuthJWT(d.JWT, domain.RoleAdmin),
	}, d.Log, cfg.IsProduction())

	var registry Registry
	registry.Register(modules(d)...)
	registry.MountAll(e)

	r.NoRoute(func(c *gin.Context) {
		resp.Abort(c, http.StatusNotFound, resp.MsgRouteNotFound,
			fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path))
	})
	return r
}

// modules 组装 repo → service → handler
func modules(d Deps) []Module {
	users := repo.NewUserRepo(d.DB)
	blogs := repo.NewBlogRepo(d.DB)
	cats := repo.NewCategoryRepo(d.DB)
	subs := repo.NewSubscriberRepo(d.DB)

	return []Module{
		handler.NewAuthHandler(service.NewAuthService(users, d.JWT)),
		handler.NewBlogHandler(service.NewBlogService(blogs, users)),
		handler.NewBookmarkHandler(service.NewBookmarkService(users, blogs)),
		handler.NewCategoryHandler(service.NewCategoryService(cats)),
		handler.NewNewsletterHandler(service.NewNewsletterService(subs)),
		handler.NewAdminHandler(service.NewAdminService(users, blogs, subs, cats, d.Cache, d.Config.Cache.DashboardTTL())),
	}
}

type healthOut struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
	Database    string    `json:"database"`
}

func health(db *gorm.DB, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := healthOut{Status: "OK", Timestamp: time.Now().UTC(), Environment: env, Database: "up"}
		status := http.StatusOK
		if err := ping(c.Request.Context(), db); err != nil {
			out.Status, out.Database = "DEGRADED", "down"
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, out)
	}
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

var endpoints = gin.H{
	"auth":       "/api/auth",
	"blogs":      "/api/blogs",
	"bookmarks":  "/api/bookmarks",
	"categories": "/api/categories",
	"newsletter": "/api/newsletter",
	"admin":      "/api/admin",
}

func index(c *gin.Context) {
	resp.JSON(c, http.StatusOK, "Health Blog API", gin.H{"version": "1.0.0", "endpoints": endpoints})
}
