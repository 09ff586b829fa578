/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-15 11:30:55
 * @LastEditTime: 2025-08-25 16:40:12
 * @LastEditors: 安知鱼
 */
// internal/infra/router/router.go
package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-comment-api/internal/app/middleware"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/constant"
	comment_handler "github.com/anzhiyu-c/anheyu-comment-api/pkg/handler/comment"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/service/setting"
)

// NoCacheMiddleware 全局反缓存中间件，确保所有API响应都不会被CDN缓存
func NoCacheMiddleware() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		// 🚫 强制禁用所有形式的缓存
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate, private, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Header("X-Content-Type-Options", "nosniff")

		// 继续处理请求
		c.Next()
	})
}

// Router 封装了应用的所有路由和其依赖的处理器。
type Router struct {
	commentHandler *comment_handler.Handler
	mw             *middleware.Middleware
	settingSvc     setting.SettingService
}

// NewRouter 是 Router 的构造函数，通过依赖注入接收所有处理器。
func NewRouter(
	commentHandler *comment_handler.Handler,
	mw *middleware.Middleware,
	settingSvc setting.SettingService,
) *Router {
	return &Router{
		commentHandler: commentHandler,
		mw:             mw,
		settingSvc:     settingSvc,
	}
}

// Setup 将所有路由注册到 Gin 引擎。
// 这是在 main.go 中将被调用的唯一入口点。
func (r *Router) Setup(engine *gin.Engine) {
	engine.GET("/api/healthz", r.handleHealthz)
	engine.GET("/api/public/site-config", r.handleSiteConfig)

	// 创建 /api 分组
	apiGroup := engine.Group("/api")
	// 应用全局反缓存中间件
	apiGroup.Use(NoCacheMiddleware())

	r.registerCommentRoutes(apiGroup)
}

func (r *Router) registerCommentRoutes(api *gin.RouterGroup) {
	limitPerMinute := r.settingSvc.GetInt(constant.KeyCommentLimitPerMinute.String())
	if limitPerMinute <= 0 {
		limitPerMinute = 10
	}

	namespace := strings.Trim(r.settingSvc.Get(constant.KeyAPINamespace.String()), "/")
	if namespace == "" {
		namespace = "wp/v2"
	}
	routeBase := strings.Trim(r.settingSvc.Get(constant.KeyAPIRouteBase.String()), "/")
	if routeBase == "" {
		routeBase = "comments"
	}

	wpComments := api.Group("/" + namespace + "/" + routeBase)
	{
		wpComments.POST("/create",
			r.mw.JWTAuthOptional(),
			middleware.CommentRateLimit(limitPerMinute, limitPerMinute),
			r.commentHandler.Create,
		)
		wpComments.GET("/:id", r.mw.JWTAuthOptional(), r.commentHandler.Get)
	}
}

// handleSiteConfig 返回前端渲染评论区所需的公开配置，隐私相关的键不会出现在这里。
func (r *Router) handleSiteConfig(c *gin.Context) {
	c.JSON(http.StatusOK, r.settingSvc.GetSiteConfig())
}

// handleHealthz 提供给负载均衡和容器探针的存活检查。
func (r *Router) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"name":    r.settingSvc.Get(constant.KeyAppName.String()),
		"version": r.settingSvc.Get(constant.KeyAppVersion.String()),
	})
}
