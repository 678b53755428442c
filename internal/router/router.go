package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/controller"
	"github.com/matinfathi/oo-backend/internal/middleware"

	_ "github.com/matinfathi/oo-backend/docs"
)

// Controllers 控制器集合
type Controllers struct {
	Auth        *controller.AuthController
	User        *controller.UserController
	Menu        *controller.MenuController
	Location    *controller.LocationController
	Category    *controller.CategoryController
	Item        *controller.ItemController
	OptionGroup *controller.OptionGroupController
	Option      *controller.OptionController
}

// Options 路由依赖
type Options struct {
	Verifier      middleware.Verifier
	Log           *zap.Logger
	Registry      *prometheus.Registry    // 为 nil 时不暴露 /metrics
	PublicLimiter *middleware.RateLimiter // 登录、注册、刷新按 IP 限流，为 nil 时不限流
	UserLimiter   *middleware.RateLimiter // 登录后的接口按用户限流，为 nil 时不限流
	Swagger       bool
}

// SetupRouter 创建 gin 引擎并注册全部路由
func SetupRouter(ctl *Controllers, opts Options) *gin.Engine {
	dto.InstallBinding()

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(opts.Log),
		gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
			opts.Log.Error("panic recovered",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Any("panic", recovered),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Code:    http.StatusInternalServerError,
				Message: "Internal server error.",
			})
		}),
	)

	if opts.Registry != nil {
		r.Use(middleware.NewHTTPMetrics(opts.Registry, "oo").Handler())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: http.StatusNotFound, Message: "Route not found."})
	})

	InitRoutes(r, ctl, opts)
	return r
}

// InitRoutes 注册 /api 下的业务路由
func InitRoutes(r *gin.Engine, ctl *Controllers, opts Options) {
	api := r.Group("/api")

	// 公开接口
	public := api.Group("")
	if opts.PublicLimiter != nil {
		public.Use(middleware.RateLimit(opts.PublicLimiter, middleware.ClientIPKey))
	}
	{
		public.POST("/auth/login", ctl.Auth.Login)
		public.POST("/auth/refresh", ctl.Auth.Refresh)
		public.POST("/users/register", ctl.User.Register)
	}

	// 以下需要 Bearer Token
	authed := api.Group("")
	authed.Use(middleware.JWTAuth(opts.Verifier))
	if opts.UserLimiter != nil {
		authed.Use(middleware.RateLimit(opts.UserLimiter, middleware.PrincipalKey))
	}
	authed.Use(middleware.AuditContext())

	users := authed.Group("/users")
	{
		users.GET("", ctl.User.List)
		users.POST("", ctl.User.Create)
		users.GET("/lookup", ctl.User.Lookup)
		users.GET("/:id", ctl.User.Get)
		users.PATCH("/:id", ctl.User.Patch)
		users.DELETE("/:id", ctl.User.Delete)
	}

	menus := authed.Group("/menus")
	{
		menus.GET("", ctl.Menu.List)
		menus.POST("", ctl.Menu.Create)
		menus.GET("/:id", ctl.Menu.Get)
		menus.PATCH("/:id", ctl.Menu.Patch)
		menus.DELETE("/:id", ctl.Menu.Delete)

		menus.GET("/:id/locations", ctl.Location.List)
		menus.POST("/:id/locations", ctl.Location.Create)
		menus.GET("/:id/categories", ctl.Category.List)
		menus.POST("/:id/categories", ctl.Category.Create)
	}

	locations := authed.Group("/locations")
	{
		locations.GET("/:id", ctl.Location.Get)
		locations.PATCH("/:id", ctl.Location.Patch)
		locations.DELETE("/:id", ctl.Location.Delete)
	}

	categories := authed.Group("/categories")
	{
		categories.GET("/:id", ctl.Category.Get)
		categories.PATCH("/:id", ctl.Category.Patch)
		categories.DELETE("/:id", ctl.Category.Delete)

		categories.GET("/:id/items", ctl.Item.List)
		categories.POST("/:id/items", ctl.Item.Create)
	}

	items := authed.Group("/items")
	{
		items.GET("/:id", ctl.Item.Get)
		items.PATCH("/:id", ctl.Item.Patch)
		items.DELETE("/:id", ctl.Item.Delete)

		items.GET("/:id/option-groups", ctl.OptionGroup.List)
		items.POST("/:id/option-groups", ctl.OptionGroup.Create)
	}

	groups := authed.Group("/option-groups")
	{
		groups.GET("/:id", ctl.OptionGroup.Get)
		groups.PATCH("/:id", ctl.OptionGroup.Patch)
		groups.DELETE("/:id", ctl.OptionGroup.Delete)

		groups.GET("/:id/options", ctl.Option.List)
		groups.POST("/:id/options", ctl.Option.Create)
	}

	options := authed.Group("/options")
	{
		options.GET("/:id", ctl.Option.Get)
		options.PATCH("/:id", ctl.Option.Patch)
		options.DELETE("/:id", ctl.Option.Delete)
	}
}
