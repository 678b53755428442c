// Package app 组装依赖：仓库、服务、控制器与 HTTP 引擎
package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matinfathi/oo-backend/internal/config"
	"github.com/matinfathi/oo-backend/internal/controller"
	"github.com/matinfathi/oo-backend/internal/middleware"
	"github.com/matinfathi/oo-backend/internal/repository"
	"github.com/matinfathi/oo-backend/internal/router"
	"github.com/matinfathi/oo-backend/internal/service"
)

// ==================== 依赖容器 ====================

// Services 服务集合
type Services struct {
	Auth        *service.AuthService
	User        *service.UserService
	Menu        *service.MenuService
	Location    *service.LocationService
	Category    *service.CategoryService
	Item        *service.ItemService
	OptionGroup *service.OptionGroupService
	Option      *service.OptionService
}

// App 依赖容器
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Store    *repository.Store
	Tokens   *middleware.JWTManager
	Services *Services
	Engine   *gin.Engine
	Log      *zap.Logger
}

// New 初始化所有依赖，reg 为 nil 时不暴露指标
func New(cfg *config.Config, db *gorm.DB, log *zap.Logger, reg *prometheus.Registry) (*App, error) {
	if err := middleware.RegisterAuditCallbacks(db, log.Named("audit")); err != nil {
		return nil, err
	}

	// -------- Repo 层 --------
	store := repository.NewStore(db)

	// -------- 基础服务 --------
	hasher := service.NewBcryptHasher(cfg.Security.BcryptCost)
	tokens := middleware.NewJWTManager(middleware.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenTTL:  cfg.JWT.AccessTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTTL,
		Issuer:          cfg.JWT.Issuer,
	})

	// -------- 业务服务 --------
	svcLog := log.Named("service")
	services := &Services{
		Auth:        service.NewAuthService(store, hasher, tokens, svcLog),
		User:        service.NewUserService(store, hasher, svcLog),
		Menu:        service.NewMenuService(store, svcLog),
		Location:    service.NewLocationService(store, svcLog),
		Category:    service.NewCategoryService(store, svcLog),
		Item:        service.NewItemService(store, svcLog),
		OptionGroup: service.NewOptionGroupService(store, svcLog),
		Option:      service.NewOptionService(store, svcLog),
	}

	// -------- Controller 层 --------
	ctlLog := log.Named("http")
	controllers := &router.Controllers{
		Auth:        controller.NewAuthController(services.Auth, ctlLog),
		User:        controller.NewUserController(services.User, ctlLog),
		Menu:        controller.NewMenuController(services.Menu, ctlLog),
		Location:    controller.NewLocationController(services.Location, ctlLog),
		Category:    controller.NewCategoryController(services.Category, ctlLog),
		Item:        controller.NewItemController(services.Item, ctlLog),
		OptionGroup: controller.NewOptionGroupController(services.OptionGroup, ctlLog),
		Option:      controller.NewOptionController(services.Option, ctlLog),
	}

	engine := router.SetupRouter(controllers, router.Options{
		Verifier:      services.Auth,
		Log:           ctlLog,
		Registry:      reg,
		PublicLimiter: middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		UserLimiter:   middleware.NewRateLimiter(cfg.RateLimit.UserRPS, cfg.RateLimit.UserBurst),
		Swagger:       cfg.Server.Swagger,
	})

	return &App{
		Config:   cfg,
		DB:       db,
		Store:    store,
		Tokens:   tokens,
		Services: services,
		Engine:   engine,
		Log:      log,
	}, nil
}

// Bootstrap 启动时保证存在一个超级管理员
func (a *App) Bootstrap(ctx context.Context) error {
	created, err := a.Services.User.EnsureSuperAdmin(ctx, service.AdminAccount{
		Username: a.Config.Admin.Username,
		Email:    a.Config.Admin.Email,
		Password: a.Config.Admin.Password,
	})
	if err != nil {
		return err
	}
	if !created {
		a.Log.Debug("super admin already present")
	}
	return nil
}

// Handler 带 CORS 的根 handler
func (a *App) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: a.Config.Server.CORSOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID},
		MaxAge:         600,
	}).Handler(a.Engine)
}
