// @title OO Backend API
// @version 1.0
// @description 菜单、门店、分类、菜品与规格的后台管理接口
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matinfathi/oo-backend/internal/app"
	"github.com/matinfathi/oo-backend/internal/config"
	"github.com/matinfathi/oo-backend/pkg/database"
	"github.com/matinfathi/oo-backend/pkg/logger"
)

func main() {
	cliApp := &cli.App{
		Name:  "oo-backend",
		Usage: "menu catalog backend",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "config file (yaml/json/toml)", EnvVars: []string{"OO_CONFIG"}},
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file, ignored when missing"},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the HTTP server",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "migrate", Value: true, Usage: "apply migrations before serving"},
				},
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "manage the database schema",
				Subcommands: []*cli.Command{
					{Name: "up", Usage: "apply all pending migrations", Action: migrateUp},
					{
						Name:   "down",
						Usage:  "roll back migrations",
						Flags:  []cli.Flag{&cli.IntFlag{Name: "steps", Value: 1}},
						Action: migrateDown,
					},
					{Name: "version", Usage: "print the current schema version", Action: migrateVersion},
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ==================== 初始化 ====================

// runtime 命令共用的配置、日志与数据库
type runtime struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func setup(c *cli.Context) (*runtime, error) {
	cfg, err := config.Load(config.LoadOptions{
		File:    c.String("config"),
		EnvFile: c.String("env-file"),
	})
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database, log.Named("db"))
	if err != nil {
		return nil, err
	}
	log.Info("数据库连接成功", zap.String("driver", cfg.Database.Driver))

	return &runtime{cfg: cfg, log: log, db: db}, nil
}

func (r *runtime) close() {
	if sqlDB, err := r.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = r.log.Sync()
}

func (r *runtime) initializer() *database.Initializer {
	return database.NewInitializer(r.db, r.cfg.Database.Driver, r.log.Named("migrate"))
}

// ==================== 命令 ====================

func serve(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	defer rt.close()

	if c.Bool("migrate") {
		if err := rt.initializer().Up(c.Context); err != nil {
			return err
		}
	}

	if rt.cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a, err := app.New(rt.cfg, rt.db, rt.log, reg)
	if err != nil {
		return err
	}
	if err := a.Bootstrap(c.Context); err != nil {
		return fmt.Errorf("bootstrap super admin: %w", err)
	}

	return startServer(rt.cfg.Server, a.Handler(), rt.log)
}

func migrateUp(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	defer rt.close()
	return rt.initializer().Up(c.Context)
}

func migrateDown(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	defer rt.close()
	return rt.initializer().Down(c.Context, c.Int("steps"))
}

func migrateVersion(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	defer rt.close()

	version, dirty, err := rt.initializer().Version()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "version=%d dirty=%t\n", version, dirty)
	return nil
}

// ==================== 服务启动 ====================

// startServer 启动服务，收到退出信号后优雅关闭
func startServer(cfg config.ServerConfig, handler http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("服务启动失败: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info("正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("服务强制关闭: %w", err)
	}
	log.Info("服务已退出")
	return nil
}
