package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matinfathi/oo-backend/internal/model"
)

// Initializer 数据库结构初始化
// PostgreSQL 走嵌入的版本化迁移，SQLite（本地开发、测试）走 AutoMigrate
type Initializer struct {
	db     *gorm.DB
	driver string
	log    *zap.Logger
}

// NewInitializer 创建初始化器
func NewInitializer(db *gorm.DB, driver string, log *zap.Logger) *Initializer {
	return &Initializer{db: db, driver: driver, log: log}
}

// Up 升级到最新版本
func (i *Initializer) Up(ctx context.Context) error {
	start := time.Now()

	switch i.driver {
	case DriverSQLite:
		if err := i.db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
	case DriverPostgres:
		m, err := i.migrator()
		if err != nil {
			return err
		}
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate up: %w", err)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", i.driver)
	}

	i.log.Info("schema up to date", zap.String("driver", i.driver), zap.Duration("took", time.Since(start)))
	return nil
}

// Down 回滚 steps 个版本，steps <= 0 表示全部回滚
func (i *Initializer) Down(ctx context.Context, steps int) error {
	switch i.driver {
	case DriverSQLite:
		tables := model.All()
		// 子表先删
		for j := len(tables) - 1; j >= 0; j-- {
			if err := i.db.WithContext(ctx).Migrator().DropTable(tables[j]); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
		return nil
	case DriverPostgres:
		m, err := i.migrator()
		if err != nil {
			return err
		}
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate down: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported database driver %q", i.driver)
}

// Version 当前迁移版本，SQLite 固定返回 0
func (i *Initializer) Version() (uint, bool, error) {
	if i.driver != DriverPostgres {
		return 0, false, nil
	}
	m, err := i.migrator()
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (i *Initializer) migrator() (*migrate.Migrate, error) {
	sqlDB, err := i.db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	src, err := iofs.New(MigrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}
	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return nil, fmt.Errorf("migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, DriverPostgres, driver)
	if err != nil {
		return nil, fmt.Errorf("migrate init: %w", err)
	}
	m.Log = migrateLogger{log: i.log}
	return m, nil
}

// migrateLogger 适配 migrate.Logger
type migrateLogger struct {
	log *zap.Logger
}

func (l migrateLogger) Printf(format string, v ...interface{}) {
	l.log.Sugar().Infof(format, v...)
}

func (l migrateLogger) Verbose() bool {
	return false
}
