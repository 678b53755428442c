package repository

import (
	"context"

	"gorm.io/gorm"
)

// ==================== Store 工作单元 ====================

// Store 聚合所有仓库，事务内的仓库共享同一个 tx
type Store struct {
	db *gorm.DB

	Users        UserRepository
	Menus        MenuRepository
	Locations    LocationRepository
	Categories   CategoryRepository
	Items        ItemRepository
	OptionGroups OptionGroupRepository
	Options      OptionRepository
}

// NewStore 创建工作单元
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:           db,
		Users:        NewUserRepository(db),
		Menus:        NewMenuRepository(db),
		Locations:    NewLocationRepository(db),
		Categories:   NewCategoryRepository(db),
		Items:        NewItemRepository(db),
		OptionGroups: NewOptionGroupRepository(db),
		Options:      NewOptionRepository(db),
	}
}

// Transaction 执行事务
// fn 返回 nil 时提交，返回错误、panic 或 ctx 取消时回滚
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
