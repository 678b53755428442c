package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ==================== 分页 ====================

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page 偏移分页
type Page struct {
	Offset int
	Limit  int
}

// Normalize 补默认值并限制上限
func (p Page) Normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// ==================== 通用 CRUD ====================

// crud 各实体仓库共用的基础操作
type crud[T any] struct {
	db *gorm.DB
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// withChildren 逐层预加载，子节点按 id 升序
func withChildren(db *gorm.DB, paths []string) *gorm.DB {
	for _, path := range paths {
		db = db.Preload(path, orderByID)
	}
	return db
}

func (r crud[T]) create(ctx context.Context, m *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error
}

// first 不存在时返回 nil, nil
func (r crud[T]) first(ctx context.Context, id int64, paths ...string) (*T, error) {
	var m T
	err := withChildren(r.db.WithContext(ctx), paths).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// list 按 id 升序分页，where 为空时不过滤
func (r crud[T]) list(ctx context.Context, page Page, where map[string]interface{}, paths ...string) ([]T, error) {
	page = page.Normalize()

	query := withChildren(r.db.WithContext(ctx).Model(new(T)), paths)
	if len(where) > 0 {
		query = query.Where(where)
	}

	rows := make([]T, 0, page.Limit)
	err := query.
		Order("id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&rows).Error
	return rows, err
}

// save 写回全部列，不级联保存关联
func (r crud[T]) save(ctx context.Context, m *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error
}

func (r crud[T]) exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r crud[T]) count(ctx context.Context, where map[string]interface{}) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(new(T)).
		Where(where).
		Count(&count).Error
	return count, err
}
