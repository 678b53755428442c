package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/matinfathi/oo-backend/internal/model"
)

var itemTree = []string{
	"OptionGroups",
	"OptionGroups.Options",
}

// ItemRepository 菜品仓库接口
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	GetTree(ctx context.Context, id int64) (*model.Item, error)
	ListByCategory(ctx context.Context, categoryID int64, page Page) ([]model.Item, error)
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id int64) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type itemRepository struct {
	crud[model.Item]
}

// NewItemRepository 创建菜品仓库
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{crud[model.Item]{db: db}}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.create(ctx, item)
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	return r.first(ctx, id)
}

// GetTree 菜品及其规格组、选项
func (r *itemRepository) GetTree(ctx context.Context, id int64) (*model.Item, error) {
	return r.first(ctx, id, itemTree...)
}

func (r *itemRepository) ListByCategory(ctx context.Context, categoryID int64, page Page) ([]model.Item, error) {
	return r.list(ctx, page, map[string]interface{}{"category_fk": categoryID}, itemTree...)
}

func (r *itemRepository) Update(ctx context.Context, item *model.Item) error {
	return r.save(ctx, item)
}

func (r *itemRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteItems(r.db.WithContext(ctx), "id = ?", id)
}

func (r *itemRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, id)
}
