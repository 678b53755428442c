package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/matinfathi/oo-backend/internal/model"
)

// menuTree 菜单完整内容树
var menuTree = []string{
	"Categories",
	"Categories.Items",
	"Categories.Items.OptionGroups",
	"Categories.Items.OptionGroups.Options",
}

// MenuRepository 菜单仓库接口
type MenuRepository interface {
	Create(ctx context.Context, menu *model.Menu) error
	GetByID(ctx context.Context, id int64) (*model.Menu, error)
	GetTree(ctx context.Context, id int64) (*model.Menu, error)
	List(ctx context.Context, page Page) ([]model.Menu, error)
	Update(ctx context.Context, menu *model.Menu) error
	Delete(ctx context.Context, id int64) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type menuRepository struct {
	crud[model.Menu]
}

// NewMenuRepository 创建菜单仓库
func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{crud[model.Menu]{db: db}}
}

func (r *menuRepository) Create(ctx context.Context, menu *model.Menu) error {
	return r.create(ctx, menu)
}

// GetByID 仅菜单本身
func (r *menuRepository) GetByID(ctx context.Context, id int64) (*model.Menu, error) {
	return r.first(ctx, id)
}

// GetTree 菜单及其全部分类、菜品、规格
func (r *menuRepository) GetTree(ctx context.Context, id int64) (*model.Menu, error) {
	return r.first(ctx, id, menuTree...)
}

func (r *menuRepository) List(ctx context.Context, page Page) ([]model.Menu, error) {
	return r.list(ctx, page, nil)
}

func (r *menuRepository) Update(ctx context.Context, menu *model.Menu) error {
	return r.save(ctx, menu)
}

// Delete 级联删除分类及以下
func (r *menuRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteMenu(r.db.WithContext(ctx), id)
}

func (r *menuRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, id)
}
