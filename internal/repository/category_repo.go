package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/matinfathi/oo-backend/internal/model"
)

// categoryTree 分类下的菜品、规格组、选项
var categoryTree = []string{
	"Items",
	"Items.OptionGroups",
	"Items.OptionGroups.Options",
}

// CategoryRepository 分类仓库接口
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetTree(ctx context.Context, id int64) (*model.Category, error)
	ListByMenu(ctx context.Context, menuID int64, page Page) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int64) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type categoryRepository struct {
	crud[model.Category]
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{crud[model.Category]{db: db}}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.create(ctx, category)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	return r.first(ctx, id)
}

// GetTree 分类及其完整子树
func (r *categoryRepository) GetTree(ctx context.Context, id int64) (*model.Category, error) {
	return r.first(ctx, id, categoryTree...)
}

// ListByMenu 菜单下的分类，每个分类带完整子树
func (r *categoryRepository) ListByMenu(ctx context.Context, menuID int64, page Page) ([]model.Category, error) {
	return r.list(ctx, page, map[string]interface{}{"menu_fk": menuID}, categoryTree...)
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.save(ctx, category)
}

// Delete 级联删除菜品及以下
func (r *categoryRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteCategories(r.db.WithContext(ctx), "id = ?", id)
}

func (r *categoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, id)
}
