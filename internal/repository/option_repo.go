package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/matinfathi/oo-backend/internal/model"
)

// ==================== OptionGroup ====================

// OptionGroupRepository 规格组仓库接口
type OptionGroupRepository interface {
	Create(ctx context.Context, group *model.OptionGroup) error
	GetByID(ctx context.Context, id int64) (*model.OptionGroup, error)
	GetTree(ctx context.Context, id int64) (*model.OptionGroup, error)
	ListByItem(ctx context.Context, itemID int64, page Page) ([]model.OptionGroup, error)
	Update(ctx context.Context, group *model.OptionGroup) error
	Delete(ctx context.Context, id int64) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type optionGroupRepository struct {
	crud[model.OptionGroup]
}

// NewOptionGroupRepository 创建规格组仓库
func NewOptionGroupRepository(db *gorm.DB) OptionGroupRepository {
	return &optionGroupRepository{crud[model.OptionGroup]{db: db}}
}

func (r *optionGroupRepository) Create(ctx context.Context, group *model.OptionGroup) error {
	return r.create(ctx, group)
}

func (r *optionGroupRepository) GetByID(ctx context.Context, id int64) (*model.OptionGroup, error) {
	return r.first(ctx, id)
}

// GetTree 规格组及其选项
func (r *optionGroupRepository) GetTree(ctx context.Context, id int64) (*model.OptionGroup, error) {
	return r.first(ctx, id, "Options")
}

func (r *optionGroupRepository) ListByItem(ctx context.Context, itemID int64, page Page) ([]model.OptionGroup, error) {
	return r.list(ctx, page, map[string]interface{}{"item_fk": itemID}, "Options")
}

func (r *optionGroupRepository) Update(ctx context.Context, group *model.OptionGroup) error {
	return r.save(ctx, group)
}

func (r *optionGroupRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteOptionGroups(r.db.WithContext(ctx), "id = ?", id)
}

func (r *optionGroupRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, id)
}

// ==================== Option ====================

// OptionRepository 选项仓库接口
type OptionRepository interface {
	Create(ctx context.Context, option *model.Option) error
	GetByID(ctx context.Context, id int64) (*model.Option, error)
	ListByGroup(ctx context.Context, groupID int64, page Page) ([]model.Option, error)
	Update(ctx context.Context, option *model.Option) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type optionRepository struct {
	crud[model.Option]
}

// NewOptionRepository 创建选项仓库
func NewOptionRepository(db *gorm.DB) OptionRepository {
	return &optionRepository{crud[model.Option]{db: db}}
}

func (r *optionRepository) Create(ctx context.Context, option *model.Option) error {
	return r.create(ctx, option)
}

func (r *optionRepository) GetByID(ctx context.Context, id int64) (*model.Option, error) {
	return r.first(ctx, id)
}

func (r *optionRepository) ListByGroup(ctx context.Context, groupID int64, page Page) ([]model.Option, error) {
	return r.list(ctx, page, map[string]interface{}{"option_group_fk": groupID})
}

func (r *optionRepository) Update(ctx context.Context, option *model.Option) error {
	return r.save(ctx, option)
}

func (r *optionRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteOptions(r.db.WithContext(ctx), "id = ?", id)
}
