package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/matinfathi/oo-backend/internal/model"
)

// LocationRepository 门店仓库接口
type LocationRepository interface {
	Create(ctx context.Context, location *model.Location) error
	GetByID(ctx context.Context, id int64) (*model.Location, error)
	ListByMenu(ctx context.Context, menuID int64, page Page) ([]model.Location, error)
	Update(ctx context.Context, location *model.Location) error
	Delete(ctx context.Context, id int64) (int64, error)
	CountByMenu(ctx context.Context, menuID int64) (int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

type locationRepository struct {
	crud[model.Location]
}

// NewLocationRepository 创建门店仓库
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{crud[model.Location]{db: db}}
}

func (r *locationRepository) Create(ctx context.Context, location *model.Location) error {
	return r.create(ctx, location)
}

func (r *locationRepository) GetByID(ctx context.Context, id int64) (*model.Location, error) {
	return r.first(ctx, id)
}

func (r *locationRepository) ListByMenu(ctx context.Context, menuID int64, page Page) ([]model.Location, error) {
	return r.list(ctx, page, map[string]interface{}{"menu_fk": menuID})
}

func (r *locationRepository) Update(ctx context.Context, location *model.Location) error {
	return r.save(ctx, location)
}

func (r *locationRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Location{}, id)
	return res.RowsAffected, res.Error
}

// CountByMenu 引用该菜单的门店数
func (r *locationRepository) CountByMenu(ctx context.Context, menuID int64) (int64, error) {
	return r.count(ctx, map[string]interface{}{"menu_fk": menuID})
}

// CountByUser 用户名下门店数
func (r *locationRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return r.count(ctx, map[string]interface{}{"user_fk": userID})
}
