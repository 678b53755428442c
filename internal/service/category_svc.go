package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/model"
	"github.com/matinfathi/oo-backend/internal/policy"
	"github.com/matinfathi/oo-backend/internal/repository"
)

// ==================== CategoryService 分类服务 ====================

// CategoryService 分类服务
type CategoryService struct {
	store *repository.Store
	log   *zap.Logger
}

// NewCategoryService 创建分类服务
func NewCategoryService(store *repository.Store, log *zap.Logger) *CategoryService {
	return &CategoryService{store: store, log: log}
}

// List 菜单下的分类，每个分类带完整子树
func (s *CategoryService) List(ctx context.Context, p *policy.Principal, menuID int64, q dto.PageQuery) ([]model.Category, error) {
	if err := authorize(p, policy.ActionList, policy.On(policy.ResourceCategory)); err != nil {
		return nil, err
	}
	page, err := toPage(q)
	if err != nil {
		return nil, err
	}

	var categories []model.Category
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		categories, err = tx.Categories.ListByMenu(ctx, menuID, page)
		return err
	})
	return categories, err
}

// Get 分类及其菜品、规格组、选项
func (s *CategoryService) Get(ctx context.Context, p *policy.Principal, id int64) (*model.Category, error) {
	if err := authorize(p, policy.ActionGet, policy.On(policy.ResourceCategory)); err != nil {
		return nil, err
	}

	var category *model.Category
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		category, err = tx.Categories.GetTree(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, notFound("Category")
	}
	return category, nil
}

// Create 在菜单下创建分类
func (s *CategoryService) Create(ctx context.Context, p *policy.Principal, menuID int64, req *dto.CategoryCreateRequest) (*model.Category, error) {
	if err := authorize(p, policy.ActionCreate, policy.On(policy.ResourceCategory)); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var category *model.Category
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		exists, err := tx.Menus.Exists(ctx, menuID)
		if err != nil {
			return err
		}
		if !exists {
			return notFound("Menu")
		}

		row := req.ToModel(menuID)
		if err := tx.Categories.Create(ctx, row); err != nil {
			return err
		}
		category, err = tx.Categories.GetTree(ctx, row.ID)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return category, nil
}

// Patch 局部更新，menu_fk 变更时目标菜单必须存在
func (s *CategoryService) Patch(ctx context.Context, p *policy.Principal, id int64, req *dto.CategoryPatchRequest) (*model.Category, error) {
	if err := authorize(p, policy.ActionUpdate, policy.On(policy.ResourceCategory)); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var category *model.Category
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		row, err := tx.Categories.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if row == nil {
			return notFound("Category")
		}

		if req.MenuID.Set {
			exists, err := tx.Menus.Exists(ctx, req.MenuID.Value)
			if err != nil {
				return err
			}
			if !exists {
				return validationError("menu %d does not exist", req.MenuID.Value)
			}
		}

		req.ApplyTo(row)
		if err := tx.Categories.Update(ctx, row); err != nil {
			return err
		}
		category, err = tx.Categories.GetTree(ctx, id)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return category, nil
}

// Delete 删除分类及其下全部菜品
func (s *CategoryService) Delete(ctx context.Context, p *policy.Principal, id int64) (*dto.MessageResponse, error) {
	if err := authorize(p, policy.ActionDelete, policy.On(policy.ResourceCategory)); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		affected, err := tx.Categories.Delete(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return notFound("Category")
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	s.log.Info("category deleted", zap.Int64("category_id", id), zap.Int64("by", p.UserID))
	return deleted("Category"), nil
}
