package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/model"
	"github.com/matinfathi/oo-backend/internal/policy"
	"github.com/matinfathi/oo-backend/internal/repository"
)

// ==================== MenuService 菜单服务 ====================

// MenuService 菜单服务
type MenuService struct {
	store *repository.Store
	log   *zap.Logger
}

// NewMenuService 创建菜单服务
func NewMenuService(store *repository.Store, log *zap.Logger) *MenuService {
	return &MenuService{store: store, log: log}
}

// List 菜单列表，不带内容树
func (s *MenuService) List(ctx context.Context, p *policy.Principal, q dto.PageQuery) ([]model.Menu, error) {
	if err := authorize(p, policy.ActionList, policy.On(policy.ResourceMenu)); err != nil {
		return nil, err
	}
	page, err := toPage(q)
	if err != nil {
		return nil, err
	}

	var menus []model.Menu
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		menus, err = tx.Menus.List(ctx, page)
		return err
	})
	return menus, err
}

// Get 菜单及完整内容树
func (s *MenuService) Get(ctx context.Context, p *policy.Principal, id int64) (*model.Menu, error) {
	if err := authorize(p, policy.ActionGet, policy.On(policy.ResourceMenu)); err != nil {
		return nil, err
	}

	var menu *model.Menu
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		menu, err = tx.Menus.GetTree(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, notFound("Menu")
	}
	return menu, nil
}

// Create 创建菜单
func (s *MenuService) Create(ctx context.Context, p *policy.Principal, req *dto.MenuCreateRequest) (*model.Menu, error) {
	if err := authorize(p, policy.ActionCreate, policy.On(policy.ResourceMenu)); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	menu := req.ToModel()
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		return tx.Menus.Create(ctx, menu)
	})
	if err != nil {
		return nil, translate(err)
	}
	return menu, nil
}

// Patch 局部更新
func (s *MenuService) Patch(ctx context.Context, p *policy.Principal, id int64, req *dto.MenuPatchRequest) (*model.Menu, error) {
	if err := authorize(p, policy.ActionUpdate, policy.On(policy.ResourceMenu)); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var menu *model.Menu
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		menu, err = tx.Menus.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if menu == nil {
			return notFound("Menu")
		}

		req.ApplyTo(menu)
		return tx.Menus.Update(ctx, menu)
	})
	if err != nil {
		return nil, translate(err)
	}
	return menu, nil
}

// Delete 删除菜单及其分类树；仍被门店引用时拒绝
func (s *MenuService) Delete(ctx context.Context, p *policy.Principal, id int64) (*dto.MessageResponse, error) {
	if err := authorize(p, policy.ActionDelete, policy.On(policy.ResourceMenu)); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		locations, err := tx.Locations.CountByMenu(ctx, id)
		if err != nil {
			return err
		}
		if locations > 0 {
			return conflictError("Menu is still used by %d location(s).", locations)
		}

		affected, err := tx.Menus.Delete(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return notFound("Menu")
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	s.log.Info("menu deleted", zap.Int64("menu_id", id), zap.Int64("by", p.UserID))
	return deleted("Menu"), nil
}
