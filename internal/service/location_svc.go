package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/model"
	"github.com/matinfathi/oo-backend/internal/policy"
	"github.com/matinfathi/oo-backend/internal/repository"
)

// ==================== LocationService 门店服务 ====================

// LocationService 门店服务
type LocationService struct {
	store *repository.Store
	log   *zap.Logger
}

// NewLocationService 创建门店服务
func NewLocationService(store *repository.Store, log *zap.Logger) *LocationService {
	return &LocationService{store: store, log: log}
}

// List 使用该菜单的门店
func (s *LocationService) List(ctx context.Context, p *policy.Principal, menuID int64, q dto.PageQuery) ([]model.Location, error) {
	if err := authorize(p, policy.ActionList, policy.On(policy.ResourceLocation)); err != nil {
		return nil, err
	}
	page, err := toPage(q)
	if err != nil {
		return nil, err
	}

	var locations []model.Location
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		locations, err = tx.Locations.ListByMenu(ctx, menuID, page)
		return err
	})
	return locations, err
}

// Get 门店详情
func (s *LocationService) Get(ctx context.Context, p *policy.Principal, id int64) (*model.Location, error) {
	if err := authorize(p, policy.ActionGet, policy.On(policy.ResourceLocation)); err != nil {
		return nil, err
	}

	var location *model.Location
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		location, err = tx.Locations.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, notFound("Location")
	}
	return location, nil
}

// Create 在菜单下创建门店，未指定 user_fk 时归属当前用户
func (s *LocationService) Create(ctx context.Context, p *policy.Principal, menuID int64, req *dto.LocationCreateRequest) (*model.Location, error) {
	if err := authorize(p, policy.ActionCreate, policy.On(policy.ResourceLocation)); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	location := req.ToModel(menuID, p.UserID)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		exists, err := tx.Menus.Exists(ctx, menuID)
		if err != nil {
			return err
		}
		if !exists {
			return notFound("Menu")
		}
		if err := ensureUserExists(ctx, tx, location.UserID); err != nil {
			return err
		}
		return tx.Locations.Create(ctx, location)
	})
	if err != nil {
		return nil, translate(err)
	}
	return location, nil
}

// Patch 局部更新，可更换菜单或归属用户
func (s *LocationService) Patch(ctx context.Context, p *policy.Principal, id int64, req *dto.LocationPatchRequest) (*model.Location, error) {
	if err := authorize(p, policy.ActionUpdate, policy.On(policy.ResourceLocation)); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var location *model.Location
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		location, err = tx.Locations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if location == nil {
			return notFound("Location")
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
		if req.UserID.Set {
			if err := ensureUserExists(ctx, tx, req.UserID.Value); err != nil {
				return err
			}
		}

		req.ApplyTo(location)
		return tx.Locations.Update(ctx, location)
	})
	if err != nil {
		return nil, translate(err)
	}
	return location, nil
}

// Delete 删除门店
func (s *LocationService) Delete(ctx context.Context, p *policy.Principal, id int64) (*dto.MessageResponse, error) {
	if err := authorize(p, policy.ActionDelete, policy.On(policy.ResourceLocation)); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		affected, err := tx.Locations.Delete(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return notFound("Location")
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return deleted("Location"), nil
}

func ensureUserExists(ctx context.Context, tx *repository.Store, userID int64) error {
	user, err := tx.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return validationError("user %d does not exist", userID)
	}
	return nil
}
