package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/model"
	"github.com/matinfathi/oo-backend/internal/policy"
	"github.com/matinfathi/oo-backend/internal/repository"
)

// ==================== ItemService 菜品服务 ====================

// ItemService 菜品服务
type ItemService struct {
	store *repository.Store
	log   *zap.Logger
}

// NewItemService 创建菜品服务
func NewItemService(store *repository.Store, log *zap.Logger) *ItemService {
	return &ItemService{store: store, log: log}
}

// List 分类下的菜品，带规格组与选项
func (s *ItemService) List(ctx context.Context, p *policy.Principal, categoryID int64, q dto.PageQuery) ([]model.Item, error) {
	if err := authorize(p, policy.ActionList, policy.On(policy.ResourceItem)); err != nil {
		return nil, err
	}
	page, err := toPage(q)
	if err != nil {
		return nil, err
	}

	var items []model.Item
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		items, err = tx.Items.ListByCategory(ctx, categoryID, page)
		return err
	})
	return items, err
}

// Get 菜品及其规格组、选项
func (s *ItemService) Get(ctx context.Context, p *policy.Principal, id int64) (*model.Item, error) {
	if err := authorize(p, policy.ActionGet, policy.On(policy.ResourceItem)); err != nil {
		return nil, err
	}

	var item *model.Item
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		item, err = tx.Items.GetTree(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, notFound("Item")
	}
	return item, nil
}

// Create 在分类下创建菜品，is_available 缺省为 true
func (s *ItemService) Create(ctx context.Context, p *policy.Principal, categoryID int64, req *dto.ItemCreateRequest) (*model.Item, error) {
	if err := authorize(p, policy.ActionCreate, policy.On(policy.ResourceItem)); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var item *model.Item
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		exists, err := tx.Categories.Exists(ctx, categoryID)
		if err != nil {
			return err
		}
		if !exists {
			return notFound("Category")
		}

		row := req.ToModel(categoryID)
		if err := tx.Items.Create(ctx, row); err != nil {
			return err
		}
		item, err = tx.Items.GetTree(ctx, row.ID)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return item, nil
}

// Patch 局部更新，未提供的字段保持不变
func (s *ItemService) Patch(ctx context.Context, p *policy.Principal, id int64, req *dto.ItemPatchRequest) (*model.Item, error) {
	if err := authorize(p, policy.ActionUpdate, policy.On(policy.ResourceItem)); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var item *model.Item
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		row, err := tx.Items.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if row == nil {
			return notFound("Item")
		}

		if req.CategoryID.Set {
			exists, err := tx.Categories.Exists(ctx, req.CategoryID.Value)
			if err != nil {
				return err
			}
			if !exists {
				return validationError("category %d does not exist", req.CategoryID.Value)
			}
		}

		req.ApplyTo(row)
		if err := tx.Items.Update(ctx, row); err != nil {
			return err
		}
		item, err = tx.Items.GetTree(ctx, id)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return item, nil
}

// Delete 删除菜品及其规格
func (s *ItemService) Delete(ctx context.Context, p *policy.Principal, id int64) (*dto.MessageResponse, error) {
	if err := authorize(p, policy.ActionDelete, policy.On(policy.ResourceItem)); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		affected, err := tx.Items.Delete(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return notFound("Item")
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return deleted("Item"), nil
}
