package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/model"
	"github.com/matinfathi/oo-backend/internal/policy"
	"github.com/matinfathi/oo-backend/internal/repository"
)

// ==================== OptionGroupService 规格组服务 ====================

// OptionGroupService 规格组服务
type OptionGroupService struct {
	store *repository.Store
	log   *zap.Logger
}

// NewOptionGroupService 创建规格组服务
func NewOptionGroupService(store *repository.Store, log *zap.Logger) *OptionGroupService {
	return &OptionGroupService{store: store, log: log}
}

// List 菜品下的规格组，带选项
func (s *OptionGroupService) List(ctx context.Context, p *policy.Principal, itemID int64, q dto.PageQuery) ([]model.OptionGroup, error) {
	if err := authorize(p, policy.ActionList, policy.On(policy.ResourceOptionGroup)); err != nil {
		return nil, err
	}
	page, err := toPage(q)
	if err != nil {
		return nil, err
	}

	var groups []model.OptionGroup
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		groups, err = tx.OptionGroups.ListByItem(ctx, itemID, page)
		return err
	})
	return groups, err
}

// Get 规格组及其选项
func (s *OptionGroupService) Get(ctx context.Context, p *policy.Principal, id int64) (*model.OptionGroup, error) {
	if err := authorize(p, policy.ActionGet, policy.On(policy.ResourceOptionGroup)); err != nil {
		return nil, err
	}

	var group *model.OptionGroup
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		group, err = tx.OptionGroups.GetTree(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, notFound("OptionGroup")
	}
	return group, nil
}

// Create 在菜品下创建规格组
func (s *OptionGroupService) Create(ctx context.Context, p *policy.Principal, itemID int64, req *dto.OptionGroupCreateRequest) (*model.OptionGroup, error) {
	if err := authorize(p, policy.ActionCreate, policy.On(policy.ResourceOptionGroup)); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var group *model.OptionGroup
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		exists, err := tx.Items.Exists(ctx, itemID)
		if err != nil {
			return err
		}
		if !exists {
			return notFound("Item")
		}

		row := req.ToModel(itemID)
		if err := tx.OptionGroups.Create(ctx, row); err != nil {
			return err
		}
		group, err = tx.OptionGroups.GetTree(ctx, row.ID)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return group, nil
}

// Patch 局部更新
func (s *OptionGroupService) Patch(ctx context.Context, p *policy.Principal, id int64, req *dto.OptionGroupPatchRequest) (*model.OptionGroup, error) {
	if err := authorize(p, policy.ActionUpdate, policy.On(policy.ResourceOptionGroup)); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var group *model.OptionGroup
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		row, err := tx.OptionGroups.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if row == nil {
			return notFound("OptionGroup")
		}

		if req.ItemID.Set {
			exists, err := tx.Items.Exists(ctx, req.ItemID.Value)
			if err != nil {
				return err
			}
			if !exists {
				return validationError("item %d does not exist", req.ItemID.Value)
			}
		}

		req.ApplyTo(row)
		if err := tx.OptionGroups.Update(ctx, row); err != nil {
			return err
		}
		group, err = tx.OptionGroups.GetTree(ctx, id)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return group, nil
}

// Delete 删除规格组及其选项
func (s *OptionGroupService) Delete(ctx context.Context, p *policy.Principal, id int64) (*dto.MessageResponse, error) {
	if err := authorize(p, policy.ActionDelete, policy.On(policy.ResourceOptionGroup)); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		affected, err := tx.OptionGroups.Delete(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return notFound("OptionGroup")
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return deleted("OptionGroup"), nil
}

// ==================== OptionService 选项服务 ====================

// OptionService 选项服务
type OptionService struct {
	store *repository.Store
	log   *zap.Logger
}

// NewOptionService 创建选项服务
func NewOptionService(store *repository.Store, log *zap.Logger) *OptionService {
	return &OptionService{store: store, log: log}
}

// List 规格组下的选项
func (s *OptionService) List(ctx context.Context, p *policy.Principal, groupID int64, q dto.PageQuery) ([]model.Option, error) {
	if err := authorize(p, policy.ActionList, policy.On(policy.ResourceOption)); err != nil {
		return nil, err
	}
	page, err := toPage(q)
	if err != nil {
		return nil, err
	}

	var options []model.Option
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		options, err = tx.Options.ListByGroup(ctx, groupID, page)
		return err
	})
	return options, err
}

func (s *OptionService) Get(ctx context.Context, p *policy.Principal, id int64) (*model.Option, error) {
	if err := authorize(p, policy.ActionGet, policy.On(policy.ResourceOption)); err != nil {
		return nil, err
	}

	var option *model.Option
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		option, err = tx.Options.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if option == nil {
		return nil, notFound("Option")
	}
	return option, nil
}

// Create 在规格组下创建选项，price 缺省为 0
func (s *OptionService) Create(ctx context.Context, p *policy.Principal, groupID int64, req *dto.OptionCreateRequest) (*model.Option, error) {
	if err := authorize(p, policy.ActionCreate, policy.On(policy.ResourceOption)); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	option := req.ToModel(groupID)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		exists, err := tx.OptionGroups.Exists(ctx, groupID)
		if err != nil {
			return err
		}
		if !exists {
			return notFound("OptionGroup")
		}
		return tx.Options.Create(ctx, option)
	})
	if err != nil {
		return nil, translate(err)
	}
	return option, nil
}

func (s *OptionService) Patch(ctx context.Context, p *policy.Principal, id int64, req *dto.OptionPatchRequest) (*model.Option, error) {
	if err := authorize(p, policy.ActionUpdate, policy.On(policy.ResourceOption)); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var option *model.Option
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		option, err = tx.Options.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if option == nil {
			return notFound("Option")
		}

		if req.OptionGroupID.Set {
			exists, err := tx.OptionGroups.Exists(ctx, req.OptionGroupID.Value)
			if err != nil {
				return err
			}
			if !exists {
				return validationError("option group %d does not exist", req.OptionGroupID.Value)
			}
		}

		req.ApplyTo(option)
		return tx.Options.Update(ctx, option)
	})
	if err != nil {
		return nil, translate(err)
	}
	return option, nil
}

func (s *OptionService) Delete(ctx context.Context, p *policy.Principal, id int64) (*dto.MessageResponse, error) {
	if err := authorize(p, policy.ActionDelete, policy.On(policy.ResourceOption)); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		affected, err := tx.Options.Delete(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return notFound("Option")
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return deleted("Option"), nil
}
