package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/model"
	"github.com/matinfathi/oo-backend/internal/policy"
	"github.com/matinfathi/oo-backend/internal/repository"
)

// ==================== UserService 用户服务 ====================

// UserService 用户服务
type UserService struct {
	store  *repository.Store
	hasher PasswordHasher
	log    *zap.Logger
}

// NewUserService 创建用户服务
func NewUserService(store *repository.Store, hasher PasswordHasher, log *zap.Logger) *UserService {
	return &UserService{store: store, hasher: hasher, log: log}
}

// AdminAccount 启动时保证存在的超级管理员
type AdminAccount struct {
	Username string
	Email    string
	Password string
}

// ==================== 注册 / 创建 ====================

// Register 自助注册，不需要登录，角色固定为 Customer
func (s *UserService) Register(ctx context.Context, req *dto.SignupRequest) (*model.User, error) {
	if err := authorize(nil, policy.ActionCreate, policy.On(policy.ResourceSignup)); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	return s.create(ctx, req, policy.SignupRole())
}

// Create 管理员创建用户，可指定角色
func (s *UserService) Create(ctx context.Context, p *policy.Principal, req *dto.CreateUserRequest) (*model.User, error) {
	if err := authorize(p, policy.ActionCreate, policy.On(policy.ResourceUser)); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	return s.create(ctx, &req.SignupRequest, req.Role)
}

func (s *UserService) create(ctx context.Context, req *dto.SignupRequest, role model.Role) (*model.User, error) {
	// 哈希放在事务外，缩短事务时间
	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := req.ToModel(role)
	user.HashedPassword = hashed

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := ensureUnique(ctx, tx, user.Username, user.Email, 0); err != nil {
			return err
		}
		return tx.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, translate(err)
	}

	s.log.Info("user created", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// ensureUnique 用户名、邮箱不能被其他用户占用
func ensureUnique(ctx context.Context, tx *repository.Store, username, email string, excludeID int64) error {
	taken, err := tx.Users.ExistsByUsername(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameExists
	}

	taken, err = tx.Users.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailExists
	}
	return nil
}

// ==================== 查询 ====================

// List 用户列表
func (s *UserService) List(ctx context.Context, p *policy.Principal, q dto.PageQuery) ([]model.User, error) {
	if err := authorize(p, policy.ActionList, policy.On(policy.ResourceUser)); err != nil {
		return nil, err
	}
	page, err := toPage(q)
	if err != nil {
		return nil, err
	}

	var users []model.User
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		users, err = tx.Users.List(ctx, page)
		return err
	})
	return users, err
}

// Get 按 id / username / email 查询，优先级依次降低
func (s *UserService) Get(ctx context.Context, p *policy.Principal, lookup dto.UserLookup) (*model.User, error) {
	target := policy.On(policy.ResourceUser)
	if lookup.ID != nil {
		target = policy.OnUser(*lookup.ID)
	}
	if err := authorize(p, policy.ActionGet, target); err != nil {
		return nil, err
	}
	if lookup.Empty() {
		return nil, ErrEmptyUserLookup
	}

	var user *model.User
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		switch {
		case lookup.ID != nil:
			user, err = tx.Users.GetByID(ctx, *lookup.ID)
		case lookup.Username != nil && *lookup.Username != "":
			user, err = tx.Users.GetByUsername(ctx, *lookup.Username)
		default:
			user, err = tx.Users.GetByEmail(ctx, *lookup.Email)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("User")
	}
	return user, nil
}

// ==================== 更新 / 删除 ====================

// Patch 局部更新；本人可改自己，改角色只允许超级管理员（提交原角色视为未修改）
func (s *UserService) Patch(ctx context.Context, p *policy.Principal, id int64, req *dto.UserPatchRequest) (*model.User, error) {
	if err := authorize(p, policy.ActionUpdate, policy.OnUser(id)); err != nil {
		return nil, err
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var hashed string
	if req.Password.Set {
		var err error
		if hashed, err = s.hasher.Hash(req.Password.Value); err != nil {
			return nil, err
		}
	}

	var user *model.User
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		user, err = tx.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return notFound("User")
		}
		// 角色不变时不算改角色
		if req.Role.Set && req.Role.Value != user.Role {
			if err := authorize(p, policy.ActionAssignRole, policy.OnUser(id)); err != nil {
				return err
			}
		}

		req.ApplyTo(user)
		if hashed != "" {
			user.HashedPassword = hashed
		}

		if req.Username.Set || req.Email.Set {
			if err := ensureUnique(ctx, tx, user.Username, user.Email, user.ID); err != nil {
				return err
			}
		}
		return tx.Users.Update(ctx, user)
	})
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

// Delete 删除用户，名下仍有门店时拒绝
func (s *UserService) Delete(ctx context.Context, p *policy.Principal, id int64) (*dto.MessageResponse, error) {
	if err := authorize(p, policy.ActionDelete, policy.OnUser(id)); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		locations, err := tx.Locations.CountByUser(ctx, id)
		if err != nil {
			return err
		}
		if locations > 0 {
			return conflictError("User still owns %d location(s).", locations)
		}

		affected, err := tx.Users.Delete(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return notFound("User")
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	s.log.Info("user deleted", zap.Int64("user_id", id), zap.Int64("by", p.UserID))
	return deleted("User"), nil
}

// ==================== 初始化 ====================

// EnsureSuperAdmin 不存在超级管理员时创建一个，返回是否新建
func (s *UserService) EnsureSuperAdmin(ctx context.Context, admin AdminAccount) (bool, error) {
	hashed, err := s.hasher.Hash(admin.Password)
	if err != nil {
		return false, err
	}

	created := false
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		exists, err := tx.Users.ExistsByRole(ctx, model.RoleSuperAdmin)
		if err != nil || exists {
			return err
		}
		if err := ensureUnique(ctx, tx, admin.Username, admin.Email, 0); err != nil {
			return err
		}

		user := &model.User{
			Username:       admin.Username,
			Email:          admin.Email,
			HashedPassword: hashed,
			Role:           model.RoleSuperAdmin,
		}
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, translate(err)
	}

	if created {
		s.log.Info("super admin created", zap.String("username", admin.Username))
	}
	return created, nil
}
