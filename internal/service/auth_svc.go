package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/middleware"
	"github.com/matinfathi/oo-backend/internal/model"
	"github.com/matinfathi/oo-backend/internal/policy"
	"github.com/matinfathi/oo-backend/internal/repository"
)

// ==================== AuthService 认证服务 ====================

// AuthService 登录、刷新与凭证校验
type AuthService struct {
	store  *repository.Store
	hasher PasswordHasher
	tokens *middleware.JWTManager
	log    *zap.Logger
}

// NewAuthService 创建认证服务
func NewAuthService(store *repository.Store, hasher PasswordHasher, tokens *middleware.JWTManager, log *zap.Logger) *AuthService {
	return &AuthService{store: store, hasher: hasher, tokens: tokens, log: log}
}

// Login 用户名密码登录
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var user *model.User
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		user, err = tx.Users.GetByUsername(ctx, req.Username)
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// 验证密码
	if err := s.hasher.Compare(user.HashedPassword, req.Password); err != nil {
		s.log.Info("login rejected", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Refresh 用 Refresh Token 换新的 Token 对
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.LoginResponse, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	user, err := s.userFromToken(ctx, req.RefreshToken, middleware.SubjectRefresh)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Verify 校验 Access Token 并加载当前用户
// 角色以数据库为准，删除或降级立即生效
func (s *AuthService) Verify(ctx context.Context, token string) (*policy.Principal, error) {
	user, err := s.userFromToken(ctx, token, middleware.SubjectAccess)
	if err != nil {
		return nil, err
	}
	return &policy.Principal{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

func (s *AuthService) userFromToken(ctx context.Context, token, subject string) (*model.User, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil || claims.Subject != subject {
		return nil, ErrInvalidToken
	}

	var user *model.User
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		user, err = tx.Users.GetByID(ctx, claims.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func (s *AuthService) issue(user *model.User) (*dto.LoginResponse, error) {
	accessToken, refreshToken, err := s.tokens.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresAt:    time.Now().Add(s.tokens.AccessTokenTTL()),
		User:         user,
	}, nil
}
