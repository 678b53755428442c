package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/matinfathi/oo-backend/internal/middleware"
	"github.com/matinfathi/oo-backend/internal/model"
	"github.com/matinfathi/oo-backend/internal/policy"
	"github.com/matinfathi/oo-backend/internal/repository"
	"github.com/matinfathi/oo-backend/internal/testutil"
)

type testEnv struct {
	db           *gorm.DB
	store        *repository.Store
	hasher       PasswordHasher
	tokens       *middleware.JWTManager
	users        *UserService
	auth         *AuthService
	menus        *MenuService
	locations    *LocationService
	categories   *CategoryService
	items        *ItemService
	optionGroups *OptionGroupService
	options      *OptionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	hasher := NewBcryptHasher(bcrypt.MinCost)
	log := zap.NewNop()
	tokens := middleware.NewJWTManager(middleware.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "oo-backend-test",
	})

	return &testEnv{
		db:           db,
		store:        store,
		hasher:       hasher,
		tokens:       tokens,
		users:        NewUserService(store, hasher, log),
		auth:         NewAuthService(store, hasher, tokens, log),
		menus:        NewMenuService(store, log),
		locations:    NewLocationService(store, log),
		categories:   NewCategoryService(store, log),
		items:        NewItemService(store, log),
		optionGroups: NewOptionGroupService(store, log),
		options:      NewOptionService(store, log),
	}
}

// seedUser 直接写库创建用户并返回对应的主体
func (e *testEnv) seedUser(t *testing.T, username string, role model.Role) *policy.Principal {
	t.Helper()

	hashed, err := e.hasher.Hash("password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	user := &model.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: hashed,
		Role:           role,
	}
	if err := e.store.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("Create(%s) error = %v", username, err)
	}
	return &policy.Principal{UserID: user.ID, Username: user.Username, Role: user.Role}
}
