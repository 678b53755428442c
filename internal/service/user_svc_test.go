package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/model"
	"github.com/matinfathi/oo-backend/internal/testutil"
)

func signup(username string) *dto.SignupRequest {
	return &dto.SignupRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "s3cret-pass",
	}
}

func TestUserService_RegisterForcesCustomer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, signup("alice"))
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.NotEqual(t, "s3cret-pass", user.HashedPassword)
	assert.NoError(t, env.hasher.Compare(user.HashedPassword, "s3cret-pass"))
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, signup("alice"))
	require.NoError(t, err)

	_, err = env.users.Register(ctx, signup("alice"))
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, ErrUsernameExists, err)

	sameEmail := signup("alice2")
	sameEmail.Email = "alice@example.com"
	_, err = env.users.Register(ctx, sameEmail)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, ErrEmailExists, err)

	var count int64
	require.NoError(t, env.db.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "failed registrations must not insert rows")
}

func TestUserService_RegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	req := signup("bob")
	req.Email = "not-an-email"
	_, err := env.users.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserService_CreateRequiresSuperAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, "root", model.RoleSuperAdmin)
	owner := env.seedUser(t, "owner", model.RoleOwner)

	req := &dto.CreateUserRequest{SignupRequest: *signup("carol"), Role: model.RoleOwner}

	_, err := env.users.Create(ctx, owner, req)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = env.users.Create(ctx, nil, req)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	user, err := env.users.Create(ctx, admin, req)
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, user.Role)
}

func TestUserService_ListAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, "root", model.RoleSuperAdmin)
	customer := env.seedUser(t, "dave", model.RoleCustomer)

	users, err := env.users.List(ctx, admin, dto.PageQuery{Limit: 10})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "root", users[0].Username)

	_, err = env.users.List(ctx, customer, dto.PageQuery{Limit: 10})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = env.users.List(ctx, admin, dto.PageQuery{Offset: -1, Limit: 10})
	assert.ErrorIs(t, err, ErrValidation)

	byName, err := env.users.Get(ctx, admin, dto.UserLookup{Username: testutil.Ptr("dave")})
	require.NoError(t, err)
	assert.Equal(t, customer.UserID, byName.ID)

	byEmail, err := env.users.Get(ctx, admin, dto.UserLookup{Email: testutil.Ptr("dave@example.com")})
	require.NoError(t, err)
	assert.Equal(t, customer.UserID, byEmail.ID)

	_, err = env.users.Get(ctx, admin, dto.UserLookup{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.users.Get(ctx, admin, dto.UserLookup{ID: testutil.Ptr(int64(999))})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.users.Get(ctx, customer, dto.UserLookup{ID: &customer.UserID})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUserService_PatchSelf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.seedUser(t, "erin", model.RoleCustomer)
	other := env.seedUser(t, "frank", model.RoleCustomer)

	user, err := env.users.Patch(ctx, customer, customer.UserID, &dto.UserPatchRequest{
		Name:     dto.Some(testutil.Ptr("Erin")),
		Password: dto.Some("new-password"),
	})
	require.NoError(t, err)
	require.NotNil(t, user.Name)
	assert.Equal(t, "Erin", *user.Name)
	assert.Equal(t, "erin", user.Username, "absent fields stay untouched")
	assert.Equal(t, "erin@example.com", user.Email)
	assert.NoError(t, env.hasher.Compare(user.HashedPassword, "new-password"))

	_, err = env.users.Patch(ctx, customer, other.UserID, &dto.UserPatchRequest{Name: dto.Some(testutil.Ptr("x"))})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = env.users.Patch(ctx, customer, customer.UserID, &dto.UserPatchRequest{Role: dto.Some(model.RoleSuperAdmin)})
	assert.ErrorIs(t, err, ErrPermissionDenied, "self update must not escalate the role")

	// 提交原角色不算改角色
	user, err = env.users.Patch(ctx, customer, customer.UserID, &dto.UserPatchRequest{
		Role:     dto.Some(model.RoleCustomer),
		LastName: dto.Some(testutil.Ptr("Stone")),
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, user.Role)
	require.NotNil(t, user.LastName)
	assert.Equal(t, "Stone", *user.LastName)

	_, err = env.users.Patch(ctx, customer, customer.UserID, &dto.UserPatchRequest{Username: dto.Some("frank")})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserService_PatchByAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, "root", model.RoleSuperAdmin)
	customer := env.seedUser(t, "gina", model.RoleCustomer)

	user, err := env.users.Patch(ctx, admin, customer.UserID, &dto.UserPatchRequest{Role: dto.Some(model.RoleOwner)})
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, user.Role)

	_, err = env.users.Patch(ctx, admin, 999, &dto.UserPatchRequest{Name: dto.Some(testutil.Ptr("x"))})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, "root", model.RoleSuperAdmin)
	customer := env.seedUser(t, "hank", model.RoleCustomer)
	other := env.seedUser(t, "ivy", model.RoleCustomer)

	_, err := env.users.Delete(ctx, customer, other.UserID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	msg, err := env.users.Delete(ctx, customer, customer.UserID)
	require.NoError(t, err)
	assert.Equal(t, "User deleted successfully.", msg.Message)

	_, err = env.users.Get(ctx, admin, dto.UserLookup{ID: &customer.UserID})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.users.Delete(ctx, admin, customer.UserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_DeleteOwnerWithLocations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, "root", model.RoleSuperAdmin)
	owner := env.seedUser(t, "owner", model.RoleOwner)

	menu, err := env.menus.Create(ctx, owner, &dto.MenuCreateRequest{Name: "Cafe", PriceUnit: model.CurrencyUSD})
	require.NoError(t, err)
	_, err = env.locations.Create(ctx, owner, menu.ID, &dto.LocationCreateRequest{Name: "Downtown", Address: "1 Main St"})
	require.NoError(t, err)

	_, err = env.users.Delete(ctx, admin, owner.UserID)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = env.users.Get(ctx, admin, dto.UserLookup{ID: &owner.UserID})
	assert.NoError(t, err, "rejected delete leaves the user in place")
}

func TestUserService_EnsureSuperAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := AdminAccount{Username: "admin", Email: "admin@example.com", Password: "admin"}

	created, err := env.users.EnsureSuperAdmin(ctx, admin)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = env.users.EnsureSuperAdmin(ctx, admin)
	require.NoError(t, err)
	assert.False(t, created, "bootstrap runs once")

	var count int64
	require.NoError(t, env.db.Model(&model.User{}).Where("role = ?", model.RoleSuperAdmin).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTranslate(t *testing.T) {
	assert.Nil(t, translate(nil))
	assert.Equal(t, ErrForbidden, translate(ErrForbidden))

	plain := errors.New("disk on fire")
	assert.Equal(t, plain, translate(plain))
}
