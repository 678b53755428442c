package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/model"
	"github.com/matinfathi/oo-backend/internal/policy"
	"github.com/matinfathi/oo-backend/internal/testutil"
)

var page = dto.PageQuery{Limit: 10}

// seedTree 菜单 -> 分类 -> 菜品 -> 规格组 -> 选项
func seedTree(t *testing.T, env *testEnv, p *policy.Principal) (*model.Menu, *model.Category, *model.Item, *model.OptionGroup, *model.Option) {
	t.Helper()
	ctx := context.Background()

	menu, err := env.menus.Create(ctx, p, &dto.MenuCreateRequest{Name: "Cafe", PriceUnit: model.CurrencyUSD})
	require.NoError(t, err)
	category, err := env.categories.Create(ctx, p, menu.ID, &dto.CategoryCreateRequest{Name: "Drinks"})
	require.NoError(t, err)
	item, err := env.items.Create(ctx, p, category.ID, &dto.ItemCreateRequest{Name: "Latte", Price: 4.5})
	require.NoError(t, err)
	group, err := env.optionGroups.Create(ctx, p, item.ID, &dto.OptionGroupCreateRequest{IsRequired: true})
	require.NoError(t, err)
	option, err := env.options.Create(ctx, p, group.ID, &dto.OptionCreateRequest{Name: "Oat milk", Price: 0.5})
	require.NoError(t, err)
	return menu, category, item, group, option
}

func TestCatalog_BootstrapScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.EnsureSuperAdmin(ctx, AdminAccount{Username: "admin", Email: "admin@example.com", Password: "admin"})
	require.NoError(t, err)
	login, err := env.auth.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "admin"})
	require.NoError(t, err)
	admin, err := env.auth.Verify(ctx, login.AccessToken)
	require.NoError(t, err)

	menu, err := env.menus.Create(ctx, admin, &dto.MenuCreateRequest{Name: "Cafe", PriceUnit: model.CurrencyUSD})
	require.NoError(t, err)
	assert.Equal(t, int64(1), menu.ID)

	category, err := env.categories.Create(ctx, admin, menu.ID, &dto.CategoryCreateRequest{Name: "Drinks"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), category.ID)
	assert.Equal(t, menu.ID, category.MenuID)

	item, err := env.items.Create(ctx, admin, category.ID, &dto.ItemCreateRequest{Name: "Latte", Price: 4.5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)
	assert.True(t, item.IsAvailable)
	assert.NotNil(t, item.OptionGroups)
	assert.Empty(t, item.OptionGroups)

	got, err := env.menus.Get(ctx, admin, menu.ID)
	require.NoError(t, err)
	raw, err := json.Marshal(got)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "$", body["currency_sign"])
	categories := body["categories"].([]interface{})
	require.Len(t, categories, 1)
	items := categories[0].(map[string]interface{})["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, []interface{}{}, items[0].(map[string]interface{})["option_groups"])
}

func TestCatalog_CustomerDenied(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner", model.RoleOwner)
	customer := env.seedUser(t, "cust", model.RoleCustomer)
	menu, category, item, group, option := seedTree(t, env, owner)

	_, err := env.menus.List(ctx, customer, page)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = env.menus.Create(ctx, customer, &dto.MenuCreateRequest{Name: "X", PriceUnit: model.CurrencyEUR})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = env.categories.Get(ctx, customer, category.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = env.items.Patch(ctx, customer, item.ID, &dto.ItemPatchRequest{Price: dto.Some(1.0)})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = env.optionGroups.Delete(ctx, customer, group.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = env.options.Get(ctx, customer, option.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = env.locations.List(ctx, customer, menu.ID, page)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// 拒绝优先于校验与不存在
	_, err = env.menus.Get(ctx, nil, 999)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	stored, err := env.items.Get(ctx, owner, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, stored.Price)
}

func TestCatalog_PartialPatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner", model.RoleOwner)
	_, category, item, _, _ := seedTree(t, env, owner)

	patched, err := env.items.Patch(ctx, owner, item.ID, &dto.ItemPatchRequest{Price: dto.Some(5.25)})
	require.NoError(t, err)
	assert.Equal(t, 5.25, patched.Price)
	assert.Equal(t, "Latte", patched.Name)
	assert.True(t, patched.IsAvailable)
	assert.Equal(t, category.ID, patched.CategoryID)
	require.Len(t, patched.OptionGroups, 1)

	patched, err = env.items.Patch(ctx, owner, item.ID, &dto.ItemPatchRequest{IsAvailable: dto.Some(false)})
	require.NoError(t, err)
	assert.False(t, patched.IsAvailable, "explicit false must be stored")
	assert.Equal(t, 5.25, patched.Price)

	_, err = env.items.Patch(ctx, owner, item.ID, &dto.ItemPatchRequest{Price: dto.Some(-1.0)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.items.Patch(ctx, owner, item.ID, &dto.ItemPatchRequest{CategoryID: dto.Some(int64(999))})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.items.Patch(ctx, owner, 999, &dto.ItemPatchRequest{Price: dto.Some(1.0)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_MenuPatchClearsDescription(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner", model.RoleOwner)

	menu, err := env.menus.Create(ctx, owner, &dto.MenuCreateRequest{
		Name:        "Bistro",
		Description: testutil.Ptr("evening"),
		PriceUnit:   model.CurrencyEUR,
	})
	require.NoError(t, err)

	patched, err := env.menus.Patch(ctx, owner, menu.ID, &dto.MenuPatchRequest{Description: dto.Some[*string](nil)})
	require.NoError(t, err)
	assert.Nil(t, patched.Description)
	assert.Equal(t, "Bistro", patched.Name)
	assert.Equal(t, model.CurrencyEUR, patched.PriceUnit)
}

func TestCatalog_CreateUnderMissingParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner", model.RoleOwner)

	_, err := env.categories.Create(ctx, owner, 42, &dto.CategoryCreateRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.items.Create(ctx, owner, 42, &dto.ItemCreateRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.optionGroups.Create(ctx, owner, 42, &dto.OptionGroupCreateRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.options.Create(ctx, owner, 42, &dto.OptionCreateRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.locations.Create(ctx, owner, 42, &dto.LocationCreateRequest{Name: "Ghost", Address: "nowhere"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_DeleteThenGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner", model.RoleOwner)
	menu, category, item, group, option := seedTree(t, env, owner)

	msg, err := env.options.Delete(ctx, owner, option.ID)
	require.NoError(t, err)
	assert.Equal(t, "Option deleted successfully.", msg.Message)
	_, err = env.options.Get(ctx, owner, option.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.options.Delete(ctx, owner, option.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// 删除菜单级联删除下级
	_, err = env.menus.Delete(ctx, owner, menu.ID)
	require.NoError(t, err)
	_, err = env.menus.Get(ctx, owner, menu.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.categories.Get(ctx, owner, category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.items.Get(ctx, owner, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.optionGroups.Get(ctx, owner, group.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_MenuWithLocationsCannotBeDeleted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner", model.RoleOwner)
	menu, _, _, _, _ := seedTree(t, env, owner)

	location, err := env.locations.Create(ctx, owner, menu.ID, &dto.LocationCreateRequest{Name: "Downtown", Address: "1 Main St"})
	require.NoError(t, err)
	assert.True(t, location.IsActive)
	assert.Equal(t, owner.UserID, location.UserID)

	_, err = env.menus.Delete(ctx, owner, menu.ID)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = env.locations.Delete(ctx, owner, location.ID)
	require.NoError(t, err)
	_, err = env.menus.Delete(ctx, owner, menu.ID)
	assert.NoError(t, err)
}

func TestCatalog_LocationOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, "root", model.RoleSuperAdmin)
	owner := env.seedUser(t, "owner", model.RoleOwner)
	menu, _, _, _, _ := seedTree(t, env, admin)

	location, err := env.locations.Create(ctx, admin, menu.ID, &dto.LocationCreateRequest{
		Name:     "Harbor",
		Address:  "2 Pier Rd",
		IsActive: testutil.Ptr(false),
		UserID:   &owner.UserID,
	})
	require.NoError(t, err)
	assert.Equal(t, owner.UserID, location.UserID)
	assert.False(t, location.IsActive)

	_, err = env.locations.Create(ctx, admin, menu.ID, &dto.LocationCreateRequest{
		Name:    "Nobody",
		Address: "3 Void Ave",
		UserID:  testutil.Ptr(int64(999)),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.locations.Patch(ctx, admin, location.ID, &dto.LocationPatchRequest{MenuID: dto.Some(int64(999))})
	assert.ErrorIs(t, err, ErrValidation)

	patched, err := env.locations.Patch(ctx, admin, location.ID, &dto.LocationPatchRequest{IsActive: dto.Some(true)})
	require.NoError(t, err)
	assert.True(t, patched.IsActive)
	assert.Equal(t, "Harbor", patched.Name)

	locations, err := env.locations.List(ctx, admin, menu.ID, page)
	require.NoError(t, err)
	assert.Len(t, locations, 1)
}

func TestCatalog_ListScopedToParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner", model.RoleOwner)
	menu, category, item, group, _ := seedTree(t, env, owner)
	other, _, _, _, _ := seedTree(t, env, owner)

	categories, err := env.categories.List(ctx, owner, menu.ID, page)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, category.ID, categories[0].ID)
	require.Len(t, categories[0].Items, 1)

	categories, err = env.categories.List(ctx, owner, other.ID, page)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.NotEqual(t, category.ID, categories[0].ID)

	items, err := env.items.List(ctx, owner, category.ID, page)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)

	groups, err := env.optionGroups.List(ctx, owner, item.ID, page)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Options, 1)

	options, err := env.options.List(ctx, owner, group.ID, page)
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "Oat milk", options[0].Name)

	menus, err := env.menus.List(ctx, owner, dto.PageQuery{Offset: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Equal(t, other.ID, menus[0].ID)
}
