package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/matinfathi/oo-backend/internal/model"
	"github.com/matinfathi/oo-backend/internal/testutil"
)

// seedTree 建一棵 Menu -> Category -> Item -> OptionGroup -> Option
func seedTree(t *testing.T, db *gorm.DB) (menu model.Menu, category model.Category, item model.Item, group model.OptionGroup) {
	t.Helper()

	menu = model.Menu{Name: "Cafe", PriceUnit: model.CurrencyUSD}
	mustCreate(t, db, &menu)
	category = model.Category{Name: "Drinks", MenuID: menu.ID}
	mustCreate(t, db, &category)
	item = model.Item{Name: "Latte", Price: 4.5, IsAvailable: true, CategoryID: category.ID}
	mustCreate(t, db, &item)
	group = model.OptionGroup{ItemID: item.ID, IsRequired: true}
	mustCreate(t, db, &group)
	for _, name := range []string{"Small", "Large"} {
		mustCreate(t, db, &model.Option{Name: name, Price: 0.5, OptionGroupID: group.ID})
	}
	return
}

func mustCreate(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("Create(%T) error = %v", v, err)
	}
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("Count(%T) error = %v", m, err)
	}
	return n
}

func TestPage_Normalize(t *testing.T) {
	tests := []struct {
		in   Page
		want Page
	}{
		{Page{}, Page{Offset: 0, Limit: 10}},
		{Page{Offset: 5, Limit: 20}, Page{Offset: 5, Limit: 20}},
		{Page{Offset: -1, Limit: 500}, Page{Offset: 0, Limit: 100}},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestMenuRepository_ListPagination(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMenuRepository(db)
	ctx := context.Background()

	for i := 1; i <= 15; i++ {
		if err := repo.Create(ctx, &model.Menu{Name: fmt.Sprintf("Menu %02d", i), PriceUnit: model.CurrencyEUR}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	first, err := repo.List(ctx, Page{Offset: 0, Limit: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(first) != 10 {
		t.Fatalf("List(0,10) len = %d, want 10", len(first))
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].ID >= first[i].ID {
			t.Fatalf("List() not ascending: %d then %d", first[i-1].ID, first[i].ID)
		}
	}

	second, err := repo.List(ctx, Page{Offset: 10, Limit: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(second) != 5 {
		t.Errorf("List(10,10) len = %d, want 5", len(second))
	}
	if second[0].ID <= first[9].ID {
		t.Errorf("second page starts at %d, want after %d", second[0].ID, first[9].ID)
	}

	empty, err := repo.List(ctx, Page{Offset: 100, Limit: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("List() past the end = %v, want empty slice", empty)
	}
}

func TestItemRepository_GetTree(t *testing.T) {
	db := testutil.NewDB(t)
	_, _, item, _ := seedTree(t, db)

	got, err := NewItemRepository(db).GetTree(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetTree() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetTree() returned nil")
	}
	if len(got.OptionGroups) != 1 {
		t.Fatalf("option groups = %d, want 1", len(got.OptionGroups))
	}
	options := got.OptionGroups[0].Options
	if len(options) != 2 || options[0].Name != "Small" || options[1].Name != "Large" {
		t.Errorf("options = %+v, want Small then Large", options)
	}
}

func TestItemRepository_GetTreeEmptyChildren(t *testing.T) {
	db := testutil.NewDB(t)
	menu := model.Menu{Name: "Cafe", PriceUnit: model.CurrencyUSD}
	mustCreate(t, db, &menu)
	category := model.Category{Name: "Drinks", MenuID: menu.ID}
	mustCreate(t, db, &category)
	item := model.Item{Name: "Latte", Price: 4.5, IsAvailable: true, CategoryID: category.ID}
	mustCreate(t, db, &item)

	got, err := NewItemRepository(db).GetTree(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetTree() error = %v", err)
	}
	if got.OptionGroups == nil || len(got.OptionGroups) != 0 {
		t.Errorf("OptionGroups = %#v, want empty non-nil slice", got.OptionGroups)
	}
}

func TestCategoryRepository_GetMissing(t *testing.T) {
	db := testutil.NewDB(t)

	got, err := NewCategoryRepository(db).GetTree(context.Background(), 999)
	if err != nil {
		t.Fatalf("GetTree() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetTree() = %+v, want nil", got)
	}
}

func TestMenuRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	menu, _, _, _ := seedTree(t, db)
	other, _, _, _ := seedTree(t, db)

	affected, err := NewMenuRepository(db).Delete(context.Background(), menu.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if affected != 1 {
		t.Errorf("Delete() affected = %d, want 1", affected)
	}

	if n := countRows(t, db, &model.Category{}); n != 1 {
		t.Errorf("categories left = %d, want 1", n)
	}
	if n := countRows(t, db, &model.Item{}); n != 1 {
		t.Errorf("items left = %d, want 1", n)
	}
	if n := countRows(t, db, &model.OptionGroup{}); n != 1 {
		t.Errorf("option groups left = %d, want 1", n)
	}
	if n := countRows(t, db, &model.Option{}); n != 2 {
		t.Errorf("options left = %d, want 2", n)
	}

	tree, err := NewMenuRepository(db).GetTree(context.Background(), other.ID)
	if err != nil || tree == nil {
		t.Fatalf("GetTree(other) = %v, %v", tree, err)
	}
	if len(tree.Categories) != 1 || len(tree.Categories[0].Items) != 1 {
		t.Errorf("other menu tree damaged: %+v", tree)
	}
}

func TestOptionGroupRepository_DeleteMissing(t *testing.T) {
	db := testutil.NewDB(t)

	affected, err := NewOptionGroupRepository(db).Delete(context.Background(), 42)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if affected != 0 {
		t.Errorf("Delete() affected = %d, want 0", affected)
	}
}

func TestLocationRepository_Counts(t *testing.T) {
	db := testutil.NewDB(t)
	owner := model.User{Username: "owner", Email: "owner@example.com", HashedPassword: "x", Role: model.RoleOwner}
	mustCreate(t, db, &owner)
	menu := model.Menu{Name: "Cafe", PriceUnit: model.CurrencyCAD}
	mustCreate(t, db, &menu)

	repo := NewLocationRepository(db)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		loc := &model.Location{Name: fmt.Sprintf("Store %d", i), Address: "Main St", IsActive: true, UserID: owner.ID, MenuID: menu.ID}
		if err := repo.Create(ctx, loc); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	if n, _ := repo.CountByMenu(ctx, menu.ID); n != 3 {
		t.Errorf("CountByMenu() = %d, want 3", n)
	}
	if n, _ := repo.CountByUser(ctx, owner.ID); n != 3 {
		t.Errorf("CountByUser() = %d, want 3", n)
	}
	list, err := repo.ListByMenu(ctx, menu.ID, Page{Limit: 2})
	if err != nil {
		t.Fatalf("ListByMenu() error = %v", err)
	}
	if len(list) != 2 {
		t.Errorf("ListByMenu() len = %d, want 2", len(list))
	}
}

func TestUserRepository_Exists(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{Username: "alice", Email: "alice@example.com", HashedPassword: "x", Role: model.RoleCustomer}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if ok, _ := repo.ExistsByUsername(ctx, "alice", 0); !ok {
		t.Error("ExistsByUsername() = false, want true")
	}
	if ok, _ := repo.ExistsByUsername(ctx, "alice", user.ID); ok {
		t.Error("ExistsByUsername() should ignore the excluded id")
	}
	if ok, _ := repo.ExistsByEmail(ctx, "alice@example.com", 0); !ok {
		t.Error("ExistsByEmail() = false, want true")
	}
	if ok, _ := repo.ExistsByRole(ctx, model.RoleSuperAdmin); ok {
		t.Error("ExistsByRole(SuperAdmin) = true, want false")
	}

	dup := &model.User{Username: "alice", Email: "other@example.com", HashedPassword: "x", Role: model.RoleCustomer}
	if err := repo.Create(ctx, dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("Create(duplicate) error = %v, want ErrDuplicatedKey", err)
	}
}

func TestStore_TransactionRollback(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewStore(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Transaction(ctx, func(tx *Store) error {
		if err := tx.Menus.Create(ctx, &model.Menu{Name: "Cafe", PriceUnit: model.CurrencyGBP}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction() error = %v, want boom", err)
	}
	if n := countRows(t, db, &model.Menu{}); n != 0 {
		t.Errorf("menus after rollback = %d, want 0", n)
	}

	err = store.Transaction(ctx, func(tx *Store) error {
		return tx.Menus.Create(ctx, &model.Menu{Name: "Cafe", PriceUnit: model.CurrencyGBP})
	})
	if err != nil {
		t.Fatalf("Transaction() error = %v", err)
	}
	if n := countRows(t, db, &model.Menu{}); n != 1 {
		t.Errorf("menus after commit = %d, want 1", n)
	}
}

func TestStore_TransactionCancelledContext(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewStore(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Transaction(ctx, func(tx *Store) error {
		return tx.Menus.Create(ctx, &model.Menu{Name: "Cafe", PriceUnit: model.CurrencyUSD})
	})
	if err == nil {
		t.Fatal("Transaction() with cancelled context should fail")
	}
	if n := countRows(t, db, &model.Menu{}); n != 0 {
		t.Errorf("menus = %d, want 0", n)
	}
}
