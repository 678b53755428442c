package repository

import (
	"gorm.io/gorm"

	"github.com/matinfathi/oo-backend/internal/model"
)

// ==================== 级联删除 ====================
// Menu -> Category -> Item -> OptionGroup -> Option
// 先删子表再删父表，调用方负责放在同一事务内
// 返回值为本层被删除的行数

func deleteOptions(db *gorm.DB, query string, args ...interface{}) (int64, error) {
	res := db.Where(query, args...).Delete(&model.Option{})
	return res.RowsAffected, res.Error
}

func deleteOptionGroups(db *gorm.DB, query string, args ...interface{}) (int64, error) {
	groupIDs := db.Model(&model.OptionGroup{}).Select("id").Where(query, args...)
	if _, err := deleteOptions(db, "option_group_fk IN (?)", groupIDs); err != nil {
		return 0, err
	}
	res := db.Where(query, args...).Delete(&model.OptionGroup{})
	return res.RowsAffected, res.Error
}

func deleteItems(db *gorm.DB, query string, args ...interface{}) (int64, error) {
	itemIDs := db.Model(&model.Item{}).Select("id").Where(query, args...)
	if _, err := deleteOptionGroups(db, "item_fk IN (?)", itemIDs); err != nil {
		return 0, err
	}
	res := db.Where(query, args...).Delete(&model.Item{})
	return res.RowsAffected, res.Error
}

func deleteCategories(db *gorm.DB, query string, args ...interface{}) (int64, error) {
	categoryIDs := db.Model(&model.Category{}).Select("id").Where(query, args...)
	if _, err := deleteItems(db, "category_fk IN (?)", categoryIDs); err != nil {
		return 0, err
	}
	res := db.Where(query, args...).Delete(&model.Category{})
	return res.RowsAffected, res.Error
}

// deleteMenu 门店引用由 service 先行检查
func deleteMenu(db *gorm.DB, id int64) (int64, error) {
	if _, err := deleteCategories(db, "menu_fk = ?", id); err != nil {
		return 0, err
	}
	res := db.Delete(&model.Menu{}, id)
	return res.RowsAffected, res.Error
}
