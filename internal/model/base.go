package model

import "time"

// BaseModel 所有实体共用的主键与时间戳
// 删除为物理删除，不保留 DeletedAt
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// All 返回需要建表的全部模型，顺序即依赖顺序
func All() []interface{} {
	return []interface{}{
		&User{},
		&Menu{},
		&Location{},
		&Category{},
		&Item{},
		&OptionGroup{},
		&Option{},
	}
}
