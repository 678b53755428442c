package model

// ==================== 菜单内容树 ====================
// Menu -> Category -> Item -> OptionGroup -> Option
// 父节点删除时整棵子树一并删除

// Category 菜单分类
type Category struct {
	BaseModel
	Name   string `gorm:"size:255;not null" json:"name"`
	MenuID int64  `gorm:"column:menu_fk;not null;index" json:"menu_fk"`

	Items []Item `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Category) TableName() string {
	return "categories"
}

// Item 菜品
type Item struct {
	BaseModel
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	Image       *string `gorm:"size:512" json:"image"`
	Price       float64 `gorm:"not null;check:chk_items_price,price >= 0" json:"price"`
	IsAvailable bool    `gorm:"not null" json:"is_available"`
	CategoryID  int64   `gorm:"column:category_fk;not null;index" json:"category_fk"`

	OptionGroups []OptionGroup `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"option_groups"`
}

func (Item) TableName() string {
	return "items"
}

// OptionGroup 规格组，例如 "杯型"
type OptionGroup struct {
	BaseModel
	AllowMultiple bool  `gorm:"not null" json:"allow_multiple"`
	IsRequired    bool  `gorm:"not null" json:"is_required"`
	ItemID        int64 `gorm:"column:item_fk;not null;index" json:"item_fk"`

	Options []Option `gorm:"foreignKey:OptionGroupID;constraint:OnDelete:CASCADE" json:"options"`
}

func (OptionGroup) TableName() string {
	return "option_groups"
}

// Option 规格选项，price 为加价
type Option struct {
	BaseModel
	Name          string  `gorm:"size:255;not null" json:"name"`
	Price         float64 `gorm:"not null;check:chk_options_price,price >= 0" json:"price"`
	OptionGroupID int64   `gorm:"column:option_group_fk;not null;index" json:"option_group_fk"`
}

func (Option) TableName() string {
	return "options"
}
