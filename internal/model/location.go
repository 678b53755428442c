package model

// Location 门店，归属用户并引用一份菜单
type Location struct {
	BaseModel
	Name         string  `gorm:"size:255;not null" json:"name"`
	Address      string  `gorm:"size:512;not null" json:"address"`
	Latitude     float64 `gorm:"not null" json:"latitude"`
	Longitude    float64 `gorm:"not null" json:"longitude"`
	WorkingHours *string `gorm:"size:255" json:"working_hours"`
	IsActive     bool    `gorm:"not null" json:"is_active"`

	UserID int64 `gorm:"column:user_fk;not null;index" json:"user_fk"`
	MenuID int64 `gorm:"column:menu_fk;not null;index" json:"menu_fk"`
}

func (Location) TableName() string {
	return "locations"
}
