package model

import (
	"encoding/json"
	"fmt"
)

// ==================== Currency 币种 ====================

// Currency 菜单计价币种
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyCAD Currency = "CAD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

var currencySigns = map[Currency]string{
	CurrencyUSD: "$",
	CurrencyCAD: "$",
	CurrencyEUR: "€",
	CurrencyGBP: "£",
}

// Valid 是否为支持的币种
func (c Currency) Valid() bool {
	_, ok := currencySigns[c]
	return ok
}

// Sign 币种符号，未知币种返回 nil
func (c Currency) Sign() *string {
	sign, ok := currencySigns[c]
	if !ok {
		return nil
	}
	return &sign
}

// UnmarshalJSON 拒绝不支持的币种
func (c *Currency) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("price_unit must be a string: %w", err)
	}
	if !Currency(s).Valid() {
		return fmt.Errorf("unsupported currency %q", s)
	}
	*c = Currency(s)
	return nil
}

// ==================== Menu 菜单 ====================

// Menu 菜单，门店引用菜单，菜单包含分类
type Menu struct {
	BaseModel
	Name        string   `gorm:"size:255;not null" json:"name"`
	Description *string  `gorm:"type:text" json:"description"`
	PriceUnit   Currency `gorm:"size:3;not null" json:"price_unit"`

	Categories []Category `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	Locations  []Location `gorm:"foreignKey:MenuID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Menu) TableName() string {
	return "menus"
}

// MarshalJSON 输出时附带派生字段 currency_sign
func (m Menu) MarshalJSON() ([]byte, error) {
	type menuAlias Menu
	return json.Marshal(struct {
		menuAlias
		CurrencySign *string `json:"currency_sign"`
	}{
		menuAlias:    menuAlias(m),
		CurrencySign: m.PriceUnit.Sign(),
	})
}
