package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
)

// ==================== Role 角色 ====================

// Role 系统角色，封闭集合
type Role string

const (
	RoleCustomer   Role = "Customer"
	RoleOwner      Role = "Owner"
	RoleSuperAdmin Role = "SuperAdmin"
)

// Roles 全部合法角色
var Roles = []Role{RoleCustomer, RoleOwner, RoleSuperAdmin}

// ParseRole 解析角色字符串，未知值返回错误
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid 是否为合法角色
func (r Role) Valid() bool {
	return slices.Contains(Roles, r)
}

func (r Role) String() string { return string(r) }

// UnmarshalJSON 在反序列化边界拒绝未知角色
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("role must be a string: %w", err)
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Scan 从数据库读取，同样拒绝未知角色
func (r *Role) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Role", value)
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value 写入数据库
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown role %q", string(r))
	}
	return string(r), nil
}

// ==================== User 用户 ====================

// User 平台用户（顾客 / 商户 / 超管）
type User struct {
	BaseModel
	Name           *string `gorm:"size:100" json:"name"`
	LastName       *string `gorm:"size:100" json:"last_name"`
	Username       string  `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PhoneNumber    *string `gorm:"size:32" json:"phone_number"`
	Email          string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	HashedPassword string  `gorm:"size:255;not null" json:"-"`
	Image          *string `gorm:"size:512" json:"image"`
	Role           Role    `gorm:"size:20;not null;index" json:"role"`

	// 用户名下的门店，删除用户前必须先清空
	Locations []Location `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (User) TableName() string {
	return "users"
}
