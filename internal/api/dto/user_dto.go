package dto

import (
	"time"

	"github.com/matinfathi/oo-backend/internal/model"
)

// ==================== 登录 ====================

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=100"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresAt    time.Time   `json:"expires_at"`
	User         *model.User `json:"user"`
}

// ==================== Token 刷新 ====================

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ==================== 注册 / 创建 ====================

// SignupRequest 自助注册，角色固定为 Customer，请求中的 role 会被忽略
type SignupRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	LastName    *string `json:"last_name" binding:"omitempty,max=100"`
	Username    string  `json:"username" binding:"required,min=3,max=100"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=32"`
	Email       string  `json:"email" binding:"required,email,max=255"`
	Password    string  `json:"password" binding:"required,min=4,max=100"`
	Image       *string `json:"image" binding:"omitempty,max=512"`
}

// CreateUserRequest 管理员创建用户，可以指定角色
type CreateUserRequest struct {
	SignupRequest
	Role model.Role `json:"role" binding:"required,role"`
}

// ToModel 转换为实体，密码由 service 负责哈希
func (r *SignupRequest) ToModel(role model.Role) *model.User {
	return &model.User{
		Name:        r.Name,
		LastName:    r.LastName,
		Username:    r.Username,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
		Image:       r.Image,
		Role:        role,
	}
}

// ==================== 更新 ====================

// UserPatchRequest 用户局部更新
type UserPatchRequest struct {
	Name        Optional[*string]    `json:"name,omitzero" binding:"omitempty,max=100" swaggertype:"string"`
	LastName    Optional[*string]    `json:"last_name,omitzero" binding:"omitempty,max=100" swaggertype:"string"`
	Username    Optional[string]     `json:"username,omitzero" binding:"omitempty,min=3,max=100" swaggertype:"string"`
	PhoneNumber Optional[*string]    `json:"phone_number,omitzero" binding:"omitempty,max=32" swaggertype:"string"`
	Email       Optional[string]     `json:"email,omitzero" binding:"omitempty,email,max=255" swaggertype:"string"`
	Password    Optional[string]     `json:"password,omitzero" binding:"omitempty,min=4,max=100" swaggertype:"string"`
	Image       Optional[*string]    `json:"image,omitzero" binding:"omitempty,max=512" swaggertype:"string"`
	Role        Optional[model.Role] `json:"role,omitzero" binding:"omitempty,role" swaggertype:"string"`
}

// ApplyTo 写回已提供的字段，密码由 service 哈希后单独写入
func (r *UserPatchRequest) ApplyTo(u *model.User) {
	r.Name.ApplyTo(&u.Name)
	r.LastName.ApplyTo(&u.LastName)
	r.Username.ApplyTo(&u.Username)
	r.PhoneNumber.ApplyTo(&u.PhoneNumber)
	r.Email.ApplyTo(&u.Email)
	r.Image.ApplyTo(&u.Image)
	r.Role.ApplyTo(&u.Role)
}

// ==================== 查询 ====================

// UserLookup 按 id / username / email 查询，至少提供一个
type UserLookup struct {
	ID       *int64  `form:"id" binding:"omitempty,gt=0"`
	Username *string `form:"username"`
	Email    *string `form:"email"`
}

// Empty 是否一个条件都没有
func (l UserLookup) Empty() bool {
	return l.ID == nil && (l.Username == nil || *l.Username == "") && (l.Email == nil || *l.Email == "")
}
