// Package policy 决定主体能否对某类资源执行某个动作。
// 纯函数，不访问存储，也不依赖传输层。
package policy

import "github.com/matinfathi/oo-backend/internal/model"

// Action 操作类型
type Action string

const (
	ActionList   Action = "list"
	ActionGet    Action = "get"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"

	// ActionAssignRole 修改用户角色
	ActionAssignRole Action = "assign_role"
)

// Resource 资源类型
type Resource string

const (
	ResourceSignup      Resource = "signup"
	ResourceUser        Resource = "user"
	ResourceMenu        Resource = "menu"
	ResourceLocation    Resource = "location"
	ResourceCategory    Resource = "category"
	ResourceItem        Resource = "item"
	ResourceOptionGroup Resource = "option_group"
	ResourceOption      Resource = "option"
)

// IsCatalog 菜单内容类资源（含门店）
func (r Resource) IsCatalog() bool {
	switch r {
	case ResourceMenu, ResourceLocation, ResourceCategory, ResourceItem, ResourceOptionGroup, ResourceOption:
		return true
	}
	return false
}

// Principal 已认证的请求主体
type Principal struct {
	UserID   int64
	Username string
	Role     model.Role
}

// Target 被操作的资源，OwnerID 仅对用户资源有意义（目标用户 ID）
type Target struct {
	Resource Resource
	OwnerID  int64
}

// On 构造不带归属的目标
func On(resource Resource) Target {
	return Target{Resource: resource}
}

// OnUser 构造指向某个用户的目标
func OnUser(userID int64) Target {
	return Target{Resource: ResourceUser, OwnerID: userID}
}

// Decision 鉴权结果
type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

// Authorize 鉴权
//  1. 用户管理需要 SuperAdmin；本人可以修改 / 删除自己
//  2. 注册不需要主体
//  3. 菜单内容需要 Owner 或 SuperAdmin，不区分归属
//  4. 其他情况一律拒绝
func Authorize(p *Principal, action Action, target Target) Decision {
	if target.Resource == ResourceSignup {
		return Decision(action == ActionCreate)
	}

	if p == nil || !p.Role.Valid() {
		return Deny
	}

	if target.Resource == ResourceUser {
		if p.Role == model.RoleSuperAdmin {
			return Allow
		}
		if action == ActionUpdate || action == ActionDelete {
			return Decision(target.OwnerID != 0 && target.OwnerID == p.UserID)
		}
		return Deny
	}

	if target.Resource.IsCatalog() {
		// TODO: 按门店归属限制 Owner 只能操作自己的菜单
		return Decision(p.Role == model.RoleOwner || p.Role == model.RoleSuperAdmin)
	}

	return Deny
}

// SignupRole 自助注册得到的角色
func SignupRole() model.Role {
	return model.RoleCustomer
}
