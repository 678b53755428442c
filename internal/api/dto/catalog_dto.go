package dto

import "github.com/matinfathi/oo-backend/internal/model"

// ==================== Menu ====================

// MenuCreateRequest 创建菜单
type MenuCreateRequest struct {
	Name        string         `json:"name" binding:"required,max=255"`
	Description *string        `json:"description"`
	PriceUnit   model.Currency `json:"price_unit" binding:"required,currency" swaggertype:"string" enums:"USD,CAD,EUR,GBP"`
}

func (r *MenuCreateRequest) ToModel() *model.Menu {
	return &model.Menu{
		Name:        r.Name,
		Description: r.Description,
		PriceUnit:   r.PriceUnit,
	}
}

// MenuPatchRequest 菜单局部更新
type MenuPatchRequest struct {
	Name        Optional[string]         `json:"name,omitzero" binding:"omitempty,min=1,max=255" swaggertype:"string"`
	Description Optional[*string]        `json:"description,omitzero" swaggertype:"string"`
	PriceUnit   Optional[model.Currency] `json:"price_unit,omitzero" binding:"omitempty,currency" swaggertype:"string"`
}

func (r *MenuPatchRequest) ApplyTo(m *model.Menu) {
	r.Name.ApplyTo(&m.Name)
	r.Description.ApplyTo(&m.Description)
	r.PriceUnit.ApplyTo(&m.PriceUnit)
}

// ==================== Location ====================

// LocationCreateRequest 创建门店，menu_fk 取自路径，user_fk 默认为当前用户
type LocationCreateRequest struct {
	Name         string  `json:"name" binding:"required,max=255"`
	Address      string  `json:"address" binding:"required,max=512"`
	Latitude     float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude    float64 `json:"longitude" binding:"gte=-180,lte=180"`
	WorkingHours *string `json:"working_hours" binding:"omitempty,max=255"`
	IsActive     *bool   `json:"is_active"`
	UserID       *int64  `json:"user_fk" binding:"omitempty,gt=0"`
}

func (r *LocationCreateRequest) ToModel(menuID, ownerID int64) *model.Location {
	loc := &model.Location{
		Name:         r.Name,
		Address:      r.Address,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		WorkingHours: r.WorkingHours,
		IsActive:     true,
		UserID:       ownerID,
		MenuID:       menuID,
	}
	if r.IsActive != nil {
		loc.IsActive = *r.IsActive
	}
	if r.UserID != nil {
		loc.UserID = *r.UserID
	}
	return loc
}

// LocationPatchRequest 门店局部更新
type LocationPatchRequest struct {
	Name         Optional[string]  `json:"name,omitzero" binding:"omitempty,min=1,max=255" swaggertype:"string"`
	Address      Optional[string]  `json:"address,omitzero" binding:"omitempty,min=1,max=512" swaggertype:"string"`
	Latitude     Optional[float64] `json:"latitude,omitzero" binding:"omitempty,gte=-90,lte=90" swaggertype:"number"`
	Longitude    Optional[float64] `json:"longitude,omitzero" binding:"omitempty,gte=-180,lte=180" swaggertype:"number"`
	WorkingHours Optional[*string] `json:"working_hours,omitzero" binding:"omitempty,max=255" swaggertype:"string"`
	IsActive     Optional[bool]    `json:"is_active,omitzero" swaggertype:"boolean"`
	UserID       Optional[int64]   `json:"user_fk,omitzero" binding:"omitempty,gt=0" swaggertype:"integer"`
	MenuID       Optional[int64]   `json:"menu_fk,omitzero" binding:"omitempty,gt=0" swaggertype:"integer"`
}

func (r *LocationPatchRequest) ApplyTo(l *model.Location) {
	r.Name.ApplyTo(&l.Name)
	r.Address.ApplyTo(&l.Address)
	r.Latitude.ApplyTo(&l.Latitude)
	r.Longitude.ApplyTo(&l.Longitude)
	r.WorkingHours.ApplyTo(&l.WorkingHours)
	r.IsActive.ApplyTo(&l.IsActive)
	r.UserID.ApplyTo(&l.UserID)
	r.MenuID.ApplyTo(&l.MenuID)
}

// ==================== Category ====================

// CategoryCreateRequest 创建分类，menu_fk 取自路径
type CategoryCreateRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

func (r *CategoryCreateRequest) ToModel(menuID int64) *model.Category {
	return &model.Category{Name: r.Name, MenuID: menuID}
}

// CategoryPatchRequest 分类局部更新，可移动到其他菜单
type CategoryPatchRequest struct {
	Name   Optional[string] `json:"name,omitzero" binding:"omitempty,min=1,max=255" swaggertype:"string"`
	MenuID Optional[int64]  `json:"menu_fk,omitzero" binding:"omitempty,gt=0" swaggertype:"integer"`
}

func (r *CategoryPatchRequest) ApplyTo(c *model.Category) {
	r.Name.ApplyTo(&c.Name)
	r.MenuID.ApplyTo(&c.MenuID)
}

// ==================== Item ====================

// ItemCreateRequest 创建菜品，category_fk 取自路径
type ItemCreateRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	Image       *string `json:"image" binding:"omitempty,max=512"`
	Price       float64 `json:"price" binding:"gte=0"`
	IsAvailable *bool   `json:"is_available"`
}

func (r *ItemCreateRequest) ToModel(categoryID int64) *model.Item {
	item := &model.Item{
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		Price:       r.Price,
		IsAvailable: true,
		CategoryID:  categoryID,
	}
	if r.IsAvailable != nil {
		item.IsAvailable = *r.IsAvailable
	}
	return item
}

// ItemPatchRequest 菜品局部更新
type ItemPatchRequest struct {
	Name        Optional[string]  `json:"name,omitzero" binding:"omitempty,min=1,max=255" swaggertype:"string"`
	Description Optional[*string] `json:"description,omitzero" swaggertype:"string"`
	Image       Optional[*string] `json:"image,omitzero" binding:"omitempty,max=512" swaggertype:"string"`
	Price       Optional[float64] `json:"price,omitzero" binding:"omitempty,gte=0" swaggertype:"number"`
	IsAvailable Optional[bool]    `json:"is_available,omitzero" swaggertype:"boolean"`
	CategoryID  Optional[int64]   `json:"category_fk,omitzero" binding:"omitempty,gt=0" swaggertype:"integer"`
}

func (r *ItemPatchRequest) ApplyTo(i *model.Item) {
	r.Name.ApplyTo(&i.Name)
	r.Description.ApplyTo(&i.Description)
	r.Image.ApplyTo(&i.Image)
	r.Price.ApplyTo(&i.Price)
	r.IsAvailable.ApplyTo(&i.IsAvailable)
	r.CategoryID.ApplyTo(&i.CategoryID)
}

// ==================== OptionGroup ====================

// OptionGroupCreateRequest 创建规格组，item_fk 取自路径
type OptionGroupCreateRequest struct {
	AllowMultiple bool `json:"allow_multiple"`
	IsRequired    bool `json:"is_required"`
}

func (r *OptionGroupCreateRequest) ToModel(itemID int64) *model.OptionGroup {
	return &model.OptionGroup{
		AllowMultiple: r.AllowMultiple,
		IsRequired:    r.IsRequired,
		ItemID:        itemID,
	}
}

// OptionGroupPatchRequest 规格组局部更新
type OptionGroupPatchRequest struct {
	AllowMultiple Optional[bool]  `json:"allow_multiple,omitzero" swaggertype:"boolean"`
	IsRequired    Optional[bool]  `json:"is_required,omitzero" swaggertype:"boolean"`
	ItemID        Optional[int64] `json:"item_fk,omitzero" binding:"omitempty,gt=0" swaggertype:"integer"`
}

func (r *OptionGroupPatchRequest) ApplyTo(g *model.OptionGroup) {
	r.AllowMultiple.ApplyTo(&g.AllowMultiple)
	r.IsRequired.ApplyTo(&g.IsRequired)
	r.ItemID.ApplyTo(&g.ItemID)
}

// ==================== Option ====================

// OptionCreateRequest 创建选项，option_group_fk 取自路径
type OptionCreateRequest struct {
	Name  string  `json:"name" binding:"required,max=255"`
	Price float64 `json:"price" binding:"gte=0"`
}

func (r *OptionCreateRequest) ToModel(groupID int64) *model.Option {
	return &model.Option{Name: r.Name, Price: r.Price, OptionGroupID: groupID}
}

// OptionPatchRequest 选项局部更新
type OptionPatchRequest struct {
	Name          Optional[string]  `json:"name,omitzero" binding:"omitempty,min=1,max=255" swaggertype:"string"`
	Price         Optional[float64] `json:"price,omitzero" binding:"omitempty,gte=0" swaggertype:"number"`
	OptionGroupID Optional[int64]   `json:"option_group_fk,omitzero" binding:"omitempty,gt=0" swaggertype:"integer"`
}

func (r *OptionPatchRequest) ApplyTo(o *model.Option) {
	r.Name.ApplyTo(&o.Name)
	r.Price.ApplyTo(&o.Price)
	r.OptionGroupID.ApplyTo(&o.OptionGroupID)
}
