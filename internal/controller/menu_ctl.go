package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/middleware"
	"github.com/matinfathi/oo-backend/internal/service"
)

// ==================== MenuController 菜单控制器 ====================

// MenuController 菜单控制器
type MenuController struct {
	menuService *service.MenuService
	log         *zap.Logger
}

// NewMenuController 创建菜单控制器
func NewMenuController(menuService *service.MenuService, log *zap.Logger) *MenuController {
	return &MenuController{menuService: menuService, log: log}
}

// List 菜单列表
// @Summary 菜单列表
// @Tags Menu
// @Produce json
// @Security BearerAuth
// @Param offset query int false "偏移量" default(0)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {array} model.Menu
// @Failure 403 {object} dto.ErrorResponse
// @Router /menus [get]
func (c *MenuController) List(ctx *gin.Context) {
	q, ok := bindPage(ctx)
	if !ok {
		return
	}

	menus, err := c.menuService.List(ctx.Request.Context(), middleware.GetPrincipal(ctx), q)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, menus)
}

// Get 菜单详情，包含完整的分类、菜品、规格树
// @Summary 菜单详情
// @Tags Menu
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜单 ID"
// @Success 200 {object} model.Menu
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /menus/{id} [get]
func (c *MenuController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	menu, err := c.menuService.Get(ctx.Request.Context(), middleware.GetPrincipal(ctx), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, menu)
}

// Create 创建菜单
// @Summary 创建菜单
// @Tags Menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MenuCreateRequest true "菜单信息"
// @Success 201 {object} model.Menu
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /menus [post]
func (c *MenuController) Create(ctx *gin.Context) {
	var req dto.MenuCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	menu, err := c.menuService.Create(ctx.Request.Context(), middleware.GetPrincipal(ctx), &req)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, menu)
}

// Patch 局部更新菜单
// @Summary 更新菜单
// @Tags Menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜单 ID"
// @Param request body dto.MenuPatchRequest true "需要修改的字段"
// @Success 200 {object} model.Menu
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /menus/{id} [patch]
func (c *MenuController) Patch(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.MenuPatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	menu, err := c.menuService.Patch(ctx.Request.Context(), middleware.GetPrincipal(ctx), id, &req)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, menu)
}

// Delete 删除菜单及其全部内容；仍有门店引用时返回 409
// @Summary 删除菜单
// @Tags Menu
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜单 ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /menus/{id} [delete]
func (c *MenuController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	resp, err := c.menuService.Delete(ctx.Request.Context(), middleware.GetPrincipal(ctx), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
