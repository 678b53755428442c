package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/middleware"
	"github.com/matinfathi/oo-backend/internal/service"
)

// ItemController 菜品控制器
type ItemController struct {
	itemService *service.ItemService
	log         *zap.Logger
}

func NewItemController(itemService *service.ItemService, log *zap.Logger) *ItemController {
	return &ItemController{itemService: itemService, log: log}
}

// List 分类下的菜品
// @Summary 菜品列表
// @Tags Item
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类 ID"
// @Param offset query int false "偏移量" default(0)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {array} model.Item
// @Router /categories/{id}/items [get]
func (c *ItemController) List(ctx *gin.Context) {
	categoryID, ok := pathID(ctx)
	if !ok {
		return
	}
	q, ok := bindPage(ctx)
	if !ok {
		return
	}

	items, err := c.itemService.List(ctx.Request.Context(), middleware.GetPrincipal(ctx), categoryID, q)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// Get 菜品详情
// @Summary 菜品详情
// @Tags Item
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜品 ID"
// @Success 200 {object} model.Item
// @Failure 404 {object} dto.ErrorResponse
// @Router /items/{id} [get]
func (c *ItemController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	item, err := c.itemService.Get(ctx.Request.Context(), middleware.GetPrincipal(ctx), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// Create 在分类下创建菜品
// @Summary 创建菜品
// @Tags Item
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类 ID"
// @Param request body dto.ItemCreateRequest true "菜品信息"
// @Success 201 {object} model.Item
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories/{id}/items [post]
func (c *ItemController) Create(ctx *gin.Context) {
	categoryID, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.ItemCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	item, err := c.itemService.Create(ctx.Request.Context(), middleware.GetPrincipal(ctx), categoryID, &req)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

// Patch 局部更新菜品
// @Summary 更新菜品
// @Tags Item
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜品 ID"
// @Param request body dto.ItemPatchRequest true "需要修改的字段"
// @Success 200 {object} model.Item
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /items/{id} [patch]
func (c *ItemController) Patch(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.ItemPatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	item, err := c.itemService.Patch(ctx.Request.Context(), middleware.GetPrincipal(ctx), id, &req)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// Delete 删除菜品
// @Summary 删除菜品
// @Tags Item
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜品 ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /items/{id} [delete]
func (c *ItemController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	resp, err := c.itemService.Delete(ctx.Request.Context(), middleware.GetPrincipal(ctx), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
