package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/middleware"
	"github.com/matinfathi/oo-backend/internal/service"
)

// CategoryController 分类控制器
type CategoryController struct {
	categoryService *service.CategoryService
	log             *zap.Logger
}

func NewCategoryController(categoryService *service.CategoryService, log *zap.Logger) *CategoryController {
	return &CategoryController{categoryService: categoryService, log: log}
}

// List 菜单下的分类，带菜品树
// @Summary 分类列表
// @Tags Category
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜单 ID"
// @Param offset query int false "偏移量" default(0)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {array} model.Category
// @Router /menus/{id}/categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	menuID, ok := pathID(ctx)
	if !ok {
		return
	}
	q, ok := bindPage(ctx)
	if !ok {
		return
	}

	categories, err := c.categoryService.List(ctx.Request.Context(), middleware.GetPrincipal(ctx), menuID, q)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

// Get 分类详情
// @Summary 分类详情
// @Tags Category
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类 ID"
// @Success 200 {object} model.Category
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories/{id} [get]
func (c *CategoryController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	category, err := c.categoryService.Get(ctx.Request.Context(), middleware.GetPrincipal(ctx), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// Create 在菜单下创建分类
// @Summary 创建分类
// @Tags Category
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜单 ID"
// @Param request body dto.CategoryCreateRequest true "分类信息"
// @Success 201 {object} model.Category
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /menus/{id}/categories [post]
func (c *CategoryController) Create(ctx *gin.Context) {
	menuID, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.CategoryCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	category, err := c.categoryService.Create(ctx.Request.Context(), middleware.GetPrincipal(ctx), menuID, &req)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, category)
}

// Patch 局部更新分类
// @Summary 更新分类
// @Tags Category
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类 ID"
// @Param request body dto.CategoryPatchRequest true "需要修改的字段"
// @Success 200 {object} model.Category
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories/{id} [patch]
func (c *CategoryController) Patch(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.CategoryPatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	category, err := c.categoryService.Patch(ctx.Request.Context(), middleware.GetPrincipal(ctx), id, &req)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// Delete 删除分类及其菜品
// @Summary 删除分类
// @Tags Category
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类 ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories/{id} [delete]
func (c *CategoryController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	resp, err := c.categoryService.Delete(ctx.Request.Context(), middleware.GetPrincipal(ctx), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
