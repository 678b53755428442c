package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/middleware"
	"github.com/matinfathi/oo-backend/internal/service"
)

// ==================== OptionGroupController 规格组 ====================

// OptionGroupController 规格组控制器
type OptionGroupController struct {
	groupService *service.OptionGroupService
	log          *zap.Logger
}

func NewOptionGroupController(groupService *service.OptionGroupService, log *zap.Logger) *OptionGroupController {
	return &OptionGroupController{groupService: groupService, log: log}
}

// List 菜品下的规格组
// @Summary 规格组列表
// @Tags OptionGroup
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜品 ID"
// @Param offset query int false "偏移量" default(0)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {array} model.OptionGroup
// @Router /items/{id}/option-groups [get]
func (c *OptionGroupController) List(ctx *gin.Context) {
	itemID, ok := pathID(ctx)
	if !ok {
		return
	}
	q, ok := bindPage(ctx)
	if !ok {
		return
	}

	groups, err := c.groupService.List(ctx.Request.Context(), middleware.GetPrincipal(ctx), itemID, q)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, groups)
}

// Get 规格组详情
// @Summary 规格组详情
// @Tags OptionGroup
// @Produce json
// @Security BearerAuth
// @Param id path int true "规格组 ID"
// @Success 200 {object} model.OptionGroup
// @Failure 404 {object} dto.ErrorResponse
// @Router /option-groups/{id} [get]
func (c *OptionGroupController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	group, err := c.groupService.Get(ctx.Request.Context(), middleware.GetPrincipal(ctx), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, group)
}

// Create 在菜品下创建规格组
// @Summary 创建规格组
// @Tags OptionGroup
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜品 ID"
// @Param request body dto.OptionGroupCreateRequest true "规格组信息"
// @Success 201 {object} model.OptionGroup
// @Failure 404 {object} dto.ErrorResponse
// @Router /items/{id}/option-groups [post]
func (c *OptionGroupController) Create(ctx *gin.Context) {
	itemID, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.OptionGroupCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	group, err := c.groupService.Create(ctx.Request.Context(), middleware.GetPrincipal(ctx), itemID, &req)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, group)
}

// Patch 局部更新规格组
// @Summary 更新规格组
// @Tags OptionGroup
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "规格组 ID"
// @Param request body dto.OptionGroupPatchRequest true "需要修改的字段"
// @Success 200 {object} model.OptionGroup
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /option-groups/{id} [patch]
func (c *OptionGroupController) Patch(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.OptionGroupPatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	group, err := c.groupService.Patch(ctx.Request.Context(), middleware.GetPrincipal(ctx), id, &req)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, group)
}

// Delete 删除规格组及其选项
// @Summary 删除规格组
// @Tags OptionGroup
// @Produce json
// @Security BearerAuth
// @Param id path int true "规格组 ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /option-groups/{id} [delete]
func (c *OptionGroupController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	resp, err := c.groupService.Delete(ctx.Request.Context(), middleware.GetPrincipal(ctx), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ==================== OptionController 选项 ====================

// OptionController 选项控制器
type OptionController struct {
	optionService *service.OptionService
	log           *zap.Logger
}

func NewOptionController(optionService *service.OptionService, log *zap.Logger) *OptionController {
	return &OptionController{optionService: optionService, log: log}
}

// List 规格组下的选项
// @Summary 选项列表
// @Tags Option
// @Produce json
// @Security BearerAuth
// @Param id path int true "规格组 ID"
// @Param offset query int false "偏移量" default(0)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {array} model.Option
// @Router /option-groups/{id}/options [get]
func (c *OptionController) List(ctx *gin.Context) {
	groupID, ok := pathID(ctx)
	if !ok {
		return
	}
	q, ok := bindPage(ctx)
	if !ok {
		return
	}

	options, err := c.optionService.List(ctx.Request.Context(), middleware.GetPrincipal(ctx), groupID, q)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, options)
}

// Get 选项详情
// @Summary 选项详情
// @Tags Option
// @Produce json
// @Security BearerAuth
// @Param id path int true "选项 ID"
// @Success 200 {object} model.Option
// @Failure 404 {object} dto.ErrorResponse
// @Router /options/{id} [get]
func (c *OptionController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	option, err := c.optionService.Get(ctx.Request.Context(), middleware.GetPrincipal(ctx), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, option)
}

// Create 在规格组下创建选项
// @Summary 创建选项
// @Tags Option
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "规格组 ID"
// @Param request body dto.OptionCreateRequest true "选项信息"
// @Success 201 {object} model.Option
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /option-groups/{id}/options [post]
func (c *OptionController) Create(ctx *gin.Context) {
	groupID, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.OptionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	option, err := c.optionService.Create(ctx.Request.Context(), middleware.GetPrincipal(ctx), groupID, &req)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, option)
}

// Patch 局部更新选项
// @Summary 更新选项
// @Tags Option
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "选项 ID"
// @Param request body dto.OptionPatchRequest true "需要修改的字段"
// @Success 200 {object} model.Option
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /options/{id} [patch]
func (c *OptionController) Patch(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.OptionPatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	option, err := c.optionService.Patch(ctx.Request.Context(), middleware.GetPrincipal(ctx), id, &req)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, option)
}

// Delete 删除选项
// @Summary 删除选项
// @Tags Option
// @Produce json
// @Security BearerAuth
// @Param id path int true "选项 ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /options/{id} [delete]
func (c *OptionController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	resp, err := c.optionService.Delete(ctx.Request.Context(), middleware.GetPrincipal(ctx), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
