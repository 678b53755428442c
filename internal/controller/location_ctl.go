package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/middleware"
	"github.com/matinfathi/oo-backend/internal/service"
)

// LocationController 门店控制器
type LocationController struct {
	locationService *service.LocationService
	log             *zap.Logger
}

func NewLocationController(locationService *service.LocationService, log *zap.Logger) *LocationController {
	return &LocationController{locationService: locationService, log: log}
}

// List 菜单下的门店
// @Summary 门店列表
// @Tags Location
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜单 ID"
// @Param offset query int false "偏移量" default(0)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {array} model.Location
// @Router /menus/{id}/locations [get]
func (c *LocationController) List(ctx *gin.Context) {
	menuID, ok := pathID(ctx)
	if !ok {
		return
	}
	q, ok := bindPage(ctx)
	if !ok {
		return
	}

	locations, err := c.locationService.List(ctx.Request.Context(), middleware.GetPrincipal(ctx), menuID, q)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, locations)
}

// Get 门店详情
// @Summary 门店详情
// @Tags Location
// @Produce json
// @Security BearerAuth
// @Param id path int true "门店 ID"
// @Success 200 {object} model.Location
// @Failure 404 {object} dto.ErrorResponse
// @Router /locations/{id} [get]
func (c *LocationController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	location, err := c.locationService.Get(ctx.Request.Context(), middleware.GetPrincipal(ctx), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, location)
}

// Create 在菜单下创建门店
// @Summary 创建门店
// @Tags Location
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜单 ID"
// @Param request body dto.LocationCreateRequest true "门店信息"
// @Success 201 {object} model.Location
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /menus/{id}/locations [post]
func (c *LocationController) Create(ctx *gin.Context) {
	menuID, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.LocationCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	location, err := c.locationService.Create(ctx.Request.Context(), middleware.GetPrincipal(ctx), menuID, &req)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, location)
}

// Patch 局部更新门店
// @Summary 更新门店
// @Tags Location
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "门店 ID"
// @Param request body dto.LocationPatchRequest true "需要修改的字段"
// @Success 200 {object} model.Location
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /locations/{id} [patch]
func (c *LocationController) Patch(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.LocationPatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	location, err := c.locationService.Patch(ctx.Request.Context(), middleware.GetPrincipal(ctx), id, &req)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, location)
}

// Delete 删除门店
// @Summary 删除门店
// @Tags Location
// @Produce json
// @Security BearerAuth
// @Param id path int true "门店 ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /locations/{id} [delete]
func (c *LocationController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	resp, err := c.locationService.Delete(ctx.Request.Context(), middleware.GetPrincipal(ctx), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
