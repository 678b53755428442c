package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/middleware"
	"github.com/matinfathi/oo-backend/internal/service"
)

// ==================== UserController 用户控制器 ====================

// UserController 用户控制器
type UserController struct {
	userService *service.UserService
	log         *zap.Logger
}

// NewUserController 创建用户控制器
func NewUserController(userService *service.UserService, log *zap.Logger) *UserController {
	return &UserController{userService: userService, log: log}
}

// Register 自助注册
// @Summary 自助注册（角色固定为 customer）
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "注册信息"
// @Success 201 {object} model.User
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /users/register [post]
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	user, err := c.userService.Register(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// Create 管理员创建用户
// @Summary 创建用户（超级管理员）
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "用户信息"
// @Success 201 {object} model.User
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /users [post]
func (c *UserController) Create(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	user, err := c.userService.Create(ctx.Request.Context(), middleware.GetPrincipal(ctx), &req)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// List 用户列表
// @Summary 用户列表（超级管理员）
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param offset query int false "偏移量" default(0)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {array} model.User
// @Failure 403 {object} dto.ErrorResponse
// @Router /users [get]
func (c *UserController) List(ctx *gin.Context) {
	q, ok := bindPage(ctx)
	if !ok {
		return
	}

	users, err := c.userService.List(ctx.Request.Context(), middleware.GetPrincipal(ctx), q)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// Lookup 按 id / username / email 查询
// @Summary 查询用户（超级管理员）
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param id query int false "用户 ID"
// @Param username query string false "用户名"
// @Param email query string false "邮箱"
// @Success 200 {object} model.User
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/lookup [get]
func (c *UserController) Lookup(ctx *gin.Context) {
	var lookup dto.UserLookup
	if err := ctx.ShouldBindQuery(&lookup); err != nil {
		badRequest(ctx, err)
		return
	}
	c.get(ctx, lookup)
}

// Get 用户详情
// @Summary 用户详情（超级管理员）
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户 ID"
// @Success 200 {object} model.User
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	c.get(ctx, dto.UserLookup{ID: &id})
}

func (c *UserController) get(ctx *gin.Context, lookup dto.UserLookup) {
	user, err := c.userService.Get(ctx.Request.Context(), middleware.GetPrincipal(ctx), lookup)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// Patch 局部更新用户
// @Summary 更新用户（本人或超级管理员，改角色仅超级管理员）
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户 ID"
// @Param request body dto.UserPatchRequest true "需要修改的字段"
// @Success 200 {object} model.User
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /users/{id} [patch]
func (c *UserController) Patch(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.UserPatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	user, err := c.userService.Patch(ctx.Request.Context(), middleware.GetPrincipal(ctx), id, &req)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// Delete 删除用户
// @Summary 删除用户（本人或超级管理员）
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户 ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	resp, err := c.userService.Delete(ctx.Request.Context(), middleware.GetPrincipal(ctx), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
