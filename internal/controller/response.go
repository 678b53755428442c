package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/middleware"
	"github.com/matinfathi/oo-backend/internal/service"
)

// statusOf 业务错误类别 -> HTTP 状态码
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondError 输出 {"code","message"}，未知错误只记日志不外泄
func respondError(ctx *gin.Context, log *zap.Logger, err error) {
	status := statusOf(err)
	message := err.Error()

	switch status {
	case http.StatusInternalServerError:
		log.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(ctx)),
			zap.String("route", ctx.FullPath()),
			zap.Error(err),
		)
		message = "Internal server error."
	case http.StatusUnauthorized:
		ctx.Header("WWW-Authenticate", "Bearer")
	}

	_ = ctx.Error(err)
	ctx.AbortWithStatusJSON(status, dto.ErrorResponse{Code: status, Message: message})
}

// badRequest 绑定失败
func badRequest(ctx *gin.Context, err error) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: "Invalid request: " + err.Error(),
	})
}

// pathID 解析路径参数 id
func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid id.",
		})
		return 0, false
	}
	return id, true
}

// bindPage 解析 offset / limit
func bindPage(ctx *gin.Context) (dto.PageQuery, bool) {
	var q dto.PageQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		badRequest(ctx, err)
		return q, false
	}
	return q, true
}
