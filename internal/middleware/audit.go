package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matinfathi/oo-backend/internal/policy"
)

// ==================== 审计上下文 ====================

type auditContextKey struct{}

// WithActor 把请求主体放进 context，供 GORM 回调读取
func WithActor(ctx context.Context, p *policy.Principal) context.Context {
	return context.WithValue(ctx, auditContextKey{}, p)
}

// ActorFrom 从 context 取请求主体
func ActorFrom(ctx context.Context) *policy.Principal {
	if ctx == nil {
		return nil
	}
	p, _ := ctx.Value(auditContextKey{}).(*policy.Principal)
	return p
}

// ==================== Gin 中间件 ====================

// AuditContext 把 JWT 认证得到的主体注入 request context
// 必须挂在 JWTAuth 之后
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p := GetPrincipal(c); p != nil {
			c.Request = c.Request.WithContext(WithActor(c.Request.Context(), p))
		}
		c.Next()
	}
}

// ==================== GORM 回调 ====================

// RegisterAuditCallbacks 写操作成功后记审计日志（表、操作、影响行数、操作人）
func RegisterAuditCallbacks(db *gorm.DB, log *zap.Logger) error {
	if err := db.Callback().Create().After("gorm:create").Register("audit:create", auditHook(log, "create")); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("audit:update", auditHook(log, "update")); err != nil {
		return err
	}
	return db.Callback().Delete().After("gorm:delete").Register("audit:delete", auditHook(log, "delete"))
}

func auditHook(log *zap.Logger, op string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		if tx.Error != nil || tx.RowsAffected == 0 {
			return
		}
		actor := ActorFrom(tx.Statement.Context)
		if actor == nil {
			return
		}

		log.Info("audit",
			zap.String("op", op),
			zap.String("table", tx.Statement.Table),
			zap.Int64("rows", tx.RowsAffected),
			zap.Int64("actor_id", actor.UserID),
			zap.String("actor", actor.Username),
		)
	}
}
