package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/matinfathi/oo-backend/internal/model"
	"github.com/matinfathi/oo-backend/internal/policy"
)

// ==================== JWT 配置 ====================

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey       string        // 签名密钥
	AccessTokenTTL  time.Duration // Access Token 有效期
	RefreshTokenTTL time.Duration // Refresh Token 有效期
	Issuer          string        // 签发者
}

const (
	SubjectAccess  = "access"
	SubjectRefresh = "refresh"
)

// ==================== Claims 定义 ====================

// UserClaims 用户声明
type UserClaims struct {
	UserID   int64      `json:"user_id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
	jwt.RegisteredClaims
}

// ==================== JWTManager ====================

// JWTManager 签发与解析 Token，配置由调用方注入
type JWTManager struct {
	cfg JWTConfig
	now func() time.Time
}

// NewJWTManager 创建 Token 管理器
func NewJWTManager(cfg JWTConfig) *JWTManager {
	return &JWTManager{cfg: cfg, now: time.Now}
}

// AccessTokenTTL Access Token 有效期
func (m *JWTManager) AccessTokenTTL() time.Duration {
	return m.cfg.AccessTokenTTL
}

func (m *JWTManager) generate(subject string, ttl time.Duration, userID int64, username string, role model.Role) (string, error) {
	now := m.now()
	claims := &UserClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.SecretKey))
}

// GenerateTokenPair 生成 Token 对
func (m *JWTManager) GenerateTokenPair(userID int64, username string, role model.Role) (accessToken, refreshToken string, err error) {
	accessToken, err = m.generate(SubjectAccess, m.cfg.AccessTokenTTL, userID, username, role)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = m.generate(SubjectRefresh, m.cfg.RefreshTokenTTL, userID, username, role)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ParseToken 解析 Token
func (m *JWTManager) ParseToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(m.cfg.SecretKey), nil
	}, jwt.WithIssuer(m.cfg.Issuer))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// ==================== Gin 中间件 ====================

// ContextKeyPrincipal 请求主体在 gin.Context 中的 key
const ContextKeyPrincipal = "principal"

// ErrUnauthenticated Token 无效、过期或用户已不存在
// Verifier 返回的错误只有包装了它才映射为 401
var ErrUnauthenticated = errors.New("unauthenticated")

// Verifier 把 access token 解析为请求主体
type Verifier interface {
	Verify(ctx context.Context, token string) (*policy.Principal, error)
}

// bearerToken 解析 Authorization: Bearer {token}
func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// JWTAuth 认证中间件，失败直接返回 401
func JWTAuth(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "Not authenticated.",
			})
			return
		}

		principal, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			// 其他错误（如数据库不可用）交给 RequestLogger 记录，不外泄
			_ = c.Error(err)
			if !errors.Is(err, ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"code":    http.StatusInternalServerError,
					"message": "Internal server error.",
				})
				return
			}
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "Could not validate credentials.",
			})
			return
		}

		c.Set(ContextKeyPrincipal, principal)
		c.Next()
	}
}

// ==================== 辅助函数 ====================

// GetPrincipal 从 Context 获取请求主体，未认证返回 nil
func GetPrincipal(c *gin.Context) *policy.Principal {
	if v, exists := c.Get(ContextKeyPrincipal); exists {
		if p, ok := v.(*policy.Principal); ok {
			return p
		}
	}
	return nil
}
