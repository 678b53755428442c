package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ==================== RateLimiter 请求限流器 ====================

// RateLimiter 按 key 维护令牌桶，key 一般是客户端 IP 或用户 ID
type RateLimiter struct {
	limiters sync.Map // key -> *limiterEntry
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time

	sweepMu   sync.Mutex
	lastSweep time.Time
}

// limiterEntry 令牌桶条目
type limiterEntry struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

// NewRateLimiter 每秒 rps 个请求，突发 burst 个
// rps <= 0 表示不限流
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	r := &RateLimiter{limit: limit, burst: burst, idle: 10 * time.Minute, now: time.Now}
	r.lastSweep = r.now()
	return r
}

// ==================== 限流检查 ====================

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 需要等待的时间
}

// Check 消耗一个令牌，顺带清理空闲 key（不起后台协程）
func (r *RateLimiter) Check(key string) CheckResult {
	r.maybeSweep()

	actual, _ := r.limiters.LoadOrStore(key, &limiterEntry{limiter: rate.NewLimiter(r.limit, r.burst)})
	entry := actual.(*limiterEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := r.now()
	entry.lastSeen = now

	reservation := entry.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return CheckResult{Allowed: false, RetryAfter: time.Second}
	}
	delay := reservation.DelayFrom(now)
	if delay > 0 {
		// 不排队，直接拒绝并归还令牌
		reservation.CancelAt(now)
		return CheckResult{Allowed: false, RetryAfter: delay}
	}
	return CheckResult{Allowed: true}
}

// Reset 重置指定 key
func (r *RateLimiter) Reset(key string) {
	r.limiters.Delete(key)
}

func (r *RateLimiter) maybeSweep() {
	r.sweepMu.Lock()
	now := r.now()
	due := now.Sub(r.lastSweep) >= r.idle
	if due {
		r.lastSweep = now
	}
	r.sweepMu.Unlock()

	if due {
		r.Sweep()
	}
}

// Sweep 清理长时间没有请求的 key，返回清理数量
func (r *RateLimiter) Sweep() int {
	cutoff := r.now().Add(-r.idle)
	removed := 0
	r.limiters.Range(func(key, value interface{}) bool {
		entry := value.(*limiterEntry)
		entry.mu.Lock()
		stale := entry.lastSeen.Before(cutoff)
		entry.mu.Unlock()
		if stale {
			r.limiters.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// ==================== Gin 中间件 ====================

// KeyFunc 从请求中取限流 key
type KeyFunc func(c *gin.Context) string

// ClientIPKey 按客户端 IP 限流
func ClientIPKey(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// PrincipalKey 已认证时按用户限流，否则退回 IP
func PrincipalKey(c *gin.Context) string {
	if p := GetPrincipal(c); p != nil {
		return fmt.Sprintf("user:%d", p.UserID)
	}
	return ClientIPKey(c)
}

// RateLimit 限流中间件，超限返回 429
//
// 使用示例:
//
//	api.Use(middleware.RateLimit(limiter, middleware.ClientIPKey))
func RateLimit(limiter *RateLimiter, key KeyFunc) gin.HandlerFunc {
	if key == nil {
		key = ClientIPKey
	}

	return func(c *gin.Context) {
		result := limiter.Check(key(c))
		if !result.Allowed {
			seconds := int(math.Ceil(result.RetryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": fmt.Sprintf("Too many requests, retry in %d second(s).", seconds),
			})
			return
		}

		c.Next()
	}
}
