package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"

	"hackathon-idea-api/pkg/tracer"
)

// allowScript 在单次调用中完成清理、计数与写入，并发请求不会同时越过上限
//
// KEYS[1] 限流键
// ARGV[1] 当前时间（毫秒） ARGV[2] 窗口起点（毫秒） ARGV[3] 上限
// ARGV[4] 本次请求的成员 ARGV[5] 键过期时间（毫秒）
var allowScript = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[2])
local count = redis.call('ZCARD', KEYS[1])
if count >= tonumber(ARGV[3]) then
	return {0, count}
end
redis.call('ZADD', KEYS[1], ARGV[1], ARGV[4])
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return {1, count + 1}
`)

// RateLimiter 滑动窗口限流器，多实例部署时共享计数
type RateLimiter struct {
	client *Client
}

// NewRateLimiter 创建限流器
func NewRateLimiter(client *Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow 检查 window 内 key 的请求数是否低于 limit，允许时记入本次请求
func (l *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	ctx, span := tracer.Start(ctx, "ratelimit.Allow")
	span.SetAttributes(
		attribute.String("ratelimit.key", key),
		attribute.Int("ratelimit.limit", limit),
		attribute.Int64("ratelimit.window_ms", window.Milliseconds()),
	)
	defer span.End()

	now := time.Now().UnixMilli()
	windowStart := now - window.Milliseconds()
	// 成员需唯一，同一毫秒内的多个请求各占一条
	member := fmt.Sprintf("%d-%s", now, uuid.NewString())

	res, err := allowScript.Run(ctx, l.client.rdb, []string{key},
		now, windowStart, limit, member, (window * 2).Milliseconds()).Int64Slice()
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 2 {
		return false, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}

	allowed := res[0] == 1
	span.SetAttributes(
		attribute.Int64("ratelimit.current_count", res[1]),
		attribute.Bool("ratelimit.allowed", allowed),
	)
	return allowed, nil
}
