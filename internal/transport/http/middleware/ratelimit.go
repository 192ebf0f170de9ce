package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	resp "go-gin-blog/internal/transport/http/response"
)

type ipBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimitPerIP 每 IP 令牌桶；长时间未出现的 IP 定期清理
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	var (
		mu        sync.Mutex
		buckets   = make(map[string]*ipBucket)
		lastSweep = time.Now()
	)
	const idle = 10 * time.Minute

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		b, ok := buckets[ip]
		if !ok {
			b = &ipBucket{lim: rate.NewLimiter(rps, burst)}
			buckets[ip] = b
		}
		b.seen = now
		if now.Sub(lastSweep) > idle {
			for k, v := range buckets {
				if now.Sub(v.seen) > idle {
					delete(buckets, k)
				}
			}
			lastSweep = now
		}
		allowed := b.lim.AllowN(now, 1)
		mu.Unlock()

		if !allowed {
			resp.Abort(c, http.StatusTooManyRequests, resp.MsgTooManyRequests, "Rate limit exceeded")
			return
		}
		c.Next()
	}
}
