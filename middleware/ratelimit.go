package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit applies a per-client-IP token bucket: limit requests per
// duration, burst equal to the limit. Stale limiters are pruned so the map
// does not grow with every visitor ever seen.
func RateLimit(limit int, per time.Duration) gin.HandlerFunc {
	type entry struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*entry)
	)

	go func() {
		for range time.Tick(per) {
			mu.Lock()
			for ip, e := range clients {
				if time.Since(e.lastSeen) > 3*per {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		e, ok := clients[ip]
		if !ok {
			e = &entry{limiter: rate.NewLimiter(rate.Every(per/time.Duration(limit)), limit)}
			clients[ip] = e
		}
		e.lastSeen = time.Now()
		allowed := e.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
