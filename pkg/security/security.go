package security

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"gesture_presentation_backend/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// CORS allows the configured origins plus the trusted-origin list, with
// credentials.
func CORS(cfg *config.CORSConfig) gin.HandlerFunc {
	originSet := make(map[string]bool, len(cfg.AllowedOrigins)+len(cfg.TrustedOrigins))
	for _, o := range cfg.AllowedOrigins {
		originSet[o] = true
	}
	for _, o := range cfg.TrustedOrigins {
		originSet[o] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && originSet[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// AllowedHosts rejects requests whose Host header is not in the allowlist.
// "*" allows everything; an empty list allows localhost only.
func AllowedHosts(hosts []string) gin.HandlerFunc {
	allowAll := false
	hostSet := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		if h == "*" {
			allowAll = true
		}
		hostSet[h] = true
	}
	if len(hosts) == 0 {
		hostSet["localhost"] = true
		hostSet["127.0.0.1"] = true
	}

	return func(c *gin.Context) {
		if allowAll {
			c.Next()
			return
		}
		host := c.Request.Host
		if i := strings.LastIndex(host, ":"); i != -1 {
			host = host[:i]
		}
		if !hostSet[host] {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "disallowed host"})
			return
		}
		c.Next()
	}
}

// Secure sets the usual response hardening headers. HSTS is only sent over
// TLS, and only when debug is off.
func Secure(cfg *config.Config) gin.HandlerFunc {
	hsts := fmt.Sprintf("max-age=%d", cfg.Security.HSTSSeconds)
	if cfg.Security.HSTSIncludeSubdomains {
		hsts += "; includeSubDomains"
	}
	if cfg.Security.HSTSPreload {
		hsts += "; preload"
	}

	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		if !cfg.Server.Debug && c.Request.TLS != nil && cfg.Security.HSTSSeconds > 0 {
			c.Header("Strict-Transport-Security", hsts)
		}

		c.Next()
	}
}

// visitor pairs a limiter with its last activity for periodic cleanup.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles per client IP, expiring idle entries.
func RateLimiter(maxRequests int, window time.Duration) gin.HandlerFunc {
	store := make(map[string]*visitor)
	var mu sync.Mutex

	go func() {
		expiry := window * 3
		if expiry < time.Minute {
			expiry = time.Minute
		}
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			for ip, v := range store {
				if time.Since(v.lastSeen) > expiry {
					delete(store, ip)
				}
			}
			mu.Unlock()
		}
	}()

	r := rate.Every(window / time.Duration(maxRequests))

	return func(c *gin.Context) {
		key := c.ClientIP()

		mu.Lock()
		v, exists := store[key]
		if !exists {
			v = &visitor{
				limiter: rate.NewLimiter(r, maxRequests),
			}
			store[key] = v
		}
		v.lastSeen = time.Now()
		mu.Unlock()

		if !v.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}

		c.Next()
	}
}
