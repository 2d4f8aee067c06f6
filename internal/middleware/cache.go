package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheConfig holds configuration for the response cache middleware
type CacheConfig struct {
	Duration time.Duration
	Prefix   string
}

// Cache caches successful GET responses in Redis. Catalog endpoints (tags,
// schools) sit behind it; a nil client disables caching entirely.
func Cache(redisClient *redis.Client, cfg CacheConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c, cfg.Prefix)
		ctx := context.Background()

		if cached, err := redisClient.Get(ctx, key).Bytes(); err == nil {
			c.Writer.Header().Set("Content-Type", "application/json")
			c.Writer.Header().Set("X-Cache", "HIT")
			c.Writer.WriteHeader(http.StatusOK)
			c.Writer.Write(cached)
			c.Abort()
			return
		}

		writer := &cachingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			if err := redisClient.Set(ctx, key, writer.body.Bytes(), cfg.Duration).Err(); err != nil {
				logger.Warn("failed to cache response",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path))
			}
		}
	}
}

// cachingWriter captures the response body for caching
type cachingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *cachingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// cacheKey derives a stable key from the request path and query
func cacheKey(c *gin.Context, prefix string) string {
	hash := sha256.Sum256([]byte(c.Request.URL.Path + "?" + c.Request.URL.RawQuery))
	return prefix + ":" + hex.EncodeToString(hash[:])
}
