package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mroshb/raffle_api/pkg/errors"
	"github.com/mroshb/raffle_api/pkg/logger"
)

// abortWithError stops the chain with the standard failure body.
func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(errors.HTTPStatus(err), gin.H{
		"success": false,
		"message": errors.PublicMessage(err),
	})
}

// RequestLogger logs one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		}
		switch {
		case status >= 500:
			logger.Error("HTTP request", kv...)
		case status >= 400:
			logger.Warn("HTTP request", kv...)
		default:
			logger.Info("HTTP request", kv...)
		}
	}
}

// Recovery turns panics into a 500 response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered", "error", recovered, "path", c.Request.URL.Path)
		abortWithError(c, errors.New(errors.ErrCodeInternalError, "Internal server error"))
	})
}

// CORS allows the dashboard origins to call the API with bearer tokens.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cors.New(cfg)
}
