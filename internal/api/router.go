package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestLogger logs one line per request, tagged with a request id.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)

		start := time.Now()
		c.Next()
		logger.Info("request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func NewRouter(storage *Storage, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	apiGroup := r.Group("/api")
	{
		// static routes first
		apiGroup.GET("/meta", MetaListHandler(storage))
		apiGroup.GET("/meta/:table", MetaTableHandler(storage))
		apiGroup.GET("/database", DatabaseHandler(storage))

		apiGroup.POST("/records/:table", CreateHandler(storage))
		apiGroup.GET("/records/:table", ListHandler(storage))
		apiGroup.GET("/records/:table/:guid", GetOneHandler(storage))
	}
	return r
}

func RunServer(addr string, storage *Storage, logger *slog.Logger) error {
	return NewRouter(storage, logger).Run(addr)
}
