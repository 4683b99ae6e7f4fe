package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
)

// requestLogger logs one line per request.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}).Info("request")
	}
}

type zstdResponseWriter struct {
	gin.ResponseWriter
	encoder *zstd.Encoder
}

func (w *zstdResponseWriter) Write(b []byte) (int, error) {
	return w.encoder.Write(b)
}

func (w *zstdResponseWriter) WriteString(s string) (int, error) {
	return w.encoder.Write([]byte(s))
}

// zstdMiddleware compresses responses for clients that accept zstd.
func zstdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "zstd") ||
			strings.HasPrefix(c.Request.URL.Path, "/swagger") {
			c.Next()
			return
		}

		encoder, err := zstd.NewWriter(c.Writer)
		if err != nil {
			writeError(c, http.StatusInternalServerError, err)
			c.Abort()
			return
		}

		c.Header("Content-Encoding", "zstd")
		c.Header("Vary", "Accept-Encoding")
		c.Writer = &zstdResponseWriter{ResponseWriter: c.Writer, encoder: encoder}
		defer encoder.Close()

		c.Next()
	}
}
