package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"walletlink/internal/app"
	"walletlink/internal/domain"
	"walletlink/internal/protocol/deeplink"
)

// newEngine returns the gin engine serving wallet redirects for w.
func newEngine(w *app.Wire) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), accessLog())

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	handle := redirectHandler(w)
	r.GET("/"+deeplink.PublicKeyCallbackPath, handle)
	r.GET("/:tag", handle)
	return r
}

func redirectHandler(w *app.Wire) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := w.HandleURL(c.Request.URL.String())
		if err != nil {
			c.String(http.StatusInternalServerError, "session state could not be persisted: "+res.String())
			return
		}
		status := http.StatusOK
		if _, failed := res.(domain.OperationFailed); failed {
			status = http.StatusBadRequest
		}
		c.String(status, res.String())
	}
}

// accessLog records method, path, status and duration. The query string is
// left out: it carries ciphertext and nonces.
func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"remote":   c.ClientIP(),
			"duration": time.Since(start).Round(time.Microsecond),
		}).Debug("request")
	}
}
