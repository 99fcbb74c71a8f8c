// internal/workers/conversation/chat-frontend/router.go
package chatfrontend

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter exposes the handler at POST /chatbot plus health, readiness and metrics.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "X-Api-Key"},
		MaxAge:          12 * time.Hour,
	}))

	r.POST("/chatbot", h.Chat)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// Chat is the gin handler for one chat turn.
func (h *Handler) Chat(c *gin.Context) {
	var input Input
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid chat request body", map[string]interface{}{"error": err})
		c.JSON(http.StatusBadRequest, NoMessageError)
		return
	}

	out, err := h.Execute(c.Request.Context(), &input)
	if errors.Is(err, ErrNoMessage) {
		c.JSON(http.StatusBadRequest, NoMessageError)
		return
	}
	c.JSON(http.StatusOK, out)
}
