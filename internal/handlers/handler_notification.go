package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/subscmng/subscmng_backend/internal/core/ports/services"
	"github.com/subscmng/subscmng_backend/internal/middleware"
)

// notificationHandler triggers the expiration check on demand, mirroring the
// contract the scheduler uses: run once, report success or failure.
type notificationHandler struct {
	checkSvc portssvc.ExpirationCheckSvc
}

func newNotificationHandler(checkSvc portssvc.ExpirationCheckSvc) *notificationHandler {
	return &notificationHandler{checkSvc: checkSvc}
}

// registerNotificationRoutes registers the notification check route.
func registerNotificationRoutes(rg *gin.RouterGroup, checkSvc portssvc.ExpirationCheckSvc) {
	h := newNotificationHandler(checkSvc)

	notifications := rg.Group("/notifications")
	notifications.POST("/check", h.runExpirationCheck)
}

func (h *notificationHandler) runExpirationCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to run expiration notification check")

	if err := h.checkSvc.CheckExpiringSubscriptions(c.Request.Context()); err != nil {
		logger.Error("Expiration notification check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Notification check failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}
