package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/subscmng/subscmng_backend/internal/apperrors"
	"github.com/subscmng/subscmng_backend/internal/core/domain"
	portssvc "github.com/subscmng/subscmng_backend/internal/core/ports/services"
	"github.com/subscmng/subscmng_backend/internal/dto"
	"github.com/subscmng/subscmng_backend/internal/middleware"
)

// subscriptionHandler handles HTTP requests related to subscriptions.
type subscriptionHandler struct {
	subSvc portssvc.SubscriptionSvcFacade
}

func newSubscriptionHandler(subSvc portssvc.SubscriptionSvcFacade) *subscriptionHandler {
	return &subscriptionHandler{subSvc: subSvc}
}

// registerSubscriptionRoutes registers routes related to subscriptions.
func registerSubscriptionRoutes(rg *gin.RouterGroup, subSvc portssvc.SubscriptionSvcFacade) {
	h := newSubscriptionHandler(subSvc)

	subscriptions := rg.Group("/subscriptions")
	{
		subscriptions.GET("", h.listSubscriptions)
		subscriptions.GET("/summary", h.getSpendingSummary)
		subscriptions.GET("/:subscriptionID", h.getSubscription)
		subscriptions.POST("", h.createSubscription)
		subscriptions.PUT("/:subscriptionID", h.updateSubscription)
		subscriptions.DELETE("/:subscriptionID", h.deleteSubscription)
		subscriptions.POST("/:subscriptionID/deactivate", h.deactivateSubscription)
	}
}

func parseSubscriptionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("subscriptionID"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return 0, false
	}
	return id, true
}

// listSubscriptions returns active subscriptions, optionally filtered by the
// cycle query parameter.
func (h *subscriptionHandler) listSubscriptions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var cycle *domain.PaymentCycle
	if raw := c.Query("cycle"); raw != "" {
		parsed := domain.PaymentCycle(raw)
		if !parsed.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cycle must be MONTHLY or YEARLY"})
			return
		}
		cycle = &parsed
	}

	subs, err := h.subSvc.ListSubscriptions(c.Request.Context(), cycle)
	if err != nil {
		logger.Error("Failed to list subscriptions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list subscriptions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSubscriptionResponse(subs))
}

// getSubscription returns one subscription by id. Deactivated records are
// still returned so detail views keep working.
func (h *subscriptionHandler) getSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseSubscriptionID(c)
	if !ok {
		return
	}

	sub, err := h.subSvc.GetSubscriptionByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		} else {
			logger.Error("Failed to get subscription", slog.Int64("subscription_id", id), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subscription"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// getSpendingSummary returns the active monthly and yearly totals.
func (h *subscriptionHandler) getSpendingSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.subSvc.GetSpendingSummary(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get spending summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve spending summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSpendingSummaryResponse(summary))
}

// createSubscription runs the editing workflow for a new record.
func (h *subscriptionHandler) createSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createSubscription", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create subscription", slog.String("service_name", req.ServiceName))

	sub, err := h.subSvc.SaveSubscription(c.Request.Context(), 0, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating subscription", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create subscription", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save subscription"})
		}
		return
	}

	logger.Info("Subscription created successfully", slog.Int64("subscription_id", sub.ID))
	c.JSON(http.StatusCreated, dto.ToSubscriptionResponse(sub))
}

// updateSubscription runs the editing workflow for an existing record.
func (h *subscriptionHandler) updateSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseSubscriptionID(c)
	if !ok {
		return
	}

	var req dto.SaveSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateSubscription", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	sub, err := h.subSvc.SaveSubscription(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating subscription", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		default:
			logger.Error("Failed to update subscription", slog.Int64("subscription_id", id), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save subscription"})
		}
		return
	}

	logger.Info("Subscription updated successfully", slog.Int64("subscription_id", sub.ID))
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// deleteSubscription permanently removes a subscription. Deleting an unknown
// id still answers 204.
func (h *subscriptionHandler) deleteSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseSubscriptionID(c)
	if !ok {
		return
	}

	if err := h.subSvc.DeleteSubscription(c.Request.Context(), id); err != nil {
		logger.Error("Failed to delete subscription", slog.Int64("subscription_id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subscription"})
		return
	}

	logger.Info("Subscription deleted", slog.Int64("subscription_id", id))
	c.Status(http.StatusNoContent)
}

// deactivateSubscription soft-deletes a subscription.
func (h *subscriptionHandler) deactivateSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseSubscriptionID(c)
	if !ok {
		return
	}

	if err := h.subSvc.DeactivateSubscription(c.Request.Context(), id); err != nil {
		logger.Error("Failed to deactivate subscription", slog.Int64("subscription_id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate subscription"})
		return
	}

	logger.Info("Subscription deactivated", slog.Int64("subscription_id", id))
	c.Status(http.StatusNoContent)
}
