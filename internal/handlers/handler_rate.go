package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/subscmng/subscmng_backend/internal/core/ports/services"
	"github.com/subscmng/subscmng_backend/internal/dto"
)

// rateHandler exposes the USD→JPY rate served by the cache.
type rateHandler struct {
	rateSvc portssvc.ExchangeRateSvc
}

func newRateHandler(rateSvc portssvc.ExchangeRateSvc) *rateHandler {
	return &rateHandler{rateSvc: rateSvc}
}

// registerRateRoutes registers the exchange rate routes.
func registerRateRoutes(rg *gin.RouterGroup, rateSvc portssvc.ExchangeRateSvc) {
	h := newRateHandler(rateSvc)

	rates := rg.Group("/rates")
	rates.GET("/usd-jpy", h.getUsdJpyRate)
}

// getUsdJpyRate returns the freshest available USD→JPY rate. The lookup
// cannot fail; an unreachable rate API degrades to a cached or default value.
func (h *rateHandler) getUsdJpyRate(c *gin.Context) {
	rate := h.rateSvc.GetUsdToJpyRate(c.Request.Context())

	c.JSON(http.StatusOK, dto.RateResponse{Pair: "USD/JPY", Rate: rate})
}
