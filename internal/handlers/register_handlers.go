package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/subscmng/subscmng_backend/internal/core/domain"
	portssvc "github.com/subscmng/subscmng_backend/internal/core/ports/services"
)

// RegisterHandlers wires every resource handler onto the API route group.
func RegisterHandlers(rg *gin.RouterGroup, subSvc portssvc.SubscriptionSvcFacade, rateSvc portssvc.ExchangeRateSvc, checkSvc portssvc.ExpirationCheckSvc) {
	registerSubscriptionRoutes(rg, subSvc)
	registerRateRoutes(rg, rateSvc)
	registerNotificationRoutes(rg, checkSvc)
}

// RegisterValidators installs the domain value validators used by the dto
// binding tags on gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("cycle", func(fl validator.FieldLevel) bool {
		return domain.PaymentCycle(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}

	return v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return domain.Currency(fl.Field().String()).IsValid()
	})
}
