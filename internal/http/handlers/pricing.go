package handlers

import (
	"net/http"

	"tiketi/internal/domain/models"
	"tiketi/internal/http/middleware"
	"tiketi/internal/repositories"
	"tiketi/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GET /api/coasters/:id/pricing
func GetCoasterPricing(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.PricingRepository{}
	pricing, err := repo.GetByCoaster(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, pricing)
}

type rateCardRequest struct {
	BasePrice               decimal.Decimal `json:"base_price"`
	PricePerKm              decimal.Decimal `json:"price_per_km"`
	MinKm                   int             `json:"min_km"`
	WeekendSurchargePercent decimal.Decimal `json:"weekend_surcharge_percent"`
	NightSurchargePercent   decimal.Decimal `json:"night_surcharge_percent"`
}

// PUT /api/coasters/:id/pricing
func SetCoasterPricing(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req rateCardRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.PricingService{
		CoasterRepo: repositories.CoasterRepository{},
		PricingRepo: repositories.PricingRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
	err := svc.SetRateCard(models.CoasterPricing{
		CoasterID:               id,
		BasePrice:               req.BasePrice,
		PricePerKm:              req.PricePerKm,
		MinKm:                   req.MinKm,
		WeekendSurchargePercent: req.WeekendSurchargePercent,
		NightSurchargePercent:   req.NightSurchargePercent,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rate card saved"})
}

// POST /api/hire/quote
func QuoteHire(c *gin.Context) {
	var req services.QuoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.PricingService{
		CoasterRepo: repositories.CoasterRepository{},
		PricingRepo: repositories.PricingRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
	quote, err := svc.QuoteTrip(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
