package handlers

import (
	"net/http"
	"strconv"

	"tiketi/internal/domain/models"
	"tiketi/internal/http/middleware"
	"tiketi/internal/repositories"
	"tiketi/internal/services"

	"github.com/gin-gonic/gin"
)

func orderService(c *gin.Context) services.OrderService {
	reqID := middleware.GetRequestID(c)
	return services.OrderService{
		OrderRepo:   repositories.OrderRepository{},
		CoasterRepo: repositories.CoasterRepository{},
		Pricing: services.PricingService{
			CoasterRepo: repositories.CoasterRepository{},
			PricingRepo: repositories.PricingRepository{},
			RequestID:   reqID,
		},
		RequestID: reqID,
	}
}

// GET /api/orders
func ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	coasterID, _ := strconv.ParseInt(c.Query("coaster_id"), 10, 64)

	orders, total, err := orderService(c).List(middleware.GetUserID(c), models.OrderFilter{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		HireDate:      c.Query("hire_date"),
		CoasterID:     coasterID,
		Page:          page,
		PerPage:       perPage,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":   orders,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

// GET /api/orders/:id
func GetOrder(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	order, err := orderService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// POST /api/orders
func CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	order, err := orderService(c).Create(middleware.GetUserID(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// PUT /api/orders/:id
func UpdateOrder(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var upd models.OrderUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	order, err := orderService(c).UpdateStatus(id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DELETE /api/orders/:id
func DeleteOrder(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := orderService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}
