package services

import (
	"fmt"

	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
	"tiketi/internal/repositories"
	"tiketi/internal/utils"
)

// CreateOrderRequest carries everything needed to open a hire order. The
// quote fields are recomputed server side, never trusted from the client.
type CreateOrderRequest struct {
	CoasterID int64 `json:"coaster_id"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`

	PickupLocation   string  `json:"pickup_location"`
	PickupLatitude   float64 `json:"pickup_latitude"`
	PickupLongitude  float64 `json:"pickup_longitude"`
	DropoffLocation  string  `json:"dropoff_location"`
	DropoffLatitude  float64 `json:"dropoff_latitude"`
	DropoffLongitude float64 `json:"dropoff_longitude"`

	HireDate        string `json:"hire_date"`
	HireTime        string `json:"hire_time"`
	ReturnDate      string `json:"return_date"`
	ReturnTime      string `json:"return_time"`
	PassengersCount int    `json:"passengers_count"`
	Purpose         string `json:"purpose"`
	Notes           string `json:"notes"`

	DistanceKm string `json:"distance_km"`
}

type OrderService struct {
	OrderRepo   repositories.OrderRepository
	CoasterRepo repositories.CoasterRepository
	Pricing     PricingService
	RequestID   string
}

// Create validates the request, prices the trip and stores the order with
// its price snapshot. The coaster must be available at creation time.
func (s OrderService) Create(userID int64, req CreateOrderRequest) (models.HireOrder, error) {
	var out models.HireOrder

	if req.CustomerName == "" {
		return out, domain.ValidationError{Field: "customer_name", Msg: "must not be empty"}
	}
	if req.CustomerPhone == "" {
		return out, domain.ValidationError{Field: "customer_phone", Msg: "must not be empty"}
	}
	if req.PickupLocation == "" || req.DropoffLocation == "" {
		return out, domain.ValidationError{Field: "locations", Msg: "pickup and dropoff are required"}
	}
	if req.PassengersCount <= 0 {
		return out, domain.ValidationError{Field: "passengers_count", Msg: "must be positive"}
	}

	coaster, err := s.CoasterRepo.GetByID(req.CoasterID)
	if err != nil {
		return out, err
	}
	if coaster.Status != models.CoasterAvailable {
		return out, domain.ConflictError{Resource: "coaster", Msg: "coaster is not available"}
	}
	if coaster.Capacity > 0 && req.PassengersCount > coaster.Capacity {
		return out, domain.ValidationError{Field: "passengers_count",
			Msg: fmt.Sprintf("exceeds coaster capacity of %d", coaster.Capacity)}
	}

	quoteReq := QuoteRequest{
		CoasterID:        req.CoasterID,
		PickupLatitude:   req.PickupLatitude,
		PickupLongitude:  req.PickupLongitude,
		DropoffLatitude:  req.DropoffLatitude,
		DropoffLongitude: req.DropoffLongitude,
		HireDate:         req.HireDate,
		HireTime:         req.HireTime,
	}
	if d, err := utils.ParseAmount(req.DistanceKm); err == nil {
		quoteReq.DistanceKm = d
	}
	quote, err := s.Pricing.QuoteTrip(quoteReq)
	if err != nil {
		return out, err
	}

	order := models.HireOrder{
		UserID:           userID,
		CoasterID:        coaster.ID,
		CustomerName:     req.CustomerName,
		CustomerPhone:    utils.NormalizePhoneTZ(req.CustomerPhone),
		CustomerEmail:    req.CustomerEmail,
		PickupLocation:   req.PickupLocation,
		PickupLatitude:   req.PickupLatitude,
		PickupLongitude:  req.PickupLongitude,
		DropoffLocation:  req.DropoffLocation,
		DropoffLatitude:  req.DropoffLatitude,
		DropoffLongitude: req.DropoffLongitude,
		HireDate:         req.HireDate,
		HireTime:         req.HireTime,
		ReturnDate:       req.ReturnDate,
		ReturnTime:       req.ReturnTime,
		PassengersCount:  req.PassengersCount,
		Purpose:          req.Purpose,
		Notes:            req.Notes,
		DistanceKm:       quote.DistanceKm,
		BasePrice:        quote.BasePrice,
		PricePerKm:       quote.PricePerKm,
		KmAmount:         quote.KmAmount,
		SurchargePct:     quote.SurchargePct,
		SurchargeAmount:  quote.SurchargeAmount,
		TotalAmount:      quote.TotalAmount,
		OrderStatus:      models.OrderPending,
		PaymentStatus:    models.OrderPaymentPending,
	}

	id, err := s.OrderRepo.Create(order)
	if err != nil {
		return out, err
	}
	order.ID = id

	utils.LogEvent(s.RequestID, "orders", "create",
		fmt.Sprintf("order_id=%d coaster_id=%d total=%s", id, coaster.ID, order.TotalAmount))
	return order, nil
}

func (s OrderService) Get(id int64) (models.HireOrder, error) {
	return s.OrderRepo.GetByID(id)
}

func (s OrderService) List(userID int64, f models.OrderFilter) ([]models.HireOrder, int, error) {
	return s.OrderRepo.List(userID, f)
}

// UpdateStatus patches the order and keeps the coaster's availability in
// step with it: in_progress puts the coaster on hire, a terminal status
// releases it.
func (s OrderService) UpdateStatus(id int64, upd models.OrderUpdate) (models.HireOrder, error) {
	before, err := s.OrderRepo.GetByID(id)
	if err != nil {
		return models.HireOrder{}, err
	}

	if err := s.OrderRepo.Update(id, upd); err != nil {
		return models.HireOrder{}, err
	}

	if upd.OrderStatus != nil && *upd.OrderStatus != before.OrderStatus {
		switch *upd.OrderStatus {
		case models.OrderInProgress:
			err = s.CoasterRepo.SetStatus(before.CoasterID, models.CoasterOnHire)
		case models.OrderCompleted, models.OrderCancelled:
			err = s.CoasterRepo.SetStatus(before.CoasterID, models.CoasterAvailable)
		}
		if err != nil {
			utils.LogEvent(s.RequestID, "orders", "status_sync",
				fmt.Sprintf("order_id=%d coaster_id=%d sync failed: %v", id, before.CoasterID, err))
			return models.HireOrder{}, domain.InternalError{Msg: "failed to sync coaster status", Err: err}
		}
	}

	after, err := s.OrderRepo.GetByID(id)
	if err != nil {
		return models.HireOrder{}, err
	}
	utils.LogEvent(s.RequestID, "orders", "update",
		fmt.Sprintf("order_id=%d status=%s payment=%s", id, after.OrderStatus, after.PaymentStatus))
	return after, nil
}

func (s OrderService) Delete(id int64) error {
	if err := s.OrderRepo.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "orders", "delete", fmt.Sprintf("order_id=%d", id))
	return nil
}
