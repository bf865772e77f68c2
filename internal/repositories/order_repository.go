package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "tiketi/internal/config"
	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
)

type OrderRepository struct {
	DB *sql.DB
}

func (r OrderRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const orderColumns = `
	id,
	user_id,
	coaster_id,
	COALESCE(customer_name,''),
	COALESCE(customer_phone,''),
	COALESCE(customer_email,''),
	COALESCE(pickup_location,''),
	COALESCE(pickup_latitude,0),
	COALESCE(pickup_longitude,0),
	COALESCE(dropoff_location,''),
	COALESCE(dropoff_latitude,0),
	COALESCE(dropoff_longitude,0),
	COALESCE(hire_date,''),
	COALESCE(hire_time,''),
	COALESCE(return_date,''),
	COALESCE(return_time,''),
	COALESCE(passengers_count,0),
	COALESCE(purpose,''),
	COALESCE(notes,''),
	COALESCE(distance_km,0),
	COALESCE(base_price,0),
	COALESCE(price_per_km,0),
	COALESCE(km_amount,0),
	COALESCE(surcharge_percent,0),
	COALESCE(surcharge_amount,0),
	COALESCE(total_amount,0),
	COALESCE(order_status,'pending'),
	COALESCE(payment_status,'pending'),
	COALESCE(payment_method,'')`

func scanOrder(s interface{ Scan(...interface{}) error }) (models.HireOrder, error) {
	var o models.HireOrder
	err := s.Scan(
		&o.ID,
		&o.UserID,
		&o.CoasterID,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.CustomerEmail,
		&o.PickupLocation,
		&o.PickupLatitude,
		&o.PickupLongitude,
		&o.DropoffLocation,
		&o.DropoffLatitude,
		&o.DropoffLongitude,
		&o.HireDate,
		&o.HireTime,
		&o.ReturnDate,
		&o.ReturnTime,
		&o.PassengersCount,
		&o.Purpose,
		&o.Notes,
		&o.DistanceKm,
		&o.BasePrice,
		&o.PricePerKm,
		&o.KmAmount,
		&o.SurchargePct,
		&o.SurchargeAmount,
		&o.TotalAmount,
		&o.OrderStatus,
		&o.PaymentStatus,
		&o.PaymentMethod,
	)
	return o, err
}

func (r OrderRepository) GetByID(id int64) (models.HireOrder, error) {
	if id <= 0 {
		return models.HireOrder{}, domain.ValidationError{Field: "order_id", Msg: "must be positive"}
	}
	o, err := scanOrder(r.db().QueryRow(
		`SELECT`+orderColumns+` FROM hire_orders WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return o, domain.NotFoundError{Resource: "hire_order", Err: err}
		}
		return o, err
	}
	return o, nil
}

// List pages through the owner's orders, most recent first.
func (r OrderRepository) List(userID int64, f models.OrderFilter) ([]models.HireOrder, int, error) {
	where := []string{"user_id=?"}
	args := []interface{}{userID}

	if f.Status != "" {
		where = append(where, "order_status=?")
		args = append(args, f.Status)
	}
	if f.PaymentStatus != "" {
		where = append(where, "payment_status=?")
		args = append(args, f.PaymentStatus)
	}
	if f.HireDate != "" {
		where = append(where, "hire_date=?")
		args = append(args, f.HireDate)
	}
	if f.CoasterID > 0 {
		where = append(where, "coaster_id=?")
		args = append(args, f.CoasterID)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db().QueryRow(
		`SELECT COUNT(*) FROM hire_orders WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	perPage := f.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 15
	}

	query := fmt.Sprintf(
		`SELECT%s FROM hire_orders WHERE %s ORDER BY id DESC LIMIT ? OFFSET ?`,
		orderColumns, cond)
	rows, err := r.db().Query(query, append(args, perPage, (page-1)*perPage)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.HireOrder{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func (r OrderRepository) Create(o models.HireOrder) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO hire_orders
			(user_id, coaster_id, customer_name, customer_phone, customer_email,
			 pickup_location, pickup_latitude, pickup_longitude,
			 dropoff_location, dropoff_latitude, dropoff_longitude,
			 hire_date, hire_time, return_date, return_time,
			 passengers_count, purpose, notes,
			 distance_km, base_price, price_per_km, km_amount,
			 surcharge_percent, surcharge_amount, total_amount,
			 order_status, payment_status, payment_method,
			 created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,NOW(),NOW())`,
		o.UserID, o.CoasterID, o.CustomerName, o.CustomerPhone, o.CustomerEmail,
		o.PickupLocation, o.PickupLatitude, o.PickupLongitude,
		o.DropoffLocation, o.DropoffLatitude, o.DropoffLongitude,
		o.HireDate, o.HireTime, o.ReturnDate, o.ReturnTime,
		o.PassengersCount, o.Purpose, o.Notes,
		o.DistanceKm, o.BasePrice, o.PricePerKm, o.KmAmount,
		o.SurchargePct, o.SurchargeAmount, o.TotalAmount,
		o.OrderStatus, o.PaymentStatus, o.PaymentMethod)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update patches the status columns only. The price snapshot is immutable
// once the order exists.
func (r OrderRepository) Update(id int64, upd models.OrderUpdate) error {
	sets := []string{}
	args := []interface{}{}

	if upd.OrderStatus != nil {
		switch *upd.OrderStatus {
		case models.OrderPending, models.OrderConfirmed, models.OrderInProgress,
			models.OrderCompleted, models.OrderCancelled:
		default:
			return domain.ValidationError{Field: "order_status", Msg: "unknown order status"}
		}
		sets = append(sets, "order_status=?")
		args = append(args, *upd.OrderStatus)
	}
	if upd.PaymentStatus != nil {
		switch *upd.PaymentStatus {
		case models.OrderPaymentPending, models.OrderPaymentPaid, models.OrderPaymentRefunded:
		default:
			return domain.ValidationError{Field: "payment_status", Msg: "unknown payment status"}
		}
		sets = append(sets, "payment_status=?")
		args = append(args, *upd.PaymentStatus)
	}
	if upd.PaymentMethod != nil {
		sets = append(sets, "payment_method=?")
		args = append(args, *upd.PaymentMethod)
	}
	if len(sets) == 0 {
		return domain.ValidationError{Field: "body", Msg: "no updatable fields provided"}
	}

	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	_, err := r.db().Exec(
		fmt.Sprintf(`UPDATE hire_orders SET %s WHERE id=?`, strings.Join(sets, ", ")),
		args...)
	return err
}

// Delete removes a pending order. Anything past pending must be cancelled,
// not erased.
func (r OrderRepository) Delete(id int64) error {
	o, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if o.OrderStatus != models.OrderPending {
		return domain.ConflictError{Resource: "hire_order", Msg: "only pending orders can be deleted"}
	}
	_, err = r.db().Exec(`DELETE FROM hire_orders WHERE id=?`, id)
	return err
}
