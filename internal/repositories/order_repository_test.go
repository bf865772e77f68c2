package repositories

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
)

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "coaster_id",
		"customer_name", "customer_phone", "customer_email",
		"pickup_location", "pickup_latitude", "pickup_longitude",
		"dropoff_location", "dropoff_latitude", "dropoff_longitude",
		"hire_date", "hire_time", "return_date", "return_time",
		"passengers_count", "purpose", "notes",
		"distance_km", "base_price", "price_per_km", "km_amount",
		"surcharge_percent", "surcharge_amount", "total_amount",
		"order_status", "payment_status", "payment_method",
	})
}

func pendingOrderRow() *sqlmock.Rows {
	return orderRows().AddRow(
		9, 2, 4,
		"Asha Mrema", "255754123456", "",
		"Posta Mpya", -6.8161, 39.2897,
		"Ubungo", -6.7924, 39.2083,
		"2026-09-05", "09:00", "", "",
		12, "", "",
		"15", "50000", "2000", "30000",
		"15", "12000", "92000",
		"pending", "pending", "",
	)
}

func TestOrderDelete_PendingOnly(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := OrderRepository{DB: db}

	confirmed := orderRows().AddRow(
		9, 2, 4,
		"Asha Mrema", "255754123456", "",
		"Posta Mpya", 0, 0,
		"Ubungo", 0, 0,
		"2026-09-05", "09:00", "", "",
		12, "", "",
		"15", "50000", "2000", "30000",
		"0", "0", "80000",
		"confirmed", "paid", "clickpesa",
	)
	mock.ExpectQuery(`(?s)FROM hire_orders WHERE id=\?`).
		WithArgs(int64(9)).
		WillReturnRows(confirmed)

	if err := repo.Delete(9); !domain.IsConflict(err) {
		t.Fatalf("want conflict for non-pending order, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestOrderDelete_RemovesPending(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := OrderRepository{DB: db}

	mock.ExpectQuery(`(?s)FROM hire_orders WHERE id=\?`).
		WithArgs(int64(9)).
		WillReturnRows(pendingOrderRow())
	mock.ExpectExec(`DELETE FROM hire_orders WHERE id=\?`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(9); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestOrderUpdate_UnknownStatusRejected(t *testing.T) {
	db, _, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := OrderRepository{DB: db}

	bad := "done"
	if err := repo.Update(9, models.OrderUpdate{OrderStatus: &bad}); !domain.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestOrderList_FiltersAndPages(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := OrderRepository{DB: db}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM hire_orders WHERE user_id=\? AND order_status=\?`).
		WithArgs(int64(2), "pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`(?s)FROM hire_orders WHERE user_id=\? AND order_status=\? ORDER BY id DESC LIMIT \? OFFSET \?`).
		WithArgs(int64(2), "pending", 15, 0).
		WillReturnRows(pendingOrderRow())

	orders, total, err := repo.List(2, models.OrderFilter{Status: "pending"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Fatalf("total=%d len=%d", total, len(orders))
	}
	if !orders[0].TotalAmount.Equal(orders[0].KmAmount.Add(orders[0].BasePrice).Add(orders[0].SurchargeAmount)) {
		t.Fatalf("snapshot does not reconcile: %+v", orders[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
