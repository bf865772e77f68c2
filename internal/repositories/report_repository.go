package repositories

import (
	"database/sql"
	"time"

	intconfig "tiketi/internal/config"
	"tiketi/internal/domain/models"
	"tiketi/internal/utils"

	"github.com/shopspring/decimal"
)

type ReportRepository struct {
	DB *sql.DB
}

func (r ReportRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// DashboardSummary is the owner's home screen in one query round trip per
// figure.
type DashboardSummary struct {
	TotalCoasters     int             `json:"total_coasters"`
	AvailableCoasters int             `json:"available_coasters"`
	OnHireCoasters    int             `json:"on_hire_coasters"`
	TotalOrders       int             `json:"total_orders"`
	PendingOrders     int             `json:"pending_orders"`
	CompletedOrders   int             `json:"completed_orders"`
	TodayOrders       int             `json:"today_orders"`
	TotalEarnings     decimal.Decimal `json:"total_earnings"`
	TodayEarnings     decimal.Decimal `json:"today_earnings"`
	MonthEarnings     decimal.Decimal `json:"month_earnings"`
}

func (r ReportRepository) GetDashboardSummary(userID int64) (DashboardSummary, error) {
	var s DashboardSummary
	db := r.db()

	err := db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(status='available'),0),
		       COALESCE(SUM(status='on_hire'),0)
		FROM coasters WHERE user_id=?`, userID).
		Scan(&s.TotalCoasters, &s.AvailableCoasters, &s.OnHireCoasters)
	if err != nil {
		return s, err
	}

	err = db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(order_status='pending'),0),
		       COALESCE(SUM(order_status='completed'),0),
		       COALESCE(SUM(CASE WHEN payment_status='paid' THEN total_amount ELSE 0 END),0)
		FROM hire_orders WHERE user_id=?`, userID).
		Scan(&s.TotalOrders, &s.PendingOrders, &s.CompletedOrders, &s.TotalEarnings)
	if err != nil {
		return s, err
	}

	dayFrom, dayTo, _ := utils.PeriodRange("today", time.Now())
	err = db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN payment_status='paid' THEN total_amount ELSE 0 END),0)
		FROM hire_orders
		WHERE user_id=? AND created_at BETWEEN ? AND ?`,
		userID, dayFrom, dayTo).Scan(&s.TodayOrders, &s.TodayEarnings)
	if err != nil {
		return s, err
	}

	from, to, _ := utils.PeriodRange("month", time.Now())
	err = db.QueryRow(`
		SELECT COALESCE(SUM(total_amount),0)
		FROM hire_orders
		WHERE user_id=? AND payment_status='paid' AND created_at BETWEEN ? AND ?`,
		userID, from, to).Scan(&s.MonthEarnings)
	return s, err
}

// EarningsRow is one order line in the earnings report.
type EarningsRow struct {
	OrderID      int64           `json:"order_id"`
	CoasterName  string          `json:"coaster_name"`
	CustomerName string          `json:"customer_name"`
	HireDate     string          `json:"hire_date"`
	DistanceKm   decimal.Decimal `json:"distance_km"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// EarningsReport aggregates paid orders over one period.
type EarningsReport struct {
	Period        string          `json:"period"`
	From          string          `json:"from"`
	To            string          `json:"to"`
	Count         int             `json:"count"`
	Total         decimal.Decimal `json:"total"`
	TotalDistance decimal.Decimal `json:"total_distance_km"`
	Rows          []EarningsRow   `json:"rows"`
}

func (r ReportRepository) GetEarnings(userID int64, period string, now time.Time) (EarningsReport, error) {
	from, to, label := utils.PeriodRange(period, now)
	rep := EarningsReport{
		Period:        label,
		From:          from.Format("2006-01-02"),
		To:            to.Format("2006-01-02"),
		Total:         decimal.Zero,
		TotalDistance: decimal.Zero,
		Rows:          []EarningsRow{},
	}

	rows, err := r.db().Query(`
		SELECT o.id,
		       COALESCE(c.name,''),
		       COALESCE(o.customer_name,''),
		       COALESCE(o.hire_date,''),
		       COALESCE(o.distance_km,0),
		       COALESCE(o.total_amount,0)
		FROM hire_orders o
		LEFT JOIN coasters c ON c.id = o.coaster_id
		WHERE o.user_id=? AND o.payment_status='paid' AND o.created_at BETWEEN ? AND ?
		ORDER BY o.id DESC`, userID, from, to)
	if err != nil {
		return rep, err
	}
	defer rows.Close()

	for rows.Next() {
		var row EarningsRow
		if err := rows.Scan(&row.OrderID, &row.CoasterName, &row.CustomerName, &row.HireDate, &row.DistanceKm, &row.TotalAmount); err != nil {
			return rep, err
		}
		rep.Rows = append(rep.Rows, row)
		rep.Total = rep.Total.Add(row.TotalAmount)
		rep.TotalDistance = rep.TotalDistance.Add(row.DistanceKm)
	}
	rep.Count = len(rep.Rows)
	return rep, rows.Err()
}

// PlatformRevenue sums the settlement ledger for the admin view.
type PlatformRevenue struct {
	SystemShare   decimal.Decimal `json:"system_share"`
	Processing    decimal.Decimal `json:"processing_fees"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
	WalletVAT     decimal.Decimal `json:"wallet_vat"`
}

func (r ReportRepository) GetPlatformRevenue(period string, now time.Time) (PlatformRevenue, error) {
	var p PlatformRevenue
	from, to, _ := utils.PeriodRange(period, now)
	db := r.db()

	err := db.QueryRow(`
		SELECT COALESCE(SUM(balance),0) FROM system_balances
		WHERE created_at BETWEEN ? AND ?`, from, to).Scan(&p.SystemShare)
	if err != nil {
		return p, err
	}
	err = db.QueryRow(`
		SELECT COALESCE(SUM(amount),0) FROM payment_fees
		WHERE created_at BETWEEN ? AND ?`, from, to).Scan(&p.Processing)
	if err != nil {
		return p, err
	}
	err = db.QueryRow(`
		SELECT COALESCE(balance,0), COALESCE(vat,0) FROM admin_wallets WHERE id=? LIMIT 1`,
		models.AdminWalletID).Scan(&p.WalletBalance, &p.WalletVAT)
	if err != nil {
		return p, err
	}
	return p, nil
}
