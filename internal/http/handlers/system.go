package handlers

import (
	"net/http"
	"sync"

	intconfig "tiketi/internal/config"
	intdb "tiketi/internal/db"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "tiketi backend running"})
}

func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not connected: " + err.Error()})
		return
	}
	var count int
	err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed: " + err.Error()})
		return
	}

	missing := []string{}
	for _, table := range []string{
		"bookings", "buses", "campanies", "venders",
		"admin_wallets", "system_balances", "payment_fees", "bimas",
		"coasters", "coaster_pricing", "hire_orders",
	} {
		if !intdb.HasTable(intconfig.DB, table) {
			missing = append(missing, table)
		}
	}

	missingColumns := []string{}
	for col, pair := range map[string][2]string{
		"bookings.cancellation_credit": {"bookings", "cancellation_credit"},
		"admin_wallets.vat":            {"admin_wallets", "vat"},
	} {
		if !intdb.HasColumn(intconfig.DB, pair[0], pair[1]) {
			missingColumns = append(missingColumns, col)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "database connection OK",
		"users_in_db":     count,
		"missing_tables":  missing,
		"missing_columns": missingColumns,
	})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
