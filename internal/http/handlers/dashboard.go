package handlers

import (
	"net/http"
	"time"

	"tiketi/internal/http/middleware"
	"tiketi/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/dashboard
func GetDashboard(c *gin.Context) {
	repo := repositories.ReportRepository{}
	summary, err := repo.GetDashboardSummary(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GET /api/earnings?period=today|week|month|year
func GetEarnings(c *gin.Context) {
	repo := repositories.ReportRepository{}
	report, err := repo.GetEarnings(middleware.GetUserID(c), c.DefaultQuery("period", "month"), time.Now())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/admin/revenue?period=today|week|month|year
func GetPlatformRevenue(c *gin.Context) {
	repo := repositories.ReportRepository{}
	revenue, err := repo.GetPlatformRevenue(c.DefaultQuery("period", "month"), time.Now())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, revenue)
}
