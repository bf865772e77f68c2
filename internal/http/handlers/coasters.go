package handlers

import (
	"net/http"

	"tiketi/internal/domain/models"
	"tiketi/internal/http/middleware"
	"tiketi/internal/repositories"

	"github.com/gin-gonic/gin"
)

type createCoasterRequest struct {
	Name          string `json:"name"`
	PlateNumber   string `json:"plate_number"`
	Capacity      int    `json:"capacity"`
	Model         string `json:"model"`
	Color         string `json:"color"`
	DriverName    string `json:"driver_name"`
	DriverContact string `json:"driver_contact"`
	Features      string `json:"features"`
}

// GET /api/coasters
func ListCoasters(c *gin.Context) {
	repo := repositories.CoasterRepository{}
	coasters, err := repo.List(middleware.GetUserID(c), c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coasters": coasters, "total": len(coasters)})
}

// GET /api/coasters/:id
func GetCoaster(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.CoasterRepository{}
	coaster, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, coaster)
}

// POST /api/coasters
func CreateCoaster(c *gin.Context) {
	var req createCoasterRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.CoasterRepository{}
	id, err := repo.Create(models.Coaster{
		UserID:        middleware.GetUserID(c),
		Name:          req.Name,
		PlateNumber:   req.PlateNumber,
		Capacity:      req.Capacity,
		Model:         req.Model,
		Color:         req.Color,
		DriverName:    req.DriverName,
		DriverContact: req.DriverContact,
		Features:      req.Features,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	coaster, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, coaster)
}

// PUT /api/coasters/:id
func UpdateCoaster(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var upd models.CoasterUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}

	repo := repositories.CoasterRepository{}
	if err := repo.Update(id, upd); err != nil {
		RespondDomainError(c, err)
		return
	}
	coaster, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, coaster)
}

type locationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PUT /api/coasters/:id/location
func UpdateCoasterLocation(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req locationRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.CoasterRepository{}
	if err := repo.UpdateLocation(id, req.Latitude, req.Longitude); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "location updated"})
}

// DELETE /api/coasters/:id
func DeleteCoaster(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.CoasterRepository{}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "coaster deleted"})
}
