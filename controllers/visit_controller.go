// controllers/visit_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pgstay-backend/models"
	"pgstay-backend/services"
	"pgstay-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateVisitRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	PropertyID    *uint  `json:"propertyId,omitempty"`
	PreferredDate string `json:"preferredDate,omitempty"` // YYYY-MM-DD
	Message       string `json:"message"`
}

type UpdateVisitRequest struct {
	Status string `json:"status" binding:"required"`
}

type VisitController struct {
	VisitSvc *services.VisitService
}

func NewVisitController(svc *services.VisitService) *VisitController {
	return &VisitController{VisitSvc: svc}
}

func (ctrl *VisitController) CreateVisit(c *gin.Context) {
	var req CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	visit := models.VisitRequest{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		PropertyID: req.PropertyID,
		Message:    req.Message,
	}
	if req.PreferredDate != "" {
		when, err := time.Parse("2006-01-02", req.PreferredDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "preferredDate must be YYYY-MM-DD")
			return
		}
		visit.PreferredDate = &when
	}

	created, err := ctrl.VisitSvc.Create(visit)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			utils.JSONError(c, http.StatusNotFound, "property not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to save visit request")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (ctrl *VisitController) ListVisits(c *gin.Context) {
	visits, err := ctrl.VisitSvc.List()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list visit requests")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, visits)
}

func (ctrl *VisitController) UpdateVisit(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid visit id")
		return
	}

	var req UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}
	if req.Status != "new" && req.Status != "contacted" {
		utils.JSONError(c, http.StatusBadRequest, "status must be new or contacted")
		return
	}

	visit, err := ctrl.VisitSvc.UpdateStatus(uint(id), req.Status)
	if err != nil {
		if errors.Is(err, services.ErrVisitNotFound) {
			utils.JSONError(c, http.StatusNotFound, "visit request not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update visit request")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, visit)
}
