// controllers/property_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"pgstay-backend/models"
	"pgstay-backend/services"
	"pgstay-backend/utils"

	"github.com/gin-gonic/gin"
)

type PropertyController struct {
	PropertySvc *services.PropertyService
}

func NewPropertyController(svc *services.PropertyService) *PropertyController {
	return &PropertyController{PropertySvc: svc}
}

func (ctrl *PropertyController) ListProperties(c *gin.Context) {
	filter := services.PropertyFilter{
		Area:   c.Query("area"),
		Gender: c.Query("gender"),
	}
	if raw := c.Query("featured"); raw != "" {
		featured := raw == "true" || raw == "1"
		filter.Featured = &featured
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if price, err := strconv.Atoi(raw); err == nil {
			filter.MaxPrice = price
		}
	}

	properties, err := ctrl.PropertySvc.List(filter)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list properties")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, properties)
}

func (ctrl *PropertyController) GetProperty(c *gin.Context) {
	idOrSlug := c.Param("id")

	var property models.Property
	var err error
	if id, parseErr := strconv.ParseUint(idOrSlug, 10, 64); parseErr == nil {
		property, err = ctrl.PropertySvc.GetByID(uint(id))
	} else {
		property, err = ctrl.PropertySvc.GetBySlug(idOrSlug)
	}

	if err != nil {
		respondPropertyError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, property)
}

func (ctrl *PropertyController) CreateProperty(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	created, err := ctrl.PropertySvc.Create(property)
	if err != nil {
		respondPropertyError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (ctrl *PropertyController) UpdateProperty(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid property id")
		return
	}

	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	updated, err := ctrl.PropertySvc.Update(uint(id), property)
	if err != nil {
		respondPropertyError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, updated)
}

func (ctrl *PropertyController) DeleteProperty(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid property id")
		return
	}

	if err := ctrl.PropertySvc.Delete(c.Request.Context(), uint(id)); err != nil {
		respondPropertyError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "property deleted"})
}

func respondPropertyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPropertyNotFound):
		utils.JSONError(c, http.StatusNotFound, "property not found")
	case errors.Is(err, services.ErrSlotInvariant):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error")
	}
}
