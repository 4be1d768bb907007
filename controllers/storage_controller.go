// controllers/storage_controller.go
package controllers

import (
	"net/http"

	"pgstay-backend/services"
	"pgstay-backend/utils"

	"github.com/gin-gonic/gin"
)

// StorageController exposes the orphaned-image maintenance tools on the admin
// surface.
type StorageController struct {
	ReconcileSvc *services.ReconcileService
}

func NewStorageController(svc *services.ReconcileService) *StorageController {
	return &StorageController{ReconcileSvc: svc}
}

// ListOrphans is the dry run: scan and report, delete nothing.
func (ctrl *StorageController) ListOrphans(c *gin.Context) {
	orphaned, err := ctrl.ReconcileSvc.FindOrphaned(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "storage scan failed: "+err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"count":   len(orphaned),
		"orphans": orphaned,
	})
}

// Cleanup runs the full scan-then-delete pass. Batch failures are reported in
// the summary, not as request errors.
func (ctrl *StorageController) Cleanup(c *gin.Context) {
	summary, err := ctrl.ReconcileSvc.Reconcile(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "storage scan failed: "+err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}
