// services/visit_service.go
package services

import (
	"errors"
	"fmt"
	"log"

	"pgstay-backend/models"
	"pgstay-backend/utils"

	"gorm.io/gorm"
)

var ErrVisitNotFound = errors.New("visit_request_not_found")

// VisitService stores contact / visit-scheduling enquiries and notifies the
// office mailbox.
type VisitService struct {
	DB *gorm.DB
}

func NewVisitService(db *gorm.DB) *VisitService {
	return &VisitService{DB: db}
}

func (s *VisitService) Create(visit models.VisitRequest) (models.VisitRequest, error) {
	if visit.PropertyID != nil {
		var property models.Property
		if err := s.DB.First(&property, *visit.PropertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.VisitRequest{}, ErrPropertyNotFound
			}
			return models.VisitRequest{}, fmt.Errorf("load property: %w", err)
		}
		visit.Property = &property
	}

	visit.Status = "new"
	if err := s.DB.Create(&visit).Error; err != nil {
		return models.VisitRequest{}, fmt.Errorf("create visit request: %w", err)
	}

	propertyName := ""
	if visit.Property != nil {
		propertyName = visit.Property.Name
	}
	if err := utils.SendVisitNotificationEmail(visit.Name, visit.Email, visit.Phone, propertyName, visit.Message, visit.PreferredDate); err != nil {
		log.Printf("warning: visit notification email failed: %v", err)
	}

	return visit, nil
}

func (s *VisitService) List() ([]models.VisitRequest, error) {
	var visits []models.VisitRequest
	err := s.DB.Preload("Property").Order("id DESC").Find(&visits).Error
	return visits, err
}

func (s *VisitService) UpdateStatus(id uint, status string) (models.VisitRequest, error) {
	var visit models.VisitRequest
	if err := s.DB.First(&visit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.VisitRequest{}, ErrVisitNotFound
		}
		return models.VisitRequest{}, fmt.Errorf("load visit request: %w", err)
	}

	if err := s.DB.Model(&visit).Update("status", status).Error; err != nil {
		return models.VisitRequest{}, fmt.Errorf("update visit request: %w", err)
	}
	visit.Status = status
	return visit, nil
}
