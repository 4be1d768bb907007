// services/property_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"pgstay-backend/models"

	"gorm.io/gorm"
)

// PropertyService handles the public browse surface and the admin CRUD.
type PropertyService struct {
	DB        *gorm.DB
	Reconcile *ReconcileService
}

func NewPropertyService(db *gorm.DB, reconcile *ReconcileService) *PropertyService {
	return &PropertyService{DB: db, Reconcile: reconcile}
}

// PropertyFilter narrows the public listing.
type PropertyFilter struct {
	Area     string
	Gender   string
	Featured *bool
	MaxPrice int
}

func (s *PropertyService) List(filter PropertyFilter) ([]models.Property, error) {
	q := s.DB.Preload("RoomTypes")

	if filter.Area != "" {
		q = q.Where("area = ?", filter.Area)
	}
	if filter.Gender != "" {
		q = q.Where("gender = ?", filter.Gender)
	}
	if filter.Featured != nil {
		q = q.Where("featured = ?", *filter.Featured)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("id IN (?)", s.DB.Model(&models.RoomType{}).
			Select("property_id").Where("price <= ?", filter.MaxPrice))
	}

	var properties []models.Property
	err := q.Order("featured DESC, id ASC").Find(&properties).Error
	return properties, err
}

func (s *PropertyService) GetByID(id uint) (models.Property, error) {
	var property models.Property
	err := s.DB.Preload("RoomTypes").First(&property, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Property{}, ErrPropertyNotFound
		}
		return models.Property{}, fmt.Errorf("load property: %w", err)
	}
	return property, nil
}

func (s *PropertyService) GetBySlug(slug string) (models.Property, error) {
	var property models.Property
	err := s.DB.Preload("RoomTypes").Where("slug = ?", slug).First(&property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Property{}, ErrPropertyNotFound
		}
		return models.Property{}, fmt.Errorf("load property: %w", err)
	}
	return property, nil
}

// Create persists a property after checking the slot invariant on every room
// type. The slug falls back to a normalized name.
func (s *PropertyService) Create(property models.Property) (models.Property, error) {
	if err := checkSlotInvariant(property.RoomTypes); err != nil {
		return models.Property{}, err
	}
	if property.Slug == "" {
		property.Slug = slugify(property.Name)
	}
	if err := s.DB.Create(&property).Error; err != nil {
		return models.Property{}, fmt.Errorf("create property: %w", err)
	}
	return property, nil
}

// Update replaces the property's fields and room types. Room-type rows are
// upserted by ID; the slot invariant is re-checked.
func (s *PropertyService) Update(id uint, updated models.Property) (models.Property, error) {
	if err := checkSlotInvariant(updated.RoomTypes); err != nil {
		return models.Property{}, err
	}

	existing, err := s.GetByID(id)
	if err != nil {
		return models.Property{}, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		updated.ID = existing.ID
		if err := tx.Omit("RoomTypes").Model(&existing).Updates(map[string]interface{}{
			"name":        updated.Name,
			"area":        updated.Area,
			"city":        updated.City,
			"address":     updated.Address,
			"description": updated.Description,
			"gender":      updated.Gender,
			"featured":    updated.Featured,
			"images":      updated.Images,
			"amenities":   updated.Amenities,
		}).Error; err != nil {
			return err
		}

		for i := range updated.RoomTypes {
			updated.RoomTypes[i].PropertyID = existing.ID
			if err := tx.Save(&updated.RoomTypes[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Property{}, fmt.Errorf("update property: %w", err)
	}

	return s.GetByID(id)
}

// Delete removes the property and eagerly cleans its images out of storage
// rather than waiting for the next orphan scan. Storage failures only log;
// the record delete is what matters.
func (s *PropertyService) Delete(ctx context.Context, id uint) error {
	property, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&models.RoomType{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Property{}, id).Error
	}); err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	if s.Reconcile != nil {
		summary := s.Reconcile.DeletePropertyImages(ctx, property)
		if summary.Failed > 0 {
			log.Printf("warning: property %d image cleanup: %d of %d deletions failed", id, summary.Failed, summary.Total)
		}
	}
	return nil
}

func checkSlotInvariant(roomTypes []models.RoomType) error {
	for i := range roomTypes {
		rt := &roomTypes[i]
		if rt.AvailableSlots < 0 || rt.OccupiedSlots < 0 {
			return fmt.Errorf("%w: %s has negative slot counts", ErrSlotInvariant, rt.Type)
		}
		if rt.AvailableSlots+rt.OccupiedSlots != rt.Beds {
			return fmt.Errorf("%w: %s has %d+%d slots over %d beds",
				ErrSlotInvariant, rt.Type, rt.AvailableSlots, rt.OccupiedSlots, rt.Beds)
		}
	}
	return nil
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, slug)
}
