package models

import (
	"time"

	"gorm.io/gorm"
)

// VisitRequest is a contact / visit-scheduling enquiry from the public site.
type VisitRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:255" json:"name"`
	Email string `gorm:"size:255" json:"email"`
	Phone string `gorm:"size:32" json:"phone"`

	PropertyID *uint `gorm:"index;column:property_id" json:"property_id,omitempty"`

	PreferredDate *time.Time `gorm:"column:preferred_date" json:"preferred_date,omitempty"`
	Message       string     `gorm:"type:text" json:"message"`

	// new / contacted
	Status string `gorm:"size:32;default:new" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Property *Property `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
}
