package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomType is a sharing tier within a property (Single/Double/Triple/Quad).
// AvailableSlots + OccupiedSlots must always equal Beds; only admin inventory
// edits change these counts, never the booking flow.
type RoomType struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PropertyID uint `gorm:"index;column:property_id" json:"property_id"`

	Type string `gorm:"size:32" json:"type"`

	// Monthly rent in whole rupees, GST-inclusive.
	Price int `json:"price"`

	// Refundable security deposit collected at booking.
	Deposit int `json:"deposit"`

	Beds           int `gorm:"column:beds" json:"beds"`
	OccupiedSlots  int `gorm:"column:occupied_slots" json:"occupied_slots"`
	AvailableSlots int `gorm:"column:available_slots" json:"available_slots"`

	Images datatypes.JSON `gorm:"column:images" json:"images,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
