package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Property struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"size:255" json:"name"`
	Slug        string `gorm:"uniqueIndex;size:255" json:"slug"`
	Area        string `gorm:"size:128;index" json:"area"`
	City        string `gorm:"size:128;default:Chandigarh" json:"city"`
	Address     string `gorm:"type:text" json:"address"`
	Description string `gorm:"type:text" json:"description"`

	// boys / girls / coed
	Gender   string `gorm:"size:16" json:"gender"`
	Featured bool   `gorm:"default:false" json:"featured"`

	// JSON arrays of strings. Images holds full public URLs.
	Images    datatypes.JSON `gorm:"column:images" json:"images,omitempty"`
	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`

	RoomTypes []RoomType `gorm:"foreignKey:PropertyID" json:"room_types"`
}
