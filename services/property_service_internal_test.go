package services

import (
	"testing"

	"pgstay-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCheckSlotInvariant(t *testing.T) {
	tests := []struct {
		name      string
		roomTypes []models.RoomType
		wantErr   bool
	}{
		{
			"consistent counts",
			[]models.RoomType{{Type: "Double", Beds: 12, OccupiedSlots: 5, AvailableSlots: 7}},
			false,
		},
		{
			"counts do not add up",
			[]models.RoomType{{Type: "Double", Beds: 12, OccupiedSlots: 5, AvailableSlots: 6}},
			true,
		},
		{
			"negative available",
			[]models.RoomType{{Type: "Single", Beds: 2, OccupiedSlots: 3, AvailableSlots: -1}},
			true,
		},
		{
			"empty list fine",
			nil,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkSlotInvariant(tt.roomTypes)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSlotInvariant)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "sunrise-residency", slugify("Sunrise Residency"))
	assert.Equal(t, "green-valley-girls-pg", slugify("  Green   Valley Girls PG "))
	assert.Equal(t, "sector-15-pg", slugify("Sector 15 PG!"))
}
