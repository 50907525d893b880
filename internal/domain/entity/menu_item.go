package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau/dinepos-api/pkg/money"
	"gorm.io/gorm"
)

// MenuItem represents a sellable item on the menu. Prices are snapshotted
// into cart lines at add time, so editing an item only affects new adds.
type MenuItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Category    string         `gorm:"size:100;index" json:"category"`
	Price       int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	Available   bool           `gorm:"default:true" json:"available"`
	WeightBased bool           `gorm:"default:false" json:"weight_based"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (m MenuItem) MarshalJSON() ([]byte, error) {
	type Alias MenuItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(m),
		Price: money.FromCents(m.Price).Float64(),
	})
}

// BeforeCreate generates a UUID before creating a new menu item
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}
