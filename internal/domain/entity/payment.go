package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau/dinepos-api/internal/domain/enum"
	"github.com/mkamau/dinepos-api/pkg/money"
	"gorm.io/gorm"
)

// Payment is a reconciled payment recorded against a submitted order. The
// amount due is a snapshot taken when the bill was selected; the order API
// remains the source of truth and re-validates on its side.
type Payment struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderReference string             `gorm:"size:100;not null;index" json:"order_reference"`
	Method         enum.PaymentMethod `gorm:"size:20;not null" json:"method"`
	Status         enum.PaymentStatus `gorm:"default:0" json:"status"`
	AmountDue      int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Tendered       int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	ChangeDue      int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CustomerName   string             `gorm:"size:100" json:"customer_name"`
	Notes          string             `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		AmountDue float64 `json:"amount_due"`
		Tendered  float64 `json:"tendered"`
		ChangeDue float64 `json:"change_due"`
	}{
		Alias:     Alias(p),
		AmountDue: money.FromCents(p.AmountDue).Float64(),
		Tendered:  money.FromCents(p.Tendered).Float64(),
		ChangeDue: money.FromCents(p.ChangeDue).Float64(),
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
