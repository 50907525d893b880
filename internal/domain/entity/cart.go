package entity

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau/dinepos-api/internal/domain/enum"
	"github.com/mkamau/dinepos-api/pkg/apperror"
	"github.com/mkamau/dinepos-api/pkg/money"
	"gorm.io/gorm"
)

// Cart is an open order being assembled for a single target (a table or a
// QR session). The target binding and rates are fixed at creation; moving an
// order to another table means starting a new cart.
type Cart struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Target            string         `gorm:"size:100;not null;index" json:"target"`
	OrderType         enum.OrderType `gorm:"size:20;not null" json:"order_type"`
	TaxRate           float64        `gorm:"not null" json:"tax_rate"`
	ServiceChargeRate float64        `gorm:"default:0" json:"service_charge_rate"`
	OrderReference    string         `gorm:"size:100" json:"order_reference,omitempty"`
	SubmittedAt       *time.Time     `json:"submitted_at,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Lines []CartLine `gorm:"foreignKey:CartID" json:"lines"`
}

// BeforeCreate generates a UUID before creating a new cart
func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Cart model
func (Cart) TableName() string {
	return "carts"
}

// CartLine is one orderable item in a cart. Name and unit price are captured
// at add time; later menu edits do not retroactively change an open cart.
type CartLine struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CartID              uuid.UUID      `gorm:"type:uuid;not null;index" json:"cart_id"`
	ItemID              uuid.UUID      `gorm:"type:uuid;not null;index" json:"item_id"`
	Name                string         `gorm:"size:255;not null" json:"name"`
	UnitPrice           int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Quantity            float64        `gorm:"not null" json:"quantity"`
	Position            int            `gorm:"not null" json:"-"`
	SpecialInstructions string         `gorm:"type:text" json:"special_instructions"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (l CartLine) MarshalJSON() ([]byte, error) {
	type Alias CartLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(l),
		UnitPrice: money.FromCents(l.UnitPrice).Float64(),
		LineTotal: l.Total().Float64(),
	})
}

// BeforeCreate generates a UUID before creating a new cart line
func (l *CartLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CartLine model
func (CartLine) TableName() string {
	return "cart_lines"
}

// Total returns unit price times quantity for this line.
func (l *CartLine) Total() money.Money {
	return money.FromCents(l.UnitPrice).MulQty(l.Quantity)
}

// Totals is a computed snapshot of cart pricing. It is derived from the
// lines on every call and never cached.
type Totals struct {
	Subtotal      money.Money
	Tax           money.Money
	ServiceCharge money.Money
	Total         money.Money
	ItemCount     int
}

// MarshalJSON exposes decimal amounts for API responses.
func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Subtotal      float64 `json:"subtotal"`
		Tax           float64 `json:"tax"`
		ServiceCharge float64 `json:"service_charge"`
		Total         float64 `json:"total"`
		ItemCount     int     `json:"item_count"`
	}{
		Subtotal:      t.Subtotal.Float64(),
		Tax:           t.Tax.Float64(),
		ServiceCharge: t.ServiceCharge.Float64(),
		Total:         t.Total.Float64(),
		ItemCount:     t.ItemCount,
	})
}

func validQuantity(qty float64) bool {
	return !math.IsNaN(qty) && !math.IsInf(qty, 0)
}

// AddItem inserts a new line or, when the item is already in the cart,
// increments its quantity. The original add-time name and price win over the
// arguments for an existing line.
func (c *Cart) AddItem(itemID uuid.UUID, name string, unitPrice money.Money, qty float64, instructions string) error {
	if !validQuantity(qty) || qty <= 0 {
		return apperror.NewInvalidQuantityError("quantity must be a positive number")
	}
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines[i].Quantity += qty
			return nil
		}
	}
	c.Lines = append(c.Lines, CartLine{
		CartID:              c.ID,
		ItemID:              itemID,
		Name:                name,
		UnitPrice:           unitPrice.Cents(),
		Quantity:            qty,
		Position:            c.nextPosition(),
		SpecialInstructions: instructions,
	})
	return nil
}

// RemoveItem deletes a line. Removing an item that is not in the cart is a
// no-op.
func (c *Cart) RemoveItem(itemID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// SetQuantity sets a line's quantity directly. A quantity at or below zero
// removes the line. Setting quantity on an absent item is a no-op.
func (c *Cart) SetQuantity(itemID uuid.UUID, qty float64) error {
	if !validQuantity(qty) {
		return apperror.NewInvalidQuantityError("quantity must be a number")
	}
	if qty <= 0 {
		c.RemoveItem(itemID)
		return nil
	}
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines[i].Quantity = qty
			return nil
		}
	}
	return nil
}

// SetInstructions replaces the special instructions on a line.
func (c *Cart) SetInstructions(itemID uuid.UUID, text string) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines[i].SpecialInstructions = text
			return
		}
	}
}

// Clear empties all lines. Rates and the target binding are untouched.
func (c *Cart) Clear() {
	c.Lines = nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// IsSubmitted reports whether the cart has already been sent upstream.
func (c *Cart) IsSubmitted() bool {
	return c.SubmittedAt != nil
}

// Line returns the line for an item, or nil when absent.
func (c *Cart) Line(itemID uuid.UUID) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			return &c.Lines[i]
		}
	}
	return nil
}

// Totals recomputes the pricing snapshot from the current lines.
func (c *Cart) Totals() Totals {
	var subtotal money.Money
	var units float64
	for i := range c.Lines {
		subtotal = subtotal.Add(c.Lines[i].Total())
		units += c.Lines[i].Quantity
	}
	tax := subtotal.PercentOf(c.TaxRate)
	serviceCharge := subtotal.PercentOf(c.ServiceChargeRate)
	return Totals{
		Subtotal:      subtotal,
		Tax:           tax,
		ServiceCharge: serviceCharge,
		Total:         subtotal.Add(tax).Add(serviceCharge),
		ItemCount:     int(math.Round(units)),
	}
}

func (c *Cart) nextPosition() int {
	max := -1
	for i := range c.Lines {
		if c.Lines[i].Position > max {
			max = c.Lines[i].Position
		}
	}
	return max + 1
}

// OrderRequest is the normalized wire shape submitted to the order API.
type OrderRequest struct {
	Table        string             `json:"table"`
	OrderType    enum.OrderType     `json:"order_type"`
	CustomerName string             `json:"customer_name"`
	Notes        string             `json:"notes"`
	Items        []OrderRequestItem `json:"items"`
}

// OrderRequestItem is one line of an order submission.
type OrderRequestItem struct {
	MenuItem            uuid.UUID `json:"menu_item"`
	Quantity            float64   `json:"quantity"`
	SpecialInstructions string    `json:"special_instructions"`
}

// ToOrderRequest normalizes the cart into a submission request. An empty
// cart is rejected; a missing customer name defaults to "Guest".
func (c *Cart) ToOrderRequest(customerName, notes string) (*OrderRequest, error) {
	if c.IsEmpty() {
		return nil, apperror.ErrEmptyCart
	}
	if customerName == "" {
		customerName = "Guest"
	}
	items := make([]OrderRequestItem, len(c.Lines))
	for i := range c.Lines {
		items[i] = OrderRequestItem{
			MenuItem:            c.Lines[i].ItemID,
			Quantity:            c.Lines[i].Quantity,
			SpecialInstructions: c.Lines[i].SpecialInstructions,
		}
	}
	return &OrderRequest{
		Table:        c.Target,
		OrderType:    c.OrderType,
		CustomerName: customerName,
		Notes:        notes,
		Items:        items,
	}, nil
}
