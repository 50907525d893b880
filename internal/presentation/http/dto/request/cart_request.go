package request

import "github.com/google/uuid"

// CreateCartRequest represents a cart creation request. Target is required
// for waiter and takeout orders; QR orders carry a session token instead and
// the target comes from it.
type CreateCartRequest struct {
	Target    string `json:"target"`
	OrderType string `json:"order_type" binding:"required"`
	QRToken   string `json:"qr_token"`
}

// AddItemRequest represents an add-to-cart request. Quantity defaults to 1
// when omitted; an explicit non-positive quantity is rejected downstream.
type AddItemRequest struct {
	ItemID              uuid.UUID `json:"item_id" binding:"required"`
	Quantity            *float64  `json:"quantity"`
	SpecialInstructions string    `json:"special_instructions"`
}

// UpdateLineRequest represents a cart line update request; omitted fields
// are left unchanged.
type UpdateLineRequest struct {
	Quantity            *float64 `json:"quantity"`
	SpecialInstructions *string  `json:"special_instructions"`
}

// SubmitCartRequest represents a cart submission request
type SubmitCartRequest struct {
	CustomerName string `json:"customer_name"`
	Notes        string `json:"notes"`
}
