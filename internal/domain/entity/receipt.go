package entity

// ReceiptHeader holds the store/business header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing a printable receipt.
// It is NOT a database entity — it is composed from cart and payment data
// when the receipt is requested. Totals flow from the cart; nothing is ever
// read back out of a rendered view.
type Receipt struct {
	Header         ReceiptHeader `json:"header"`
	OrderReference string        `json:"order_reference"`
	Date           string        `json:"date"`
	Target         string        `json:"target,omitempty"`
	Customer       string        `json:"customer,omitempty"`
	PaymentMethod  string        `json:"payment_method,omitempty"`
	Items          []ReceiptItem `json:"items"`
	SubTotal       float64       `json:"sub_total"`
	Tax            float64       `json:"tax"`
	ServiceCharge  float64       `json:"service_charge"`
	Total          float64       `json:"total"`
	Tendered       float64       `json:"tendered"`
	ChangeDue      float64       `json:"change_due"`
}
