package request

// PreviewPaymentRequest represents a reconciliation preview request
type PreviewPaymentRequest struct {
	Method    string  `json:"method" binding:"required"`
	AmountDue float64 `json:"amount_due"`
	Tendered  float64 `json:"tendered"`
}

// CapturePaymentRequest represents a payment capture request.
// cash_received is only meaningful for cash; other methods settle the exact
// amount, so it defaults to amount when omitted.
type CapturePaymentRequest struct {
	OrderID       string   `json:"order_id" binding:"required"`
	PaymentMethod string   `json:"payment_method" binding:"required"`
	Amount        float64  `json:"amount"`
	CashReceived  *float64 `json:"cash_received"`
	CustomerName  string   `json:"customer_name"`
	Notes         string   `json:"notes"`
}

// PaymentFilterRequest represents payment filter parameters
type PaymentFilterRequest struct {
	OrderReference string `form:"order_reference"`
	Method         string `form:"method"`
	StartDate      string `form:"start_date"`
	EndDate        string `form:"end_date"`
	SortBy         string `form:"sort_by"`
	SortOrder      string `form:"sort_order"`
	Page           int    `form:"page"`
	PerPage        int    `form:"per_page"`
}
