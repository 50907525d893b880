package request

// CreateQRSessionRequest represents a QR table session request
type CreateQRSessionRequest struct {
	Table string `json:"table" binding:"required"`
}
