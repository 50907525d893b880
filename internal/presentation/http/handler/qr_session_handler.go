package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkamau/dinepos-api/internal/presentation/http/dto/request"
	"github.com/mkamau/dinepos-api/internal/presentation/http/dto/response"
	"github.com/mkamau/dinepos-api/pkg/qrtoken"
)

// QRSessionHandler issues table session tokens encoded into QR codes.
type QRSessionHandler struct {
	tokens *qrtoken.Manager
}

// NewQRSessionHandler creates a new QR session handler
func NewQRSessionHandler(tokens *qrtoken.Manager) *QRSessionHandler {
	return &QRSessionHandler{tokens: tokens}
}

// Create handles issuing a session token for a table
func (h *QRSessionHandler) Create(c *gin.Context) {
	var req request.CreateQRSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	token, expiresAt, err := h.tokens.Issue(req.Table)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "QR session created", gin.H{
		"table":      req.Table,
		"token":      token,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})
}
