package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mkamau/dinepos-api/internal/domain/entity"
)

// cartWithTotals pairs a cart with its recomputed totals. Totals are never
// stored, so every response derives them fresh from the lines.
func cartWithTotals(cart *entity.Cart) gin.H {
	return gin.H{
		"cart":   cart,
		"totals": cart.Totals(),
	}
}
