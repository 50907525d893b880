package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau/dinepos-api/internal/config"
	"github.com/mkamau/dinepos-api/internal/domain/entity"
	"github.com/mkamau/dinepos-api/internal/domain/repository"
	"github.com/mkamau/dinepos-api/pkg/apperror"
	"github.com/mkamau/dinepos-api/pkg/money"
)

// ReceiptService composes printable receipts from a captured payment and
// the submitted cart it settled.
type ReceiptService struct {
	paymentRepo repository.PaymentRepository
	cartRepo    repository.CartRepository
	header      entity.ReceiptHeader
}

// NewReceiptService creates a new receipt service
func NewReceiptService(paymentRepo repository.PaymentRepository, cartRepo repository.CartRepository, store config.StoreConfig) *ReceiptService {
	return &ReceiptService{
		paymentRepo: paymentRepo,
		cartRepo:    cartRepo,
		header: entity.ReceiptHeader{
			StoreName: store.Name,
			Address:   store.Address,
			Phone:     store.Phone,
			TaxID:     store.TaxID,
		},
	}
}

// BuildReceipt composes the receipt for a captured payment. Line items come
// from the retired cart when it can still be found; the money figures always
// come from the payment record.
func (s *ReceiptService) BuildReceipt(ctx context.Context, paymentID uuid.UUID) (*entity.Receipt, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}

	receipt := &entity.Receipt{
		Header:         s.header,
		OrderReference: payment.OrderReference,
		Date:           payment.CreatedAt.Format(time.RFC3339),
		Customer:       payment.CustomerName,
		PaymentMethod:  payment.Method.String(),
		Items:          []entity.ReceiptItem{},
		Total:          money.FromCents(payment.AmountDue).Float64(),
		Tendered:       money.FromCents(payment.Tendered).Float64(),
		ChangeDue:      money.FromCents(payment.ChangeDue).Float64(),
	}

	cart, err := s.cartRepo.GetByOrderReference(ctx, payment.OrderReference)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		receipt.Target = cart.Target
		totals := cart.Totals()
		receipt.SubTotal = totals.Subtotal.Float64()
		receipt.Tax = totals.Tax.Float64()
		receipt.ServiceCharge = totals.ServiceCharge.Float64()
		for _, line := range cart.Lines {
			unit := money.FromCents(line.UnitPrice)
			receipt.Items = append(receipt.Items, entity.ReceiptItem{
				Name:      line.Name,
				Quantity:  line.Quantity,
				UnitPrice: unit.Float64(),
				Total:     unit.MulQty(line.Quantity).Float64(),
			})
		}
	}

	return receipt, nil
}
