package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/mkamau/dinepos-api/internal/domain/entity"
	"github.com/mkamau/dinepos-api/internal/domain/enum"
	"github.com/mkamau/dinepos-api/internal/domain/repository"
	"github.com/mkamau/dinepos-api/pkg/apperror"
	"github.com/mkamau/dinepos-api/pkg/money"
	"github.com/mkamau/dinepos-api/pkg/pagination"
)

// Reconciliation is the outcome of checking a tendered amount against an
// amount due.
type Reconciliation struct {
	Valid     bool        `json:"valid"`
	ChangeDue money.Money `json:"-"`
	Reason    string      `json:"reason,omitempty"`
}

// MarshalJSON exposes change due as a decimal amount.
func (r Reconciliation) MarshalJSON() ([]byte, error) {
	type alias Reconciliation
	return json.Marshal(struct {
		alias
		ChangeDue float64 `json:"change_due"`
	}{
		alias:     alias(r),
		ChangeDue: r.ChangeDue.Float64(),
	})
}

// PaymentService reconciles tendered amounts against amounts due and
// records captured payments.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repository.PaymentRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

// Reconcile checks a tendered amount against an amount due. Cash accepts
// overpayment and returns the difference as change; every other method
// requires an exact match and never produces change.
func Reconcile(method enum.PaymentMethod, amountDue, tendered money.Money) (*Reconciliation, error) {
	if amountDue.IsNegative() {
		return nil, apperror.NewInvariantViolationError("amount due cannot be negative")
	}
	if tendered.IsNegative() {
		return nil, apperror.NewInvalidTenderedError("tendered amount cannot be negative")
	}

	if method.IsCash() {
		if tendered < amountDue {
			return &Reconciliation{Valid: false, Reason: "insufficient amount tendered"}, nil
		}
		return &Reconciliation{Valid: true, ChangeDue: tendered.Sub(amountDue)}, nil
	}

	if tendered != amountDue {
		return &Reconciliation{Valid: false, Reason: "amount mismatch"}, nil
	}
	return &Reconciliation{Valid: true}, nil
}

// PreviewInput represents a reconciliation preview input
type PreviewInput struct {
	Method    enum.PaymentMethod
	AmountDue float64
	Tendered  float64
}

// Preview runs reconciliation without recording anything.
func (s *PaymentService) Preview(input *PreviewInput) (*Reconciliation, error) {
	amountDue, err := parseAmountDue(input.AmountDue)
	if err != nil {
		return nil, err
	}
	tendered, err := parseTendered(input.Tendered)
	if err != nil {
		return nil, err
	}
	return Reconcile(input.Method, amountDue, tendered)
}

// CaptureInput represents a payment capture input
type CaptureInput struct {
	OrderReference string
	Method         enum.PaymentMethod
	AmountDue      float64
	Tendered       float64
	CustomerName   string
	Notes          string
}

// Capture reconciles and, when valid, records the payment against the
// submitted order. An invalid reconciliation is rejected, not recorded.
func (s *PaymentService) Capture(ctx context.Context, input *CaptureInput) (*entity.Payment, error) {
	amountDue, err := parseAmountDue(input.AmountDue)
	if err != nil {
		return nil, err
	}
	tendered, err := parseTendered(input.Tendered)
	if err != nil {
		return nil, err
	}

	rec, err := Reconcile(input.Method, amountDue, tendered)
	if err != nil {
		return nil, err
	}
	if !rec.Valid {
		if input.Method.IsCash() {
			return nil, apperror.NewInvalidTenderedError(rec.Reason)
		}
		return nil, apperror.NewAmountMismatchError(rec.Reason)
	}

	payment := &entity.Payment{
		OrderReference: input.OrderReference,
		Method:         input.Method,
		Status:         enum.PaymentStatusCaptured,
		AmountDue:      amountDue.Cents(),
		Tendered:       tendered.Cents(),
		ChangeDue:      rec.ChangeDue.Cents(),
		CustomerName:   input.CustomerName,
		Notes:          input.Notes,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPayments retrieves payments with filtering and pagination
func (s *PaymentService) ListPayments(ctx context.Context, params *repository.PaymentFilterParams) (*pagination.PaginatedResult[entity.Payment], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(
		payments,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total),
	), nil
}

// parseAmountDue validates an amount due. A negative amount due means the
// caller's totals are corrupt, which is an invariant violation rather than
// bad user input.
func parseAmountDue(amount float64) (money.Money, error) {
	m, err := money.Parse(amount)
	if err != nil {
		if amount < 0 {
			return 0, apperror.NewInvariantViolationError("amount due cannot be negative")
		}
		return 0, err
	}
	return m, nil
}

// parseTendered validates a tendered amount, keeping the tendered-specific
// error kind rather than the generic amount one.
func parseTendered(amount float64) (money.Money, error) {
	m, err := money.Parse(amount)
	if err != nil {
		if appErr := apperror.GetAppError(err); appErr != nil {
			return 0, apperror.NewInvalidTenderedError(appErr.Message)
		}
		return 0, err
	}
	return m, nil
}
