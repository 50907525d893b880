package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau/dinepos-api/internal/domain/entity"
	"github.com/mkamau/dinepos-api/internal/domain/enum"
	domainRepo "github.com/mkamau/dinepos-api/internal/domain/repository"
	"github.com/mkamau/dinepos-api/pkg/apperror"
	"github.com/mkamau/dinepos-api/pkg/money"
)

type fakePaymentRepo struct {
	payments []*entity.Payment
}

func (f *fakePaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakePaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) GetByOrderReference(_ context.Context, ref string) (*entity.Payment, error) {
	for _, p := range f.payments {
		if p.OrderReference == ref {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) List(_ context.Context, _ *domainRepo.PaymentFilterParams) ([]entity.Payment, int64, error) {
	out := make([]entity.Payment, len(f.payments))
	for i, p := range f.payments {
		out[i] = *p
	}
	return out, int64(len(out)), nil
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name       string
		method     enum.PaymentMethod
		amountDue  money.Money
		tendered   money.Money
		wantValid  bool
		wantChange money.Money
		wantErr    bool
	}{
		{
			name:       "cash overpayment yields change",
			method:     enum.PaymentMethodCash,
			amountDue:  2500,
			tendered:   3000,
			wantValid:  true,
			wantChange: 500,
		},
		{
			name:      "cash exact payment",
			method:    enum.PaymentMethodCash,
			amountDue: 2500,
			tendered:  2500,
			wantValid: true,
		},
		{
			name:      "cash underpayment invalid",
			method:    enum.PaymentMethodCash,
			amountDue: 2500,
			tendered:  2000,
			wantValid: false,
		},
		{
			name:      "card must match exactly",
			method:    enum.PaymentMethodCard,
			amountDue: 2500,
			tendered:  2499,
			wantValid: false,
		},
		{
			name:      "card overpayment also invalid",
			method:    enum.PaymentMethodCard,
			amountDue: 2500,
			tendered:  2600,
			wantValid: false,
		},
		{
			name:      "card exact match valid with no change",
			method:    enum.PaymentMethodCard,
			amountDue: 2500,
			tendered:  2500,
			wantValid: true,
		},
		{
			name:      "zero due cash",
			method:    enum.PaymentMethodCash,
			amountDue: 0,
			tendered:  0,
			wantValid: true,
		},
		{
			name:      "negative tendered rejected",
			method:    enum.PaymentMethodCash,
			amountDue: 2500,
			tendered:  -100,
			wantErr:   true,
		},
		{
			name:      "negative amount due rejected",
			method:    enum.PaymentMethodCash,
			amountDue: -2500,
			tendered:  2500,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Reconcile(tt.method, tt.amountDue, tt.tendered)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Reconcile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if rec.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", rec.Valid, tt.wantValid)
			}
			if rec.ChangeDue != tt.wantChange {
				t.Errorf("ChangeDue = %d, want %d", rec.ChangeDue.Cents(), tt.wantChange.Cents())
			}
			if !rec.Valid && rec.Reason == "" {
				t.Error("invalid reconciliation must carry a reason")
			}
		})
	}
}

func TestReconcileErrorKinds(t *testing.T) {
	_, err := Reconcile(enum.PaymentMethodCash, 2500, -1)
	if !apperror.IsKind(err, apperror.KindInvalidTendered) {
		t.Errorf("negative tendered error = %v, want invalid tendered", err)
	}

	_, err = Reconcile(enum.PaymentMethodCash, -1, 2500)
	if !apperror.IsKind(err, apperror.KindInvariantViolation) {
		t.Errorf("negative due error = %v, want invariant violation", err)
	}
}

func TestCaptureCashPayment(t *testing.T) {
	repo := &fakePaymentRepo{}
	svc := NewPaymentService(repo)

	payment, err := svc.Capture(context.Background(), &CaptureInput{
		OrderReference: "1042",
		Method:         enum.PaymentMethodCash,
		AmountDue:      25.00,
		Tendered:       30.00,
		CustomerName:   "Jane",
	})
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}

	if payment.Status != enum.PaymentStatusCaptured {
		t.Errorf("Status = %v, want captured", payment.Status)
	}
	if payment.AmountDue != 2500 || payment.Tendered != 3000 || payment.ChangeDue != 500 {
		t.Errorf("amounts = %d/%d/%d, want 2500/3000/500", payment.AmountDue, payment.Tendered, payment.ChangeDue)
	}
	if len(repo.payments) != 1 {
		t.Errorf("recorded %d payments, want 1", len(repo.payments))
	}
}

func TestCaptureRejectsInvalidReconciliation(t *testing.T) {
	tests := []struct {
		name     string
		method   enum.PaymentMethod
		tendered float64
		wantKind apperror.Kind
	}{
		{name: "card amount mismatch", method: enum.PaymentMethodCard, tendered: 24.99, wantKind: apperror.KindAmountMismatch},
		{name: "cash short", method: enum.PaymentMethodCash, tendered: 20.00, wantKind: apperror.KindInvalidTendered},
		{name: "non-finite tendered", method: enum.PaymentMethodCash, tendered: math.NaN(), wantKind: apperror.KindInvalidTendered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakePaymentRepo{}
			svc := NewPaymentService(repo)

			_, err := svc.Capture(context.Background(), &CaptureInput{
				OrderReference: "1042",
				Method:         tt.method,
				AmountDue:      25.00,
				Tendered:       tt.tendered,
			})
			if !apperror.IsKind(err, tt.wantKind) {
				t.Errorf("Capture() error = %v, want kind %s", err, tt.wantKind)
			}
			if len(repo.payments) != 0 {
				t.Error("rejected capture must not record a payment")
			}
		})
	}
}

func TestPreviewDoesNotPersist(t *testing.T) {
	repo := &fakePaymentRepo{}
	svc := NewPaymentService(repo)

	rec, err := svc.Preview(&PreviewInput{
		Method:    enum.PaymentMethodCash,
		AmountDue: 25.00,
		Tendered:  30.00,
	})
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if !rec.Valid || rec.ChangeDue != 500 {
		t.Errorf("Preview() = %+v, want valid with 500 cents change", rec)
	}
	if len(repo.payments) != 0 {
		t.Error("Preview must not record a payment")
	}
}
