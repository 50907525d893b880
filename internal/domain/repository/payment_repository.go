package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau/dinepos-api/internal/domain/entity"
	"github.com/mkamau/dinepos-api/internal/domain/enum"
	"github.com/mkamau/dinepos-api/pkg/pagination"
)

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination     *pagination.PaginationParams
	OrderReference string
	Method         *enum.PaymentMethod
	StartDate      *time.Time
	EndDate        *time.Time
	SortBy         string
	SortOrder      string
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	GetByOrderReference(ctx context.Context, orderReference string) (*entity.Payment, error)
	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)
}
