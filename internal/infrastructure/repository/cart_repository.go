package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau/dinepos-api/internal/domain/entity"
	domainRepo "github.com/mkamau/dinepos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *gorm.DB) domainRepo.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *cartRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	var cart entity.Cart
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&cart, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cart, err
}

func (r *cartRepository) GetOpenByTarget(ctx context.Context, target string) (*entity.Cart, error) {
	var cart entity.Cart
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("target = ? AND submitted_at IS NULL", target).
		Order("created_at DESC").
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cart, err
}

func (r *cartRepository) GetByOrderReference(ctx context.Context, orderReference string) (*entity.Cart, error) {
	var cart entity.Cart
	err := r.db.WithContext(ctx).Unscoped().
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped().Order("position ASC")
		}).
		Where("order_reference = ?", orderReference).
		Order("created_at DESC").
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cart, err
}

// Save writes the cart row and replaces its line set in one transaction.
// Replacing is simpler than diffing and keeps line positions authoritative.
func (r *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(cart).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("cart_id = ?", cart.ID).Delete(&entity.CartLine{}).Error; err != nil {
			return err
		}
		if len(cart.Lines) == 0 {
			return nil
		}
		for i := range cart.Lines {
			cart.Lines[i].CartID = cart.ID
			// Reset IDs so the replace insert never collides with the
			// rows deleted above.
			cart.Lines[i].ID = uuid.Nil
		}
		return tx.Create(&cart.Lines).Error
	})
}

func (r *cartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&entity.CartLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Cart{}, "id = ?", id).Error
	})
}

func (r *cartRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("updated_at < ? AND submitted_at IS NULL", cutoff).
		Delete(&entity.Cart{})
	return result.RowsAffected, result.Error
}
