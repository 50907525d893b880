package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau/dinepos-api/internal/config"
	"github.com/mkamau/dinepos-api/internal/domain/entity"
	"github.com/mkamau/dinepos-api/internal/domain/enum"
	"github.com/mkamau/dinepos-api/internal/domain/repository"
	"github.com/mkamau/dinepos-api/internal/infrastructure/orderapi"
	"github.com/mkamau/dinepos-api/pkg/apperror"
	"github.com/mkamau/dinepos-api/pkg/money"
	"github.com/mkamau/dinepos-api/pkg/qrtoken"
)

// OrderSubmitter sends a normalized order request to the upstream order API.
type OrderSubmitter interface {
	Submit(ctx context.Context, req *entity.OrderRequest) (*orderapi.SubmissionResult, error)
}

// CartService owns the cart lifecycle: creation bound to a target, line
// mutations with menu price snapshots, and submission to the order API.
type CartService struct {
	cartRepo repository.CartRepository
	menuRepo repository.MenuItemRepository
	orderAPI OrderSubmitter
	qrTokens *qrtoken.Manager
	pricing  config.PricingConfig
	cartTTL  time.Duration
}

// NewCartService creates a new cart service
func NewCartService(
	cartRepo repository.CartRepository,
	menuRepo repository.MenuItemRepository,
	orderAPI OrderSubmitter,
	qrTokens *qrtoken.Manager,
	pricing config.PricingConfig,
	cartTTL time.Duration,
) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		menuRepo: menuRepo,
		orderAPI: orderAPI,
		qrTokens: qrTokens,
		pricing:  pricing,
		cartTTL:  cartTTL,
	}
}

// CreateCartInput represents the create cart input
type CreateCartInput struct {
	Target    string
	OrderType enum.OrderType
	QRToken   string
}

// CreateCart opens a cart bound to a target. For QR orders the target comes
// from the verified session token, not the request body. Creating a cart for
// a target that already has an open one returns the existing cart, which is
// how a reloaded client picks its order back up.
func (s *CartService) CreateCart(ctx context.Context, input *CreateCartInput) (*entity.Cart, error) {
	target := input.Target

	if input.OrderType == enum.OrderTypeQR {
		if input.QRToken == "" {
			return nil, apperror.NewBadRequestError("QR session token is required for QR orders")
		}
		claims, err := s.qrTokens.Verify(input.QRToken)
		if err != nil {
			return nil, apperror.NewBadRequestError("Invalid or expired QR session token")
		}
		target = claims.Table
	}

	if target == "" {
		return nil, apperror.NewBadRequestError("Target is required")
	}

	existing, err := s.cartRepo.GetOpenByTarget(ctx, target)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if expired, err := s.discardIfExpired(ctx, existing); err != nil {
			return nil, err
		} else if !expired {
			return existing, nil
		}
	}

	cart := &entity.Cart{
		Target:            target,
		OrderType:         input.OrderType,
		TaxRate:           s.pricing.TaxRate,
		ServiceChargeRate: s.pricing.ServiceChargeRate,
	}
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetCart retrieves a cart by ID. Carts past their TTL are discarded on
// load, never restored.
func (s *CartService) GetCart(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	return s.getOpenCart(ctx, id)
}

// GetOpenCartByTarget returns the open cart for a target.
func (s *CartService) GetOpenCartByTarget(ctx context.Context, target string) (*entity.Cart, error) {
	cart, err := s.cartRepo.GetOpenByTarget(ctx, target)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperror.NewNotFoundError("Cart")
	}
	if expired, err := s.discardIfExpired(ctx, cart); err != nil {
		return nil, err
	} else if expired {
		return nil, apperror.NewNotFoundError("Cart")
	}
	return cart, nil
}

// AddItemInput represents an add-to-cart input
type AddItemInput struct {
	ItemID       uuid.UUID
	Quantity     float64
	Instructions string
}

// AddItem snapshots the menu item's current name and price into the cart.
// Countable items take whole quantities only; weight-based items accept
// fractions.
func (s *CartService) AddItem(ctx context.Context, cartID uuid.UUID, input *AddItemInput) (*entity.Cart, error) {
	cart, err := s.getOpenCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	item, err := s.menuRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	if !item.Available {
		return nil, apperror.NewConflictError("Menu item is not available")
	}
	if !item.WeightBased && input.Quantity != math.Trunc(input.Quantity) {
		return nil, apperror.NewInvalidQuantityError("quantity must be a whole number for this item")
	}

	if err := cart.AddItem(item.ID, item.Name, money.FromCents(item.Price), input.Quantity, input.Instructions); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateLineInput represents a line update; nil fields are left unchanged.
type UpdateLineInput struct {
	Quantity     *float64
	Instructions *string
}

// UpdateLine sets a line's quantity and/or instructions. A quantity at or
// below zero removes the line.
func (s *CartService) UpdateLine(ctx context.Context, cartID, itemID uuid.UUID, input *UpdateLineInput) (*entity.Cart, error) {
	cart, err := s.getOpenCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if input.Quantity != nil {
		if err := cart.SetQuantity(itemID, *input.Quantity); err != nil {
			return nil, err
		}
	}
	if input.Instructions != nil {
		cart.SetInstructions(itemID, *input.Instructions)
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem removes a line from the cart; removing an absent line is a
// no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (*entity.Cart, error) {
	cart, err := s.getOpenCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(itemID)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart removes every line. The target binding and rates stay.
func (s *CartService) ClearCart(ctx context.Context, cartID uuid.UUID) (*entity.Cart, error) {
	cart, err := s.getOpenCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	cart.Clear()

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SubmitCart normalizes the cart, sends it upstream, and retires the cart
// on success. The adapter does not retry; a timeout propagates so the
// caller can warn before re-submitting.
func (s *CartService) SubmitCart(ctx context.Context, cartID uuid.UUID, customerName, notes string) (*orderapi.SubmissionResult, error) {
	cart, err := s.getOpenCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	req, err := cart.ToOrderRequest(customerName, notes)
	if err != nil {
		return nil, err
	}

	result, err := s.orderAPI.Submit(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cart.SubmittedAt = &now
	cart.OrderReference = result.OrderReference
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	// A submitted cart is done; soft-delete keeps it for receipts.
	if err := s.cartRepo.Delete(ctx, cart.ID); err != nil {
		return nil, err
	}

	return result, nil
}

// SweepExpired discards carts that have outlived the TTL. Wired to a
// background ticker in main.
func (s *CartService) SweepExpired(ctx context.Context) (int64, error) {
	return s.cartRepo.DeleteExpired(ctx, time.Now().Add(-s.cartTTL))
}

func (s *CartService) getOpenCart(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	cart, err := s.cartRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperror.NewNotFoundError("Cart")
	}
	if cart.IsSubmitted() {
		return nil, apperror.NewConflictError("Cart has already been submitted")
	}
	if expired, err := s.discardIfExpired(ctx, cart); err != nil {
		return nil, err
	} else if expired {
		return nil, apperror.NewNotFoundError("Cart")
	}
	return cart, nil
}

func (s *CartService) discardIfExpired(ctx context.Context, cart *entity.Cart) (bool, error) {
	if cart.IsSubmitted() || time.Since(cart.UpdatedAt) <= s.cartTTL {
		return false, nil
	}
	if err := s.cartRepo.Delete(ctx, cart.ID); err != nil {
		return false, err
	}
	return true, nil
}
