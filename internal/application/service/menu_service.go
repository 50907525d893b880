package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mkamau/dinepos-api/internal/domain/entity"
	"github.com/mkamau/dinepos-api/internal/domain/repository"
	"github.com/mkamau/dinepos-api/pkg/apperror"
	"github.com/mkamau/dinepos-api/pkg/money"
	"github.com/mkamau/dinepos-api/pkg/pagination"
)

// MenuService manages the menu catalogue carts snapshot prices from.
type MenuService struct {
	menuRepo repository.MenuItemRepository
}

// NewMenuService creates a new menu service
func NewMenuService(menuRepo repository.MenuItemRepository) *MenuService {
	return &MenuService{menuRepo: menuRepo}
}

// CreateMenuItemInput represents the menu item creation input
type CreateMenuItemInput struct {
	Name        string
	Category    string
	Price       float64
	Description *string
	Available   bool
	WeightBased bool
}

// CreateMenuItem creates a new menu item
func (s *MenuService) CreateMenuItem(ctx context.Context, input *CreateMenuItemInput) (*entity.MenuItem, error) {
	price, err := money.Parse(input.Price)
	if err != nil {
		return nil, err
	}

	item := &entity.MenuItem{
		Name:        input.Name,
		Category:    input.Category,
		Price:       price.Cents(),
		Description: input.Description,
		Available:   input.Available,
		WeightBased: input.WeightBased,
	}
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetMenuItem retrieves a menu item by ID
func (s *MenuService) GetMenuItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}

// UpdateMenuItemInput represents the menu item update input; nil fields are
// left unchanged.
type UpdateMenuItemInput struct {
	Name        *string
	Category    *string
	Price       *float64
	Description *string
	Available   *bool
	WeightBased *bool
}

// UpdateMenuItem updates a menu item. Price changes never touch lines
// already in carts; those keep their add-time snapshot.
func (s *MenuService) UpdateMenuItem(ctx context.Context, id uuid.UUID, input *UpdateMenuItemInput) (*entity.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Price != nil {
		price, err := money.Parse(*input.Price)
		if err != nil {
			return nil, err
		}
		item.Price = price.Cents()
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.Available != nil {
		item.Available = *input.Available
	}
	if input.WeightBased != nil {
		item.WeightBased = *input.WeightBased
	}

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteMenuItem deletes a menu item
func (s *MenuService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Menu item")
	}
	return s.menuRepo.Delete(ctx, id)
}

// ListMenuItems retrieves menu items with filtering and pagination
func (s *MenuService) ListMenuItems(ctx context.Context, params *repository.MenuItemFilterParams) (*pagination.PaginatedResult[entity.MenuItem], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	items, total, err := s.menuRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(
		items,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total),
	), nil
}
