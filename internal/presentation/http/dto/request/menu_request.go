package request

// CreateMenuItemRequest represents a menu item creation request
type CreateMenuItemRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	Category    string  `json:"category" binding:"omitempty,max=100"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	WeightBased bool    `json:"weight_based"`
}

// UpdateMenuItemRequest represents a menu item update request
type UpdateMenuItemRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Category    *string  `json:"category" binding:"omitempty,max=100"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Available   *bool    `json:"available"`
	WeightBased *bool    `json:"weight_based"`
}

// MenuItemFilterRequest represents menu item filter parameters
type MenuItemFilterRequest struct {
	Search        string `form:"search"`
	Category      string `form:"category"`
	AvailableOnly bool   `form:"available_only"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}
