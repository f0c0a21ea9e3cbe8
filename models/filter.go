package models

import "time"

// SavedFilter represents a saved filter configuration for a specific resource type
type SavedFilter struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	UserID       string    `json:"userId"`
	ResourceType string    `json:"resourceType"` // payments
	FilterConfig string    `json:"filterConfig"` // JSON of filters and sort
	IsDefault    bool      `json:"isDefault"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PaymentFilterConfig is the decoded form of SavedFilter.FilterConfig for payment views.
type PaymentFilterConfig struct {
	Filters   map[string]string `json:"filters"`
	SortField string            `json:"sortField"`
	SortOrder string            `json:"sortOrder"` // asc or desc
}
