package repositories

import (
	"elegantstore/internal/models"
)

// ProductListQuery describes a filtered, sorted, paginated slice of the
// product catalog. An empty Category or Search disables that filter; an
// unrecognized Sort falls back to newest-first.
type ProductListQuery struct {
	Category string
	Search   string
	Sort     string
	Limit    int
	Offset   int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// List returns the requested page of matching products together with the
	// total number of products matching the filter alone.
	List(q ProductListQuery) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
