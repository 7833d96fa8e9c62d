package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"elegantstore/internal/models"
)

// listOrderings maps a sort key to its SQL ordering. Unrecognized keys fall
// back to newest-first.
var listOrderings = map[string]string{
	"price-asc":  "price ASC",
	"price-desc": "price DESC",
	"newest":     "created_at DESC",
	"rating":     "rating DESC",
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// filtered builds a fresh query restricted to the category and search filters.
// The search term matches case-insensitively as a substring of the name or
// the description.
func (r *GORMProductRepository) filtered(q ProductListQuery) *gorm.DB {
	tx := r.db.Model(&models.Product{})
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	return tx
}

// List returns one page of matching products plus the total count of the
// filtered set, ignoring pagination.
func (r *GORMProductRepository) List(q ProductListQuery) ([]models.Product, int64, error) {
	var total int64
	if err := r.filtered(q).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	ordering, ok := listOrderings[q.Sort]
	if !ok {
		ordering = "created_at DESC"
	}

	var products []models.Product
	err := r.filtered(q).
		Order(ordering).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, models.ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product) // Save replaces all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Save does not return ErrRecordNotFound when no rows match, so we
		// check RowsAffected.
		return fmt.Errorf("product with ID %s: %w", product.ID, models.ErrProductNotFound)
	}
	return nil
}

// Delete permanently removes a product by its ID.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", id, models.ErrProductNotFound)
	}
	return nil
}
