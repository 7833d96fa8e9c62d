package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"elegantstore/internal/models"
	"elegantstore/internal/repositories"
)

// DefaultPageSize is the listing page size when the client does not supply
// one.
const DefaultPageSize = 12

// ListParams are the raw listing parameters as supplied by the client.
type ListParams struct {
	Category string
	Search   string
	Sort     string
	Limit    int
	Page     int
}

// ProductPage is one page of listing results together with page-count
// metadata. TotalProducts counts the filtered set independent of pagination.
type ProductPage struct {
	Products      []models.Product `json:"products"`
	TotalProducts int64            `json:"totalProducts"`
	NumOfPages    int64            `json:"numOfPages"`
	CurrentPage   int              `json:"currentPage"`
}

// ListingCache caches serialized listing pages. A generation counter bumped
// on every product mutation invalidates previous entries; stale generations
// age out via TTL.
type ListingCache interface {
	GetListing(ctx context.Context, key string) (string, bool)
	SetListing(ctx context.Context, key string, payload string)
	Generation(ctx context.Context) int64
	InvalidateListings(ctx context.Context)
}

// CatalogService handles business logic for the product catalog: listing
// query resolution, pagination metadata, and validated CRUD.
type CatalogService struct {
	repo     repositories.ProductRepository
	cache    ListingCache
	validate *validator.Validate
	log      zerolog.Logger
}

// NewCatalogService creates a new CatalogService. The cache is optional; a
// nil cache disables listing caching.
func NewCatalogService(repo repositories.ProductRepository, cache ListingCache, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		cache:    cache,
		validate: validator.New(),
		log:      logger,
	}
}

// List returns a filtered, sorted page of products plus page-count metadata.
// Limit defaults to 12 and page to 1; values below 1 fall back to the
// defaults. The "all" category sentinel disables the category filter.
// Requesting a page past the last yields an empty page with accurate totals.
func (s *CatalogService) List(params ListParams) (*ProductPage, error) {
	if params.Limit < 1 {
		params.Limit = DefaultPageSize
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Category == "all" {
		params.Category = ""
	}

	ctx := context.Background()
	var cacheKey string
	if s.cache != nil {
		cacheKey = s.listingCacheKey(ctx, params)
		if payload, ok := s.cache.GetListing(ctx, cacheKey); ok {
			var page ProductPage
			if err := json.Unmarshal([]byte(payload), &page); err == nil {
				return &page, nil
			}
			s.log.Warn().Str("key", cacheKey).Msg("discarding unreadable cached listing")
		}
	}

	query := repositories.ProductListQuery{
		Category: params.Category,
		Search:   params.Search,
		Sort:     params.Sort,
		Limit:    params.Limit,
		Offset:   (params.Page - 1) * params.Limit,
	}
	products, total, err := s.repo.List(query)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}

	page := &ProductPage{
		Products:      products,
		TotalProducts: total,
		NumOfPages:    (total + int64(params.Limit) - 1) / int64(params.Limit),
		CurrentPage:   params.Page,
	}

	if s.cache != nil {
		// Repopulate the cache off the request path.
		go func(key string, page ProductPage) {
			payload, err := json.Marshal(page)
			if err != nil {
				s.log.Warn().Err(err).Msg("failed to marshal listing for cache")
				return
			}
			s.cache.SetListing(context.Background(), key, string(payload))
		}(cacheKey, *page)
	}

	return page, nil
}

// listingCacheKey builds a cache key covering every listing parameter plus
// the current invalidation generation.
func (s *CatalogService) listingCacheKey(ctx context.Context, params ListParams) string {
	return fmt.Sprintf("products:listings:g%d:c=%s|q=%s|s=%s|l=%d|p=%d",
		s.cache.Generation(ctx),
		params.Category,
		strings.ToLower(params.Search),
		params.Sort,
		params.Limit,
		params.Page,
	)
}

// Get retrieves a single product by its ID.
func (s *CatalogService) Get(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Create validates and persists a new product. Rating defaults to 0 and
// inStock to true when absent.
func (s *CatalogService) Create(input models.ProductInput) (*models.Product, error) {
	if input.Price == nil {
		return nil, models.NewValidationError("Product price is required")
	}

	product := &models.Product{
		InStock: true,
	}
	input.Apply(product)

	if err := s.validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.invalidateListings()
	return product, nil
}

// Update applies a partial field replace to an existing product, re-validates
// the whole entity, and persists it.
func (s *CatalogService) Update(id string, input models.ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	input.Apply(product)

	if err := s.validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.invalidateListings()
	return product, nil
}

// Delete permanently removes a product by its ID.
func (s *CatalogService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidateListings()
	return nil
}

func (s *CatalogService) invalidateListings() {
	if s.cache != nil {
		s.cache.InvalidateListings(context.Background())
	}
}

// validateProduct runs the entity schema checks and converts failures into a
// client-facing validation error.
func (s *CatalogService) validateProduct(product *models.Product) error {
	err := s.validate.Struct(product)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, productFieldMessage(fe))
	}
	return models.NewValidationError(strings.Join(msgs, ", "))
}

func productFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "max" {
			return "Product name cannot exceed 100 characters"
		}
		return "Product name is required"
	case "Description":
		if fe.Tag() == "max" {
			return "Description cannot exceed 2000 characters"
		}
		return "Product description is required"
	case "Price":
		return "Price must be a positive number"
	case "Category":
		if fe.Tag() == "oneof" {
			return "Please select a valid category"
		}
		return "Product category is required"
	case "Rating":
		return "Rating must be between 0 and 5"
	case "Image":
		return "Product image is required"
	}
	return fe.Error()
}
