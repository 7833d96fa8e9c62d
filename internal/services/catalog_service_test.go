package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"elegantstore/internal/models"
	"elegantstore/internal/repositories"
	"elegantstore/internal/services"
)

// MockProductStore is a testify mock of repositories.ProductRepository for
// error-path tests.
type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) List(q repositories.ProductListQuery) ([]models.Product, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductStore) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductStore) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductStore) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductStore) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

// seedCatalog populates an in-memory repository with a known product mix.
func seedCatalog(t *testing.T, repo *repositories.MockProductRepository) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	products := []models.Product{
		{Name: "Blue Lamp", Description: "A calming desk lamp", Price: 30, Category: "home", Rating: 4.5, Image: "lamp.jpg", CreatedAt: base},
		{Name: "Red Lamp", Description: "A bright desk lamp", Price: 25, Category: "home", Rating: 3.0, Image: "lamp2.jpg", CreatedAt: base.Add(1 * time.Hour)},
		{Name: "Headphones", Description: "Over-ear, noise cancelling", Price: 199, Category: "electronics", Rating: 4.8, Image: "hp.jpg", CreatedAt: base.Add(2 * time.Hour)},
		{Name: "Phone Case", Description: "A blue silicone case", Price: 15, Category: "accessories", Rating: 4.0, Image: "case.jpg", CreatedAt: base.Add(3 * time.Hour)},
		{Name: "Silk Scarf", Description: "Hand-rolled hem", Price: 55, Category: "fashion", Rating: 4.2, Image: "scarf.jpg", CreatedAt: base.Add(4 * time.Hour)},
	}
	for i := range products {
		assert.NoError(t, repo.Create(&products[i]))
	}
}

func TestCatalogService_List_PaginationMetadata(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo, nil, zerolog.Nop())

	for i := 0; i < 25; i++ {
		p := models.Product{
			Name:        fmt.Sprintf("Product %02d", i),
			Description: "bulk seeded",
			Price:       float64(i),
			Category:    "home",
			Image:       "p.jpg",
			CreatedAt:   time.Now().Add(time.Duration(i) * time.Minute),
		}
		assert.NoError(t, repo.Create(&p))
	}

	page, err := service.List(services.ListParams{Limit: 10, Page: 1})
	assert.NoError(t, err)
	assert.Len(t, page.Products, 10)
	assert.Equal(t, int64(25), page.TotalProducts)
	assert.Equal(t, int64(3), page.NumOfPages)
	assert.Equal(t, 1, page.CurrentPage)

	// Last partial page.
	page, err = service.List(services.ListParams{Limit: 10, Page: 3})
	assert.NoError(t, err)
	assert.Len(t, page.Products, 5)

	// Past the end: empty page, unchanged metadata, no error.
	page, err = service.List(services.ListParams{Limit: 10, Page: 4})
	assert.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Equal(t, int64(25), page.TotalProducts)
	assert.Equal(t, int64(3), page.NumOfPages)
	assert.Equal(t, 4, page.CurrentPage)
}

func TestCatalogService_List_Defaults(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo, nil, zerolog.Nop())
	seedCatalog(t, repo)

	page, err := service.List(services.ListParams{})
	assert.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, int64(5), page.TotalProducts)
	assert.Equal(t, int64(1), page.NumOfPages) // ceil(5/12)

	// Non-positive limit and page fall back to the defaults.
	page, err = service.List(services.ListParams{Limit: -3, Page: 0})
	assert.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, int64(1), page.NumOfPages)
}

func TestCatalogService_List_Filters(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo, nil, zerolog.Nop())
	seedCatalog(t, repo)

	// Category exact match.
	page, err := service.List(services.ListParams{Category: "home"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalProducts)

	// The "all" sentinel disables the category filter.
	page, err = service.List(services.ListParams{Category: "all"})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), page.TotalProducts)

	// Case-insensitive substring on name OR description.
	page, err = service.List(services.ListParams{Search: "blue"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalProducts) // Blue Lamp + blue silicone case

	page, err = service.List(services.ListParams{Search: "LAMP"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalProducts)

	// Category and search combine with AND.
	page, err = service.List(services.ListParams{Category: "home", Search: "blue"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalProducts)
	assert.Equal(t, "Blue Lamp", page.Products[0].Name)
}

func TestCatalogService_List_Sorting(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo, nil, zerolog.Nop())
	seedCatalog(t, repo)

	page, err := service.List(services.ListParams{Sort: "price-asc"})
	assert.NoError(t, err)
	for i := 1; i < len(page.Products); i++ {
		assert.LessOrEqual(t, page.Products[i-1].Price, page.Products[i].Price)
	}

	page, err = service.List(services.ListParams{Sort: "price-desc"})
	assert.NoError(t, err)
	for i := 1; i < len(page.Products); i++ {
		assert.GreaterOrEqual(t, page.Products[i-1].Price, page.Products[i].Price)
	}

	page, err = service.List(services.ListParams{Sort: "rating"})
	assert.NoError(t, err)
	for i := 1; i < len(page.Products); i++ {
		assert.GreaterOrEqual(t, page.Products[i-1].Rating, page.Products[i].Rating)
	}

	page, err = service.List(services.ListParams{Sort: "newest"})
	assert.NoError(t, err)
	assert.Equal(t, "Silk Scarf", page.Products[0].Name)

	// Unrecognized keys fall back to newest-first.
	page, err = service.List(services.ListParams{Sort: "bogus"})
	assert.NoError(t, err)
	assert.Equal(t, "Silk Scarf", page.Products[0].Name)
}

func TestCatalogService_Create(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo, nil, zerolog.Nop())

	product, err := service.Create(models.ProductInput{
		Name:        strPtr("Lamp"),
		Description: strPtr("A lamp"),
		Price:       floatPtr(10),
		Category:    strPtr("home"),
		Image:       strPtr("x.jpg"),
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, 0.0, product.Rating) // default
	assert.True(t, product.InStock)      // default

	fetched, err := service.Get(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Lamp", fetched.Name)
	assert.Equal(t, 10.0, fetched.Price)
}

func TestCatalogService_Create_Validation(t *testing.T) {
	mockRepo := new(MockProductStore)
	service := services.NewCatalogService(mockRepo, nil, zerolog.Nop())

	var ve *models.ValidationError

	// Out-of-enum category is rejected and never persisted.
	_, err := service.Create(models.ProductInput{
		Name:        strPtr("Toy Car"),
		Description: strPtr("A toy"),
		Price:       floatPtr(5),
		Category:    strPtr("toys"),
		Image:       strPtr("toy.jpg"),
	})
	assert.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), "valid category")

	// Missing price.
	_, err = service.Create(models.ProductInput{
		Name:        strPtr("Lamp"),
		Description: strPtr("A lamp"),
		Category:    strPtr("home"),
		Image:       strPtr("x.jpg"),
	})
	assert.ErrorAs(t, err, &ve)

	// Negative price.
	_, err = service.Create(models.ProductInput{
		Name:        strPtr("Lamp"),
		Description: strPtr("A lamp"),
		Price:       floatPtr(-1),
		Category:    strPtr("home"),
		Image:       strPtr("x.jpg"),
	})
	assert.ErrorAs(t, err, &ve)

	// Missing required name/description/image.
	_, err = service.Create(models.ProductInput{Price: floatPtr(10), Category: strPtr("home")})
	assert.ErrorAs(t, err, &ve)

	// Rating out of range.
	_, err = service.Create(models.ProductInput{
		Name:        strPtr("Lamp"),
		Description: strPtr("A lamp"),
		Price:       floatPtr(10),
		Category:    strPtr("home"),
		Image:       strPtr("x.jpg"),
		Rating:      floatPtr(7),
	})
	assert.ErrorAs(t, err, &ve)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCatalogService_Update(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo, nil, zerolog.Nop())

	product, err := service.Create(models.ProductInput{
		Name:        strPtr("Lamp"),
		Description: strPtr("A lamp"),
		Price:       floatPtr(10),
		Category:    strPtr("home"),
		Image:       strPtr("x.jpg"),
	})
	assert.NoError(t, err)

	// Partial replace: only the supplied fields change.
	updated, err := service.Update(product.ID, models.ProductInput{
		Price:   floatPtr(12.5),
		InStock: boolPtr(false),
	})
	assert.NoError(t, err)
	assert.Equal(t, "Lamp", updated.Name)
	assert.Equal(t, 12.5, updated.Price)
	assert.False(t, updated.InStock)

	// Invalid update is rejected and not persisted.
	_, err = service.Update(product.ID, models.ProductInput{Category: strPtr("toys")})
	var ve *models.ValidationError
	assert.ErrorAs(t, err, &ve)

	fetched, err := service.Get(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "home", fetched.Category)

	// Unknown ID.
	_, err = service.Update("missing-id", models.ProductInput{Price: floatPtr(1)})
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestCatalogService_Delete(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo, nil, zerolog.Nop())

	product, err := service.Create(models.ProductInput{
		Name:        strPtr("Lamp"),
		Description: strPtr("A lamp"),
		Price:       floatPtr(10),
		Category:    strPtr("home"),
		Image:       strPtr("x.jpg"),
	})
	assert.NoError(t, err)

	assert.NoError(t, service.Delete(product.ID))

	_, err = service.Get(product.ID)
	assert.ErrorIs(t, err, models.ErrProductNotFound)

	// Deleting a nonexistent ID is not-found, not a server error.
	assert.ErrorIs(t, service.Delete(product.ID), models.ErrProductNotFound)
}

func TestCatalogService_List_StoreError(t *testing.T) {
	mockRepo := new(MockProductStore)
	service := services.NewCatalogService(mockRepo, nil, zerolog.Nop())

	mockRepo.On("List", mock.Anything).Return(nil, int64(0), fmt.Errorf("database error")).Once()
	_, err := service.List(services.ListParams{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}
