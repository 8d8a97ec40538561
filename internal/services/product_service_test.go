package services_test

import (
	"testing"

	"kiosk/internal/models"
	"kiosk/internal/repositories"
	"kiosk/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func validProduct() *models.Product {
	return &models.Product{
		ID:       "p1",
		Name:     "Laptop",
		Price:    1200,
		Image:    "https://example.com/laptop.png",
		Category: "electronics",
	}
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: "1", Name: "Product A", Price: 10.0, Image: "https://example.com/a.png", Category: "misc"},
		{ID: "2", Name: "Product B", Price: 20.0, Image: "https://example.com/b.png", Category: "misc"},
	}
	mockRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts[0].Name, products[0].Name)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expected := validProduct()
	mockRepo.On("GetByID", "p1").Return(expected, nil).Once()
	product, err := service.GetProductByID("p1")
	assert.NoError(t, err)
	assert.Equal(t, expected.Name, product.Name)
	mockRepo.AssertExpectations(t)

	// A missing product maps to the not-found sentinel.
	mockRepo.On("GetByID", "99").Return(nil, repositories.ErrRecordNotFound).Once()
	product, err = service.GetProductByID("99")
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	product := validProduct()
	mockRepo.On("Create", product).Return(nil).Once()
	assert.NoError(t, service.CreateProduct(product))
	mockRepo.AssertExpectations(t)

	// Required fields are checked before the store is touched.
	missingName := validProduct()
	missingName.Name = ""
	assert.ErrorIs(t, service.CreateProduct(missingName), services.ErrValidation)

	negativePrice := validProduct()
	negativePrice.Price = -1
	assert.ErrorIs(t, service.CreateProduct(negativePrice), services.ErrValidation)

	missingImage := validProduct()
	missingImage.Image = ""
	assert.ErrorIs(t, service.CreateProduct(missingImage), services.ErrValidation)

	missingCategory := validProduct()
	missingCategory.Category = ""
	assert.ErrorIs(t, service.CreateProduct(missingCategory), services.ErrValidation)

	mockRepo.AssertNotCalled(t, "Create", missingName)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	product := validProduct()
	mockRepo.On("Update", product).Return(nil).Once()
	assert.NoError(t, service.UpdateProduct(product))
	mockRepo.AssertExpectations(t)

	missing := validProduct()
	missing.ID = "99"
	mockRepo.On("Update", missing).Return(repositories.ErrRecordNotFound).Once()
	assert.ErrorIs(t, service.UpdateProduct(missing), services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("Delete", "p1").Return(nil).Once()
	assert.NoError(t, service.DeleteProduct("p1"))
	mockRepo.AssertExpectations(t)

	mockRepo.On("Delete", "99").Return(repositories.ErrRecordNotFound).Once()
	assert.ErrorIs(t, service.DeleteProduct("99"), services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
