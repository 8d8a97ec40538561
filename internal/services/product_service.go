package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"kiosk/internal/models"
	"kiosk/internal/repositories"
	"kiosk/pkg/cache"
)

const (
	productCacheTTL     = 30 * time.Second
	productListCacheKey = "products:all"
)

// ProductService handles business logic related to the catalog. Reads
// go through a redis read-through cache when one is configured; cart
// expansion hits GetByID on every cart read, which makes it the hot
// path. A nil cache disables caching.
type ProductService struct {
	repo  repositories.ProductRepository
	cache *cache.Cache
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, c *cache.Cache) *ProductService {
	return &ProductService{repo: repo, cache: c}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	b, err := s.cache.GetOrLoad(context.Background(), productListCacheKey, productCacheTTL,
		func(ctx context.Context) ([]byte, error) {
			products, err := s.repo.GetAll()
			if err != nil {
				return nil, err
			}
			return json.Marshal(products)
		})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := json.Unmarshal(b, &products); err != nil {
		return nil, fmt.Errorf("failed to decode cached products: %w", err)
	}
	return products, nil
}

// GetProductByID retrieves a single product. A missing product is
// ErrNotFound; misses are never cached.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	b, err := s.cache.GetOrLoad(context.Background(), productCacheKey(id), productCacheTTL,
		func(ctx context.Context) ([]byte, error) {
			product, err := s.repo.GetByID(id)
			if err != nil {
				return nil, err
			}
			return json.Marshal(product)
		})
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	var product models.Product
	if err := json.Unmarshal(b, &product); err != nil {
		return nil, fmt.Errorf("failed to decode cached product: %w", err)
	}
	return &product, nil
}

// CreateProduct validates and stores a new catalog entry.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.invalidate(product.ID)
	return nil
}

// UpdateProduct validates and persists changes to an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := s.repo.Update(product); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
		}
		return err
	}
	s.invalidate(product.ID)
	return nil
}

// DeleteProduct removes a product. Existing cart and order lines keep
// the stale ID; cart reads degrade by omitting them.
func (s *ProductService) DeleteProduct(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return err
	}
	s.invalidate(id)
	return nil
}

func validateProduct(product *models.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("product name is required: %w", ErrValidation)
	}
	if product.Price < 0 {
		return fmt.Errorf("product price must not be negative: %w", ErrValidation)
	}
	if strings.TrimSpace(product.Image) == "" {
		return fmt.Errorf("product image is required: %w", ErrValidation)
	}
	if strings.TrimSpace(product.Category) == "" {
		return fmt.Errorf("product category is required: %w", ErrValidation)
	}
	return nil
}

func (s *ProductService) invalidate(id string) {
	s.cache.Invalidate(context.Background(), productListCacheKey, productCacheKey(id))
}

func productCacheKey(id string) string {
	return "products:" + id
}
