package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/perkpoint/storefront-service/internal/domain"
	productRepo "github.com/perkpoint/storefront-service/internal/infra/storage/product"
	"github.com/perkpoint/storefront-service/internal/service/catalog/models"
)

// Service сервис каталога продуктов.
// Чтение идёт через кэш; при недоступности БД отдаёт кэшированный список
// с пометкой degraded.
type Service struct {
	repo   ProductRepository
	cache  Cache
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога.
// cache может быть nil, тогда кэширование отключено.
func NewService(repo ProductRepository, cache Cache, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// List возвращает продукты, опционально отфильтрованные по категории
func (s *Service) List(ctx context.Context, category *string) (*models.ProductListResponse, error) {
	var domainCategory *domain.ProductCategory
	cacheKey := "all"
	if category != nil && *category != "" {
		if !domain.ValidProductCategory(*category) {
			s.logger.Warn("List: unknown category %q", *category)
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *category)
		}
		c := domain.ProductCategory(*category)
		domainCategory = &c
		cacheKey = *category
	}

	products, err := s.repo.List(ctx, domainCategory)
	if err != nil {
		// БД недоступна, пробуем отдать устаревший кэш
		if s.cache != nil {
			if cached, ok := s.cache.GetProducts(ctx, cacheKey); ok {
				s.logger.Warn("List: repository error, serving cached products: %v", err)
				return models.FromDomainProductList(cached, true), nil
			}
		}
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		s.cache.SetProducts(ctx, cacheKey, products)
	}

	return models.FromDomainProductList(products, false), nil
}

// GetByID получает продукт по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ProductResponse, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			s.logger.Warn("GetByID: product id=%d not found", id)
			return nil, ErrProductNotFound
		}
		s.logger.Error("GetByID: repository error for product id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainProduct(product), nil
}

// Create создает новый продукт
func (s *Service) Create(ctx context.Context, req *models.CreateProductRequest) (*models.ProductResponse, error) {
	s.logger.Info("Create: creating product name=%q category=%q", req.Name, req.Category)

	if err := validateProductFields(req.Name, req.Category, req.Price, req.AvailableOptions, req.DefaultOption); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	product := &domain.Product{
		Name:             req.Name,
		Description:      req.Description,
		Category:         domain.ProductCategory(req.Category),
		Price:            req.Price,
		ImageURL:         req.ImageURL,
		IsAvailable:      isAvailable,
		AvailableOptions: req.AvailableOptions,
		DefaultOption:    req.DefaultOption,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.invalidateCache(ctx)
	s.logger.Info("Create: product id=%d created", created.ID)
	return models.FromDomainProduct(created), nil
}

// Update применяет частичное обновление продукта
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.ProductResponse, error) {
	s.logger.Info("Update: updating product id=%d", id)

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			s.logger.Warn("Update: product id=%d not found", id)
			return nil, ErrProductNotFound
		}
		s.logger.Error("Update: repository error for product id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.Category != nil {
		current.Category = domain.ProductCategory(*req.Category)
	}
	if req.Price != nil {
		current.Price = *req.Price
	}
	if req.ImageURL != nil {
		current.ImageURL = *req.ImageURL
	}
	if req.IsAvailable != nil {
		current.IsAvailable = *req.IsAvailable
	}
	if req.AvailableOptions != nil {
		current.AvailableOptions = *req.AvailableOptions
	}
	if req.DefaultOption != nil {
		current.DefaultOption = req.DefaultOption
	}

	if err := validateProductFields(current.Name, string(current.Category), current.Price, current.AvailableOptions, current.DefaultOption); err != nil {
		s.logger.Warn("Update: validation failed for product id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		s.logger.Error("Update: repository error for product id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.invalidateCache(ctx)
	s.logger.Info("Update: product id=%d updated", id)
	return models.FromDomainProduct(updated), nil
}

// Delete удаляет продукт
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting product id=%d", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			s.logger.Warn("Delete: product id=%d not found", id)
			return ErrProductNotFound
		}
		s.logger.Error("Delete: repository error for product id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidateCache(ctx)
	s.logger.Info("Delete: product id=%d deleted", id)
	return nil
}

func (s *Service) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func validateProductFields(name, category string, price float64, options []string, defaultOption *string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !domain.ValidProductCategory(category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if defaultOption != nil && *defaultOption != "" {
		found := false
		for _, opt := range options {
			if opt == *defaultOption {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: default option %q is not among available options", ErrInvalidInput, *defaultOption)
		}
	}
	return nil
}
