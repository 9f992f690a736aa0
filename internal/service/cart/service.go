package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/perkpoint/storefront-service/internal/domain"
	cartRepo "github.com/perkpoint/storefront-service/internal/infra/storage/cart"
	productRepo "github.com/perkpoint/storefront-service/internal/infra/storage/product"
	"github.com/perkpoint/storefront-service/internal/service/cart/models"
)

// Service сервис корзины покупателя
type Service struct {
	cartRepo    CartRepository
	productRepo ProductRepository
	settings    SettingsProvider
	logger      Logger
}

// NewService создает новый экземпляр сервиса корзины
func NewService(
	cartRepo CartRepository,
	productRepo ProductRepository,
	settings SettingsProvider,
	logger Logger,
) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		settings:    settings,
		logger:      logger,
	}
}

// Get возвращает корзину пользователя с рассчитанными суммами
func (s *Service) Get(ctx context.Context, userID string) (*models.CartResponse, error) {
	lines, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Get: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.Error("Get: settings error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: Get - settings error: %v", ErrInternal, err)
	}

	return models.FromDomainCart(lines, settings), nil
}

// AddItem добавляет позицию в корзину.
// Повторное добавление того же продукта с той же опцией увеличивает количество.
func (s *Service) AddItem(ctx context.Context, userID string, req *models.AddItemRequest) (*models.CartResponse, error) {
	s.logger.Info("AddItem: user=%s product=%d qty=%d", userID, req.ProductID, req.Quantity)

	if req.Quantity <= 0 {
		s.logger.Warn("AddItem: non-positive quantity %d for user=%s", req.Quantity, userID)
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if req.Quantity > domain.MaxCartQuantity {
		s.logger.Warn("AddItem: quantity %d exceeds limit for user=%s", req.Quantity, userID)
		return nil, fmt.Errorf("%w: quantity must not exceed %d", ErrInvalidInput, domain.MaxCartQuantity)
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			s.logger.Warn("AddItem: product id=%d not found", req.ProductID)
			return nil, ErrProductNotFound
		}
		s.logger.Error("AddItem: product repository error: %v", err)
		return nil, fmt.Errorf("%w: AddItem - product repository error: %v", ErrInternal, err)
	}
	if !product.IsAvailable {
		s.logger.Warn("AddItem: product id=%d is unavailable", req.ProductID)
		return nil, ErrProductUnavailable
	}

	if req.SelectedOption != nil && *req.SelectedOption != "" && !product.HasOption(*req.SelectedOption) {
		s.logger.Warn("AddItem: option %q is not available for product id=%d", *req.SelectedOption, req.ProductID)
		return nil, ErrInvalidOption
	}

	selectedOption := req.SelectedOption
	if selectedOption != nil && *selectedOption == "" {
		selectedOption = nil
	}

	line := &domain.CartLine{
		UserID:         userID,
		ProductID:      product.ID,
		ProductName:    product.Name,
		UnitPrice:      product.Price,
		Quantity:       req.Quantity,
		SelectedOption: selectedOption,
	}

	if _, err := s.cartRepo.Upsert(ctx, line); err != nil {
		s.logger.Error("AddItem: cart repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: AddItem - cart repository error: %v", ErrInternal, err)
	}

	return s.Get(ctx, userID)
}

// UpdateItem устанавливает количество позиции.
// Количество <= 0 удаляет позицию из корзины.
func (s *Service) UpdateItem(ctx context.Context, userID string, req *models.UpdateItemRequest) (*models.CartResponse, error) {
	s.logger.Info("UpdateItem: user=%s product=%d qty=%d", userID, req.ProductID, req.Quantity)

	selectedOption := req.SelectedOption
	if selectedOption != nil && *selectedOption == "" {
		selectedOption = nil
	}

	if req.Quantity <= 0 {
		if err := s.cartRepo.DeleteLine(ctx, userID, req.ProductID, selectedOption); err != nil {
			if errors.Is(err, cartRepo.ErrLineNotFound) {
				s.logger.Warn("UpdateItem: line not found for user=%s product=%d", userID, req.ProductID)
				return nil, ErrLineNotFound
			}
			s.logger.Error("UpdateItem: delete error for user=%s: %v", userID, err)
			return nil, fmt.Errorf("%w: UpdateItem - delete error: %v", ErrInternal, err)
		}
		return s.Get(ctx, userID)
	}

	if req.Quantity > domain.MaxCartQuantity {
		s.logger.Warn("UpdateItem: quantity %d exceeds limit for user=%s", req.Quantity, userID)
		return nil, fmt.Errorf("%w: quantity must not exceed %d", ErrInvalidInput, domain.MaxCartQuantity)
	}

	if err := s.cartRepo.SetQuantity(ctx, userID, req.ProductID, selectedOption, req.Quantity); err != nil {
		if errors.Is(err, cartRepo.ErrLineNotFound) {
			s.logger.Warn("UpdateItem: line not found for user=%s product=%d", userID, req.ProductID)
			return nil, ErrLineNotFound
		}
		s.logger.Error("UpdateItem: update error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: UpdateItem - update error: %v", ErrInternal, err)
	}

	return s.Get(ctx, userID)
}

// Clear очищает корзину пользователя
func (s *Service) Clear(ctx context.Context, userID string) error {
	s.logger.Info("Clear: clearing cart for user=%s", userID)

	if err := s.cartRepo.ClearByUser(ctx, userID); err != nil {
		s.logger.Error("Clear: repository error for user=%s: %v", userID, err)
		return fmt.Errorf("%w: Clear - repository error: %v", ErrInternal, err)
	}
	return nil
}
