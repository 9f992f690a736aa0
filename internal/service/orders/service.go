package orders

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/perkpoint/storefront-service/internal/domain"
	orderRepo "github.com/perkpoint/storefront-service/internal/infra/storage/order"
	reservationRepo "github.com/perkpoint/storefront-service/internal/infra/storage/reservation"
	"github.com/perkpoint/storefront-service/internal/service/orders/models"
)

// Service сервис для работы с заказами
type Service struct {
	orderRepo       OrderRepository
	reservationRepo ReservationRepository
	payments        PaymentClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса заказов.
// payments может быть nil, тогда оплата отключена.
func NewService(
	orderRepo OrderRepository,
	reservationRepo ReservationRepository,
	payments PaymentClient,
	logger Logger,
) *Service {
	return &Service{
		orderRepo:       orderRepo,
		reservationRepo: reservationRepo,
		payments:        payments,
		logger:          logger,
	}
}

// GetByID получает заказ по ID.
// Пользователь видит только свои заказы; пустой userID означает админа.
func (s *Service) GetByID(ctx context.Context, id int64, userID string) (*models.OrderResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("GetByID: order id=%d not found", id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("GetByID: repository error for order id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if userID != "" && order.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%s to order id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainOrder(order), nil
}

// List возвращает заказы с фильтрацией для админ-панели
func (s *Service) List(ctx context.Context, req *models.ListOrdersRequest) (*models.OrderListResponse, error) {
	filter := domain.OrdersFilter{IncludeInactive: req.IncludeInactive}

	if req.Date != nil && *req.Date != "" {
		date, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			s.logger.Warn("List: invalid date %q", *req.Date)
			return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
		}
		filter.Date = &date
	}

	if req.Status != nil && *req.Status != "" {
		if !domain.ValidOrderStatus(*req.Status) {
			s.logger.Warn("List: invalid status %q", *req.Status)
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, *req.Status)
		}
		status := domain.OrderStatus(*req.Status)
		filter.Status = &status
	}

	if req.PaymentStatus != nil && *req.PaymentStatus != "" {
		ps := domain.PaymentStatus(*req.PaymentStatus)
		switch ps {
		case domain.PaymentStatusPending, domain.PaymentStatusCompleted, domain.PaymentStatusFailed:
		default:
			s.logger.Warn("List: invalid payment status %q", *req.PaymentStatus)
			return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidStatus, *req.PaymentStatus)
		}
		filter.PaymentStatus = &ps
	}

	orders, err := s.orderRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOrderList(orders), nil
}

// UpdateStatus меняет статус заказа.
// Отмена заказа освобождает его резерв слота.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.OrderResponse, error) {
	s.logger.Info("UpdateStatus: order id=%d -> %s", id, req.Status)

	if !domain.ValidOrderStatus(req.Status) {
		s.logger.Warn("UpdateStatus: invalid status %q for order id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, req.Status)
	}
	next := domain.OrderStatus(req.Status)

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("UpdateStatus: order id=%d not found", id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("UpdateStatus: repository error for order id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !order.CanTransitionTo(next) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for order id=%d", order.Status, next, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, next); err != nil {
		s.logger.Error("UpdateStatus: failed to update order id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - update error: %v", ErrInternal, err)
	}

	// Отмена освобождает слот для других заказов
	if next == domain.OrderStatusCancelled {
		if err := s.reservationRepo.DeleteByOrderID(ctx, id); err != nil && !errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Error("UpdateStatus: failed to release reservation for order id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - release reservation: %v", ErrInternal, err)
		}
		s.logger.Info("UpdateStatus: reservation released for cancelled order id=%d", id)
	}

	order.Status = next
	return models.FromDomainOrder(order), nil
}

// CreatePaymentIntent создает платежное намерение для заказа.
// Сумма берётся из заказа и конвертируется в минимальные единицы валюты.
func (s *Service) CreatePaymentIntent(ctx context.Context, orderID int64, userID string) (*models.PaymentIntentResponse, error) {
	s.logger.Info("CreatePaymentIntent: order id=%d user=%s", orderID, userID)

	if s.payments == nil {
		return nil, fmt.Errorf("%w: payment provider is not configured", ErrPaymentFailed)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		s.logger.Error("CreatePaymentIntent: repository error for order id=%d: %v", orderID, err)
		return nil, fmt.Errorf("%w: CreatePaymentIntent - repository error: %v", ErrInternal, err)
	}

	if userID != "" && order.UserID != userID {
		s.logger.Warn("CreatePaymentIntent: access denied for user=%s to order id=%d", userID, orderID)
		return nil, ErrAccessDenied
	}
	if order.PaymentStatus == domain.PaymentStatusCompleted {
		s.logger.Warn("CreatePaymentIntent: order id=%d is already paid", orderID)
		return nil, ErrAlreadyPaid
	}

	// Повторный запрос возвращает уже созданное намерение, пока оно активно
	if order.PaymentIntentID != nil && *order.PaymentIntentID != "" {
		existing, err := s.payments.GetIntent(*order.PaymentIntentID)
		if err != nil {
			s.logger.Warn("CreatePaymentIntent: failed to fetch existing intent=%s for order id=%d: %v", *order.PaymentIntentID, orderID, err)
		} else if existing.Status != "succeeded" && existing.Status != "canceled" {
			s.logger.Info("CreatePaymentIntent: reusing intent=%s for order id=%d", existing.ID, orderID)
			return &models.PaymentIntentResponse{
				OrderID:      orderID,
				IntentID:     existing.ID,
				ClientSecret: existing.ClientSecret,
				Amount:       existing.Amount,
				Currency:     existing.Currency,
			}, nil
		}
	}

	amountMinor := int64(math.Round(order.Total * 100))

	intent, err := s.payments.CreateIntent(amountMinor, fmt.Sprintf("order-%d", orderID), map[string]string{
		"order_id": fmt.Sprintf("%d", orderID),
		"user_id":  order.UserID,
	})
	if err != nil {
		s.logger.Error("CreatePaymentIntent: provider error for order id=%d: %v", orderID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	if err := s.orderRepo.SetPaymentIntent(ctx, orderID, intent.ID); err != nil {
		s.logger.Error("CreatePaymentIntent: failed to store intent for order id=%d: %v", orderID, err)
		return nil, fmt.Errorf("%w: CreatePaymentIntent - store intent: %v", ErrInternal, err)
	}

	s.logger.Info("CreatePaymentIntent: intent=%s created for order id=%d amount=%d", intent.ID, orderID, intent.Amount)
	return &models.PaymentIntentResponse{
		OrderID:      orderID,
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     intent.Currency,
	}, nil
}

// ApplyPaymentSucceeded отмечает заказ оплаченным по ID платежного намерения.
// Вызывается из обработчика вебхука.
func (s *Service) ApplyPaymentSucceeded(ctx context.Context, intentID string) error {
	order, err := s.orderRepo.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			// Вебхук может прийти по чужому или тестовому платежу
			s.logger.Warn("ApplyPaymentSucceeded: no order for intent=%s", intentID)
			return nil
		}
		s.logger.Error("ApplyPaymentSucceeded: repository error for intent=%s: %v", intentID, err)
		return fmt.Errorf("%w: ApplyPaymentSucceeded - repository error: %v", ErrInternal, err)
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, order.ID, domain.PaymentStatusCompleted, nil); err != nil {
		s.logger.Error("ApplyPaymentSucceeded: failed to update order id=%d: %v", order.ID, err)
		return fmt.Errorf("%w: ApplyPaymentSucceeded - update error: %v", ErrInternal, err)
	}

	s.logger.Info("ApplyPaymentSucceeded: order id=%d marked paid, intent=%s", order.ID, intentID)
	return nil
}

// ApplyPaymentFailed отмечает неуспешную оплату заказа
func (s *Service) ApplyPaymentFailed(ctx context.Context, intentID string, reason string) error {
	order, err := s.orderRepo.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("ApplyPaymentFailed: no order for intent=%s", intentID)
			return nil
		}
		s.logger.Error("ApplyPaymentFailed: repository error for intent=%s: %v", intentID, err)
		return fmt.Errorf("%w: ApplyPaymentFailed - repository error: %v", ErrInternal, err)
	}

	var paymentError *string
	if reason != "" {
		paymentError = &reason
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, order.ID, domain.PaymentStatusFailed, paymentError); err != nil {
		s.logger.Error("ApplyPaymentFailed: failed to update order id=%d: %v", order.ID, err)
		return fmt.Errorf("%w: ApplyPaymentFailed - update error: %v", ErrInternal, err)
	}

	s.logger.Info("ApplyPaymentFailed: order id=%d marked failed, intent=%s", order.ID, intentID)
	return nil
}
