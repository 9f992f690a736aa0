package create_order

import (
	"context"
	"fmt"

	"github.com/perkpoint/storefront-service/internal/domain"
)

// UseCase use case для оформления заказа с бронированием слота самовывоза
type UseCase struct {
	orderRepo       OrderRepository
	reservationRepo ReservationRepository
	cartRepo        CartRepository
	settings        SettingsProvider
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	reservationRepo ReservationRepository,
	cartRepo CartRepository,
	settings SettingsProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:       orderRepo,
		reservationRepo: reservationRepo,
		cartRepo:        cartRepo,
		settings:        settings,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case оформления заказа.
// Проверка вместимости слота и запись резервации выполняются в одной
// сериализуемой транзакции, чтобы исключить гонку при одновременных заказах.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateOrder: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateOrder: user=%s, date=%s, time=%s",
		req.UserID, req.Date.Format(domain.DateFormat), req.Time)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Берём настройки напрямую из БД, чтобы проверки шли по актуальным
	// blockedDates и maxOrdersPerSlot
	settings, err := uc.settings.GetFresh(ctx)
	if err != nil {
		uc.logger.Error("CreateOrder: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 4. Валидация даты и времени слота
	if err := validateDate(req.Date, now, settings); err != nil {
		uc.logger.Warn("CreateOrder: date validation failed: %v", err)
		return nil, err
	}
	if err := validateSlotTime(req.Date, req.Time, now); err != nil {
		uc.logger.Warn("CreateOrder: slot time validation failed: %v", err)
		return nil, err
	}

	// 5. Загружаем корзину пользователя
	lines, err := uc.cartRepo.ListByUser(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("CreateOrder: failed to load cart for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to load cart: %v", ErrInternal, err)
	}
	if len(lines) == 0 {
		uc.logger.Warn("CreateOrder: empty cart for user=%s", req.UserID)
		return nil, ErrEmptyCart
	}

	// 6. Пересчитываем суммы на сервере по текущим ценам опций.
	// Суммам из клиента не доверяем.
	items, total := buildOrderItems(lines, settings)

	// Переменная для хранения результата
	var result *domain.Order

	// 7. Проверка вместимости слота и запись заказа в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Читаем резервации слота с блокировкой (FOR UPDATE)
		reservations, err := uc.reservationRepo.GetForSlot(txCtx, req.Date, req.Time)
		if err != nil {
			uc.logger.Error("CreateOrder: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 7.2. Проверяем вместимость слота
		if len(reservations) >= settings.MaxOrdersPerSlot {
			uc.logger.Warn("CreateOrder: slot %s %s is full, %d/%d taken",
				req.Date.Format(domain.DateFormat), req.Time, len(reservations), settings.MaxOrdersPerSlot)
			return ErrSlotFull
		}

		uc.logger.Info("CreateOrder: slot %s %s available, %d/%d taken",
			req.Date.Format(domain.DateFormat), req.Time, len(reservations), settings.MaxOrdersPerSlot)

		// 7.3. Создаем заказ
		order := &domain.Order{
			UserID:        req.UserID,
			UserEmail:     req.UserEmail,
			Items:         items,
			Total:         total,
			PickupDate:    req.Date,
			PickupTime:    req.Time,
			Status:        domain.OrderStatusNew,
			PaymentStatus: domain.PaymentStatusPending,
			Notes:         req.Notes,
		}

		created, err := uc.orderRepo.Create(txCtx, order)
		if err != nil {
			uc.logger.Error("CreateOrder: failed to create order: %v", err)
			return fmt.Errorf("%w: failed to create order: %v", ErrInternal, err)
		}

		// 7.4. Записываем резервацию слота для заказа
		if _, err := uc.reservationRepo.Create(txCtx, &domain.SlotReservation{
			Date:      req.Date,
			StartTime: req.Time,
			OrderID:   created.ID,
		}); err != nil {
			uc.logger.Error("CreateOrder: failed to reserve slot: %v", err)
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 8. Очищаем корзину после успешного оформления.
	// Ошибка очистки не отменяет заказ.
	if err := uc.cartRepo.ClearByUser(ctx, req.UserID); err != nil {
		uc.logger.Error("CreateOrder: failed to clear cart for user=%s: %v", req.UserID, err)
	}

	uc.logger.Info("CreateOrder: successfully created order id=%d, total=%.2f", result.ID, result.Total)

	return &Response{
		ID:            result.ID,
		UserID:        result.UserID,
		Items:         result.Items,
		Total:         result.Total,
		PickupDate:    result.PickupDate.Format(domain.DateFormat),
		PickupTime:    result.PickupTime.String(),
		Status:        string(result.Status),
		PaymentStatus: string(result.PaymentStatus),
		Notes:         result.Notes,
		CreatedAt:     result.CreatedAt,
	}, nil
}

// buildOrderItems собирает позиции заказа из корзины, подставляя цены
// опций из настроек, и возвращает итоговую сумму.
func buildOrderItems(lines []*domain.CartLine, settings *domain.Settings) ([]domain.OrderItem, float64) {
	items := make([]domain.OrderItem, 0, len(lines))

	for _, line := range lines {
		item := domain.OrderItem{
			ProductName:    line.ProductName,
			UnitPrice:      line.UnitPrice,
			Quantity:       line.Quantity,
			SelectedOption: line.SelectedOption,
			LineTotal:      domain.LineTotal(line, settings.OptionPrice),
		}
		if line.SelectedOption != nil {
			if opt, ok := settings.FindOption(*line.SelectedOption); ok {
				item.OptionTitle = &opt.Title
				item.OptionPrice = opt.Price
			}
		}
		items = append(items, item)
	}

	return items, domain.CartTotal(lines, settings.OptionPrice)
}
