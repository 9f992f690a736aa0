package orders

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("order not found")

	// ErrAccessDenied возвращается, когда заказ принадлежит другому пользователю
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStatus возвращается при недопустимом статусе
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("order status transition is not allowed")

	// ErrAlreadyPaid возвращается при попытке повторной оплаты заказа
	ErrAlreadyPaid = errors.New("order is already paid")

	// ErrPaymentFailed возвращается при отказе платежного провайдера
	ErrPaymentFailed = errors.New("payment provider request failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid order input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
