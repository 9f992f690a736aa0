package cart

import "errors"

var (
	// ErrProductNotFound возвращается, когда продукт не найден
	ErrProductNotFound = errors.New("product not found")

	// ErrProductUnavailable возвращается при попытке добавить недоступный продукт
	ErrProductUnavailable = errors.New("product is not available")

	// ErrLineNotFound возвращается, когда позиция корзины не найдена
	ErrLineNotFound = errors.New("cart item not found")

	// ErrInvalidOption возвращается при выборе опции, недоступной для продукта
	ErrInvalidOption = errors.New("option is not available for this product")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid cart input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
