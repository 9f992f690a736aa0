package create_order

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate возвращается при некорректной дате самовывоза
	ErrInvalidDate = errors.New("invalid collection date")

	// ErrDateNotOfferable возвращается для дат, в которые фургон не работает
	ErrDateNotOfferable = errors.New("collection is not offered on this date")

	// ErrInvalidTime возвращается для времени вне сетки слотов
	ErrInvalidTime = errors.New("invalid collection time")

	// ErrSlotTooSoon возвращается, когда до слота осталось меньше минимального запаса
	ErrSlotTooSoon = errors.New("collection slot is too soon")

	// ErrSlotFull возвращается, когда слот занят до предела вместимости
	ErrSlotFull = errors.New("collection slot is fully booked")

	// ErrEmptyCart возвращается при попытке оформить заказ с пустой корзиной
	ErrEmptyCart = errors.New("cart is empty")

	// ErrTermsNotAccepted возвращается, когда условия обслуживания не приняты
	ErrTermsNotAccepted = errors.New("terms must be accepted")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
