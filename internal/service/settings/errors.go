package settings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid settings input")

	// ErrUnknownOption возвращается при ссылке на несуществующую опцию продукта
	ErrUnknownOption = errors.New("unknown product option")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
