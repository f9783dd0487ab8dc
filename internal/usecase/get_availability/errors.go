package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном диапазоне дат
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrStorageUnavailable возвращается при ошибке чтения настроек или бронирований
	ErrStorageUnavailable = errors.New("get_availability: storage unavailable")
)
