package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrStorageUnavailable возвращается, когда настройки или бронирования не удалось прочитать
	// Никогда не подменяется пустым списком слотов
	ErrStorageUnavailable = errors.New("get_available_slots: storage unavailable")
)
