package settings

import "errors"

var (
	// ErrInvalidConfiguration возвращается, когда новые настройки не дают ни одного слота
	// или содержат недопустимые значения
	ErrInvalidConfiguration = errors.New("settings: invalid configuration")

	// ErrStorageUnavailable возвращается при ошибках хранилища
	ErrStorageUnavailable = errors.New("settings: storage unavailable")
)
