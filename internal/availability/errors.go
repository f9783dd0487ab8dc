package availability

import "errors"

var (
	// ErrInvalidConfiguration настройки календаря не дают ни одного слота
	ErrInvalidConfiguration = errors.New("availability: invalid calendar configuration")
)
