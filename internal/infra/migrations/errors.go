package migrations

import "errors"

var (
	// ErrInvalidFile имя файла миграции не соответствует формату NNNN_name.sql
	ErrInvalidFile = errors.New("migrations: invalid migration file")

	// ErrSchemaTooNew версия схемы в базе новее, чем известно приложению
	ErrSchemaTooNew = errors.New("migrations: database schema is newer than the application")

	// ErrApply ошибка применения миграции
	ErrApply = errors.New("migrations: failed to apply migration")
)
