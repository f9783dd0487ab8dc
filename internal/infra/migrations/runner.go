package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migration одна миграция схемы
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Runner применяет миграции из fs по порядку версий
// Текущая версия хранится в таблице schema_version
type Runner struct {
	db     *sql.DB
	fs     fs.FS
	logger Logger
}

// NewRunner создает новый экземпляр Runner
func NewRunner(db *sql.DB, migrationFS fs.FS, logger Logger) *Runner {
	return &Runner{
		db:     db,
		fs:     migrationFS,
		logger: logger,
	}
}

// Up применяет все миграции новее текущей версии
// Каждая миграция выполняется в своей транзакции вместе с обновлением версии
func (r *Runner) Up(ctx context.Context) (int, error) {
	current, err := r.CurrentVersion(ctx)
	if err != nil {
		return 0, err
	}

	migrations, err := Read(r.fs)
	if err != nil {
		return 0, err
	}

	if len(migrations) == 0 {
		return 0, nil
	}

	latest := migrations[len(migrations)-1].Version
	if current > latest {
		return 0, fmt.Errorf("%w: database=%d, application=%d", ErrSchemaTooNew, current, latest)
	}

	applied := 0
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		r.logger.Info("Applying migration %04d_%s", m.Version, m.Name)
		if err := r.apply(ctx, m); err != nil {
			return applied, err
		}
		applied++
	}

	if applied == 0 {
		r.logger.Info("Database schema is up to date (version %d)", current)
	}

	return applied, nil
}

// CurrentVersion возвращает текущую версию схемы (0 для пустой базы)
func (r *Runner) CurrentVersion(ctx context.Context) (int, error) {
	if _, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`); err != nil {
		return 0, fmt.Errorf("%w: CurrentVersion - create schema_version: %w", ErrApply, err)
	}

	var version int
	err := r.db.QueryRowContext(ctx, `SELECT version FROM schema_version`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: CurrentVersion - select version: %w", ErrApply, err)
	}

	return version, nil
}

func (r *Runner) apply(ctx context.Context, m Migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %d - begin: %w", ErrApply, m.Version, err)
	}

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %d (%s): %w", ErrApply, m.Version, m.Name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM schema_version`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %d - clear version: %w", ErrApply, m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES ($1)`, m.Version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %d - set version: %w", ErrApply, m.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %d - commit: %w", ErrApply, m.Version, err)
	}

	return nil
}

// Read читает миграции из корня fs, отсортированные по версии
func Read(migrationFS fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: read dir: %w", ErrInvalidFile, err)
	}

	migrations := make([]Migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		parts := strings.SplitN(entry.Name(), "_", 2)
		if len(parts) < 2 {
			return nil, fmt.Errorf("%w: %s (expected NNNN_name.sql)", ErrInvalidFile, entry.Name())
		}

		version, err := strconv.Atoi(parts[0])
		if err != nil || version < 1 {
			return nil, fmt.Errorf("%w: %s has no valid version", ErrInvalidFile, entry.Name())
		}

		content, err := fs.ReadFile(migrationFS, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFile, entry.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("%w: duplicate version %d", ErrInvalidFile, migrations[i].Version)
		}
	}

	return migrations, nil
}
