package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/perkpoint/storefront-service/internal/domain"
	"github.com/perkpoint/storefront-service/pkg/dbmetrics"
	"github.com/perkpoint/storefront-service/pkg/psqlbuilder"
)

// settingsRowID настройки хранятся единственной строкой с закреплённым id
const settingsRowID = 1

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с документом настроек витрины
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get читает документ настроек. Если строки нет - ErrSettingsNotFound.
func (r *Repository) Get(ctx context.Context) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"max_orders_per_slot",
		"blocked_dates",
		"product_options",
		"updated_at",
	).
		From("storefront_settings").
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Settings
	var blockedDates, productOptions []byte
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.MaxOrdersPerSlot,
		&blockedDates,
		&productOptions,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(blockedDates, &s.BlockedDates); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal blocked_dates: %v", ErrScanRow, err)
	}
	if err := json.Unmarshal(productOptions, &s.ProductOptions); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal product_options: %v", ErrScanRow, err)
	}

	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert записывает документ настроек целиком (insert или replace).
func (r *Repository) Upsert(ctx context.Context, s *domain.Settings) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blockedDates, err := json.Marshal(s.BlockedDates)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - marshal blocked_dates: %v", ErrEncode, err)
	}
	productOptions, err := json.Marshal(s.ProductOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - marshal product_options: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("storefront_settings").
		Columns("id", "max_orders_per_slot", "blocked_dates", "product_options", "updated_at").
		Values(settingsRowID, s.MaxOrdersPerSlot, blockedDates, productOptions, squirrel.Expr("now()")).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"max_orders_per_slot = EXCLUDED.max_orders_per_slot, " +
			"blocked_dates = EXCLUDED.blocked_dates, " +
			"product_options = EXCLUDED.product_options, " +
			"updated_at = now() " +
			"RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	s.UpdatedAt = updatedAt.Time

	return s, nil
}
