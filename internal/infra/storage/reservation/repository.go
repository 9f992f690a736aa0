package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/perkpoint/storefront-service/internal/domain"
	"github.com/perkpoint/storefront-service/pkg/dbmetrics"
	"github.com/perkpoint/storefront-service/pkg/psqlbuilder"
	"github.com/perkpoint/storefront-service/pkg/types"
)

const uniqueViolation = "23505"

// Repository репозиторий для работы с резервациями слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория резерваций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает резервацию слота для заказа.
// Уникальный индекс (date, time, order_id) делает запись идемпотентной
// по order_id: повтор возвращает ErrDuplicateReservation.
func (r *Repository) Create(ctx context.Context, res *domain.SlotReservation) (*domain.SlotReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_reservations").
		Columns("reservation_date", "start_time", "order_id").
		Values(res.Date, res.StartTime, res.OrderID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrDuplicateReservation
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return res, nil
}

// GetForSlot возвращает все резервации слота (date, time).
// Внутри транзакции блокирует строки (FOR UPDATE), чтобы проверка
// вместимости и запись новой резервации были атомарны.
func (r *Repository) GetForSlot(ctx context.Context, date time.Time, startTime types.TimeString) ([]*domain.SlotReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "reservation_date", "start_time", "order_id", "created_at").
		From("slot_reservations").
		Where(squirrel.Eq{"reservation_date": date}).
		Where(squirrel.Eq{"start_time": startTime}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetForSlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForSlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// TimesAtCapacity возвращает времена слотов даты, занятые до предела maxPerSlot.
// Используется движком доступности для пометки слотов как недоступных.
func (r *Repository) TimesAtCapacity(ctx context.Context, date time.Time, maxPerSlot int) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time").
		From("slot_reservations").
		Where(squirrel.Eq{"reservation_date": date}).
		GroupBy("start_time").
		Having("COUNT(*) >= ?", maxPerSlot).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: TimesAtCapacity - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: TimesAtCapacity - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: TimesAtCapacity - scan start_time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: TimesAtCapacity - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// DeleteByOrderID освобождает слот заказа (используется при отмене заказа).
func (r *Repository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_reservations").
		Where(squirrel.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByOrderID - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByOrderID - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByOrderID - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// scanReservations сканирует результаты запроса в слайс резерваций
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.SlotReservation, error) {
	reservations := make([]*domain.SlotReservation, 0)

	for rows.Next() {
		var res domain.SlotReservation
		if err := rows.Scan(&res.ID, &res.Date, &res.StartTime, &res.OrderID, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
