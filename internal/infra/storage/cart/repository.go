package cart

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/perkpoint/storefront-service/internal/domain"
	"github.com/perkpoint/storefront-service/pkg/dbmetrics"
	"github.com/perkpoint/storefront-service/pkg/psqlbuilder"
)

var cartColumns = []string{
	"id",
	"user_id",
	"product_id",
	"product_name",
	"unit_price",
	"quantity",
	"selected_option",
	"created_at",
	"updated_at",
}

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с корзинами пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория корзин
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert добавляет позицию в корзину. Ключ позиции - (user_id, product_id,
// selected_option): повторное добавление того же ключа увеличивает quantity,
// а не создаёт дубликат строки.
func (r *Repository) Upsert(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cart_items").
		Columns("user_id", "product_id", "product_name", "unit_price", "quantity", "selected_option").
		Values(line.UserID, line.ProductID, line.ProductName, line.UnitPrice, line.Quantity, line.SelectedOption).
		Suffix("ON CONFLICT (user_id, product_id, selected_option) DO UPDATE SET " +
			"quantity = cart_items.quantity + EXCLUDED.quantity, " +
			"updated_at = now() " +
			"RETURNING id, quantity, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&line.ID, &line.Quantity, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	line.CreatedAt = createdAt.Time
	line.UpdatedAt = updatedAt.Time

	return line, nil
}

// ListByUser получает все позиции корзины пользователя в порядке добавления.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.CartLine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(cartColumns...).
		From("cart_items").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lines := make([]*domain.CartLine, 0)
	for rows.Next() {
		var line domain.CartLine
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&line.ID,
			&line.UserID,
			&line.ProductID,
			&line.ProductName,
			&line.UnitPrice,
			&line.Quantity,
			&line.SelectedOption,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByUser - scan row: %v", ErrScanRow, err)
		}

		line.CreatedAt = createdAt.Time
		line.UpdatedAt = updatedAt.Time
		lines = append(lines, &line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUser - rows error: %v", ErrScanRow, err)
	}

	return lines, nil
}

// SetQuantity устанавливает количество позиции по её ключу.
func (r *Repository) SetQuantity(ctx context.Context, userID string, productID int64, selectedOption *string, quantity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("cart_items").
		Set("quantity", quantity).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"product_id": productID})

	if selectedOption == nil {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"selected_option": nil})
	} else {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"selected_option": *selectedOption})
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetQuantity - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetQuantity - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetQuantity - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLineNotFound
	}

	return nil
}

// DeleteLine удаляет позицию по её ключу.
func (r *Repository) DeleteLine(ctx context.Context, userID string, productID int64, selectedOption *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("cart_items").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"product_id": productID})

	if selectedOption == nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"selected_option": nil})
	} else {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"selected_option": *selectedOption})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteLine - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteLine - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteLine - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLineNotFound
	}

	return nil
}

// ClearByUser удаляет все позиции корзины пользователя.
// Вызывается после успешного оформления заказа.
func (r *Repository) ClearByUser(ctx context.Context, userID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("cart_items").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ClearByUser - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ClearByUser - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
