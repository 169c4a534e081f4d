package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
	"github.com/m04kA/SMC-BookingBot/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BookingBot/pkg/txmanager"
)

// Repository репозиторий пользователей
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateIfNotExists добавляет пользователя, если его еще нет.
// Существующая запись не обновляется: повторный вызов ничего не меняет.
// Возвращает true, если запись была создана
func (r *Repository) CreateIfNotExists(ctx context.Context, user *domain.User) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("user_id", "full_name", "phone").
		Values(user.UserID, user.FullName, user.Phone).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: CreateIfNotExists - build insert query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfNotExists - execute insert: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfNotExists - rows affected: %v", ErrExecQuery, err)
	}

	return affected > 0, nil
}

// GetByUserID получает пользователя по внешнему идентификатору
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.User, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("user_id", "full_name", "phone", "created_at").
		From("users").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		u         domain.User
		createdAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.UserID, &u.FullName, &u.Phone, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan user: %v", ErrScanRow, err)
	}

	u.CreatedAt = createdAt.Time

	return &u, nil
}
