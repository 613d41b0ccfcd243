package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
	"github.com/m04kA/OpenHouse-BookingService/pkg/dbmetrics"
	"github.com/m04kA/OpenHouse-BookingService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL unique_violation
const pgUniqueViolation = "23505"

// Repository репозиторий для работы с посетителями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория посетителей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового посетителя
// Уникальность email проверяется на уровне схемы: нарушение возвращается как
// ErrDuplicateEmail до любых проверок вместимости
func (r *Repository) Create(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("students").
		Columns(
			"site_id",
			"first_name",
			"last_name",
			"email",
			"people",
			"school_id",
			"confirmation_code",
		).
		Values(
			student.SiteID,
			student.FirstName,
			student.LastName,
			student.Email,
			student.People,
			student.SchoolID,
			student.ConfirmationCode,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&student.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, student.Email)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	student.CreatedAt = createdAt.Time

	return student, nil
}

// Delete удаляет посетителя
// Компенсирующее удаление при откате бронирования: запись о регистрации не
// должна пережить несостоявшееся бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// GetByID получает посетителя по идентификатору
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"site_id",
		"first_name",
		"last_name",
		"email",
		"people",
		"school_id",
		"confirmation_code",
		"created_at",
	).
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var student domain.Student
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&student.ID,
		&student.SiteID,
		&student.FirstName,
		&student.LastName,
		&student.Email,
		&student.People,
		&student.SchoolID,
		&student.ConfirmationCode,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan student: %v", ErrScanRow, err)
	}

	student.CreatedAt = createdAt.Time

	return &student, nil
}
