package school

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

// pgForeignKeyViolation код ошибки PostgreSQL foreign_key_violation
const pgForeignKeyViolation = "23503"

// Repository репозиторий для работы со школами (категориями посетителей)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория школ
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую школу
func (r *Repository) Create(ctx context.Context, school *domain.School) (*domain.School, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schools").
		Columns("site_id", "code", "name").
		Values(school.SiteID, school.Code, school.Name).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&school.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return school, nil
}

// GetByCode получает школу площадки по коду категории
func (r *Repository) GetByCode(ctx context.Context, siteID int64, code string) (*domain.School, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "site_id", "code", "name").
		From("schools").
		Where(squirrel.Eq{"site_id": siteID, "code": code}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	var school domain.School
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&school.ID,
		&school.SiteID,
		&school.Code,
		&school.Name,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSchoolNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan school: %v", ErrScanRow, err)
	}

	return &school, nil
}

// ListBySite получает все школы площадки
func (r *Repository) ListBySite(ctx context.Context, siteID int64) ([]*domain.School, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "site_id", "code", "name").
		From("schools").
		Where(squirrel.Eq{"site_id": siteID}).
		OrderBy("code ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySite - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySite - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schools := make([]*domain.School, 0)

	for rows.Next() {
		var school domain.School
		if err := rows.Scan(&school.ID, &school.SiteID, &school.Code, &school.Name); err != nil {
			return nil, fmt.Errorf("%w: ListBySite - scan row: %v", ErrScanRow, err)
		}
		schools = append(schools, &school)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySite - rows error: %v", ErrScanRow, err)
	}

	return schools, nil
}

// Delete удаляет школу
// Пока на школу ссылается хотя бы один посетитель, удаление запрещено
// (ON DELETE RESTRICT) и возвращается ErrSchoolReferenced
func (r *Repository) Delete(ctx context.Context, siteID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schools").
		Where(squirrel.Eq{"site_id": siteID, "id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return fmt.Errorf("%w: Delete: %v", ErrSchoolReferenced, err)
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSchoolNotFound
	}

	return nil
}
