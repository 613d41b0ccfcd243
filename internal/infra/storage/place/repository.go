package place

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
	"github.com/m04kA/OpenHouse-BookingService/pkg/dbmetrics"
	"github.com/m04kA/OpenHouse-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с местами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мест
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое место
// Если в контексте передана активная транзакция, использует её - команда
// создания места материализует записи в той же транзакции
func (r *Repository) Create(ctx context.Context, place *domain.Place) (*domain.Place, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("places").
		Columns("site_id", "name", "gauge", "sort_order").
		Values(place.SiteID, place.Name, place.Gauge, place.SortOrder).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&place.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	place.CreatedAt = createdAt.Time

	return place, nil
}

// GetByIDs получает места по списку идентификаторов в рамках площадки
// Отсутствующие идентификаторы просто не попадают в результат
func (r *Repository) GetByIDs(ctx context.Context, siteID int64, ids []int64) ([]*domain.Place, error) {
	if len(ids) == 0 {
		return []*domain.Place{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "site_id", "name", "gauge", "sort_order", "created_at").
		From("places").
		Where(squirrel.Eq{"site_id": siteID, "id": ids}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanPlaces(rows)
}

// ListBySite получает все места площадки в порядке отображения
func (r *Repository) ListBySite(ctx context.Context, siteID int64) ([]*domain.Place, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "site_id", "name", "gauge", "sort_order", "created_at").
		From("places").
		Where(squirrel.Eq{"site_id": siteID}).
		OrderBy("sort_order ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySite - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySite - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanPlaces(rows)
}

// Delete удаляет место
// Связанные записи (appointments) удаляются каскадно на уровне схемы
func (r *Repository) Delete(ctx context.Context, siteID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("places").
		Where(squirrel.Eq{"site_id": siteID, "id": id}).
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
		return ErrPlaceNotFound
	}

	return nil
}

// scanPlaces сканирует результаты запроса в слайс мест
func (r *Repository) scanPlaces(rows *sql.Rows) ([]*domain.Place, error) {
	places := make([]*domain.Place, 0)

	for rows.Next() {
		var place domain.Place
		var createdAt sql.NullTime

		err := rows.Scan(
			&place.ID,
			&place.SiteID,
			&place.Name,
			&place.Gauge,
			&place.SortOrder,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanPlaces - scan row: %v", ErrScanRow, err)
		}

		place.CreatedAt = createdAt.Time
		places = append(places, &place)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPlaces - rows error: %v", ErrScanRow, err)
	}

	return places, nil
}
