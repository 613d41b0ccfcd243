package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
	"github.com/m04kA/OpenHouse-BookingService/pkg/dbmetrics"
	"github.com/m04kA/OpenHouse-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы со слотами расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот расписания
// Если в контексте передана активная транзакция, использует её - команда
// создания слота материализует записи в той же транзакции
func (r *Repository) Create(ctx context.Context, slot *domain.ScheduleSlot) (*domain.ScheduleSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_slots").
		Columns("site_id", "starts_at", "authorizeds").
		Values(slot.SiteID, slot.StartsAt, pq.Array(slot.Authorizeds)).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time

	return slot, nil
}

// GetByIDs получает слоты по списку идентификаторов в рамках площадки
// Отсутствующие идентификаторы просто не попадают в результат
func (r *Repository) GetByIDs(ctx context.Context, siteID int64, ids []int64) ([]*domain.ScheduleSlot, error) {
	if len(ids) == 0 {
		return []*domain.ScheduleSlot{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "site_id", "starts_at", "authorizeds", "created_at").
		From("schedule_slots").
		Where(squirrel.Eq{"site_id": siteID, "id": ids}).
		OrderBy("starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// ListBySite получает все слоты площадки в хронологическом порядке
func (r *Repository) ListBySite(ctx context.Context, siteID int64) ([]*domain.ScheduleSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "site_id", "starts_at", "authorizeds", "created_at").
		From("schedule_slots").
		Where(squirrel.Eq{"site_id": siteID}).
		OrderBy("starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySite - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySite - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// Delete удаляет слот расписания
// Связанные записи (appointments) удаляются каскадно на уровне схемы
func (r *Repository) Delete(ctx context.Context, siteID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_slots").
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
		return ErrSlotNotFound
	}

	return nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.ScheduleSlot, error) {
	slots := make([]*domain.ScheduleSlot, 0)

	for rows.Next() {
		var slot domain.ScheduleSlot
		var createdAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.SiteID,
			&slot.StartsAt,
			pq.Array(&slot.Authorizeds),
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
