package appointment

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

// Repository репозиторий для работы с записями (место x слот)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateForPlace материализует записи для нового места: по одной на каждый
// существующий слот площадки. Вызывается в той же транзакции, что и вставка места.
// ON CONFLICT DO NOTHING делает материализацию идемпотентной: для пары
// (место, слот) не может существовать двух записей
func (r *Repository) CreateForPlace(ctx context.Context, siteID, placeID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns("place_id", "slot_id").
		Select(
			squirrel.Select().
				Column(squirrel.Expr("?", placeID)).
				Column("id").
				From("schedule_slots").
				Where(squirrel.Eq{"site_id": siteID}),
		).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CreateForPlace - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateForPlace - execute insert: %v", ErrExecQuery, err)
	}

	created, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateForPlace - get rows affected: %v", ErrExecQuery, err)
	}

	return created, nil
}

// CreateForSlot материализует записи для нового слота: по одной на каждое
// существующее место площадки. Симметрично CreateForPlace
func (r *Repository) CreateForSlot(ctx context.Context, siteID, slotID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns("place_id", "slot_id").
		Select(
			squirrel.Select().
				Column("id").
				Column(squirrel.Expr("?", slotID)).
				From("places").
				Where(squirrel.Eq{"site_id": siteID}),
		).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CreateForSlot - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateForSlot - execute insert: %v", ErrExecQuery, err)
	}

	created, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateForSlot - get rows affected: %v", ErrExecQuery, err)
	}

	return created, nil
}

// GetLoads получает занятость всех записей площадки
// Запись без посетителей возвращается с нулевой занятостью (LEFT JOIN)
// countPeople: true - суммировать размер групп, false - считать посетителей
func (r *Repository) GetLoads(ctx context.Context, siteID int64, countPeople bool) ([]*domain.AppointmentLoad, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"a.place_id",
		"a.slot_id",
		loadExpression(countPeople),
	).
		From("appointments a").
		Join("places p ON p.id = a.place_id").
		LeftJoin("appointment_students ast ON ast.place_id = a.place_id AND ast.slot_id = a.slot_id").
		LeftJoin("students st ON st.id = ast.student_id").
		Where(squirrel.Eq{"p.site_id": siteID}).
		GroupBy("a.place_id", "a.slot_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLoads - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLoads - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanLoads(rows)
}

// LockForBooking блокирует записи по ключам и возвращает их вместе с
// вместимостью места и временем слота
// Блокировка (FOR UPDATE) берется только внутри транзакции и строго в
// фиксированном порядке ключей (place_id, slot_id) - два конкурентных
// бронирования с пересекающимися наборами не попадают в deadlock
func (r *Repository) LockForBooking(ctx context.Context, keys []domain.AppointmentKey) ([]*domain.Appointment, error) {
	if len(keys) == 0 {
		return []*domain.Appointment{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"a.place_id",
		"a.slot_id",
		"p.name",
		"p.gauge",
		"s.starts_at",
	).
		From("appointments a").
		Join("places p ON p.id = a.place_id").
		Join("schedule_slots s ON s.id = a.slot_id").
		Where(keysPredicate("a", keys)).
		OrderBy("a.place_id ASC, a.slot_id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: LockForBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: LockForBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0, len(keys))

	for rows.Next() {
		var appt domain.Appointment

		err := rows.Scan(
			&appt.Key.PlaceID,
			&appt.Key.SlotID,
			&appt.PlaceName,
			&appt.Gauge,
			&appt.SlotStartsAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: LockForBooking - scan row: %v", ErrScanRow, err)
		}

		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: LockForBooking - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// GetLoadsByKeys получает занятость указанных записей
// Вызывается внутри транзакции бронирования после LockForBooking - прочитанная
// занятость учитывает все зафиксированные конкурентные бронирования
// Записи без посетителей в результат не попадают (занятость 0 у вызывающей стороны)
func (r *Repository) GetLoadsByKeys(ctx context.Context, keys []domain.AppointmentKey, countPeople bool) ([]*domain.AppointmentLoad, error) {
	if len(keys) == 0 {
		return []*domain.AppointmentLoad{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"ast.place_id",
		"ast.slot_id",
		loadExpression(countPeople),
	).
		From("appointment_students ast").
		Join("students st ON st.id = ast.student_id").
		Where(keysPredicate("ast", keys)).
		GroupBy("ast.place_id", "ast.slot_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLoadsByKeys - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLoadsByKeys - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanLoads(rows)
}

// AddStudent добавляет посетителя во все указанные записи одним запросом
// Вызывается внутри транзакции бронирования после проверки вместимости
func (r *Repository) AddStudent(ctx context.Context, keys []domain.AppointmentKey, studentID int64) error {
	if len(keys) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("appointment_students").
		Columns("place_id", "slot_id", "student_id")

	for _, key := range keys {
		insertBuilder = insertBuilder.Values(key.PlaceID, key.SlotID, studentID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddStudent - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: AddStudent: %v", ErrAlreadyBooked, err)
		}
		return fmt.Errorf("%w: AddStudent - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// scanLoads сканирует результаты запроса занятости
func (r *Repository) scanLoads(rows *sql.Rows) ([]*domain.AppointmentLoad, error) {
	loads := make([]*domain.AppointmentLoad, 0)

	for rows.Next() {
		var load domain.AppointmentLoad

		if err := rows.Scan(&load.Key.PlaceID, &load.Key.SlotID, &load.Load); err != nil {
			return nil, fmt.Errorf("%w: scanLoads - scan row: %v", ErrScanRow, err)
		}

		loads = append(loads, &load)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanLoads - rows error: %v", ErrScanRow, err)
	}

	return loads, nil
}

// loadExpression выражение агрегации занятости
// Суммирование размера групп или подсчет посетителей - в зависимости от того,
// включен ли на площадке сбор сопровождающих (max_escort)
func loadExpression(countPeople bool) string {
	if countPeople {
		return "COALESCE(SUM(st.people), 0) AS load"
	}
	return "COUNT(st.id) AS load"
}

// keysPredicate строит условие выборки по списку составных ключей
func keysPredicate(alias string, keys []domain.AppointmentKey) squirrel.Or {
	or := make(squirrel.Or, 0, len(keys))
	for _, key := range keys {
		or = append(or, squirrel.Eq{
			alias + ".place_id": key.PlaceID,
			alias + ".slot_id":  key.SlotID,
		})
	}
	return or
}
