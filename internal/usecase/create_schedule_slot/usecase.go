package create_schedule_slot

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
)

// UseCase use case для создания слота расписания
type UseCase struct {
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case создания слота расписания
// Слот и записи на все существующие места создаются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateScheduleSlot: site=%d, starts_at=%s, authorizeds=%v",
		req.SiteID, req.StartsAt.Format(domain.DateTimeFormat), req.Authorizeds)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateScheduleSlot: validation failed: %v", err)
		return nil, err
	}

	var (
		created             *domain.ScheduleSlot
		appointmentsCreated int64
	)

	// 2. Создаем слот и материализуем записи
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := uc.scheduleRepo.Create(txCtx, &domain.ScheduleSlot{
			SiteID:      req.SiteID,
			StartsAt:    req.StartsAt,
			Authorizeds: normalizeCodes(req.Authorizeds),
		})
		if err != nil {
			uc.logger.Error("CreateScheduleSlot: failed to create slot: %v", err)
			return fmt.Errorf("%w: failed to create slot: %v", ErrInternal, err)
		}

		count, err := uc.appointmentRepo.CreateForSlot(txCtx, req.SiteID, slot.ID)
		if err != nil {
			uc.logger.Error("CreateScheduleSlot: failed to materialize appointments: %v", err)
			return fmt.Errorf("%w: failed to materialize appointments: %v", ErrInternal, err)
		}

		created = slot
		appointmentsCreated = count
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateScheduleSlot: created slot id=%d, appointments=%d", created.ID, appointmentsCreated)

	return &Response{
		ID:                  created.ID,
		SiteID:              created.SiteID,
		StartsAt:            created.StartsAt,
		Authorizeds:         created.Authorizeds,
		AppointmentsCreated: appointmentsCreated,
		CreatedAt:           created.CreatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SiteID <= 0 {
		return fmt.Errorf("%w: siteID must be positive", ErrInvalidInput)
	}

	if req.StartsAt.IsZero() {
		return fmt.Errorf("%w: startsAt is required", ErrInvalidInput)
	}

	for _, code := range req.Authorizeds {
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			return fmt.Errorf("%w: empty category code", ErrInvalidInput)
		}
		if len(trimmed) > domain.MaxCategoryLength {
			return fmt.Errorf("%w: category code %q is too long", ErrInvalidInput, trimmed)
		}
	}

	return nil
}

// normalizeCodes убирает пробелы и дубликаты из списка кодов
func normalizeCodes(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		trimmed := strings.TrimSpace(code)
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	return out
}
