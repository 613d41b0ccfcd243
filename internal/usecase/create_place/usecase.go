package create_place

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
)

// UseCase use case для создания места
type UseCase struct {
	placeRepo       PlaceRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	placeRepo PlaceRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		placeRepo:       placeRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case создания места
// Место и записи на все существующие слоты создаются в одной транзакции:
// частично материализованное место в расписании не появляется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePlace: site=%d, name=%s, gauge=%d", req.SiteID, req.Name, req.Gauge)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreatePlace: validation failed: %v", err)
		return nil, err
	}

	var (
		created             *domain.Place
		appointmentsCreated int64
	)

	// 2. Создаем место и материализуем записи
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		place, err := uc.placeRepo.Create(txCtx, &domain.Place{
			SiteID:    req.SiteID,
			Name:      strings.TrimSpace(req.Name),
			Gauge:     req.Gauge,
			SortOrder: req.SortOrder,
		})
		if err != nil {
			uc.logger.Error("CreatePlace: failed to create place: %v", err)
			return fmt.Errorf("%w: failed to create place: %v", ErrInternal, err)
		}

		count, err := uc.appointmentRepo.CreateForPlace(txCtx, req.SiteID, place.ID)
		if err != nil {
			uc.logger.Error("CreatePlace: failed to materialize appointments: %v", err)
			return fmt.Errorf("%w: failed to materialize appointments: %v", ErrInternal, err)
		}

		created = place
		appointmentsCreated = count
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreatePlace: created place id=%d, appointments=%d", created.ID, appointmentsCreated)

	return &Response{
		ID:                  created.ID,
		SiteID:              created.SiteID,
		Name:                created.Name,
		Gauge:               created.Gauge,
		SortOrder:           created.SortOrder,
		AppointmentsCreated: appointmentsCreated,
		CreatedAt:           created.CreatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SiteID <= 0 {
		return fmt.Errorf("%w: siteID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	if req.Gauge < domain.MinGauge || req.Gauge > domain.MaxGauge {
		return fmt.Errorf("%w: gauge must be between %d and %d", ErrInvalidInput, domain.MinGauge, domain.MaxGauge)
	}

	if req.SortOrder < 0 {
		return fmt.Errorf("%w: sortOrder must not be negative", ErrInvalidInput)
	}

	return nil
}
