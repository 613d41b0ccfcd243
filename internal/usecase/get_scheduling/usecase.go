package get_scheduling

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
	configRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/siteconfig"
)

// UseCase use case для получения расписания площадки с занятостью
type UseCase struct {
	placeRepo       PlaceRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	configRepo      ConfigRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	placeRepo PlaceRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	configRepo ConfigRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		placeRepo:       placeRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		logger:          logger,
	}
}

// Execute выполняет use case получения расписания
// Занятость читается без блокировок: сетка - снимок на момент запроса,
// точная проверка вместимости выполняется при бронировании
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetScheduling: site=%d", req.SiteID)

	// 1. Валидация входных данных
	if req.SiteID <= 0 {
		uc.logger.Warn("GetScheduling: invalid site id=%d", req.SiteID)
		return nil, fmt.Errorf("%w: siteID must be positive", ErrInvalidInput)
	}

	// 2. Получаем конфигурацию площадки
	cfg, err := uc.configRepo.GetBySiteID(ctx, req.SiteID)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("GetScheduling: failed to get site config: %v", err)
			return nil, fmt.Errorf("%w: failed to get site config: %v", ErrInternal, err)
		}
		cfg = domain.DefaultSiteConfig(req.SiteID)
		uc.logger.Info("GetScheduling: using default config for site=%d", req.SiteID)
	}

	// 3. Получаем места и слоты площадки
	places, err := uc.placeRepo.ListBySite(ctx, req.SiteID)
	if err != nil {
		uc.logger.Error("GetScheduling: failed to list places: %v", err)
		return nil, fmt.Errorf("%w: failed to list places: %v", ErrInternal, err)
	}

	slots, err := uc.scheduleRepo.ListBySite(ctx, req.SiteID)
	if err != nil {
		uc.logger.Error("GetScheduling: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 4. Получаем занятость всех записей площадки
	loads, err := uc.appointmentRepo.GetLoads(ctx, req.SiteID, cfg.EscortsEnabled())
	if err != nil {
		uc.logger.Error("GetScheduling: failed to get loads: %v", err)
		return nil, fmt.Errorf("%w: failed to get loads: %v", ErrInternal, err)
	}

	// 5. Собираем ответ
	resp := &Response{
		SiteID:    req.SiteID,
		Places:    make([]Place, 0, len(places)),
		Days:      groupByDay(slots),
		Occupancy: buildOccupancy(places, slots, loads, cfg),
	}
	for _, p := range places {
		resp.Places = append(resp.Places, Place{ID: p.ID, Name: p.Name, Gauge: p.Gauge})
	}

	uc.logger.Info("GetScheduling: site=%d, places=%d, slots=%d, cells=%d",
		req.SiteID, len(resp.Places), len(slots), len(resp.Occupancy))

	return resp, nil
}
