package catalog

import (
	"context"
	"errors"
	"fmt"

	placeRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/place"
	scheduleRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/schedule"
	schoolRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/school"
)

// Service сервис для администрирования каталога площадки: места, слоты, школы
// Удаление места или слота каскадно удаляет записи вместе с бронированиями,
// операция необратима и доступна только администратору
type Service struct {
	placeRepo    PlaceRepository
	scheduleRepo ScheduleRepository
	schoolRepo   SchoolRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	placeRepo PlaceRepository,
	scheduleRepo ScheduleRepository,
	schoolRepo SchoolRepository,
	logger Logger,
) *Service {
	return &Service{
		placeRepo:    placeRepo,
		scheduleRepo: scheduleRepo,
		schoolRepo:   schoolRepo,
		logger:       logger,
	}
}

// DeletePlace удаляет место вместе с его записями
func (s *Service) DeletePlace(ctx context.Context, siteID, id int64) error {
	s.logger.Info("DeletePlace: site=%d, place=%d", siteID, id)

	if err := s.placeRepo.Delete(ctx, siteID, id); err != nil {
		if errors.Is(err, placeRepo.ErrPlaceNotFound) {
			s.logger.Warn("DeletePlace: place id=%d not found", id)
			return ErrPlaceNotFound
		}
		s.logger.Error("DeletePlace: repository error for place id=%d: %v", id, err)
		return fmt.Errorf("%w: DeletePlace - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeletePlace: successfully deleted place id=%d", id)
	return nil
}

// DeleteScheduleSlot удаляет слот расписания вместе с его записями
func (s *Service) DeleteScheduleSlot(ctx context.Context, siteID, id int64) error {
	s.logger.Info("DeleteScheduleSlot: site=%d, slot=%d", siteID, id)

	if err := s.scheduleRepo.Delete(ctx, siteID, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrSlotNotFound) {
			s.logger.Warn("DeleteScheduleSlot: slot id=%d not found", id)
			return ErrSlotNotFound
		}
		s.logger.Error("DeleteScheduleSlot: repository error for slot id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteScheduleSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteScheduleSlot: successfully deleted slot id=%d", id)
	return nil
}

// DeleteSchool удаляет школу
// Пока на школу ссылается хотя бы один посетитель, удаление отклоняется
func (s *Service) DeleteSchool(ctx context.Context, siteID, id int64) error {
	s.logger.Info("DeleteSchool: site=%d, school=%d", siteID, id)

	if err := s.schoolRepo.Delete(ctx, siteID, id); err != nil {
		switch {
		case errors.Is(err, schoolRepo.ErrSchoolNotFound):
			s.logger.Warn("DeleteSchool: school id=%d not found", id)
			return ErrSchoolNotFound
		case errors.Is(err, schoolRepo.ErrSchoolReferenced):
			s.logger.Warn("DeleteSchool: school id=%d is referenced by students", id)
			return ErrSchoolReferenced
		default:
			s.logger.Error("DeleteSchool: repository error for school id=%d: %v", id, err)
			return fmt.Errorf("%w: DeleteSchool - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("DeleteSchool: successfully deleted school id=%d", id)
	return nil
}
