package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
	configRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/siteconfig"
	"github.com/m04kA/OpenHouse-BookingService/internal/service/config/models"
)

// Service сервис для работы с публичной конфигурацией площадки
type Service struct {
	configRepo ConfigRepository
	schoolRepo SchoolRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	schoolRepo SchoolRepository,
	logger Logger,
) *Service {
	return &Service{
		configRepo: configRepo,
		schoolRepo: schoolRepo,
		logger:     logger,
	}
}

// GetBySite получает публичную часть конфигурации площадки
// Площадка без записи в site_config отдает значения по умолчанию
func (s *Service) GetBySite(ctx context.Context, siteID int64) (*models.PublicConfigResponse, error) {
	s.logger.Info("GetBySite: fetching config for site=%d", siteID)

	cfg, err := s.configRepo.GetBySiteID(ctx, siteID)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Error("GetBySite: repository error for site=%d: %v", siteID, err)
			return nil, fmt.Errorf("%w: GetBySite - repository error: %v", ErrInternal, err)
		}
		cfg = domain.DefaultSiteConfig(siteID)
		s.logger.Info("GetBySite: using default config for site=%d", siteID)
	}

	var schools []*domain.School
	if cfg.School {
		schools, err = s.schoolRepo.ListBySite(ctx, siteID)
		if err != nil {
			s.logger.Error("GetBySite: failed to list schools for site=%d: %v", siteID, err)
			return nil, fmt.Errorf("%w: GetBySite - failed to list schools: %v", ErrInternal, err)
		}
	}

	s.logger.Info("GetBySite: successfully fetched config for site=%d, schools=%d", siteID, len(schools))
	return models.FromDomainConfig(cfg, schools), nil
}
