package siteconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
	"github.com/m04kA/OpenHouse-BookingService/pkg/dbmetrics"
	"github.com/m04kA/OpenHouse-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий конфигурации площадок (read-only для ядра бронирования)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySiteID получает конфигурацию площадки
// Если записи нет, возвращает ErrConfigNotFound - вызывающая сторона
// подставляет значения по умолчанию (domain.DefaultSiteConfig)
func (r *Repository) GetBySiteID(ctx context.Context, siteID int64) (*domain.SiteConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"site_id",
		"max_escort",
		"max_slot",
		"show_people",
		"show_density",
		"caution_level",
		"warning_level",
		"forbidden_level",
		"recaptcha",
		"recaptcha_site_key",
		"recaptcha_secret_key",
		"school",
		"send_email_confirmation",
		"test_mode",
		"created_at",
		"updated_at",
	).
		From("site_config").
		Where(squirrel.Eq{"site_id": siteID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySiteID - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.SiteConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.SiteID,
		&config.MaxEscort,
		&config.MaxSlot,
		&config.ShowPeople,
		&config.ShowDensity,
		&config.CautionLevel,
		&config.WarningLevel,
		&config.ForbiddenLevel,
		&config.Recaptcha,
		&config.RecaptchaSiteKey,
		&config.RecaptchaSecretKey,
		&config.School,
		&config.SendEmailConfirmation,
		&config.TestMode,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySiteID - scan config: %v", ErrScanRow, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
