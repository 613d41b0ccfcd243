package domain

import "time"

// SiteConfig represents the per-site booking policy
// Единая версионированная структура: все поля явные, значения по умолчанию
// описаны в constants.go (вместо динамического набора атрибутов, различавшегося
// между инсталляциями)
type SiteConfig struct {
	ID     int64
	SiteID int64

	// MaxEscort максимум сопровождающих на посетителя; 0 выключает сбор размера группы
	MaxEscort int
	// MaxSlot максимум записей в одном бронировании
	// Значение <= 0 снимает ограничение площадки, действует только общий предел MaxSelections
	MaxSlot int

	// ShowPeople / ShowDensity управляют только отображением, не проверками
	ShowPeople  bool
	ShowDensity bool

	// Пороги классификации плотности, упорядочены: CautionLevel >= WarningLevel >= ForbiddenLevel
	// Метрика - плотность (запас вместимости на человека), меньше = хуже
	CautionLevel   float64
	WarningLevel   float64
	ForbiddenLevel float64

	// Recaptcha включает проверку токена перед любой обработкой бронирования
	Recaptcha          bool
	RecaptchaSiteKey   string
	RecaptchaSecretKey string

	// School включает сбор и проверку категории посетителя
	School bool

	SendEmailConfirmation bool
	// TestMode выбирает тестовый вариант письма подтверждения
	TestMode bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EscortsEnabled returns true if party size is collected and counted towards load
func (c *SiteConfig) EscortsEnabled() bool {
	return c.MaxEscort > 0
}

// MaxPeople максимальный размер группы: посетитель плюс сопровождающие
func (c *SiteConfig) MaxPeople() int {
	if !c.EscortsEnabled() {
		return 1
	}
	return c.MaxEscort + 1
}

// DefaultSiteConfig возвращает конфигурацию со значениями по умолчанию
// Используется, когда для площадки нет записи в site_config
func DefaultSiteConfig(siteID int64) *SiteConfig {
	return &SiteConfig{
		SiteID:         siteID,
		MaxEscort:      DefaultMaxEscort,
		MaxSlot:        DefaultMaxSlot,
		ShowPeople:     true,
		ShowDensity:    true,
		CautionLevel:   DefaultCautionLevel,
		WarningLevel:   DefaultWarningLevel,
		ForbiddenLevel: DefaultForbiddenLevel,
	}
}
