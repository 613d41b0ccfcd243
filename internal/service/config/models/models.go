package models

import "github.com/m04kA/OpenHouse-BookingService/internal/domain"

// PublicConfigResponse публичная часть конфигурации площадки
// Секретный ключ reCAPTCHA и служебные флаги клиенту не отдаются
type PublicConfigResponse struct {
	SiteID int64 `json:"siteId"`

	MaxEscort int `json:"maxEscort"`
	MaxPeople int `json:"maxPeople"`
	MaxSlot   int `json:"maxSlot"`

	ShowPeople  bool `json:"showPeople"`
	ShowDensity bool `json:"showDensity"`

	CautionLevel   float64 `json:"cautionLevel"`
	WarningLevel   float64 `json:"warningLevel"`
	ForbiddenLevel float64 `json:"forbiddenLevel"`

	Recaptcha        bool   `json:"recaptcha"`
	RecaptchaSiteKey string `json:"recaptchaSiteKey,omitempty"`

	School  bool             `json:"school"`
	Schools []SchoolResponse `json:"schools,omitempty"`
}

// SchoolResponse школа в публичной конфигурации
type SchoolResponse struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// FromDomainConfig конвертирует доменную конфигурацию в публичный ответ
func FromDomainConfig(cfg *domain.SiteConfig, schools []*domain.School) *PublicConfigResponse {
	resp := &PublicConfigResponse{
		SiteID:           cfg.SiteID,
		MaxEscort:        cfg.MaxEscort,
		MaxPeople:        cfg.MaxPeople(),
		MaxSlot:          cfg.MaxSlot,
		ShowPeople:       cfg.ShowPeople,
		ShowDensity:      cfg.ShowDensity,
		CautionLevel:     cfg.CautionLevel,
		WarningLevel:     cfg.WarningLevel,
		ForbiddenLevel:   cfg.ForbiddenLevel,
		Recaptcha:        cfg.Recaptcha,
		RecaptchaSiteKey: cfg.RecaptchaSiteKey,
		School:           cfg.School,
	}

	for _, s := range schools {
		resp.Schools = append(resp.Schools, SchoolResponse{ID: s.ID, Code: s.Code, Name: s.Name})
	}

	return resp
}
