package domain

// Default site configuration values
const (
	DefaultMaxEscort = 0 // сбор размера группы выключен
	DefaultMaxSlot   = 1

	// Пороги плотности по умолчанию: запас вместимости на человека
	DefaultCautionLevel   = 8.0
	DefaultWarningLevel   = 4.0
	DefaultForbiddenLevel = 3.0
)

// Business validation constants
const (
	MinPeople = 1

	MaxNameLength     = 100
	MaxEmailLength    = 254
	MaxCategoryLength = 10

	MinGauge = 1
	MaxGauge = 10000

	// MaxSelections верхняя граница количества записей в запросе независимо от max_slot
	MaxSelections = 50
)

// Time format constants
const (
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04" // YYYY-MM-DD HH:MM
)
