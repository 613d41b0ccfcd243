package domain

// Level светофорная классификация занятости записи
type Level string

const (
	LevelOK        Level = "ok"
	LevelCaution   Level = "caution"
	LevelWarning   Level = "warning"
	LevelForbidden Level = "forbidden"
)

// Density плотность записи: запас вместимости на человека
// Знаменатель load+1 резервирует место под следующего потенциального посетителя,
// поэтому показанный цвет уже отражает состояние после его записи
func Density(gauge, load int) float64 {
	return float64(gauge) / float64(load+1)
}

// Classify классифицирует занятость записи по порогам конфигурации
// Пустая запись всегда ok - это правило только для отображения, проверка
// вместимости при бронировании через него не обходится
// Совпадение с порогом трактуется в худшую сторону: forbidden, затем warning, затем caution
func (c *SiteConfig) Classify(gauge, load int) Level {
	if load == 0 {
		return LevelOK
	}

	density := Density(gauge, load)
	switch {
	case density <= c.ForbiddenLevel:
		return LevelForbidden
	case density <= c.WarningLevel:
		return LevelWarning
	case density <= c.CautionLevel:
		return LevelCaution
	default:
		return LevelOK
	}
}
