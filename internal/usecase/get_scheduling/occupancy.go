package get_scheduling

import "github.com/m04kA/OpenHouse-BookingService/internal/domain"

// buildOccupancy строит полную сетку занятости место x слот
// Записи без посетителей в выборке занятости отсутствуют, для них занятость 0
func buildOccupancy(
	places []*domain.Place,
	slots []*domain.ScheduleSlot,
	loads []*domain.AppointmentLoad,
	cfg *domain.SiteConfig,
) []Cell {
	loadByKey := make(map[domain.AppointmentKey]int, len(loads))
	for _, l := range loads {
		loadByKey[l.Key] = l.Load
	}

	cells := make([]Cell, 0, len(places)*len(slots))
	for _, place := range places {
		for _, slot := range slots {
			key := domain.AppointmentKey{PlaceID: place.ID, SlotID: slot.ID}
			load := loadByKey[key]

			cell := Cell{
				PlaceID: place.ID,
				SlotID:  slot.ID,
				Level:   string(cfg.Classify(place.Gauge, load)),
			}
			if cfg.ShowPeople {
				cell.People = load
			}
			if cfg.ShowDensity {
				cell.Density = domain.Density(place.Gauge, load)
			}

			cells = append(cells, cell)
		}
	}

	return cells
}

// groupByDay группирует слоты по календарным дням
// Слоты приходят отсортированными по времени начала, порядок дней сохраняется
func groupByDay(slots []*domain.ScheduleSlot) []Day {
	days := make([]Day, 0)
	for _, slot := range slots {
		day := slot.Day()

		s := Slot{
			ID:          slot.ID,
			StartsAt:    slot.StartsAt,
			Authorizeds: slot.Authorizeds,
		}

		if n := len(days); n > 0 && days[n-1].Date.Equal(day) {
			days[n-1].Slots = append(days[n-1].Slots, s)
			continue
		}
		days = append(days, Day{Date: day, Slots: []Slot{s}})
	}

	return days
}
