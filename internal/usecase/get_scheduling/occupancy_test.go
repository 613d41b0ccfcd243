package get_scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
)

func testCfg() *domain.SiteConfig {
	return &domain.SiteConfig{
		ShowPeople:     true,
		ShowDensity:    true,
		CautionLevel:   8.0,
		WarningLevel:   4.0,
		ForbiddenLevel: 3.0,
	}
}

func TestBuildOccupancy_FullGrid(t *testing.T) {
	places := []*domain.Place{
		{ID: 1, Gauge: 10},
		{ID: 2, Gauge: 50},
	}
	slots := []*domain.ScheduleSlot{{ID: 5}, {ID: 6}}
	loads := []*domain.AppointmentLoad{
		{Key: domain.AppointmentKey{PlaceID: 1, SlotID: 5}, Load: 3},
	}

	cells := buildOccupancy(places, slots, loads, testCfg())

	// Полная сетка место x слот, записи без посетителей с нулевой занятостью
	require.Len(t, cells, 4)

	assert.Equal(t, 3, cells[0].People)
	assert.InDelta(t, 2.5, cells[0].Density, 0.0001)
	assert.Equal(t, string(domain.LevelForbidden), cells[0].Level)

	for _, c := range cells[1:] {
		assert.Equal(t, 0, c.People)
		assert.Equal(t, string(domain.LevelOK), c.Level)
	}
}

func TestBuildOccupancy_DisplaySuppression(t *testing.T) {
	places := []*domain.Place{{ID: 1, Gauge: 10}}
	slots := []*domain.ScheduleSlot{{ID: 5}}
	loads := []*domain.AppointmentLoad{
		{Key: domain.AppointmentKey{PlaceID: 1, SlotID: 5}, Load: 3},
	}

	cfg := testCfg()
	cfg.ShowPeople = false
	cfg.ShowDensity = false

	cells := buildOccupancy(places, slots, loads, cfg)

	require.Len(t, cells, 1)
	// Числа скрыты, но классификация считается по фактической занятости
	assert.Zero(t, cells[0].People)
	assert.Zero(t, cells[0].Density)
	assert.Equal(t, string(domain.LevelForbidden), cells[0].Level)
}

func TestGroupByDay(t *testing.T) {
	day1 := time.Date(2026, 4, 18, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 4, 19, 0, 0, 0, 0, time.UTC)

	slots := []*domain.ScheduleSlot{
		{ID: 1, StartsAt: day1.Add(10 * time.Hour)},
		{ID: 2, StartsAt: day1.Add(14 * time.Hour), Authorizeds: []string{"CS"}},
		{ID: 3, StartsAt: day2.Add(10 * time.Hour)},
	}

	days := groupByDay(slots)

	require.Len(t, days, 2)
	assert.Equal(t, day1, days[0].Date)
	require.Len(t, days[0].Slots, 2)
	assert.Equal(t, []string{"CS"}, days[0].Slots[1].Authorizeds)
	assert.Equal(t, day2, days[1].Date)
	require.Len(t, days[1].Slots, 1)
}

func TestGroupByDay_Empty(t *testing.T) {
	assert.Empty(t, groupByDay(nil))
}
