package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testConfig() *SiteConfig {
	return &SiteConfig{
		CautionLevel:   8.0,
		WarningLevel:   4.0,
		ForbiddenLevel: 3.0,
	}
}

func TestDensity(t *testing.T) {
	// Запас вместимости на человека, знаменатель резервирует следующего посетителя
	assert.InDelta(t, 10.0, Density(10, 0), 0.0001)
	assert.InDelta(t, 5.0, Density(10, 1), 0.0001)
	assert.InDelta(t, 2.5, Density(10, 3), 0.0001)
}

func TestClassify_EmptyAppointmentIsAlwaysOK(t *testing.T) {
	cfg := testConfig()

	// Даже крошечное место без посетителей отображается зеленым
	assert.Equal(t, LevelOK, cfg.Classify(1, 0))
	assert.Equal(t, LevelOK, cfg.Classify(2, 0))
}

func TestClassify_Thresholds(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name  string
		gauge int
		load  int
		want  Level
	}{
		{"well below caution", 100, 1, LevelOK},    // density 50
		{"just above caution", 90, 10, LevelOK},    // density ~8.18
		{"at caution", 16, 1, LevelCaution},        // density 8.0, совпадение трактуется хуже
		{"between warning and caution", 30, 4, LevelCaution},   // density 6.0
		{"at warning", 8, 1, LevelWarning},                     // density 4.0
		{"between forbidden and warning", 35, 9, LevelWarning}, // density 3.5
		{"at forbidden", 6, 1, LevelForbidden},                 // density 3.0
		{"below forbidden", 10, 9, LevelForbidden},             // density 1.0
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Classify(tt.gauge, tt.load))
		})
	}
}

func TestClassify_TieGoesToWorseSide(t *testing.T) {
	cfg := testConfig()

	// density ровно 8.0 - caution, не ok
	assert.Equal(t, LevelCaution, cfg.Classify(16, 1))
	// density ровно 4.0 - warning, не caution
	assert.Equal(t, LevelWarning, cfg.Classify(8, 1))
	// density ровно 3.0 - forbidden, не warning
	assert.Equal(t, LevelForbidden, cfg.Classify(6, 1))
}

func TestHasRoomFor(t *testing.T) {
	a := &Appointment{Gauge: 10}

	assert.True(t, a.HasRoomFor(0, 10))
	assert.True(t, a.HasRoomFor(9, 1))
	assert.False(t, a.HasRoomFor(9, 2))
	assert.False(t, a.HasRoomFor(10, 1))
}
