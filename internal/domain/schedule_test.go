package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduleSlot_Admits(t *testing.T) {
	open := &ScheduleSlot{}
	restricted := &ScheduleSlot{Authorizeds: []string{"AU", "CS01"}}

	t.Run("open slot admits anyone", func(t *testing.T) {
		assert.True(t, open.Admits(""))
		assert.True(t, open.Admits("XX99"))
	})

	t.Run("prefix match", func(t *testing.T) {
		// "AU" допускает любые коды с этим префиксом
		assert.True(t, restricted.Admits("AU"))
		assert.True(t, restricted.Admits("AU02"))
		assert.True(t, restricted.Admits("CS01"))
	})

	t.Run("no match", func(t *testing.T) {
		assert.False(t, restricted.Admits("CS"))
		assert.False(t, restricted.Admits("BX01"))
	})

	t.Run("restricted slot rejects empty code", func(t *testing.T) {
		assert.False(t, restricted.Admits(""))
	})
}

func TestScheduleSlot_Day(t *testing.T) {
	slot := &ScheduleSlot{
		StartsAt: time.Date(2026, 4, 18, 14, 30, 0, 0, time.UTC),
	}

	assert.Equal(t, time.Date(2026, 4, 18, 0, 0, 0, 0, time.UTC), slot.Day())
}

func TestAppointmentKey_Less(t *testing.T) {
	assert.True(t, AppointmentKey{1, 5}.Less(AppointmentKey{1, 6}))
	assert.True(t, AppointmentKey{1, 9}.Less(AppointmentKey{2, 1}))
	assert.False(t, AppointmentKey{2, 1}.Less(AppointmentKey{1, 9}))
	assert.False(t, AppointmentKey{1, 5}.Less(AppointmentKey{1, 5}))
}
