package create_schedule_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeScheduleRepo struct {
	created *domain.ScheduleSlot
}

func (f *fakeScheduleRepo) Create(ctx context.Context, slot *domain.ScheduleSlot) (*domain.ScheduleSlot, error) {
	slot.ID = 7
	f.created = slot
	return slot, nil
}

type fakeAppointmentRepo struct {
	placesCount int64
	slotID      int64
}

func (f *fakeAppointmentRepo) CreateForSlot(ctx context.Context, siteID, slotID int64) (int64, error) {
	f.slotID = slotID
	return f.placesCount, nil
}

type fakeTxManager struct{ calls int }

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func TestExecute_MaterializesAppointments(t *testing.T) {
	scheduleRepo := &fakeScheduleRepo{}
	appointmentRepo := &fakeAppointmentRepo{placesCount: 4}
	tx := &fakeTxManager{}

	uc := NewUseCase(scheduleRepo, appointmentRepo, tx, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		SiteID:      1,
		StartsAt:    time.Date(2026, 4, 18, 10, 0, 0, 0, time.UTC),
		Authorizeds: []string{" CS ", "CS", "AU"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, int64(4), resp.AppointmentsCreated)
	// Коды нормализуются: без пробелов и дубликатов
	assert.Equal(t, []string{"CS", "AU"}, resp.Authorizeds)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, int64(7), appointmentRepo.slotID)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeScheduleRepo{}, &fakeAppointmentRepo{}, &fakeTxManager{}, nopLogger{})

	t.Run("zero starts at", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{SiteID: 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty category code", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			SiteID:      1,
			StartsAt:    time.Date(2026, 4, 18, 10, 0, 0, 0, time.UTC),
			Authorizeds: []string{"  "},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
