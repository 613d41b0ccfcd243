package get_scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
	configRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/siteconfig"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakePlaceRepo struct{ places []*domain.Place }

func (f *fakePlaceRepo) ListBySite(ctx context.Context, siteID int64) ([]*domain.Place, error) {
	return f.places, nil
}

type fakeScheduleRepo struct{ slots []*domain.ScheduleSlot }

func (f *fakeScheduleRepo) ListBySite(ctx context.Context, siteID int64) ([]*domain.ScheduleSlot, error) {
	return f.slots, nil
}

type fakeAppointmentRepo struct{ loads []*domain.AppointmentLoad }

func (f *fakeAppointmentRepo) GetLoads(ctx context.Context, siteID int64, countPeople bool) ([]*domain.AppointmentLoad, error) {
	return f.loads, nil
}

type fakeConfigRepo struct{ cfg *domain.SiteConfig }

func (f *fakeConfigRepo) GetBySiteID(ctx context.Context, siteID int64) (*domain.SiteConfig, error) {
	if f.cfg == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.cfg, nil
}

func TestExecute(t *testing.T) {
	day := time.Date(2026, 4, 18, 0, 0, 0, 0, time.UTC)

	uc := NewUseCase(
		&fakePlaceRepo{places: []*domain.Place{
			{ID: 1, Name: "Лаборатория", Gauge: 10},
		}},
		&fakeScheduleRepo{slots: []*domain.ScheduleSlot{
			{ID: 5, StartsAt: day.Add(10 * time.Hour)},
			{ID: 6, StartsAt: day.Add(11 * time.Hour)},
		}},
		&fakeAppointmentRepo{loads: []*domain.AppointmentLoad{
			{Key: domain.AppointmentKey{PlaceID: 1, SlotID: 5}, Load: 2},
		}},
		&fakeConfigRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{SiteID: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.SiteID)
	require.Len(t, resp.Places, 1)
	require.Len(t, resp.Days, 1)
	assert.Len(t, resp.Days[0].Slots, 2)
	assert.Len(t, resp.Occupancy, 2)
}

func TestExecute_InvalidSiteID(t *testing.T) {
	uc := NewUseCase(&fakePlaceRepo{}, &fakeScheduleRepo{}, &fakeAppointmentRepo{}, &fakeConfigRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{SiteID: 0})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
