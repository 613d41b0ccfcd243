package create_place

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakePlaceRepo struct {
	created *domain.Place
}

func (f *fakePlaceRepo) Create(ctx context.Context, place *domain.Place) (*domain.Place, error) {
	place.ID = 42
	f.created = place
	return place, nil
}

type fakeAppointmentRepo struct {
	slotsCount int64
	placeID    int64
}

func (f *fakeAppointmentRepo) CreateForPlace(ctx context.Context, siteID, placeID int64) (int64, error) {
	f.placeID = placeID
	return f.slotsCount, nil
}

type fakeTxManager struct{ calls int }

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func TestExecute_MaterializesAppointments(t *testing.T) {
	placeRepo := &fakePlaceRepo{}
	appointmentRepo := &fakeAppointmentRepo{slotsCount: 6}
	tx := &fakeTxManager{}

	uc := NewUseCase(placeRepo, appointmentRepo, tx, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		SiteID: 1,
		Name:   "  Лаборатория  ",
		Gauge:  10,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "Лаборатория", resp.Name)
	assert.Equal(t, int64(6), resp.AppointmentsCreated)

	// Создание места и материализация в одной транзакции
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, int64(42), appointmentRepo.placeID)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakePlaceRepo{}, &fakeAppointmentRepo{}, &fakeTxManager{}, nopLogger{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"empty name", &Request{SiteID: 1, Name: "  ", Gauge: 10}},
		{"zero gauge", &Request{SiteID: 1, Name: "Зал", Gauge: 0}},
		{"gauge too large", &Request{SiteID: 1, Name: "Зал", Gauge: domain.MaxGauge + 1}},
		{"bad site", &Request{SiteID: 0, Name: "Зал", Gauge: 10}},
		{"negative sort order", &Request{SiteID: 1, Name: "Зал", Gauge: 10, SortOrder: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
