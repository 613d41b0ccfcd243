package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/m04kA/OpenHouse-BookingService/internal/usecase/create_booking"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeUseCase struct {
	req  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func doRequest(t *testing.T, h *Handler, siteID, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sites/"+siteID+"/bookings", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"siteId": siteID})
	rec := httptest.NewRecorder()

	h.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{
		StudentID:        1,
		Email:            "ivan@example.org",
		People:           1,
		ConfirmationCode: "3e8f6f0a-0000-0000-0000-000000000000",
	}}
	h := NewHandler(uc, nopLogger{})

	body := `{
		"firstName": "Иван",
		"lastName": "Петров",
		"email": "ivan@example.org",
		"selections": [{"placeId": 1, "slotId": 5}]
	}`

	rec := doRequest(t, h, "1", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.req)
	assert.Equal(t, int64(1), uc.req.SiteID)
	require.Len(t, uc.req.Selections, 1)
	assert.Equal(t, int64(5), uc.req.Selections[0].SlotID)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.StudentID)
	assert.NotEmpty(t, resp.ConfirmationCode)
}

func TestHandle_InvalidBody(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	rec := doRequest(t, h, "1", `{"unknownField": true}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidSiteID(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	rec := doRequest(t, h, "abc", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"captcha rejected", createBooking.ErrCaptchaRejected, http.StatusForbidden},
		{"school required", createBooking.ErrSchoolRequired, http.StatusBadRequest},
		{"school not found", createBooking.ErrSchoolNotFound, http.StatusBadRequest},
		{"too many slots", createBooking.ErrTooManySlots, http.StatusBadRequest},
		{"conflicting selection", createBooking.ErrConflictingSelection, http.StatusBadRequest},
		{"unknown appointment", createBooking.ErrUnknownAppointment, http.StatusNotFound},
		{"ineligible slot", createBooking.ErrIneligibleSlot, http.StatusForbidden},
		{"duplicate email", createBooking.ErrDuplicateEmail, http.StatusConflict},
		{"capacity exceeded", createBooking.ErrCapacityExceeded, http.StatusConflict},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	body := `{"firstName": "И", "lastName": "П", "email": "a@b.c", "selections": [{"placeId": 1, "slotId": 5}]}`

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})
			rec := doRequest(t, h, "1", body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
