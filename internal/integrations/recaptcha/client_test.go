package recaptcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestServer(t *testing.T, resp verifyResponse) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "secret-key", r.Form.Get("secret"))
		assert.Equal(t, "client-token", r.Form.Get("response"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestVerify_Success(t *testing.T) {
	srv := newTestServer(t, verifyResponse{Success: true, Score: 0.9})
	defer srv.Close()

	client := NewClient(srv.URL, 0.5, time.Second, nopLogger{})

	err := client.Verify(context.Background(), "secret-key", "client-token", "1.2.3.4")

	assert.NoError(t, err)
}

func TestVerify_ScoreBelowThreshold(t *testing.T) {
	srv := newTestServer(t, verifyResponse{Success: true, Score: 0.3})
	defer srv.Close()

	client := NewClient(srv.URL, 0.5, time.Second, nopLogger{})

	err := client.Verify(context.Background(), "secret-key", "client-token", "")

	assert.ErrorIs(t, err, ErrRejected)
}

func TestVerify_Unsuccessful(t *testing.T) {
	srv := newTestServer(t, verifyResponse{Success: false, ErrorCodes: []string{"invalid-input-response"}})
	defer srv.Close()

	client := NewClient(srv.URL, 0.5, time.Second, nopLogger{})

	err := client.Verify(context.Background(), "secret-key", "client-token", "")

	assert.ErrorIs(t, err, ErrRejected)
}

func TestVerify_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0.5, time.Second, nopLogger{})

	err := client.Verify(context.Background(), "secret-key", "client-token", "")

	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestVerify_NetworkErrorRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // сервер недоступен

	client := NewClient(srv.URL, 0.5, time.Second, nopLogger{})

	err := client.Verify(context.Background(), "secret-key", "client-token", "")

	assert.ErrorIs(t, err, ErrRejected)
}
