package fonnte

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClientSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-token", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "12036@g.us", r.PostFormValue("target"))
		assert.Equal(t, "hello", r.PostFormValue("message"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": true}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token", 5*time.Second, nopLogger{})
	err := client.Send(context.Background(), "12036@g.us", "hello")
	require.NoError(t, err)
}

func TestClientSend_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": false, "reason": "invalid target"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token", 5*time.Second, nopLogger{})
	err := client.Send(context.Background(), "bad", "hello")
	require.ErrorIs(t, err, ErrSendRejected)
	assert.Contains(t, err.Error(), "invalid target")
}

func TestClientSend_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token", 5*time.Second, nopLogger{})
	err := client.Send(context.Background(), "12036@g.us", "hello")
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClientSend_NetworkError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "test-token", time.Second, nopLogger{})
	err := client.Send(context.Background(), "12036@g.us", "hello")
	require.ErrorIs(t, err, ErrInternal)
}
