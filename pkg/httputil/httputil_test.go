package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestBackoffDo(t *testing.T) {
	unavailable := errors.New("503")
	badRequest := errors.New("400")

	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   error
	}{
		{"first try", []error{nil}, 1, nil},
		{"recovers", []error{Transient(unavailable), Transient(unavailable), nil}, 3, nil},
		{"permanent", []error{badRequest, nil}, 1, badRequest},
		{"exhausted", []error{Transient(unavailable), Transient(unavailable), Transient(unavailable)}, 3, unavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			b := Backoff{Attempts: 3, Delay: time.Millisecond}
			err := b.Do(context.Background(), func() error {
				err := tt.errs[calls]
				calls++
				return err
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if err != tt.wantErr {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if IsTransient(err) {
				t.Error("returned error still carries the transient marker")
			}
		})
	}
}

func TestBackoffZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_ = Backoff{}.Do(context.Background(), func() error {
		calls++
		return Transient(errors.New("down"))
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestBackoffCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := Backoff{Attempts: 5, Delay: time.Hour}
	err := b.Do(ctx, func() error { return Transient(errors.New("down")) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestTransient(t *testing.T) {
	if Transient(nil) != nil {
		t.Error("Transient(nil) should be nil")
	}
	err := Transient(ErrNetwork)
	if !IsTransient(err) || !errors.Is(err, ErrNetwork) {
		t.Errorf("Transient(ErrNetwork) = %v, want a transient ErrNetwork", err)
	}
	if IsTransient(ErrNotFound) {
		t.Error("ErrNotFound should not be transient")
	}
}

func TestFetch(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("png bytes"))
	}))
	defer srv.Close()

	f := NewFetcher(WithRetry(3, time.Millisecond))
	data, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "png bytes" {
		t.Errorf("data = %q", data)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		want      error
		wantCalls int32
	}{
		{"not found", http.StatusNotFound, "", ErrNotFound, 1},
		{"forbidden", http.StatusForbidden, "", ErrNetwork, 1},
		{"server error", http.StatusInternalServerError, "", ErrNetwork, 2},
		{"too large", http.StatusOK, strings.Repeat("x", 64), ErrTooLarge, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			f := NewFetcher(WithRetry(2, time.Millisecond), WithMaxBytes(16), WithClient(srv.Client()))
			_, err := f.Fetch(context.Background(), srv.URL)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if calls.Load() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls.Load(), tt.wantCalls)
			}
		})
	}
}
