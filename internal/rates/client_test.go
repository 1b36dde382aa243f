package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"kasa/internal/currency"
	"kasa/internal/log"
)

func TestFetchDecodesRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base":"USD","rates":{"USD":1,"EUR":0.9,"TRY":34.5}}`))
	}))
	defer srv.Close()

	table, err := NewClient(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if table["TRY"] != 34.5 {
		t.Fatalf("TRY = %v, want 34.5", table["TRY"])
	}
}

func TestFetchRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Fetch(context.Background()); err == nil {
		t.Fatal("expected error on 502")
	}
}

func TestFetchRejectsEmptyTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"USD","rates":{}}`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Fetch(context.Background()); err == nil {
		t.Fatal("expected error on empty rates")
	}
}

func TestRefresherKeepsTableOnFailure(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"rates":{"USD":1,"EUR":0.5}}`))
	}))
	defer srv.Close()

	conv := currency.NewConverter()
	ref := NewRefresher(NewClient(srv.URL), conv, time.Hour, log.New(log.DefaultConfig()))

	ref.refresh(context.Background())
	want := decimal.NewFromInt(5)
	if got := conv.Convert(decimal.NewFromInt(10), "USD", "EUR"); !got.Equal(want) {
		t.Fatalf("after refresh: %s, want %s", got, want)
	}

	healthy = false
	ref.refresh(context.Background())
	if got := conv.Convert(decimal.NewFromInt(10), "USD", "EUR"); !got.Equal(want) {
		t.Fatalf("failed refresh must keep previous table, got %s", got)
	}
}

func TestRefresherRunStopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates":{"USD":1}}`))
	}))
	defer srv.Close()

	ref := NewRefresher(NewClient(srv.URL), currency.NewConverter(), time.Hour, log.New(log.DefaultConfig()))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ref.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}
